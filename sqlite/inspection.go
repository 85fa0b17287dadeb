package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/metainspect"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ metainspect.InspectionService = (*InspectionService)(nil)

// InspectionService implements metainspect.InspectionService using SQLite.
type InspectionService struct {
	db *DB
}

// NewInspectionService creates a new InspectionService.
func NewInspectionService(db *DB) *InspectionService {
	return &InspectionService{db: db}
}

// hashBody returns the hex xxHash of a response body.
func hashBody(body []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(body))
}

// CreateInspection archives a new inspection, assigning its ID, timestamp
// and body hash.
func (s *InspectionService) CreateInspection(ctx context.Context, ins *metainspect.Inspection) error {
	if err := ins.Validate(); err != nil {
		return err
	}

	ins.ID = uuid.New().String()
	ins.InspectedAt = time.Now().UTC()
	if ins.Result.Response != nil {
		ins.BodyHash = hashBody(ins.Result.Response.Body)
	}

	result, err := json.Marshal(ins.Result)
	if err != nil {
		return metainspect.WrapError(metainspect.EINTERNAL, err, "encoding inspection result")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO inspections (id, url, final_url, status_code, title, description, body_hash, result, inspected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ins.ID, ins.URL, ins.FinalURL, ins.StatusCode, ins.Title, ins.Description, ins.BodyHash,
		string(result), ins.InspectedAt.Format(timestampFormat))

	return err
}

// FindInspectionByID retrieves an inspection by ID.
func (s *InspectionService) FindInspectionByID(ctx context.Context, id string) (*metainspect.Inspection, error) {
	inspections, err := s.FindInspections(ctx, metainspect.InspectionFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(inspections) == 0 {
		return nil, metainspect.Errorf(metainspect.ENOTFOUND, "inspection not found")
	}
	return inspections[0], nil
}

// FindInspections retrieves inspections matching the filter, newest first.
func (s *InspectionService) FindInspections(ctx context.Context, filter metainspect.InspectionFilter) ([]*metainspect.Inspection, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, url, final_url, status_code, title, description, body_hash, result, inspected_at
		FROM inspections WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY inspected_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inspections []*metainspect.Inspection
	for rows.Next() {
		ins, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		inspections = append(inspections, ins)
	}

	return inspections, rows.Err()
}

// DeleteInspection permanently removes an inspection.
func (s *InspectionService) DeleteInspection(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM inspections WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return metainspect.Errorf(metainspect.ENOTFOUND, "inspection not found")
	}

	return nil
}

func scanInspection(rows *sql.Rows) (*metainspect.Inspection, error) {
	var ins metainspect.Inspection
	var result, inspectedAt string

	if err := rows.Scan(&ins.ID, &ins.URL, &ins.FinalURL, &ins.StatusCode, &ins.Title,
		&ins.Description, &ins.BodyHash, &result, &inspectedAt); err != nil {
		return nil, err
	}

	var err error
	ins.InspectedAt, err = parseRFC3339(inspectedAt, "inspected_at")
	if err != nil {
		return nil, err
	}

	ins.Result = &metainspect.Result{}
	if err := json.Unmarshal([]byte(result), ins.Result); err != nil {
		return nil, metainspect.WrapError(metainspect.EINTERNAL, err, "decoding inspection result")
	}

	return &ins, nil
}
