package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/metainspect"
)

// Ensure LoggingInspectionService implements metainspect.InspectionService.
var _ metainspect.InspectionService = (*LoggingInspectionService)(nil)

// LoggingInspectionService wraps an InspectionService with debug logging.
type LoggingInspectionService struct {
	next   metainspect.InspectionService
	logger *slog.Logger
}

// NewLoggingInspectionService creates a new LoggingInspectionService.
func NewLoggingInspectionService(next metainspect.InspectionService, logger *slog.Logger) *LoggingInspectionService {
	return &LoggingInspectionService{next: next, logger: logger}
}

// CreateInspection delegates to the wrapped service and logs the operation.
func (s *LoggingInspectionService) CreateInspection(ctx context.Context, ins *metainspect.Inspection) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create inspection",
			"url", ins.URL,
			"id", ins.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateInspection(ctx, ins)
}

// FindInspectionByID delegates to the wrapped service.
func (s *LoggingInspectionService) FindInspectionByID(ctx context.Context, id string) (*metainspect.Inspection, error) {
	return s.next.FindInspectionByID(ctx, id)
}

// FindInspections delegates to the wrapped service and logs the operation.
func (s *LoggingInspectionService) FindInspections(ctx context.Context, filter metainspect.InspectionFilter) (inspections []*metainspect.Inspection, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find inspections",
			"count", len(inspections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindInspections(ctx, filter)
}

// DeleteInspection delegates to the wrapped service.
func (s *LoggingInspectionService) DeleteInspection(ctx context.Context, id string) error {
	return s.next.DeleteInspection(ctx, id)
}
