package mock

import (
	"context"

	"github.com/fwojciec/metainspect"
)

var _ metainspect.InspectionService = (*InspectionService)(nil)

// InspectionService is a mock implementation of metainspect.InspectionService.
type InspectionService struct {
	CreateInspectionFn   func(ctx context.Context, ins *metainspect.Inspection) error
	FindInspectionByIDFn func(ctx context.Context, id string) (*metainspect.Inspection, error)
	FindInspectionsFn    func(ctx context.Context, filter metainspect.InspectionFilter) ([]*metainspect.Inspection, error)
	DeleteInspectionFn   func(ctx context.Context, id string) error
}

func (s *InspectionService) CreateInspection(ctx context.Context, ins *metainspect.Inspection) error {
	return s.CreateInspectionFn(ctx, ins)
}

func (s *InspectionService) FindInspectionByID(ctx context.Context, id string) (*metainspect.Inspection, error) {
	return s.FindInspectionByIDFn(ctx, id)
}

func (s *InspectionService) FindInspections(ctx context.Context, filter metainspect.InspectionFilter) ([]*metainspect.Inspection, error) {
	return s.FindInspectionsFn(ctx, filter)
}

func (s *InspectionService) DeleteInspection(ctx context.Context, id string) error {
	return s.DeleteInspectionFn(ctx, id)
}
