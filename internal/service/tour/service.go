package tour

import (
	"context"
	"errors"
	"fmt"

	"github.com/zhouzirui/natours/backend/internal/model/tour"
)

var (
	ErrTourNotFound = errors.New("tour not found")
	ErrPersist      = errors.New("failed to save tour")
)

// Service implements the tour CRUD operations on top of a Store.
type Service struct {
	store tour.Store
}

// NewService binds the service to the given store.
func NewService(store tour.Store) *Service {
	return &Service{store: store}
}

// ListTours returns the whole collection.
func (s *Service) ListTours(ctx context.Context) ([]tour.Tour, error) {
	return s.store.List(ctx)
}

// GetTour looks a tour up by id.
func (s *Service) GetTour(ctx context.Context, id int) (tour.Tour, error) {
	t, ok, err := s.store.FindByID(ctx, id)
	if err != nil {
		return tour.Tour{}, err
	}
	if !ok {
		return tour.Tour{}, ErrTourNotFound
	}
	return t, nil
}

// CreateTour stores a new tour built from fields. Store failures are wrapped
// with ErrPersist.
func (s *Service) CreateTour(ctx context.Context, fields *tour.Fields) (tour.Tour, error) {
	created, err := s.store.Create(ctx, fields)
	if err != nil {
		return tour.Tour{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return created, nil
}

// UpdateTour validates id and changes nothing. id is the loose numeric form
// from tour.Numeric.
func (s *Service) UpdateTour(ctx context.Context, id float64) error {
	return s.checkBounds(ctx, id)
}

// DeleteTour validates id and removes nothing.
func (s *Service) DeleteTour(ctx context.Context, id float64) error {
	return s.checkBounds(ctx, id)
}

// checkBounds reports ErrTourNotFound when id exceeds the collection length.
// It is not an existence check: any id <= length passes, and so does NaN.
func (s *Service) checkBounds(ctx context.Context, id float64) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if id > float64(count) {
		return ErrTourNotFound
	}
	return nil
}
