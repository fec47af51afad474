package tour_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/natours/backend/internal/model/tour"
	toursvc "github.com/zhouzirui/natours/backend/internal/service/tour"
)

type failingStore struct {
	*tour.MemoryStore
}

func (f failingStore) Create(context.Context, *tour.Fields) (tour.Tour, error) {
	return tour.Tour{}, errors.New("disk full")
}

func seed(n int) []tour.Tour {
	items := make([]tour.Tour, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, tour.New(i, nil))
	}
	return items
}

func TestGetTour(t *testing.T) {
	ctx := context.Background()
	svc := toursvc.NewService(tour.NewMemoryStore(seed(3)))

	got, err := svc.GetTour(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, got.ID)

	_, err = svc.GetTour(ctx, 3)
	require.ErrorIs(t, err, toursvc.ErrTourNotFound)
}

func TestUpdateAndDeleteUseLengthBound(t *testing.T) {
	ctx := context.Background()
	// ids 0..2, length 3: id 3 does not exist but still passes the bound.
	svc := toursvc.NewService(tour.NewMemoryStore(seed(3)))

	for _, id := range []float64{0, 3, -1, 2.5, math.NaN()} {
		require.NoError(t, svc.UpdateTour(ctx, id), "update %d", id)
		require.NoError(t, svc.DeleteTour(ctx, id), "delete %d", id)
	}
	require.ErrorIs(t, svc.UpdateTour(ctx, 4), toursvc.ErrTourNotFound)
	require.ErrorIs(t, svc.DeleteTour(ctx, 4), toursvc.ErrTourNotFound)
}

func TestCreateTourWrapsStoreFailure(t *testing.T) {
	svc := toursvc.NewService(failingStore{tour.NewMemoryStore(nil)})

	_, err := svc.CreateTour(context.Background(), nil)
	require.ErrorIs(t, err, toursvc.ErrPersist)
}

func TestListToursMatchesCount(t *testing.T) {
	ctx := context.Background()
	store := tour.NewMemoryStore(seed(5))
	svc := toursvc.NewService(store)

	_, err := svc.CreateTour(ctx, nil)
	require.NoError(t, err)

	items, err := svc.ListTours(ctx)
	require.NoError(t, err)
	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Len(t, items, count)
}
