package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easyparkpay/easypark/internal/lib/geo"
	"github.com/easyparkpay/easypark/internal/models"
	"github.com/easyparkpay/easypark/internal/storage/memory"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListSpots(ctx context.Context) ([]models.ParkingSpot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ParkingSpot), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(t *testing.T) *LocationService {
	t.Helper()
	return NewLocationService(memory.New(), nil, newNoopLogger(), 0)
}

func TestNearbySpots_WithoutLocation(t *testing.T) {
	svc := newService(t)

	spots, err := svc.NearbySpots(context.Background())
	require.NoError(t, err)
	require.Len(t, spots, 5)

	// Без позиции пользователя каталог возвращается в исходном порядке
	// с нулевыми расстояниями.
	assert.Equal(t, "p1", spots[0].ID)
	for _, spot := range spots {
		assert.Zero(t, spot.Distance)
	}
}

func TestNearbySpots_SortsByDistance(t *testing.T) {
	svc := newService(t)
	center := geo.Location{Lat: 17.385, Lng: 78.4867}

	spots, err := svc.SetUserLocation(context.Background(), center)
	require.NoError(t, err)
	require.Len(t, spots, 5)

	for i := 1; i < len(spots); i++ {
		assert.LessOrEqual(t, spots[i-1].Distance, spots[i].Distance)
	}
	for _, spot := range spots {
		assert.Greater(t, spot.Distance, 0.0)
	}
}

func TestNearbySpots_ContextCancelled(t *testing.T) {
	svc := NewLocationService(memory.New(), nil, newNoopLogger(), time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.NearbySpots(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNearbySpots_RepositoryError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListSpots", mock.Anything).Return(nil, errors.New("db error"))
	svc := NewLocationService(repo, nil, newNoopLogger(), 0)

	_, err := svc.NearbySpots(context.Background())
	assert.Error(t, err)
}

func TestNearbySpots_UsesCache(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	cached := []models.ParkingSpot{{ID: "p9", Name: "Cached Parking", Distance: 1.2}}

	cache.On("Get", mock.Anything, "spots:17.3850:78.4867", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]models.ParkingSpot)
			*out = cached
		}).
		Return(true, nil).Once()

	svc := NewLocationService(repo, cache, newNoopLogger(), 0)
	spots, err := svc.SetUserLocation(context.Background(), geo.Location{Lat: 17.385, Lng: 78.4867})
	require.NoError(t, err)
	assert.Equal(t, cached, spots)

	repo.AssertNotCalled(t, "ListSpots", mock.Anything)
	cache.AssertExpectations(t)
}

func TestApplyFilters_TableTests(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		withLoc bool
		filter  models.SpotFilter
		wantIDs []string
	}{
		{
			name:    "price bound keeps order",
			filter:  models.SpotFilter{PriceMax: ptr(45)},
			wantIDs: []string{"p2", "p5"},
		},
		{
			name:    "no bounds returns everything",
			filter:  models.SpotFilter{},
			wantIDs: []string{"p1", "p2", "p3", "p4", "p5"},
		},
		{
			name:    "rating bound",
			filter:  models.SpotFilter{RatingMin: ptr(4.5)},
			wantIDs: []string{"p1", "p3"},
		},
		{
			name:    "conjunctive price and rating",
			filter:  models.SpotFilter{PriceMax: ptr(55), RatingMin: ptr(4.2)},
			wantIDs: []string{"p1", "p2"},
		},
		{
			name:    "distance bound ignored without user location",
			filter:  models.SpotFilter{DistanceMax: ptr(0.001)},
			wantIDs: []string{"p1", "p2", "p3", "p4", "p5"},
		},
		{
			name:    "distance bound with user location",
			withLoc: true,
			filter:  models.SpotFilter{DistanceMax: ptr(7.0)},
			wantIDs: []string{"p2", "p5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			if tt.withLoc {
				_, err := svc.SetUserLocation(context.Background(), geo.Location{Lat: 17.385, Lng: 78.4867})
				require.NoError(t, err)
			} else {
				_, err := svc.NearbySpots(context.Background())
				require.NoError(t, err)
			}

			got := svc.ApplyFilters(tt.filter)
			ids := make([]string, 0, len(got))
			for _, spot := range got {
				ids = append(ids, spot.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, got, svc.FilteredSpots())
		})
	}
}

func TestSelectSpot(t *testing.T) {
	svc := newService(t)
	_, err := svc.NearbySpots(context.Background())
	require.NoError(t, err)

	spot := svc.SelectSpot("p3")
	require.NotNil(t, spot)
	assert.Equal(t, "HITEC City Parking", spot.Name)
	assert.Equal(t, spot, svc.SelectedSpot())

	// Неизвестный идентификатор не меняет выбор.
	assert.Nil(t, svc.SelectSpot("nope"))
	assert.Equal(t, "p3", svc.SelectedSpot().ID)

	svc.ClearSelectedSpot()
	assert.Nil(t, svc.SelectedSpot())
}
