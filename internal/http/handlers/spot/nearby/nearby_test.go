package nearby_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/easyparkpay/easypark/internal/http/handlers/spot/nearby"
	"github.com/easyparkpay/easypark/internal/lib/geo"
	"github.com/easyparkpay/easypark/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) SetUserLocation(ctx context.Context, loc geo.Location) ([]models.ParkingSpot, error) {
	args := m.Called(ctx, loc)
	spots, _ := args.Get(0).([]models.ParkingSpot)
	return spots, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestNearbyHandler(t *testing.T) {
	defaultLoc := geo.Location{Lat: 17.385, Lng: 78.4867}
	spots := []models.ParkingSpot{{ID: "p2", Name: "Banjara Hills Parking Complex"}}

	tests := []struct {
		name           string
		target         string
		expectLoc      *geo.Location
		mockSpots      []models.ParkingSpot
		mockErr        error
		wantStatusCode int
		wantInBody     string
	}{
		{
			name:           "default location when no coordinates",
			target:         "/spots",
			expectLoc:      &defaultLoc,
			mockSpots:      spots,
			wantStatusCode: http.StatusOK,
			wantInBody:     "Banjara Hills Parking Complex",
		},
		{
			name:           "explicit coordinates",
			target:         "/spots?lat=17.44&lng=78.35",
			expectLoc:      &geo.Location{Lat: 17.44, Lng: 78.35},
			mockSpots:      spots,
			wantStatusCode: http.StatusOK,
			wantInBody:     `"spots"`,
		},
		{
			name:           "malformed coordinates",
			target:         "/spots?lat=abc&lng=78.35",
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "invalid coordinates",
		},
		{
			name:           "partial coordinates",
			target:         "/spots?lat=17.44",
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "invalid coordinates",
		},
		{
			name:           "repository failure",
			target:         "/spots",
			expectLoc:      &defaultLoc,
			mockErr:        assert.AnError,
			wantStatusCode: http.StatusInternalServerError,
			wantInBody:     "could not load parking spots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			if tt.expectLoc != nil {
				serviceMock.On("SetUserLocation", mock.Anything, *tt.expectLoc).
					Return(tt.mockSpots, tt.mockErr).Once()
			}

			handler := nearby.New(newNoopLogger(), serviceMock, defaultLoc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
			serviceMock.AssertExpectations(t)
		})
	}
}
