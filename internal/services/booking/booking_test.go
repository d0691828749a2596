package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyparkpay/easypark/internal/kvstore"
	"github.com/easyparkpay/easypark/internal/models"
)

type spotStub struct {
	spot *models.ParkingSpot
}

func (s *spotStub) SelectedSpot() *models.ParkingSpot { return s.spot }

type authStub struct {
	authenticated bool
}

func (a *authStub) IsAuthenticated() bool { return a.authenticated }

func testSpot() *models.ParkingSpot {
	return &models.ParkingSpot{
		ID:    "p2",
		Name:  "Banjara Hills Parking Complex",
		Price: 40,
	}
}

func newTestService(spot *models.ParkingSpot, authenticated bool) (*BookingService, kvstore.Store) {
	store := kvstore.NewMemory()
	svc := NewBookingService(store, &spotStub{spot: spot}, &authStub{authenticated: authenticated}, slog.Default())
	return svc, store
}

func TestEndTime(t *testing.T) {
	cases := []struct {
		name  string
		start string
		hours float64
		want  string
	}{
		{name: "whole hours", start: "10:00", hours: 2, want: "12:00"},
		{name: "fractional hours", start: "10:00", hours: 1.5, want: "11:30"},
		{name: "minute carry", start: "10:45", hours: 1.5, want: "12:15"},
		{name: "wraps midnight", start: "23:00", hours: 2, want: "01:00"},
		{name: "keeps start minutes", start: "09:15", hours: 3, want: "12:15"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EndTime(tc.start, tc.hours))
		})
	}
}

func TestSelectService(t *testing.T) {
	cases := []struct {
		name          string
		authenticated bool
		service       string
		expectedErr   error
		expectedType  string
	}{
		{name: "requires login", authenticated: false, service: "Car Wash", expectedErr: ErrLoginRequired},
		{name: "unknown service", authenticated: true, service: "Helicopter Pad", expectedErr: ErrUnknownService},
		{name: "not bookable", authenticated: true, service: "Monthly Pass", expectedErr: ErrUnknownService},
		{name: "charging service", authenticated: true, service: "EV Charging", expectedType: models.ServiceTypeCharging},
		{name: "flat fee service", authenticated: true, service: "Car Wash", expectedType: models.ServiceTypeAdditional},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestService(testSpot(), tc.authenticated)

			option, err := svc.SelectService(context.Background(), tc.service)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, option)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, option)
			assert.Equal(t, tc.service, option.ServiceName)
			assert.Equal(t, tc.expectedType, option.ServiceType)

			var stored models.ServiceOption
			found, err := store.Get(context.Background(), kvstore.KeySelectedService, &stored)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, *option, stored)
		})
	}
}

func TestClearSelectedService(t *testing.T) {
	svc, _ := newTestService(testSpot(), true)

	_, err := svc.SelectService(context.Background(), "Car Wash")
	require.NoError(t, err)
	require.NoError(t, svc.ClearSelectedService(context.Background()))

	option, err := svc.SelectedService(context.Background())
	require.NoError(t, err)
	assert.Nil(t, option)
}

func TestCreate_NoSpotSelected(t *testing.T) {
	svc, _ := newTestService(nil, true)

	details, err := svc.Create(context.Background(), models.DummyBooking{
		Date:          "2025-04-01",
		StartTime:     "10:00",
		Duration:      2,
		VehicleType:   "car",
		VehicleNumber: "TS 09 AB 1234",
	})
	assert.ErrorIs(t, err, ErrNoSpotSelected)
	assert.Nil(t, details)
}

func TestCreate_MissingFields(t *testing.T) {
	svc, store := newTestService(testSpot(), true)

	details, err := svc.Create(context.Background(), models.DummyBooking{
		Date:        "2025-04-01",
		StartTime:   "10:00",
		Duration:    2,
		VehicleType: "car",
	})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Nil(t, details)

	var stored models.BookingDetails
	found, err := store.Get(context.Background(), kvstore.KeyBookingDetails, &stored)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCreate_Success(t *testing.T) {
	svc, store := newTestService(testSpot(), true)

	details, err := svc.Create(context.Background(), models.DummyBooking{
		Date:          "2025-04-01",
		StartTime:     "10:00",
		Duration:      2,
		VehicleType:   "bike",
		VehicleNumber: "TS 09 AB 1234",
	})
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.NotEmpty(t, details.ID)
	assert.Equal(t, "p2", details.ParkingID)
	assert.Equal(t, "12:00", details.EndTime)
	assert.Equal(t, 56, details.Price) // 40 * 2 * 0.7
	assert.Empty(t, details.Services)

	var stored models.BookingDetails
	found, err := store.Get(context.Background(), kvstore.KeyBookingDetails, &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, *details, stored)
}

func TestCreate_WithSelectedService(t *testing.T) {
	svc, _ := newTestService(testSpot(), true)

	_, err := svc.SelectService(context.Background(), "EV Charging")
	require.NoError(t, err)

	details, err := svc.Create(context.Background(), models.DummyBooking{
		Date:          "2025-04-01",
		StartTime:     "10:00",
		Duration:      2,
		VehicleType:   "car",
		VehicleNumber: "TS 09 AB 1234",
	})
	require.NoError(t, err)
	// 40*2*1.0 + 80*2
	assert.Equal(t, 240, details.Price)
	assert.Equal(t, []string{"EV Charging"}, details.Services)
}
