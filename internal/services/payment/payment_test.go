package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easyparkpay/easypark/internal/kvstore"
	"github.com/easyparkpay/easypark/internal/models"
)

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func pendingBooking() models.BookingDetails {
	return models.BookingDetails{
		ID:          "b-42",
		ParkingID:   "p2",
		ParkingName: "Banjara Hills Parking Complex",
		Date:        "2025-04-01",
		StartTime:   "10:00",
		EndTime:     "12:00",
		Duration:    2,
		VehicleType: models.VehicleCar,
		Price:       80,
		Services:    []string{},
	}
}

func newTestService(t *testing.T, withBooking bool, publisher Publisher) (*PaymentService, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemory()
	if withBooking {
		require.NoError(t, store.Set(context.Background(), kvstore.KeyBookingDetails, pendingBooking()))
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return NewPaymentService(store, publisher, slog.Default(), 0), store
}

func cardPayment() models.DummyPayment {
	return models.DummyPayment{
		Method:     models.PaymentMethodCard,
		CardNumber: "4111 1111 1111 1111",
		CardName:   "Test User",
		CardExpiry: "12/27",
		CardCVV:    "123",
	}
}

func TestPay_NoBooking(t *testing.T) {
	svc, _ := newTestService(t, false, nil)

	details, err := svc.Pay(context.Background(), cardPayment())
	assert.ErrorIs(t, err, ErrNoBooking)
	assert.Nil(t, details)
}

func TestPay_Validation(t *testing.T) {
	cases := []struct {
		name        string
		payment     models.DummyPayment
		expectedErr error
	}{
		{
			name:        "unknown method",
			payment:     models.DummyPayment{Method: "cash"},
			expectedErr: ErrUnknownMethod,
		},
		{
			name: "card missing fields",
			payment: models.DummyPayment{
				Method:     models.PaymentMethodCard,
				CardNumber: "4111 1111 1111 1111",
			},
			expectedErr: ErrMissingFields,
		},
		{
			name: "card number too short",
			payment: models.DummyPayment{
				Method:     models.PaymentMethodCard,
				CardNumber: "4111 1111",
				CardName:   "Test User",
				CardExpiry: "12/27",
				CardCVV:    "123",
			},
			expectedErr: ErrInvalidCard,
		},
		{
			name: "bad cvv",
			payment: models.DummyPayment{
				Method:     models.PaymentMethodCard,
				CardNumber: "4111 1111 1111 1111",
				CardName:   "Test User",
				CardExpiry: "12/27",
				CardCVV:    "12",
			},
			expectedErr: ErrInvalidCard,
		},
		{
			name:        "empty upi",
			payment:     models.DummyPayment{Method: models.PaymentMethodUPI},
			expectedErr: ErrMissingFields,
		},
		{
			name:        "upi without at sign",
			payment:     models.DummyPayment{Method: models.PaymentMethodUPI, UPIID: "user.upi"},
			expectedErr: ErrInvalidUPI,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newTestService(t, true, nil)

			details, err := svc.Pay(context.Background(), tc.payment)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, details)

			// Бронирование остаётся ожидающим.
			var stored models.BookingDetails
			found, err := store.Get(context.Background(), kvstore.KeyBookingDetails, &stored)
			require.NoError(t, err)
			assert.True(t, found)
		})
	}
}

func TestPay_CardSuccess(t *testing.T) {
	publisher := &publisherMock{}
	publisher.On("Publish", "paid", mock.MatchedBy(func(message any) bool {
		event, ok := message.(models.PaymentEvent)
		return ok && event.BookingID == "b-42" && event.Amount == 80 && event.Method == models.PaymentMethodCard
	})).Return(nil).Once()

	svc, store := newTestService(t, true, publisher)

	details, err := svc.Pay(context.Background(), cardPayment())
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "b-42", details.ID)

	var stored models.BookingDetails
	found, err := store.Get(context.Background(), kvstore.KeyBookingDetails, &stored)
	require.NoError(t, err)
	assert.False(t, found)

	publisher.AssertExpectations(t)
}

func TestPay_UPISuccess(t *testing.T) {
	svc, _ := newTestService(t, true, nil)

	details, err := svc.Pay(context.Background(), models.DummyPayment{
		Method: models.PaymentMethodUPI,
		UPIID:  "user@upi",
	})
	require.NoError(t, err)
	require.NotNil(t, details)
}

func TestPay_PublishFailureDoesNotFailPayment(t *testing.T) {
	publisher := &publisherMock{}
	publisher.On("Publish", "paid", mock.Anything).Return(assert.AnError).Once()

	svc, store := newTestService(t, true, publisher)

	details, err := svc.Pay(context.Background(), cardPayment())
	require.NoError(t, err)
	require.NotNil(t, details)

	var stored models.BookingDetails
	found, err := store.Get(context.Background(), kvstore.KeyBookingDetails, &stored)
	require.NoError(t, err)
	assert.False(t, found)

	publisher.AssertExpectations(t)
}

func TestPay_ContextCancelledDuringProcessing(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(context.Background(), kvstore.KeyBookingDetails, pendingBooking()))
	svc := NewPaymentService(store, NopPublisher{}, slog.Default(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	details, err := svc.Pay(ctx, cardPayment())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, details)

	// Запись не удалена.
	var stored models.BookingDetails
	found, err := store.Get(context.Background(), kvstore.KeyBookingDetails, &stored)
	require.NoError(t, err)
	assert.True(t, found)
}
