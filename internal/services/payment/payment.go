// Package services содержит бизнес-логику имитации оплаты бронирования:
// проверку платёжных данных, задержку обработки и публикацию события
// об успешной оплате.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/easyparkpay/easypark/internal/kvstore"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
)

// Ошибки оплаты.
var (
	// ErrNoBooking возвращается, если нет ожидающего бронирования.
	ErrNoBooking = errors.New("no booking details found")
	// ErrMissingFields возвращается, если платёжные данные не заполнены.
	ErrMissingFields = errors.New("required fields are missing")
	// ErrInvalidCard возвращается для некорректного номера карты или CVV.
	ErrInvalidCard = errors.New("invalid card details")
	// ErrInvalidUPI возвращается для некорректного UPI ID.
	ErrInvalidUPI = errors.New("invalid UPI id")
	// ErrUnknownMethod возвращается для неизвестного способа оплаты.
	ErrUnknownMethod = errors.New("unknown payment method")
)

// Publisher публикует событие об успешной оплате.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// NopPublisher используется, когда брокер сообщений не сконфигурирован.
type NopPublisher struct{}

// Publish ничего не делает.
func (NopPublisher) Publish(string, any) error { return nil }

// PaymentService имитирует оплату: платёж всегда успешен, если данные
// проходят проверку формата. Реальный платёжный шлюз не вызывается.
type PaymentService struct {
	store           kvstore.Store
	publisher       Publisher
	log             *slog.Logger
	processingDelay time.Duration
	now             func() time.Time
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(store kvstore.Store, publisher Publisher, log *slog.Logger, processingDelay time.Duration) *PaymentService {
	return &PaymentService{
		store:           store,
		publisher:       publisher,
		log:             log,
		processingDelay: processingDelay,
		now:             time.Now,
	}
}

// PendingBooking возвращает ожидающее оплаты бронирование или nil.
func (s *PaymentService) PendingBooking(ctx context.Context) (*models.BookingDetails, error) {
	var details models.BookingDetails
	found, err := s.store.Get(ctx, kvstore.KeyBookingDetails, &details)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &details, nil
}

// Pay проводит оплату ожидающего бронирования: проверяет платёжные
// данные по способу оплаты, имитирует задержку обработки, удаляет
// запись бронирования и публикует событие об оплате. Ошибка публикации
// не отменяет успешную оплату.
func (s *PaymentService) Pay(ctx context.Context, payment models.DummyPayment) (*models.BookingDetails, error) {
	const op = "services.payment.Pay"

	details, err := s.PendingBooking(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if details == nil {
		return nil, ErrNoBooking
	}

	if err := validate(payment); err != nil {
		return nil, err
	}

	if s.processingDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(s.processingDelay):
		}
	}

	if err := s.store.Delete(ctx, kvstore.KeyBookingDetails); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	event := models.PaymentEvent{
		BookingID:   details.ID,
		ParkingName: details.ParkingName,
		Amount:      details.Price,
		Method:      payment.Method,
		PaidAt:      s.now().Format(time.RFC3339),
	}
	if err := s.publisher.Publish("paid", event); err != nil {
		s.log.Warn("failed to publish payment event", sl.Err(err))
	}

	s.log.Info("payment completed",
		slog.String("op", op),
		slog.String("booking_id", details.ID),
		slog.Int("amount", details.Price),
		slog.String("method", payment.Method))
	return details, nil
}

// validate проверяет платёжные данные по способу оплаты:
// card — все четыре поля, 16 цифр без пробелов, CVV из 3 цифр;
// upi — непустой идентификатор, содержащий "@".
func validate(payment models.DummyPayment) error {
	switch payment.Method {
	case models.PaymentMethodCard:
		if payment.CardNumber == "" || payment.CardName == "" || payment.CardExpiry == "" || payment.CardCVV == "" {
			return ErrMissingFields
		}
		if len(strings.ReplaceAll(payment.CardNumber, " ", "")) != 16 {
			return ErrInvalidCard
		}
		if len(payment.CardCVV) != 3 {
			return ErrInvalidCard
		}
	case models.PaymentMethodUPI:
		if payment.UPIID == "" {
			return ErrMissingFields
		}
		if !strings.Contains(payment.UPIID, "@") {
			return ErrInvalidUPI
		}
	default:
		return ErrUnknownMethod
	}
	return nil
}
