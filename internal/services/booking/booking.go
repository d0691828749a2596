// Package services содержит бизнес-логику оформления бронирования:
// каталог дополнительных услуг, выбор услуги и сборку деталей
// бронирования для шага оплаты.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/easyparkpay/easypark/internal/kvstore"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
	"github.com/easyparkpay/easypark/internal/services/pricing"
)

// Ошибки оформления бронирования.
var (
	// ErrLoginRequired возвращается при выборе услуги без активной сессии.
	ErrLoginRequired = errors.New("login required")
	// ErrUnknownService возвращается для услуги вне каталога.
	ErrUnknownService = errors.New("unknown service")
	// ErrNoSpotSelected возвращается, если парковка не выбрана.
	ErrNoSpotSelected = errors.New("no parking spot selected")
	// ErrMissingFields возвращается, если обязательные поля не заполнены.
	ErrMissingFields = errors.New("required fields are missing")
)

var bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "easypark_bookings_created_total",
	Help: "Total number of assembled bookings.",
})

// CatalogEntry описывает услугу из статического каталога.
// Поле Bookable отличает услуги, которые можно прикрепить
// к бронированию, от чисто информационных записей.
type CatalogEntry struct {
	Title       string  `json:"title"`       // Название услуги
	Description string  `json:"description"` // Описание
	Display     string  `json:"display"`     // Цена для отображения
	BasePrice   float64 `json:"base_price"`  // Цена для расчёта
	ServiceType string  `json:"service_type"`
	Bookable    bool    `json:"bookable"`
}

// catalog — статический каталог услуг парковки.
var catalog = []CatalogEntry{
	{
		Title:       "Regular Parking",
		Description: "Find and book regular parking spots across Hyderabad with real-time availability updates.",
		Display:     "₹40/hr",
		BasePrice:   40,
		ServiceType: models.ServiceTypeParking,
		Bookable:    true,
	},
	{
		Title:       "Premium Parking",
		Description: "Book exclusive premium parking spots with wider spaces and better security.",
		Display:     "₹60/hr",
		BasePrice:   60,
		ServiceType: models.ServiceTypeParking,
		Bookable:    true,
	},
	{
		Title:       "Advanced Booking",
		Description: "Reserve parking spots up to 30 days in advance to ensure availability.",
		Display:     "₹50/hr",
		BasePrice:   50,
		ServiceType: models.ServiceTypeParking,
		Bookable:    true,
	},
	{
		Title:       "Monthly Pass",
		Description: "Get dedicated parking spots with monthly subscriptions for regular commuters.",
		Display:     "₹3000/month",
		BasePrice:   3000,
		ServiceType: models.ServiceTypeParking,
		Bookable:    false, // оформляется через подписку
	},
	{
		Title:       "Valet Parking",
		Description: "Our professional drivers park your vehicle for you. Available at selected locations.",
		Display:     "₹100/service",
		BasePrice:   100,
		ServiceType: models.ServiceTypeValet,
		Bookable:    true,
	},
	{
		Title:       "Car Wash",
		Description: "Get your car cleaned while it's parked. Available at premium parking locations.",
		Display:     "₹250/service",
		BasePrice:   250,
		ServiceType: models.ServiceTypeAdditional,
		Bookable:    true,
	},
	{
		Title:       "EV Charging",
		Description: "Electric vehicle charging stations available at select parking locations.",
		Display:     "₹80/hr",
		BasePrice:   80,
		ServiceType: models.ServiceTypeCharging,
		Bookable:    true,
	},
	{
		Title:       "Vehicle Insurance",
		Description: "Optional insurance for your vehicle during parking duration.",
		Display:     "₹50/day",
		BasePrice:   50,
		ServiceType: models.ServiceTypeInsurance,
		Bookable:    true,
	},
}

// SpotSelection — read-only зависимость от сервиса парковок.
type SpotSelection interface {
	SelectedSpot() *models.ParkingSpot
}

// AuthState — read-only зависимость от сервиса аутентификации.
type AuthState interface {
	IsAuthenticated() bool
}

// BookingService собирает детали бронирования из выбранной парковки,
// формы и выбранной дополнительной услуги. Готовая запись сохраняется
// в хранилище для шага оплаты.
type BookingService struct {
	store kvstore.Store
	spots SpotSelection
	auth  AuthState
	log   *slog.Logger
}

// NewBookingService создает новый экземпляр BookingService.
func NewBookingService(store kvstore.Store, spots SpotSelection, auth AuthState, log *slog.Logger) *BookingService {
	return &BookingService{
		store: store,
		spots: spots,
		auth:  auth,
		log:   log,
	}
}

// Catalog возвращает статический каталог услуг.
func (s *BookingService) Catalog() []CatalogEntry {
	return catalog
}

// SelectService выбирает услугу из каталога по названию и сохраняет
// выбор в хранилище. Без активной сессии возвращает ErrLoginRequired,
// для неизвестной или недоступной услуги — ErrUnknownService.
func (s *BookingService) SelectService(ctx context.Context, serviceName string) (*models.ServiceOption, error) {
	const op = "services.booking.SelectService"

	if !s.auth.IsAuthenticated() {
		return nil, ErrLoginRequired
	}

	var entry *CatalogEntry
	for i := range catalog {
		if catalog[i].Title == serviceName && catalog[i].Bookable {
			entry = &catalog[i]
			break
		}
	}
	if entry == nil {
		return nil, ErrUnknownService
	}

	option := models.ServiceOption{
		ServiceName: entry.Title,
		Price:       entry.BasePrice,
		ServiceType: entry.ServiceType,
	}
	if err := s.store.Set(ctx, kvstore.KeySelectedService, option); err != nil {
		s.log.Error("failed to persist selected service", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("selected service", slog.String("service", option.ServiceName))
	return &option, nil
}

// ClearSelectedService сбрасывает выбранную услугу.
func (s *BookingService) ClearSelectedService(ctx context.Context) error {
	return s.store.Delete(ctx, kvstore.KeySelectedService)
}

// SelectedService возвращает выбранную услугу или nil.
func (s *BookingService) SelectedService(ctx context.Context) (*models.ServiceOption, error) {
	var option models.ServiceOption
	found, err := s.store.Get(ctx, kvstore.KeySelectedService, &option)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &option, nil
}

// Create собирает бронирование для выбранной парковки: проверяет
// обязательные поля, считает время окончания и итоговую цену с учётом
// выбранной услуги и сохраняет запись для шага оплаты. Прежняя
// несохранённая запись перезаписывается.
func (s *BookingService) Create(ctx context.Context, booking models.DummyBooking) (*models.BookingDetails, error) {
	const op = "services.booking.Create"

	spot := s.spots.SelectedSpot()
	if spot == nil {
		return nil, ErrNoSpotSelected
	}
	if booking.Date == "" || booking.StartTime == "" || booking.Duration <= 0 || booking.VehicleNumber == "" {
		return nil, ErrMissingFields
	}

	addon, err := s.SelectedService(ctx)
	if err != nil {
		s.log.Warn("failed to read selected service", sl.Err(err))
	}

	services := []string{}
	if addon != nil {
		services = append(services, addon.ServiceName)
	}

	details := models.BookingDetails{
		ID:            uuid.NewString(),
		ParkingID:     spot.ID,
		ParkingName:   spot.Name,
		Date:          booking.Date,
		StartTime:     booking.StartTime,
		EndTime:       EndTime(booking.StartTime, booking.Duration),
		Duration:      booking.Duration,
		VehicleType:   models.VehicleType(booking.VehicleType),
		VehicleNumber: booking.VehicleNumber,
		Price:         pricing.Quote(spot.Price, booking.Duration, models.VehicleType(booking.VehicleType), addon),
		Services:      services,
	}

	if err := s.store.Set(ctx, kvstore.KeyBookingDetails, details); err != nil {
		s.log.Error("failed to persist booking details", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bookingsCreated.Inc()
	s.log.Info("assembled booking",
		slog.String("op", op),
		slog.String("booking_id", details.ID),
		slog.String("parking", details.ParkingName),
		slog.Int("price", details.Price))
	return &details, nil
}

// EndTime считает время окончания в формате HH:MM из времени начала
// и длительности в часах. Дробная часть превращается в минуты,
// переполнение минут переносится в часы, часы берутся по модулю 24.
func EndTime(start string, hours float64) string {
	parts := strings.SplitN(start, ":", 2)
	startHour, _ := strconv.Atoi(parts[0])
	startMinute := 0
	if len(parts) == 2 {
		startMinute, _ = strconv.Atoi(parts[1])
	}

	endHour := startHour + int(math.Floor(hours))
	endMinute := float64(startMinute) + math.Mod(hours, 1)*60
	if endMinute >= 60 {
		endHour += int(endMinute) / 60
	}
	endHour = endHour % 24

	return fmt.Sprintf("%02d:%02d", endHour, int(math.Mod(endMinute, 60)))
}
