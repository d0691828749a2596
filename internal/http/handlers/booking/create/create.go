// Package create реализует HTTP-обработчик оформления бронирования.
//
// Handler принимает JSON-запрос с данными формы бронирования, валидирует их,
// делегирует сборку деталей сервису бронирования и возвращает готовую запись
// с расчётной ценой и временем окончания.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/easyparkpay/easypark/internal/http/response"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
	services "github.com/easyparkpay/easypark/internal/services/booking"
)

// Handler обрабатывает HTTP-запросы оформления бронирования.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики бронирования.
type Service interface {
	Create(ctx context.Context, booking models.DummyBooking) (*models.BookingDetails, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформить бронирование
// @Description Собирает бронирование для выбранной парковки: считает время окончания и цену с учётом выбранной услуги, сохраняет запись для шага оплаты.
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Param request body models.DummyBooking true "Данные бронирования"
// @Success 200 {object} map[string]any "Детали бронирования"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или незаполненные поля"
// @Failure 409 {object} response.ErrorResponse "Парковка не выбрана"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /bookings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyBooking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	details, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoSpotSelected):
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("please select a parking location"))
		case errors.Is(err, services.ErrMissingFields):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("please fill in all fields"))
		default:
			log.Error("failed to create booking", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create booking"))
		}
		return
	}

	log.Info("booking created", slog.String("booking_id", details.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"booking": details,
	}))
}
