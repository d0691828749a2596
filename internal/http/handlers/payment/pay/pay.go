// Package pay реализует HTTP-обработчик оплаты бронирования.
//
// Handler принимает платёжные данные, делегирует проведение оплаты сервису
// и возвращает оплаченное бронирование. Ошибки проверки платёжных данных
// отображаются на коды 400 и 422, отсутствие бронирования — на 404.
package pay

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
	services "github.com/easyparkpay/easypark/internal/services/payment"
)

// Handler обрабатывает HTTP-запросы оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики оплаты.
type Service interface {
	Pay(ctx context.Context, payment models.DummyPayment) (*models.BookingDetails, error)
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
// @Summary Оплатить бронирование
// @Description Проводит имитацию оплаты ожидающего бронирования картой или через UPI. Успешная оплата удаляет запись бронирования.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body models.DummyPayment true "Платёжные данные"
// @Success 200 {object} map[string]any "Оплаченное бронирование"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или платёжные данные"
// @Failure 404 {object} response.ErrorResponse "Нет ожидающего бронирования"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.pay"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	details, err := h.service.Pay(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoBooking):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no booking details found"))
		case errors.Is(err, services.ErrMissingFields):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("please fill in all payment details"))
		case errors.Is(err, services.ErrInvalidCard):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid card details"))
		case errors.Is(err, services.ErrInvalidUPI):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid UPI id"))
		case errors.Is(err, services.ErrUnknownMethod):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown payment method"))
		default:
			log.Error("payment failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not process payment"))
		}
		return
	}

	log.Info("payment completed", slog.String("booking_id", details.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"booking": details,
	}))
}
