// Package selectservice реализует HTTP-обработчик выбора дополнительной услуги.
package selectservice

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

// Request — структура входных данных для выбора услуги.
type Request struct {
	ServiceName string `json:"service_name" validate:"required"`
}

// Handler обрабатывает HTTP-запросы выбора услуги.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выбора услуги.
type Service interface {
	SelectService(ctx context.Context, serviceName string) (*models.ServiceOption, error)
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
// @Summary Выбрать услугу
// @Description Выбирает дополнительную услугу из каталога для прикрепления к бронированию.
// @Tags Bookings
// @Accept  json
// @Produce  json
// @Param request body Request true "Название услуги"
// @Success 200 {object} map[string]any "Выбранная услуга"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 404 {object} response.ErrorResponse "Неизвестная услуга"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /services/select [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.selectservice"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	option, err := h.service.SelectService(r.Context(), req.ServiceName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLoginRequired):
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("please log in to book services"))
		case errors.Is(err, services.ErrUnknownService):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("unknown service"))
		default:
			log.Error("failed to select service", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not select service"))
		}
		return
	}

	log.Info("service selected", slog.String("service", option.ServiceName))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"service": option,
	}))
}
