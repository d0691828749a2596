// Package clearservice реализует HTTP-обработчик сброса выбранной услуги.
package clearservice

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/easyparkpay/easypark/internal/http/response"
	"github.com/easyparkpay/easypark/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы сброса выбранной услуги.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сброса выбора услуги.
type Service interface {
	ClearSelectedService(ctx context.Context) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сбросить выбранную услугу
// @Description Сбрасывает выбранную дополнительную услугу. Сброс несуществующего выбора не является ошибкой.
// @Tags Bookings
// @Produce  json
// @Success 200 {object} response.Response "Выбор сброшен"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /services/select [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.clearservice"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.ClearSelectedService(r.Context()); err != nil {
		log.Error("failed to clear selected service", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not clear selected service"))
		return
	}

	log.Info("service selection cleared")
	render.JSON(w, r, response.OK())
}
