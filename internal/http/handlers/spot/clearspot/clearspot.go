// Package clearspot реализует HTTP-обработчик сброса выбранной парковки.
package clearspot

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/easyparkpay/easypark/internal/http/response"
)

// Handler обрабатывает HTTP-запросы сброса выбранной парковки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики сброса выбора.
type Service interface {
	ClearSelectedSpot()
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сбросить выбранную парковку
// @Description Сбрасывает выбранную парковку. Сброс несуществующего выбора не является ошибкой.
// @Tags Spots
// @Produce  json
// @Success 200 {object} response.Response "Выбор сброшен"
// @Router /spots/select [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.spot.clearspot"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.service.ClearSelectedSpot()

	log.Info("spot selection cleared")
	render.JSON(w, r, response.OK())
}
