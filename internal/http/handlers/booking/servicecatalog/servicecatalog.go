// Package servicecatalog реализует HTTP-обработчик каталога услуг парковки.
package servicecatalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/easyparkpay/easypark/internal/http/response"
	services "github.com/easyparkpay/easypark/internal/services/booking"
)

// Handler обрабатывает HTTP-запросы каталога услуг.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс каталога услуг.
type Service interface {
	Catalog() []services.CatalogEntry
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог услуг
// @Description Возвращает статический каталог услуг парковки и дополнительных услуг.
// @Tags Bookings
// @Produce  json
// @Success 200 {object} map[string]any "Список услуг"
// @Router /services [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.booking.servicecatalog"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	catalog := h.service.Catalog()

	log.Info("services listed", slog.Int("count", len(catalog)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"services": catalog,
	}))
}
