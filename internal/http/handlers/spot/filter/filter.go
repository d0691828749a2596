// Package filter реализует HTTP-обработчик фильтрации каталога парковок.
//
// Handler принимает JSON-запрос с необязательными границами по цене,
// расстоянию и рейтингу и возвращает подмножество загруженного каталога,
// удовлетворяющее всем заданным границам.
package filter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/easyparkpay/easypark/internal/http/response"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
)

// Handler обрабатывает HTTP-запросы фильтрации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики фильтрации.
type Service interface {
	ApplyFilters(filter models.SpotFilter) []models.ParkingSpot
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Фильтрация парковок
// @Description Применяет границы по цене, расстоянию и рейтингу к загруженному каталогу. Отсутствующая граница означает отсутствие ограничения.
// @Tags Spots
// @Accept  json
// @Produce  json
// @Param request body models.SpotFilter true "Границы фильтрации"
// @Success 200 {object} map[string]any "Отфильтрованный список"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Router /spots/filter [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.spot.filter"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SpotFilter
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	spots := h.service.ApplyFilters(req)

	log.Info("filters applied", slog.Int("count", len(spots)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"spots": spots,
	}))
}
