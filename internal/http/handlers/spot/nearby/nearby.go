// Package nearby реализует HTTP-обработчик поиска ближайших парковок.
//
// Handler принимает координаты пользователя в query-параметрах lat и lng,
// при их отсутствии подставляет координаты по умолчанию (центр Хайдарабада),
// обновляет каталог через сервис парковок и возвращает список,
// отсортированный по расстоянию.
package nearby

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/easyparkpay/easypark/internal/http/response"
	"github.com/easyparkpay/easypark/internal/lib/geo"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
)

// Handler обрабатывает HTTP-запросы поиска парковок.
type Handler struct {
	log             *slog.Logger
	service         Service
	defaultLocation geo.Location // Используется, когда координаты не переданы
}

// Service описывает интерфейс бизнес-логики поиска парковок.
type Service interface {
	SetUserLocation(ctx context.Context, loc geo.Location) ([]models.ParkingSpot, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, defaultLocation geo.Location) *Handler {
	return &Handler{
		log:             log,
		service:         service,
		defaultLocation: defaultLocation,
	}
}

// ServeHTTP godoc
// @Summary Ближайшие парковки
// @Description Возвращает каталог парковок с расстоянием от позиции пользователя, отсортированный по возрастанию. Без координат используется позиция по умолчанию.
// @Tags Spots
// @Produce  json
// @Param lat query number false "Широта пользователя"
// @Param lng query number false "Долгота пользователя"
// @Success 200 {object} map[string]any "Список парковок"
// @Failure 400 {object} response.ErrorResponse "Некорректные координаты"
// @Failure 500 {object} response.ErrorResponse "Ошибка обновления каталога"
// @Router /spots [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.spot.nearby"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	loc := h.defaultLocation
	latStr, lngStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if latStr != "" || lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			log.Error("invalid coordinates", slog.String("lat", latStr), slog.String("lng", lngStr))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid coordinates"))
			return
		}
		loc = geo.Location{Lat: lat, Lng: lng}
	}

	spots, err := h.service.SetUserLocation(r.Context(), loc)
	if err != nil {
		log.Error("failed to refresh spots", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load parking spots"))
		return
	}

	log.Info("spots refreshed", slog.Int("count", len(spots)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"location": loc,
		"spots":    spots,
	}))
}
