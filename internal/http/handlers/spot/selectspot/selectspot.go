// Package selectspot реализует HTTP-обработчик выбора парковки.
package selectspot

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/easyparkpay/easypark/internal/http/response"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
)

// Request — структура входных данных для выбора парковки.
type Request struct {
	SpotID string `json:"spot_id" validate:"required"`
}

// Handler обрабатывает HTTP-запросы выбора парковки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выбора парковки.
type Service interface {
	SelectSpot(id string) *models.ParkingSpot
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
// @Summary Выбрать парковку
// @Description Выбирает парковку по идентификатору из загруженного каталога для последующего бронирования.
// @Tags Spots
// @Accept  json
// @Produce  json
// @Param request body Request true "Идентификатор парковки"
// @Success 200 {object} map[string]any "Выбранная парковка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Парковка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /spots/select [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.spot.selectspot"

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

	spot := h.service.SelectSpot(req.SpotID)
	if spot == nil {
		log.Error("spot not found", slog.String("spot_id", req.SpotID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("parking spot not found"))
		return
	}

	log.Info("spot selected", slog.String("spot_id", spot.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"spot": spot,
	}))
}
