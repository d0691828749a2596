// Package register реализует HTTP-обработчик приёма заявок валет-водителей.
package register

import (
	"context"
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

// Handler обрабатывает HTTP-запросы приёма заявок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приёма заявок.
type Service interface {
	Register(ctx context.Context, form models.DummyValetApplication) (*models.ValetApplication, error)
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
// @Summary Подать заявку валет-водителя
// @Description Принимает заявку водителя на работу валет-парковщиком и возвращает её идентификатор.
// @Tags Valet
// @Accept  json
// @Produce  json
// @Param request body models.DummyValetApplication true "Данные заявки"
// @Success 200 {object} map[string]any "Принятая заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сохранения заявки"
// @Router /valet/applications [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.valet.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyValetApplication
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

	app, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Error("failed to submit application", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not submit application"))
		return
	}

	log.Info("application submitted", slog.String("application_id", app.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"application_id": app.ID,
	}))
}
