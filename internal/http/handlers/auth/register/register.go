// Package register реализует HTTP-обработчик регистрации новых пользователей.
//
// Handler декодирует JSON-запрос с данными регистрации, валидирует поля,
// делегирует создание сессии сервису аутентификации и возвращает сессионный
// JWT с данными созданного пользователя.
package register

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
	services "github.com/easyparkpay/easypark/internal/services/auth"
)

// Request — структура входных данных для регистрации.
type Request struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	VehicleNumber string `json:"vehicle_number" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	maker    TokenMaker
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Signup(ctx context.Context, name, email, phone, vehicleNumber, pass string) (*models.User, error)
}

// TokenMaker описывает интерфейс генерации сессионного токена.
type TokenMaker interface {
	GenerateToken(email, userUID string) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, maker TokenMaker) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		maker:    maker,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Имитирует регистрацию: создает сессию из заполненной формы. Возвращает сессионный JWT и данные пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные регистрации"
// @Success 200 {object} map[string]any "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или незаполненные поля"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, err := h.service.Signup(r.Context(), req.Name, req.Email, req.Phone, req.VehicleNumber, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("all fields are required"))
			return
		}
		log.Error("signup failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign up"))
		return
	}

	token, err := h.maker.GenerateToken(user.Email, user.ID)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sign up"))
		return
	}

	log.Info("signup success", slog.String("email", user.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
		"user":  user,
	}))
}
