// Package active реализует HTTP-обработчик чтения активной подписки.
package active

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/easyparkpay/easypark/internal/http/response"
	"github.com/easyparkpay/easypark/internal/lib/month"
	"github.com/easyparkpay/easypark/internal/models"
)

// Handler обрабатывает HTTP-запросы чтения активной подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения активной подписки.
type Service interface {
	Active() (*models.SubscriptionPlan, *time.Time)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Активная подписка
// @Description Возвращает активный план, срок действия и число оставшихся дней. Без активной подписки возвращает пустой ответ.
// @Tags Subscriptions
// @Produce  json
// @Success 200 {object} map[string]any "Активная подписка или пустой ответ"
// @Router /subscriptions/active [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.active"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plan, expiry := h.service.Active()
	if plan == nil {
		log.Info("no active subscription")
		render.JSON(w, r, response.OK())
		return
	}

	data := map[string]any{
		"plan": plan,
	}
	if expiry != nil {
		data["expiry_date"] = expiry
		data["days_left"] = month.DaysLeft(*expiry, time.Now())
	}

	log.Info("active subscription read", slog.String("plan_id", plan.ID))
	render.JSON(w, r, response.OKWithData(data))
}
