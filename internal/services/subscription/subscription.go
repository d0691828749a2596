// Package services содержит бизнес-логику управления подпиской:
// статический каталог планов, оформление подписки и реакцию
// на переходы состояния аутентификации.
package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/easyparkpay/easypark/internal/kvstore"
	"github.com/easyparkpay/easypark/internal/lib/month"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
)

// Ошибки оформления подписки.
var (
	// ErrLoginRequired возвращается при попытке подписаться без активной сессии.
	ErrLoginRequired = errors.New("login required")
	// ErrUnknownPlan возвращается для идентификатора вне каталога.
	ErrUnknownPlan = errors.New("unknown subscription plan")
)

// AuthState — read-only зависимость от сервиса аутентификации.
type AuthState interface {
	IsAuthenticated() bool
}

// plans — статический каталог тарифных планов.
var plans = []models.SubscriptionPlan{
	{
		ID:       "basic",
		Name:     "Basic",
		Price:    299,
		Currency: "₹",
		Duration: "monthly",
		Features: []string{
			"Find parking spots",
			"Basic navigation",
			"Email support",
		},
	},
	{
		ID:       "standard",
		Name:     "Standard",
		Price:    599,
		Currency: "₹",
		Duration: "monthly",
		Features: []string{
			"Find parking spots",
			"Advanced navigation",
			"Priority booking",
			"24/7 customer support",
			"Cashback on bookings",
		},
	},
	{
		ID:       "premium",
		Name:     "Premium",
		Price:    999,
		Currency: "₹",
		Duration: "monthly",
		Features: []string{
			"Find parking spots",
			"Advanced navigation",
			"Priority booking with discounts",
			"24/7 VIP customer support",
			"Monthly parking passes",
			"Free valet service (twice/month)",
			"Exclusive parking spots",
		},
	},
}

// SubscriptionService владеет состоянием активного плана. Оформление
// требует активной сессии; при выходе пользователя состояние очищается,
// сохранённые записи перечитываются при следующем входе.
//
// Повторная подписка на уже активный план сервисом не блокируется:
// это политика вызывающей стороны.
type SubscriptionService struct {
	store kvstore.Store
	auth  AuthState
	log   *slog.Logger
	now   func() time.Time

	mu     sync.RWMutex
	active *models.SubscriptionPlan
	expiry *time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
// Если сессия уже активна, сохранённые план и срок загружаются сразу.
func NewSubscriptionService(ctx context.Context, store kvstore.Store, auth AuthState, log *slog.Logger) *SubscriptionService {
	s := &SubscriptionService{
		store: store,
		auth:  auth,
		log:   log,
		now:   time.Now,
	}
	if auth.IsAuthenticated() {
		s.reload(ctx)
	}
	return s
}

// Plans возвращает статический каталог тарифных планов.
func (s *SubscriptionService) Plans() []models.SubscriptionPlan {
	return plans
}

// FindPlan возвращает план по идентификатору или nil.
func (s *SubscriptionService) FindPlan(planID string) *models.SubscriptionPlan {
	for i := range plans {
		if plans[i].ID == planID {
			plan := plans[i]
			return &plan
		}
	}
	return nil
}

// SubscribeToPlan оформляет подписку на план: без активной сессии
// возвращает ErrLoginRequired, для неизвестного плана — ErrUnknownPlan.
// Срок действия — ровно один календарный месяц с момента оформления;
// план и срок сохраняются в хранилище.
func (s *SubscriptionService) SubscribeToPlan(ctx context.Context, planID string) (*models.ActiveSubscription, error) {
	const op = "services.subscription.SubscribeToPlan"

	if !s.auth.IsAuthenticated() {
		return nil, ErrLoginRequired
	}

	plan := s.FindPlan(planID)
	if plan == nil {
		return nil, ErrUnknownPlan
	}

	expiry := month.Next(s.now())
	if err := s.store.Set(ctx, kvstore.KeyActivePlan, planID); err != nil {
		s.log.Error("failed to persist active plan", sl.Err(err))
		return nil, err
	}
	if err := s.store.Set(ctx, kvstore.KeyExpiryDate, expiry); err != nil {
		s.log.Error("failed to persist expiry date", sl.Err(err))
		return nil, err
	}

	s.mu.Lock()
	s.active = plan
	s.expiry = &expiry
	s.mu.Unlock()

	s.log.Info("subscribed to plan",
		slog.String("op", op),
		slog.String("plan", planID),
		slog.Time("expiry", expiry))
	return &models.ActiveSubscription{PlanID: planID, ExpiryDate: expiry}, nil
}

// Active возвращает активный план и срок действия или (nil, nil).
func (s *SubscriptionService) Active() (*models.SubscriptionPlan, *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return nil, nil
	}
	plan := *s.active
	var expiry *time.Time
	if s.expiry != nil {
		e := *s.expiry
		expiry = &e
	}
	return &plan, expiry
}

// HandleAuthChange реагирует на переход состояния аутентификации:
// выход очищает состояние (сохранённые записи остаются до следующего
// входа), вход перечитывает сохранённые план и срок.
func (s *SubscriptionService) HandleAuthChange(ctx context.Context, authenticated bool) {
	if !authenticated {
		s.mu.Lock()
		s.active = nil
		s.expiry = nil
		s.mu.Unlock()
		s.log.Info("cleared active subscription on logout")
		return
	}
	s.reload(ctx)
}

// reload загружает сохранённые план и срок действия из хранилища.
func (s *SubscriptionService) reload(ctx context.Context) {
	var planID string
	found, err := s.store.Get(ctx, kvstore.KeyActivePlan, &planID)
	if err != nil {
		s.log.Warn("failed to read stored plan", sl.Err(err))
		return
	}
	if !found {
		return
	}
	plan := s.FindPlan(planID)
	if plan == nil {
		s.log.Warn("stored plan is not in the catalog", slog.String("plan", planID))
		return
	}

	var expiry time.Time
	foundExpiry, err := s.store.Get(ctx, kvstore.KeyExpiryDate, &expiry)
	if err != nil {
		s.log.Warn("failed to read stored expiry date", sl.Err(err))
	}

	s.mu.Lock()
	s.active = plan
	if foundExpiry {
		s.expiry = &expiry
	}
	s.mu.Unlock()
	s.log.Info("restored active subscription", slog.String("plan", planID))
}
