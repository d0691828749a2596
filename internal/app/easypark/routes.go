// Package easypark предоставляет маршруты для основного приложения.
package easypark

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/easyparkpay/easypark/internal/http/handlers/auth/login"
	"github.com/easyparkpay/easypark/internal/http/handlers/auth/logout"
	authregister "github.com/easyparkpay/easypark/internal/http/handlers/auth/register"
	"github.com/easyparkpay/easypark/internal/http/handlers/booking/clearservice"
	bookingcreate "github.com/easyparkpay/easypark/internal/http/handlers/booking/create"
	"github.com/easyparkpay/easypark/internal/http/handlers/booking/selectservice"
	"github.com/easyparkpay/easypark/internal/http/handlers/booking/servicecatalog"
	"github.com/easyparkpay/easypark/internal/http/handlers/health"
	"github.com/easyparkpay/easypark/internal/http/handlers/payment/pay"
	"github.com/easyparkpay/easypark/internal/http/handlers/spot/clearspot"
	"github.com/easyparkpay/easypark/internal/http/handlers/spot/filter"
	"github.com/easyparkpay/easypark/internal/http/handlers/spot/nearby"
	"github.com/easyparkpay/easypark/internal/http/handlers/spot/selectspot"
	"github.com/easyparkpay/easypark/internal/http/handlers/subscription/active"
	"github.com/easyparkpay/easypark/internal/http/handlers/subscription/plans"
	"github.com/easyparkpay/easypark/internal/http/handlers/subscription/subscribe"
	valetregister "github.com/easyparkpay/easypark/internal/http/handlers/valet/register"
	"github.com/easyparkpay/easypark/internal/http/middlewarectx"
	"github.com/easyparkpay/easypark/internal/lib/geo"
	"github.com/easyparkpay/easypark/internal/lib/jwt"
	authservice "github.com/easyparkpay/easypark/internal/services/auth"
	bookingservice "github.com/easyparkpay/easypark/internal/services/booking"
	locationservice "github.com/easyparkpay/easypark/internal/services/location"
	paymentservice "github.com/easyparkpay/easypark/internal/services/payment"
	subscriptionservice "github.com/easyparkpay/easypark/internal/services/subscription"
	valetservice "github.com/easyparkpay/easypark/internal/services/valet"
)

// Services группирует сервисы приложения для регистрации маршрутов.
type Services struct {
	Auth         *authservice.AuthService
	Location     *locationservice.LocationService
	Subscription *subscriptionservice.SubscriptionService
	Booking      *bookingservice.BookingService
	Payment      *paymentservice.PaymentService
	Valet        *valetservice.ValetService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, maker *jwt.MakerImpl, defaultLocation geo.Location) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", authregister.New(logger, s.Auth, maker).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth, maker).ServeHTTP)

		r.Get("/spots", nearby.New(logger, s.Location, defaultLocation).ServeHTTP)
		r.Post("/spots/filter", filter.New(logger, s.Location).ServeHTTP)
		r.Post("/spots/select", selectspot.New(logger, s.Location).ServeHTTP)
		r.Delete("/spots/select", clearspot.New(logger, s.Location).ServeHTTP)

		r.Get("/services", servicecatalog.New(logger, s.Booking).ServeHTTP)
		r.Get("/subscriptions/plans", plans.New(logger, s.Subscription).ServeHTTP)

		r.Post("/valet/applications", valetregister.New(logger, s.Valet).ServeHTTP)

		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/auth/logout", logout.New(logger, s.Auth).ServeHTTP)
			r.Post("/subscriptions", subscribe.New(logger, s.Subscription).ServeHTTP)
			r.Get("/subscriptions/active", active.New(logger, s.Subscription).ServeHTTP)
			r.Post("/services/select", selectservice.New(logger, s.Booking).ServeHTTP)
			r.Delete("/services/select", clearservice.New(logger, s.Booking).ServeHTTP)
			r.Post("/bookings", bookingcreate.New(logger, s.Booking).ServeHTTP)
			r.Post("/payments", pay.New(logger, s.Payment).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
