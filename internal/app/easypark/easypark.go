// Package easypark собирает приложение: хранилища, сервисы, маршруты
// и HTTP-сервер с корректным завершением.
package easypark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/easyparkpay/easypark/internal/cache"
	"github.com/easyparkpay/easypark/internal/config"
	"github.com/easyparkpay/easypark/internal/kvstore"
	"github.com/easyparkpay/easypark/internal/lib/geo"
	"github.com/easyparkpay/easypark/internal/lib/jwt"
	"github.com/easyparkpay/easypark/internal/lib/rabbitmq"
	"github.com/easyparkpay/easypark/internal/migrations"
	authservice "github.com/easyparkpay/easypark/internal/services/auth"
	bookingservice "github.com/easyparkpay/easypark/internal/services/booking"
	locationservice "github.com/easyparkpay/easypark/internal/services/location"
	paymentservice "github.com/easyparkpay/easypark/internal/services/payment"
	subscriptionservice "github.com/easyparkpay/easypark/internal/services/subscription"
	valetservice "github.com/easyparkpay/easypark/internal/services/valet"
	"github.com/easyparkpay/easypark/internal/storage/memory"
	"github.com/easyparkpay/easypark/internal/storage/repository"
)

// App представляет собранное приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage // nil при встроенном каталоге
	conn   *amqp.Connection    // nil при отключённом брокере
	ch     *amqp.Channel
}

// New создает приложение из конфигурации: выбирает реализацию каталога
// и хранилища, подключается к брокеру уведомлений, собирает сервисы
// с их зависимостями и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var (
		spotRepo locationservice.SpotRepository
		appRepo  valetservice.ApplicationRepository
		db       *repository.Storage
	)
	if cfg.StorageConnectionString == "" {
		mem := memory.New()
		spotRepo, appRepo = mem, mem
		logger.Info("using in-memory parking catalog")
	} else {
		var err error
		db, err = repository.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, "./migrations"); err != nil {
			return nil, err
		}
		spotRepo, appRepo = db, db
	}

	var (
		store     kvstore.Store
		spotCache locationservice.Cache
	)
	if cfg.AddressRedis == "" {
		store = kvstore.NewMemory()
		logger.Info("using in-memory key-value store")
	} else {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, fmt.Errorf("cache not initialized: %w", err)
		}
		store = kvstore.NewRedis(cacheRedis.Db)
		spotCache = cacheRedis
	}

	var (
		publisher paymentservice.Publisher = paymentservice.NopPublisher{}
		conn      *amqp.Connection
		ch        *amqp.Channel
	)
	if cfg.AddressRabbit != "" {
		var err error
		conn, err = rabbitmq.Connect(cfg.AddressRabbit, cfg.ConnRetries, cfg.ConnDelay)
		if err != nil {
			return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
		}
		ch, err = rabbitmq.SetupChannel(conn, rabbitmq.GetBookingQueues())
		if err != nil {
			closeResources(nil, conn, logger)
			return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
		}
		publisher = rabbitmq.NewPublisher(ch)
	}

	authService := authservice.NewAuthService(ctx, store, logger)
	subscriptionService := subscriptionservice.NewSubscriptionService(ctx, store, authService, logger)
	authService.OnChange(func(authenticated bool) {
		subscriptionService.HandleAuthChange(context.Background(), authenticated)
	})

	locationService := locationservice.NewLocationService(spotRepo, spotCache, logger, cfg.RefreshDelay)
	bookingService := bookingservice.NewBookingService(store, locationService, authService, logger)
	paymentService := paymentservice.NewPaymentService(store, publisher, logger, cfg.ProcessingDelay)
	valetService := valetservice.NewValetService(appRepo, logger)

	maker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:         authService,
		Location:     locationService,
		Subscription: subscriptionService,
		Booking:      bookingService,
		Payment:      paymentService,
		Valet:        valetService,
	}, maker, geo.Location{Lat: cfg.DefaultLat, Lng: cfg.DefaultLng})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", "error", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		closeResources(a.ch, a.conn, a.logger)
		if a.db != nil {
			if closeErr := a.db.DB.Close(); closeErr != nil {
				a.logger.Error("failed to close database", "error", closeErr)
			}
		}
		return err
	}
}
