// Package services содержит логику бизнес-уровня для работы с сессией
// пользователя: вход, регистрацию, выход и восстановление сессии
// из долговременного хранилища.
//
// Проверка учётных данных не выполняется: успешный вход фабрикует
// сессию, привязанную к переданному email. Единственное требование —
// непустые поля.
package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/easyparkpay/easypark/internal/kvstore"
	"github.com/easyparkpay/easypark/internal/lib/password"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
)

// ErrMissingFields возвращается, когда обязательные поля пусты.
var ErrMissingFields = errors.New("all fields are required")

// Данные фабрикуемой сессии при входе без регистрации.
const (
	defaultName          = "User"
	defaultPhone         = "9876543210"
	defaultVehicleNumber = "AP 12 AB 1234"
)

// sessionRecord — запись сессии в хранилище. Хэш пароля заполняется
// только при регистрации и при входе не сверяется.
type sessionRecord struct {
	models.User
	PasswordHash string `json:"password_hash,omitempty"`
}

// AuthService владеет состоянием сессии и уведомляет подписчиков
// о переходах состояния аутентификации.
type AuthService struct {
	store kvstore.Store
	log   *slog.Logger

	mu        sync.RWMutex
	user      *models.User
	listeners []func(authenticated bool)
}

// NewAuthService создает сервис и синхронно восстанавливает сессию
// из хранилища, если запись существует. Повреждённая запись
// трактуется как отсутствующая.
func NewAuthService(ctx context.Context, store kvstore.Store, log *slog.Logger) *AuthService {
	s := &AuthService{
		store: store,
		log:   log,
	}

	var record sessionRecord
	found, err := store.Get(ctx, kvstore.KeyUser, &record)
	if err != nil {
		log.Warn("failed to restore session, treating as absent", sl.Err(err))
		return s
	}
	if found {
		user := record.User
		s.user = &user
		log.Info("session restored", slog.String("email", user.Email))
	}
	return s
}

// OnChange регистрирует подписчика на переходы состояния аутентификации.
// Подписчик вызывается после каждого входа, регистрации и выхода.
func (s *AuthService) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Login выполняет вход: оба поля должны быть непустыми, иначе
// возвращается ErrMissingFields. Учётные данные не проверяются —
// сессия фабрикуется и привязывается к переданному email.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*models.User, error) {
	const op = "services.auth.Login"
	if email == "" || pass == "" {
		return nil, ErrMissingFields
	}

	user := models.User{
		ID:            uuid.NewString(),
		Name:          defaultName,
		Email:         email,
		Phone:         defaultPhone,
		VehicleNumber: defaultVehicleNumber,
	}

	if err := s.store.Set(ctx, kvstore.KeyUser, sessionRecord{User: user}); err != nil {
		s.log.Error("failed to persist session", sl.Err(err))
		return nil, err
	}

	s.setUser(&user)
	s.log.Info("login successful", slog.String("op", op), slog.String("email", email))
	return &user, nil
}

// Signup выполняет регистрацию: все пять полей должны быть непустыми.
// Уникальность и формат не проверяются. Пароль хэшируется перед
// сохранением записи и при последующих входах не сверяется.
func (s *AuthService) Signup(ctx context.Context, name, email, phone, vehicleNumber, pass string) (*models.User, error) {
	const op = "services.auth.Signup"
	if name == "" || email == "" || phone == "" || vehicleNumber == "" || pass == "" {
		return nil, ErrMissingFields
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		Phone:         phone,
		VehicleNumber: vehicleNumber,
	}

	if err := s.store.Set(ctx, kvstore.KeyUser, sessionRecord{User: user, PasswordHash: hash}); err != nil {
		s.log.Error("failed to persist session", sl.Err(err))
		return nil, err
	}

	s.setUser(&user)
	s.log.Info("signup successful", slog.String("op", op), slog.String("email", email))
	return &user, nil
}

// Logout безусловно очищает состояние сессии и запись в хранилище.
func (s *AuthService) Logout(ctx context.Context) {
	if err := s.store.Delete(ctx, kvstore.KeyUser); err != nil {
		s.log.Warn("failed to delete persisted session", sl.Err(err))
	}
	s.setUser(nil)
	s.log.Info("logged out")
}

// CurrentUser возвращает пользователя активной сессии или nil.
func (s *AuthService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated сообщает, есть ли активная сессия.
func (s *AuthService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// setUser обновляет состояние и уведомляет подписчиков.
func (s *AuthService) setUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	listeners := make([]func(bool), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(user != nil)
	}
}
