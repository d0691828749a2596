// Package services содержит бизнес-логику приёма заявок водителей
// на работу валет-парковщиком.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/easyparkpay/easypark/internal/models"
)

// ApplicationRepository определяет методы для хранения заявок.
type ApplicationRepository interface {
	// CreateApplication сохраняет заявку и возвращает её ID.
	CreateApplication(ctx context.Context, app models.ValetApplication) (string, error)
	// ListApplications возвращает заявки в порядке подачи.
	ListApplications(ctx context.Context) ([]models.ValetApplication, error)
}

// ValetService принимает заявки водителей. Валидация полей формы
// выполняется на уровне обработчика.
type ValetService struct {
	repo ApplicationRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewValetService создает новый экземпляр ValetService.
func NewValetService(repo ApplicationRepository, log *slog.Logger) *ValetService {
	return &ValetService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Register принимает заявку: присваивает идентификатор, фиксирует
// момент подачи и сохраняет её через репозиторий.
func (s *ValetService) Register(ctx context.Context, form models.DummyValetApplication) (*models.ValetApplication, error) {
	const op = "services.valet.Register"

	app := models.ValetApplication{
		ID:                uuid.NewString(),
		Name:              form.Name,
		Email:             form.Email,
		Phone:             form.Phone,
		Address:           form.Address,
		DrivingExperience: form.DrivingExperience,
		LicenseNumber:     form.LicenseNumber,
		LicenseExpiry:     form.LicenseExpiry,
		EmploymentType:    form.EmploymentType,
		WorkHours:         form.WorkHours,
		AdditionalInfo:    form.AdditionalInfo,
		SubmittedAt:       s.now(),
	}

	id, err := s.repo.CreateApplication(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.ID = id

	s.log.Info("valet application submitted",
		slog.String("op", op),
		slog.String("application_id", app.ID),
		slog.String("employment_type", app.EmploymentType))
	return &app, nil
}

// Applications возвращает принятые заявки в порядке подачи.
func (s *ValetService) Applications(ctx context.Context) ([]models.ValetApplication, error) {
	return s.repo.ListApplications(ctx)
}
