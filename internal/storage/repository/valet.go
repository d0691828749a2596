package repository

import (
	"context"
	"fmt"

	"github.com/easyparkpay/easypark/internal/models"
)

// CreateApplication вставляет заявку валет-водителя и возвращает её ID.
func (s *Storage) CreateApplication(ctx context.Context, app models.ValetApplication) (string, error) {
	const op = "storage.CreateApplication"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO valet_applications (id, name, email, phone, address, driving_experience,
			      license_number, license_expiry, employment_type, work_hours, additional_info, submitted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`
	var newID string
	err := s.DB.QueryRowContext(ctx, query,
		app.ID, app.Name, app.Email, app.Phone, app.Address, app.DrivingExperience,
		app.LicenseNumber, app.LicenseExpiry, app.EmploymentType, app.WorkHours,
		app.AdditionalInfo, app.SubmittedAt).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListApplications возвращает заявки в порядке подачи.
func (s *Storage) ListApplications(ctx context.Context) ([]models.ValetApplication, error) {
	const op = "storage.ListApplications"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, phone, address, driving_experience, license_number,
			      license_expiry, employment_type, work_hours, additional_info, submitted_at
			  FROM valet_applications
			  ORDER BY submitted_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ValetApplication
	for rows.Next() {
		var item models.ValetApplication
		if err := rows.Scan(&item.ID, &item.Name, &item.Email, &item.Phone, &item.Address,
			&item.DrivingExperience, &item.LicenseNumber, &item.LicenseExpiry,
			&item.EmploymentType, &item.WorkHours, &item.AdditionalInfo, &item.SubmittedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
