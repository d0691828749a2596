package repository

import (
	"context"
	"fmt"

	"github.com/easyparkpay/easypark/internal/models"
)

// ListSpots возвращает каталог парковок в порядке идентификаторов.
func (s *Storage) ListSpots(ctx context.Context) ([]models.ParkingSpot, error) {
	const op = "storage.ListSpots"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, lat, lng, address, price_per_hour, available, total, rating
			  FROM parking_spots
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ParkingSpot
	for rows.Next() {
		var item models.ParkingSpot
		if err := rows.Scan(&item.ID, &item.Name, &item.Location.Lat, &item.Location.Lng,
			&item.Address, &item.Price, &item.Available, &item.Total, &item.Rating); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateAvailability изменяет количество свободных мест на парковке
// и возвращает количество изменённых строк. Значение ограничено
// диапазоном [0, total] на уровне запроса.
func (s *Storage) UpdateAvailability(ctx context.Context, id string, available int) (int, error) {
	const op = "storage.UpdateAvailability"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE parking_spots
			  SET available = LEAST(GREATEST($2, 0), total)
			  WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id, available)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
