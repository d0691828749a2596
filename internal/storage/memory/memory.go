// Package memory реализует хранилище каталога и заявок в памяти процесса.
// Используется как реализация по умолчанию, когда строка подключения
// к PostgreSQL не задана.
package memory

import (
	"context"
	"sync"

	"github.com/easyparkpay/easypark/internal/lib/geo"
	"github.com/easyparkpay/easypark/internal/models"
)

// Repository хранит каталог парковок и принятые заявки.
type Repository struct {
	mu           sync.RWMutex
	spots        []models.ParkingSpot
	applications []models.ValetApplication
}

// New создает репозиторий, заполненный стандартным каталогом парковок.
func New() *Repository {
	return &Repository{spots: SeedSpots()}
}

// SeedSpots возвращает стандартный каталог парковок Хайдарабада.
func SeedSpots() []models.ParkingSpot {
	return []models.ParkingSpot{
		{
			ID:        "p1",
			Name:      "Jubilee Hills Parking",
			Location:  geo.Location{Lat: 17.431, Lng: 78.409},
			Address:   "Road No. 10, Jubilee Hills, Hyderabad",
			Price:     50,
			Available: 15,
			Total:     30,
			Rating:    4.5,
		},
		{
			ID:        "p2",
			Name:      "Banjara Hills Parking",
			Location:  geo.Location{Lat: 17.416, Lng: 78.434},
			Address:   "Road No. 3, Banjara Hills, Hyderabad",
			Price:     40,
			Available: 8,
			Total:     20,
			Rating:    4.2,
		},
		{
			ID:        "p3",
			Name:      "HITEC City Parking",
			Location:  geo.Location{Lat: 17.445, Lng: 78.381},
			Address:   "HITEC City, Hyderabad",
			Price:     60,
			Available: 25,
			Total:     50,
			Rating:    4.7,
		},
		{
			ID:        "p4",
			Name:      "Gachibowli Parking",
			Location:  geo.Location{Lat: 17.441, Lng: 78.348},
			Address:   "Financial District, Gachibowli, Hyderabad",
			Price:     55,
			Available: 12,
			Total:     25,
			Rating:    4.0,
		},
		{
			ID:        "p5",
			Name:      "Begumpet Parking",
			Location:  geo.Location{Lat: 17.444, Lng: 78.466},
			Address:   "Begumpet, Hyderabad",
			Price:     35,
			Available: 5,
			Total:     15,
			Rating:    3.8,
		},
	}
}

// ListSpots возвращает копию каталога парковок.
func (r *Repository) ListSpots(_ context.Context) ([]models.ParkingSpot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.ParkingSpot, len(r.spots))
	copy(result, r.spots)
	return result, nil
}

// CreateApplication сохраняет заявку валет-водителя и возвращает её ID.
func (r *Repository) CreateApplication(_ context.Context, app models.ValetApplication) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications = append(r.applications, app)
	return app.ID, nil
}

// ListApplications возвращает копию списка принятых заявок.
func (r *Repository) ListApplications(_ context.Context) ([]models.ValetApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.ValetApplication, len(r.applications))
	copy(result, r.applications)
	return result, nil
}
