// Package services содержит бизнес-логику поиска парковок: позицию
// пользователя, каталог с расстояниями, фильтрацию и выбор парковки.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/easyparkpay/easypark/internal/lib/geo"
	"github.com/easyparkpay/easypark/internal/lib/sl"
	"github.com/easyparkpay/easypark/internal/models"
)

// SpotRepository определяет методы для чтения каталога парковок.
type SpotRepository interface {
	// ListSpots возвращает каталог парковок.
	ListSpots(ctx context.Context) ([]models.ParkingSpot, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// LocationService владеет позицией пользователя, загруженным каталогом
// с вычисленными расстояниями, отфильтрованным списком и выбранной
// парковкой. Расстояния пересчитываются при каждом обновлении каталога.
type LocationService struct {
	repo         SpotRepository
	cache        Cache // nil, если кеш не сконфигурирован
	log          *slog.Logger
	refreshDelay time.Duration

	mu           sync.RWMutex
	userLocation *geo.Location
	spots        []models.ParkingSpot
	filtered     []models.ParkingSpot
	selected     *models.ParkingSpot
}

// NewLocationService создает новый экземпляр LocationService.
func NewLocationService(repo SpotRepository, cache Cache, log *slog.Logger, refreshDelay time.Duration) *LocationService {
	return &LocationService{
		repo:         repo,
		cache:        cache,
		log:          log,
		refreshDelay: refreshDelay,
	}
}

// SetUserLocation сохраняет позицию пользователя и обновляет каталог.
func (s *LocationService) SetUserLocation(ctx context.Context, loc geo.Location) ([]models.ParkingSpot, error) {
	s.mu.Lock()
	s.userLocation = &loc
	s.mu.Unlock()
	return s.NearbySpots(ctx)
}

// UserLocation возвращает текущую позицию пользователя или nil.
func (s *LocationService) UserLocation() *geo.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userLocation == nil {
		return nil
	}
	loc := *s.userLocation
	return &loc
}

// NearbySpots обновляет каталог парковок: вычисляет расстояние до каждой
// записи относительно позиции пользователя и сортирует по возрастанию.
// Если позиция не задана, каталог возвращается в исходном порядке
// с нулевыми расстояниями. Обновление имитирует сетевую задержку
// и прерывается по контексту.
func (s *LocationService) NearbySpots(ctx context.Context) ([]models.ParkingSpot, error) {
	const op = "services.location.NearbySpots"

	if s.refreshDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(s.refreshDelay):
		}
	}

	loc := s.UserLocation()

	var cacheKey string
	if loc != nil && s.cache != nil {
		cacheKey = fmt.Sprintf("spots:%.4f:%.4f", loc.Lat, loc.Lng)
		var cached []models.ParkingSpot
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read spots from cache", slog.String("key", cacheKey), sl.Err(err))
		}
		if found {
			s.publish(cached)
			return cached, nil
		}
	}

	catalog, err := s.repo.ListSpots(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if loc != nil {
		for i := range catalog {
			catalog[i].Distance = geo.Distance(*loc, catalog[i].Location)
		}
		sort.SliceStable(catalog, func(i, j int) bool {
			return catalog[i].Distance < catalog[j].Distance
		})
		if s.cache != nil {
			if err := s.cache.Set(ctx, cacheKey, catalog, 5*time.Minute); err != nil {
				s.log.Warn("failed to cache spots", slog.String("key", cacheKey), sl.Err(err))
			}
		}
	}

	s.publish(catalog)
	s.log.Info("refreshed parking spots", slog.Int("count", len(catalog)))
	return catalog, nil
}

// publish сохраняет обновлённый каталог: фильтры сбрасываются,
// отфильтрованный список снова совпадает с полным.
func (s *LocationService) publish(spots []models.ParkingSpot) {
	s.mu.Lock()
	s.spots = spots
	s.filtered = spots
	s.mu.Unlock()
}

// Spots возвращает копию полного загруженного каталога.
func (s *LocationService) Spots() []models.ParkingSpot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.ParkingSpot, len(s.spots))
	copy(result, s.spots)
	return result
}

// FilteredSpots возвращает копию отфильтрованного списка.
func (s *LocationService) FilteredSpots() []models.ParkingSpot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.ParkingSpot, len(s.filtered))
	copy(result, s.filtered)
	return result
}

// ApplyFilters строит подмножество загруженного каталога, удовлетворяющее
// всем заданным границам. Границы независимы, nil означает отсутствие
// ограничения; исходный относительный порядок сохраняется. Граница по
// расстоянию применяется только при известной позиции пользователя.
func (s *LocationService) ApplyFilters(filter models.SpotFilter) []models.ParkingSpot {
	s.mu.Lock()
	defer s.mu.Unlock()

	hasLocation := s.userLocation != nil
	filtered := make([]models.ParkingSpot, 0, len(s.spots))
	for _, spot := range s.spots {
		if filter.PriceMax != nil && spot.Price > *filter.PriceMax {
			continue
		}
		if filter.DistanceMax != nil && hasLocation && spot.Distance > *filter.DistanceMax {
			continue
		}
		if filter.RatingMin != nil && spot.Rating < *filter.RatingMin {
			continue
		}
		filtered = append(filtered, spot)
	}

	s.filtered = filtered
	result := make([]models.ParkingSpot, len(filtered))
	copy(result, filtered)
	return result
}

// SelectSpot выбирает парковку по идентификатору из загруженного каталога.
// Неизвестный идентификатор не меняет состояние и возвращает nil.
func (s *LocationService) SelectSpot(id string) *models.ParkingSpot {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.spots {
		if s.spots[i].ID == id {
			spot := s.spots[i]
			s.selected = &spot
			return &spot
		}
	}
	return nil
}

// ClearSelectedSpot сбрасывает выбранную парковку.
func (s *LocationService) ClearSelectedSpot() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// SelectedSpot возвращает выбранную парковку или nil.
func (s *LocationService) SelectedSpot() *models.ParkingSpot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return nil
	}
	spot := *s.selected
	return &spot
}
