package models

// SpotFilter представляет параметры фильтрации каталога парковок.
// Каждая граница опциональна: nil означает отсутствие ограничения.
// Фильтры независимы и объединяются по И.
type SpotFilter struct {
	PriceMax    *float64 `json:"price_max,omitempty"`    // price <= PriceMax
	DistanceMax *float64 `json:"distance_max,omitempty"` // distance <= DistanceMax
	RatingMin   *float64 `json:"rating_min,omitempty"`   // rating >= RatingMin
}
