// Package models содержит доменные структуры приложения: парковочные
// места, пользователей, планы подписки, бронирования и заявки,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "github.com/easyparkpay/easypark/internal/lib/geo"

// ParkingSpot представляет парковку из каталога.
// Поле Distance — производное, пересчитывается при смене позиции
// пользователя. Инвариант: 0 <= Available <= Total.
type ParkingSpot struct {
	ID        string       `json:"id"`       // Уникальный идентификатор
	Name      string       `json:"name"`     // Название парковки
	Location  geo.Location `json:"location"` // Координаты
	Address   string       `json:"address"`  // Адрес
	Distance  float64      `json:"distance"` // Расстояние до пользователя, км
	Price     float64      `json:"price"`    // Цена за час
	Available int          `json:"available"` // Свободные места
	Total     int          `json:"total"`     // Всего мест
	Rating    float64      `json:"rating"`    // Рейтинг [0, 5]
}
