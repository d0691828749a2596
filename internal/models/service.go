package models

// Типы дополнительных услуг. От типа зависит формула расчёта цены:
// услуги типа "parking" заменяют базовый тариф, "charging" добавляется
// за каждый час, остальные — разовая фиксированная плата.
const (
	ServiceTypeParking    = "parking"
	ServiceTypeCharging   = "charging"
	ServiceTypeValet      = "valet"
	ServiceTypeAdditional = "additional"
	ServiceTypeInsurance  = "insurance"
)

// ServiceOption описывает дополнительную услугу, выбранную к бронированию.
type ServiceOption struct {
	ServiceName string  `json:"serviceName"` // Название услуги
	Price       float64 `json:"price"`       // Цена услуги
	ServiceType string  `json:"serviceType"` // Тип (см. константы выше)
}
