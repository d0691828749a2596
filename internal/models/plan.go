package models

import "time"

// SubscriptionPlan описывает тарифный план из статического каталога.
// Каталог не изменяется во время работы приложения.
type SubscriptionPlan struct {
	ID       string   `json:"id"`       // Идентификатор плана
	Name     string   `json:"name"`     // Название
	Price    float64  `json:"price"`    // Стоимость за период
	Currency string   `json:"currency"` // Валюта
	Duration string   `json:"duration"` // Период ("monthly")
	Features []string `json:"features"` // Упорядоченный список возможностей
}

// ActiveSubscription представляет активную подписку пользователя.
// Состояние очищается, когда пользователь выходит из системы.
type ActiveSubscription struct {
	PlanID     string    `json:"plan_id"`
	ExpiryDate time.Time `json:"expiry_date"`
}
