// Package pricing реализует расчёт стоимости бронирования.
//
// Итоговая цена складывается из базового тарифа парковки, множителя
// типа транспортного средства и выбранной дополнительной услуги.
// Порядок применения правил для услуг фиксирован: "parking" заменяет
// базовый тариф, "charging" добавляется за каждый час, все остальные
// типы добавляются разовой суммой.
package pricing

import (
	"math"

	"github.com/easyparkpay/easypark/internal/models"
)

// Multiplier возвращает множитель цены для типа транспортного средства:
// car — 1.0, bike — 0.7, всё остальное — 1.5.
func Multiplier(vehicle models.VehicleType) float64 {
	switch vehicle {
	case models.VehicleCar:
		return 1.0
	case models.VehicleBike:
		return 0.7
	default:
		return 1.5
	}
}

// Quote считает итоговую стоимость бронирования, округлённую до целых
// единиц валюты. base — тариф парковки за час, hours — длительность
// (может быть дробной), addon — выбранная услуга или nil.
func Quote(base float64, hours float64, vehicle models.VehicleType, addon *models.ServiceOption) int {
	m := Multiplier(vehicle)
	total := base * hours * m

	if addon != nil {
		switch addon.ServiceType {
		case models.ServiceTypeParking:
			total = addon.Price * hours * m
		case models.ServiceTypeCharging:
			total += addon.Price * hours
		default:
			total += addon.Price
		}
	}

	return int(math.Round(total))
}
