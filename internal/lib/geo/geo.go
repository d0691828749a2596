// Package geo реализует географические вычисления для поиска парковок.
//
// Location — неизменяемое значение координат (WGS 84).
// Distance считает расстояние по дуге большого круга (формула гаверсинусов).
package geo

import "math"

// earthRadiusKm — радиус Земли в километрах.
const earthRadiusKm = 6371

// Location представляет географическую точку.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance возвращает расстояние между двумя точками в километрах
// по формуле гаверсинусов.
func Distance(a, b Location) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
