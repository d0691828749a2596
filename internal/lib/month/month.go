// Package month содержит календарную арифметику для сроков подписки.
package month

import "time"

// Next возвращает дату ровно через один календарный месяц.
// Несуществующие дни нормализуются как в стандартной календарной
// арифметике: 31 января + месяц = 2/3 марта в зависимости от года.
func Next(t time.Time) time.Time {
	return t.AddDate(0, 1, 0)
}

// DaysLeft возвращает количество полных дней до даты истечения.
// Для уже прошедшей даты возвращает 0.
func DaysLeft(expiry, now time.Time) int {
	if !expiry.After(now) {
		return 0
	}
	return int(expiry.Sub(now).Hours() / 24)
}
