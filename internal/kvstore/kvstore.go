// Package kvstore реализует долговременное key-value хранилище для
// состояния сессии и транзитных записей между шагами оформления.
//
// Чтение выполняется через явный шаг декодирования в типизированное
// значение: повреждённая запись не считается фатальной и трактуется
// как отсутствующая на уровне вызывающего кода.
package kvstore

import "context"

// Фиксированные ключи хранилища.
const (
	KeyUser            = "user"
	KeyActivePlan      = "activePlan"
	KeyExpiryDate      = "expiryDate"
	KeyBookingDetails  = "bookingDetails"
	KeySelectedService = "selectedService"
)

// Store описывает контракт долговременного key-value хранилища.
type Store interface {
	// Get декодирует запись по ключу в result.
	// Возвращает false, если запись отсутствует.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение по ключу без срока жизни.
	Set(ctx context.Context, key string, value any) error
	// Delete удаляет запись по ключу. Отсутствие записи не является ошибкой.
	Delete(ctx context.Context, key string) error
}
