package models

// User представляет пользователя с активной сессией.
// Создаётся при входе или регистрации, сохраняется в хранилище
// под фиксированным ключом и удаляется при выходе.
type User struct {
	ID            string `json:"id"`             // Идентификатор пользователя
	Name          string `json:"name"`           // Имя
	Email         string `json:"email"`          // Электронная почта
	Phone         string `json:"phone"`          // Телефон
	VehicleNumber string `json:"vehicle_number"` // Номер транспортного средства
}
