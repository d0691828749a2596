package models

import "time"

// ValetApplication представляет заявку водителя на работу валет-парковщиком.
type ValetApplication struct {
	ID                string    // Идентификатор заявки
	Name              string    // Имя
	Email             string    // Электронная почта
	Phone             string    // Телефон
	Address           string    // Адрес
	DrivingExperience string    // Стаж вождения
	LicenseNumber     string    // Номер водительского удостоверения
	LicenseExpiry     string    // Срок действия удостоверения
	EmploymentType    string    // full-time или part-time
	WorkHours         string    // Желаемые часы работы
	AdditionalInfo    string    // Дополнительная информация
	SubmittedAt       time.Time // Момент подачи заявки
}

// DummyValetApplication используется для приёма заявки из JSON-запроса
// до валидации и преобразования в ValetApplication.
type DummyValetApplication struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Phone             string `json:"phone" validate:"required"`
	Address           string `json:"address" validate:"required"`
	DrivingExperience string `json:"driving_experience" validate:"required"`
	LicenseNumber     string `json:"license_number" validate:"required"`
	LicenseExpiry     string `json:"license_expiry" validate:"required"`
	EmploymentType    string `json:"employment_type" validate:"required,oneof=full-time part-time"`
	WorkHours         string `json:"work_hours,omitempty"`
	AdditionalInfo    string `json:"additional_info,omitempty"`
}
