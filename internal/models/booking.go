package models

// VehicleType — тип транспортного средства для расчёта множителя цены.
type VehicleType string

// Известные типы транспортных средств.
const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
	VehicleSUV  VehicleType = "suv"
)

// BookingDetails представляет собранное бронирование, которое передаётся
// между шагом оформления и шагом оплаты через хранилище (JSON-запись
// под ключом bookingDetails).
type BookingDetails struct {
	ID            string      `json:"id"`             // Идентификатор бронирования
	ParkingID     string      `json:"parking_id"`     // Идентификатор парковки
	ParkingName   string      `json:"parking_name"`   // Название парковки
	Date          string      `json:"date"`           // Дата в формате 2006-01-02
	StartTime     string      `json:"start_time"`     // Время начала, HH:MM
	EndTime       string      `json:"end_time"`       // Расчётное время окончания, HH:MM
	Duration      float64     `json:"duration"`       // Длительность в часах
	VehicleType   VehicleType `json:"vehicle_type"`   // Тип транспортного средства
	VehicleNumber string      `json:"vehicle_number"` // Номер транспортного средства
	Price         int         `json:"price"`          // Итоговая цена, округлённая
	Services      []string    `json:"services"`       // Названия выбранных услуг
}

// DummyBooking используется для приёма данных бронирования из JSON-запроса
// до их валидации и преобразования в BookingDetails.
type DummyBooking struct {
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`  // Дата бронирования
	StartTime     string  `json:"start_time" validate:"required"`                // Время начала, HH:MM
	Duration      float64 `json:"duration" validate:"required,gt=0"`             // Длительность в часах (>0)
	VehicleType   string  `json:"vehicle_type" validate:"required"`              // car, bike или suv
	VehicleNumber string  `json:"vehicle_number" validate:"required"`            // Номер транспортного средства
}

// Способы оплаты.
const (
	PaymentMethodCard = "card"
	PaymentMethodUPI  = "upi"
)

// DummyPayment используется для приёма платёжных данных из JSON-запроса.
// Состав обязательных полей зависит от способа оплаты и проверяется
// в бизнес-логике.
type DummyPayment struct {
	Method     string `json:"method" validate:"required"` // card или upi
	CardNumber string `json:"card_number,omitempty"`      // Номер карты (16 цифр)
	CardName   string `json:"card_name,omitempty"`        // Имя держателя карты
	CardExpiry string `json:"card_expiry,omitempty"`      // Срок действия карты
	CardCVV    string `json:"card_cvv,omitempty"`         // CVV (3 цифры)
	UPIID      string `json:"upi_id,omitempty"`           // UPI ID (содержит @)
}

// PaymentEvent — событие об успешной оплате бронирования,
// публикуется в очередь уведомлений.
type PaymentEvent struct {
	BookingID   string `json:"booking_id"`
	ParkingName string `json:"parking_name"`
	Amount      int    `json:"amount"`
	Method      string `json:"method"`
	PaidAt      string `json:"paid_at"`
}
