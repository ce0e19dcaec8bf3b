package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Request модель запроса на бронирование корта
type Request struct {
	UserMobile string    // Номер телефона пользователя
	LocationID int64     // ID локации
	CourtID    int64     // ID корта
	SlotID     int64     // ID временного слота
	Date       time.Time // Дата бронирования (без времени)
}

// Response подтверждение бронирования
type Response struct {
	ID           int64
	LocationName string
	CourtName    string
	BookingDate  time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
}
