package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID       int64  // ID бронирования
	RequesterMobile string // Номер телефона того, кто отменяет
}

// Response модель ответа об отмене
type Response struct {
	BookingID int64
	Status    string
	Message   string
}

// MsgCancelled сообщение об успешной отмене
const MsgCancelled = "Booking cancelled successfully"
