package cancel_booking

import (
	cancelBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID: resp.BookingID,
		Status:    resp.Status,
		Message:   resp.Message,
	}
}
