package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LocationID  int64  `json:"locationId"`
	CourtID     int64  `json:"courtId"`
	SlotID      int64  `json:"slotId"`
	BookingDate string `json:"bookingDate"` // "2025-06-01"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64  `json:"id"`
	LocationName string `json:"locationName"`
	CourtName    string `json:"courtName"`
	BookingDate  string `json:"bookingDate"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Status       string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(mobile string) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserMobile: mobile,
		LocationID: r.LocationID,
		CourtID:    r.CourtID,
		SlotID:     r.SlotID,
		Date:       bookingDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		LocationName: resp.LocationName,
		CourtName:    resp.CourtName,
		BookingDate:  resp.BookingDate.Format(domain.DateFormat),
		StartTime:    resp.StartTime.String(),
		EndTime:      resp.EndTime.String(),
		Status:       resp.Status,
	}
}
