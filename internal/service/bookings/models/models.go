package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64      `json:"id"`
	UserMobile   string     `json:"userMobile"`
	LocationID   int64      `json:"locationId"`
	LocationName string     `json:"locationName"`
	ComplexName  string     `json:"complexName"`
	CourtID      int64      `json:"courtId"`
	CourtName    string     `json:"courtName"`
	SlotID       int64      `json:"slotId"`
	BookingDate  string     `json:"bookingDate"` // "2025-06-01"
	StartTime    string     `json:"startTime"`   // "18:00"
	EndTime      string     `json:"endTime"`     // "19:00"
	Status       string     `json:"status"`
	CanCancel    bool       `json:"canCancel"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// DashboardResponse панель администратора: его локации, корты и их бронирования
type DashboardResponse struct {
	AdminMobile    string              `json:"adminMobile"`
	Locations      []DashboardLocation `json:"locations"`
	TotalBookings  int                 `json:"totalBookings"`
	ActiveBookings int                 `json:"activeBookings"`
}

// DashboardLocation локация на панели администратора
type DashboardLocation struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	ComplexName string           `json:"complexName"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	Courts      []DashboardCourt `json:"courts"`
}

// DashboardCourt корт с бронированиями
type DashboardCourt struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Bookings []BookingResponse `json:"bookings"`
}

// Converters

// FromDomainBooking конвертирует бронирование в ответ.
// location может быть nil, тогда имена остаются пустыми.
func FromDomainBooking(b *domain.Booking, location *domain.Location, canCancel bool) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		UserMobile:  b.UserMobile,
		LocationID:  b.LocationID,
		CourtID:     b.CourtID,
		SlotID:      b.SlotID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		CanCancel:   canCancel,
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
	}

	if location != nil {
		resp.LocationName = location.Name
		resp.ComplexName = location.ComplexName
		if court := location.CourtByID(b.CourtID); court != nil {
			resp.CourtName = court.Name
		}
	}

	return resp
}
