package get_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date      string             `json:"date"`
	Locations []LocationResponse `json:"locations"`
}

// LocationResponse локация с кортами
type LocationResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	ComplexName string          `json:"complexName"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Courts      []CourtResponse `json:"courts"`
}

// CourtResponse корт со статусами слотов
type CourtResponse struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse статус слота: AVAILABLE или BOOKED
type SlotResponse struct {
	SlotID    int64  `json:"slotId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// ToUseCaseRequest парсит дату из query параметра
func ToUseCaseRequest(dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailability.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	locations := make([]LocationResponse, 0, len(resp.Locations))
	for _, loc := range resp.Locations {
		courts := make([]CourtResponse, 0, len(loc.Courts))
		for _, court := range loc.Courts {
			slots := make([]SlotResponse, 0, len(court.Slots))
			for _, slot := range court.Slots {
				slots = append(slots, SlotResponse{
					SlotID:    slot.SlotID,
					StartTime: slot.StartTime.String(),
					EndTime:   slot.EndTime.String(),
					Status:    string(slot.Status),
				})
			}
			courts = append(courts, CourtResponse{ID: court.CourtID, Name: court.Name, Slots: slots})
		}
		locations = append(locations, LocationResponse{
			ID:          loc.LocationID,
			Name:        loc.Name,
			ComplexName: loc.ComplexName,
			ImageURL:    loc.ImageURL,
			Courts:      courts,
		})
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Locations: locations,
	}
}
