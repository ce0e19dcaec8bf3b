package models

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// Request модели

// RegisterLocationRequest запрос на регистрацию локации с кортами
type RegisterLocationRequest struct {
	AdminMobile string  `json:"-"`
	Name        string  `json:"name"`
	ComplexName string  `json:"complexName"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	CourtCount  int     `json:"courtCount"`
}

// ToDomainLocation конвертирует запрос в доменную локацию (без кортов).
// Пустой imageUrl сохраняется как NULL.
func (r *RegisterLocationRequest) ToDomainLocation() *domain.Location {
	var imageURL *string
	if u := strings.TrimSpace(ptr.Deref(r.ImageURL)); u != "" {
		imageURL = ptr.Ptr(u)
	}

	return &domain.Location{
		Name:        strings.TrimSpace(r.Name),
		ComplexName: strings.TrimSpace(r.ComplexName),
		ImageURL:    imageURL,
		AdminMobile: r.AdminMobile,
	}
}

// Response модели

// LocationResponse ответ с данными локации
type LocationResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	ComplexName string          `json:"complexName"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	AdminMobile string          `json:"adminMobile"`
	Courts      []CourtResponse `json:"courts"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CourtResponse ответ с данными корта
type CourtResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TimeSlotResponse ответ с данными слота
type TimeSlotResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Converters

// FromDomainLocation конвертирует локацию в ответ
func FromDomainLocation(l *domain.Location) *LocationResponse {
	resp := &LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		ComplexName: l.ComplexName,
		ImageURL:    l.ImageURL,
		AdminMobile: l.AdminMobile,
		Courts:      make([]CourtResponse, 0, len(l.Courts)),
		CreatedAt:   l.CreatedAt,
	}
	for _, c := range l.Courts {
		resp.Courts = append(resp.Courts, CourtResponse{ID: c.ID, Name: c.Name})
	}
	return resp
}

// FromDomainTimeSlots конвертирует каталог слотов в ответ
func FromDomainTimeSlots(slots []*domain.TimeSlot) []TimeSlotResponse {
	result := make([]TimeSlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, TimeSlotResponse{
			ID:        s.ID,
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
		})
	}
	return result
}
