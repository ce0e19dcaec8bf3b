package catalog

import (
	"database/sql"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

type locationRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	ComplexName string         `db:"complex_name"`
	ImageURL    sql.NullString `db:"image_url"`
	AdminMobile string         `db:"admin_mobile"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r locationRow) toDomain() *domain.Location {
	loc := &domain.Location{
		ID:          r.ID,
		Name:        r.Name,
		ComplexName: r.ComplexName,
		AdminMobile: r.AdminMobile,
		Courts:      make([]*domain.Court, 0),
		CreatedAt:   r.CreatedAt,
	}
	if r.ImageURL.Valid {
		url := r.ImageURL.String
		loc.ImageURL = &url
	}
	return loc
}

type courtRow struct {
	ID         int64  `db:"id"`
	Name       string `db:"name"`
	LocationID int64  `db:"location_id"`
}

func (r courtRow) toDomain() *domain.Court {
	return &domain.Court{ID: r.ID, Name: r.Name, LocationID: r.LocationID}
}

type timeSlotRow struct {
	ID        int64            `db:"id"`
	StartTime types.TimeString `db:"start_time"`
	EndTime   types.TimeString `db:"end_time"`
}

func (r timeSlotRow) toDomain() *domain.TimeSlot {
	return &domain.TimeSlot{ID: r.ID, StartTime: r.StartTime, EndTime: r.EndTime}
}

var (
	locationColumns = []string{"id", "name", "complex_name", "image_url", "admin_mobile", "created_at"}
	courtColumns    = []string{"id", "name", "location_id"}
	timeSlotColumns = []string{"id", "start_time", "end_time"}
)
