package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil/memstore"
	getAvailability "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_availability"
)

func newHandler(t *testing.T) (*Handler, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	uc := getAvailability.NewUseCase(store, store, memstore.NopLogger{})
	return NewHandler(uc, memstore.NopLogger{}), store
}

func TestHandler_Handle(t *testing.T) {
	h, store := newHandler(t)
	loc := store.AddLocation("Court Club", "Sports Complex", "9000000099", 2)
	slot := store.AddTimeSlot("18:00", "19:00")
	store.AddTimeSlot("19:00", "20:00")
	_, err := store.Create(context.Background(), &domain.Booking{
		UserMobile:  "9000000001",
		LocationID:  loc.ID,
		CourtID:     loc.Courts[0].ID,
		SlotID:      slot.ID,
		BookingDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      domain.StatusBooked,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-06-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-01", resp.Date)
	require.Len(t, resp.Locations, 1)
	require.Len(t, resp.Locations[0].Courts, 2)

	court1 := resp.Locations[0].Courts[0]
	require.Len(t, court1.Slots, 2)
	assert.Equal(t, "BOOKED", court1.Slots[0].Status)
	assert.Equal(t, "AVAILABLE", court1.Slots[1].Status)
	assert.Equal(t, "AVAILABLE", resp.Locations[0].Courts[1].Slots[0].Status)
}

func TestHandler_Handle_BadDate(t *testing.T) {
	h, _ := newHandler(t)

	for _, target := range []string{"/api/v1/availability", "/api/v1/availability?date=01.06.2025"} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
