package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil/memstore"
)

var date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func book(t *testing.T, store *memstore.Store, loc *domain.Location, court *domain.Court, slot *domain.TimeSlot) *domain.Booking {
	t.Helper()
	b, err := store.Create(context.Background(), &domain.Booking{
		UserMobile:  "9000000001",
		LocationID:  loc.ID,
		CourtID:     court.ID,
		SlotID:      slot.ID,
		BookingDate: date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      domain.StatusBooked,
	})
	require.NoError(t, err)
	return b
}

func statuses(resp *Response) map[domain.CourtSlotKey]domain.AvailabilityStatus {
	out := make(map[domain.CourtSlotKey]domain.AvailabilityStatus)
	for _, loc := range resp.Locations {
		for _, court := range loc.Courts {
			for _, slot := range court.Slots {
				out[domain.CourtSlotKey{CourtID: court.CourtID, SlotID: slot.SlotID}] = slot.Status
			}
		}
	}
	return out
}

func TestUseCase_Execute_EmptyCatalog(t *testing.T) {
	store := memstore.New()
	uc := NewUseCase(store, store, memstore.NopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: date})

	require.NoError(t, err)
	assert.Equal(t, date, resp.Date)
	assert.Empty(t, resp.Locations)
}

func TestUseCase_Execute_ReflectsActiveBookings(t *testing.T) {
	store := memstore.New()
	loc := store.AddLocation("Court Club", "Sports Complex", "9000000099", 2)
	slot := store.AddTimeSlot("18:00", "19:00")
	court1, court2 := loc.Courts[0], loc.Courts[1]
	uc := NewUseCase(store, store, memstore.NopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Locations, 1)
	assert.Equal(t, "Court Club", resp.Locations[0].Name)
	assert.Equal(t, domain.AvailabilityAvailable, statuses(resp)[domain.CourtSlotKey{CourtID: court1.ID, SlotID: slot.ID}])
	assert.Equal(t, domain.AvailabilityAvailable, statuses(resp)[domain.CourtSlotKey{CourtID: court2.ID, SlotID: slot.ID}])

	b := book(t, store, loc, court1, slot)

	resp, err = uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityBooked, statuses(resp)[domain.CourtSlotKey{CourtID: court1.ID, SlotID: slot.ID}])
	assert.Equal(t, domain.AvailabilityAvailable, statuses(resp)[domain.CourtSlotKey{CourtID: court2.ID, SlotID: slot.ID}])

	// другая дата не затронута
	other, err := uc.Execute(context.Background(), &Request{Date: date.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityAvailable, statuses(other)[domain.CourtSlotKey{CourtID: court1.ID, SlotID: slot.ID}])

	require.NoError(t, store.CancelIfBooked(context.Background(), b.ID))

	resp, err = uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Equal(t, domain.AvailabilityAvailable, statuses(resp)[domain.CourtSlotKey{CourtID: court1.ID, SlotID: slot.ID}])
}

func TestUseCase_Execute_IsIdempotent(t *testing.T) {
	store := memstore.New()
	loc := store.AddLocation("Court Club", "Sports Complex", "9000000099", 3)
	store.AddLocation("Arena", "North", "9000000098", 1)
	late := store.AddTimeSlot("20:00", "21:00")
	early := store.AddTimeSlot("18:00", "19:00")
	book(t, store, loc, loc.Courts[1], late)
	uc := NewUseCase(store, store, memstore.NopLogger{})

	first, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// слоты упорядочены по времени начала
	slots := first.Locations[0].Courts[0].Slots
	require.Len(t, slots, 2)
	assert.Equal(t, early.ID, slots[0].SlotID)
	assert.Equal(t, late.ID, slots[1].SlotID)
}

func TestUseCase_Execute_PastDateIsAllowed(t *testing.T) {
	store := memstore.New()
	store.AddLocation("Court Club", "Sports Complex", "9000000099", 1)
	store.AddTimeSlot("18:00", "19:00")
	uc := NewUseCase(store, store, memstore.NopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)})

	require.NoError(t, err)
	assert.Len(t, resp.Locations, 1)
}

func TestUseCase_Execute_ZeroDate(t *testing.T) {
	store := memstore.New()
	uc := NewUseCase(store, store, memstore.NopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type failingBookings struct{}

func (failingBookings) GetByDate(context.Context, time.Time, bool) ([]*domain.Booking, error) {
	return nil, errors.New("db down")
}

func TestUseCase_Execute_StoreFailure(t *testing.T) {
	store := memstore.New()
	uc := NewUseCase(failingBookings{}, store, memstore.NopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: date})

	assert.ErrorIs(t, err, ErrInternal)
}

func TestOccupiedSet_IgnoresCancelled(t *testing.T) {
	occupied := occupiedSet([]*domain.Booking{
		{CourtID: 1, SlotID: 1, Status: domain.StatusBooked},
		{CourtID: 2, SlotID: 1, Status: domain.StatusCancelled},
	})

	assert.Len(t, occupied, 1)
	assert.Contains(t, occupied, domain.CourtSlotKey{CourtID: 1, SlotID: 1})
}
