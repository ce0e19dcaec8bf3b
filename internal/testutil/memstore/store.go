// Package memstore holds goroutine-safe in-memory implementations of the
// storage, user and transport collaborators, for tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-CourtBookingService/pkg/types"
)

// Store implements both the booking and the catalog repositories.
// Create enforces the same uniqueness as the partial index on
// (court_id, booking_date, slot_id) for BOOKED rows.
type Store struct {
	mu sync.RWMutex

	locations map[int64]*domain.Location
	courts    map[int64]*domain.Court
	slots     map[int64]*domain.TimeSlot
	bookings  map[int64]*domain.Booking

	nextLocationID int64
	nextCourtID    int64
	nextSlotID     int64
	nextBookingID  int64

	// CreateCalls counts Create attempts
	CreateCalls int
}

// New creates an empty store
func New() *Store {
	return &Store{
		locations: make(map[int64]*domain.Location),
		courts:    make(map[int64]*domain.Court),
		slots:     make(map[int64]*domain.TimeSlot),
		bookings:  make(map[int64]*domain.Booking),
	}
}

// AddLocation seeds a location with courtCount courts named Court-1..N
func (s *Store) AddLocation(name, complexName, adminMobile string, courtCount int) *domain.Location {
	loc, err := s.CreateLocation(context.Background(), &domain.Location{
		Name:        name,
		ComplexName: complexName,
		AdminMobile: adminMobile,
	})
	if err != nil {
		panic(err)
	}
	for i := 1; i <= courtCount; i++ {
		if _, err := s.CreateCourt(context.Background(), &domain.Court{
			Name:       fmt.Sprintf(domain.CourtNameFormat, i),
			LocationID: loc.ID,
		}); err != nil {
			panic(err)
		}
	}
	out, _ := s.GetLocation(context.Background(), loc.ID)
	return out
}

// AddTimeSlot seeds a global slot
func (s *Store) AddTimeSlot(start, end string) *domain.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSlotID++
	slot := &domain.TimeSlot{
		ID:        s.nextSlotID,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
	s.slots[slot.ID] = slot
	cp := *slot
	return &cp
}

// --- booking repository ---

func (s *Store) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.CreateCalls++

	date := domain.DateOnly(booking.BookingDate)
	if booking.Status == domain.StatusBooked {
		for _, b := range s.bookings {
			if b.IsActive() && b.CourtID == booking.CourtID && b.SlotID == booking.SlotID && b.BookingDate.Equal(date) {
				return nil, fmt.Errorf("%w: Create - duplicate key (court_id, booking_date, slot_id)", bookingRepo.ErrSlotNotAvailable)
			}
		}
	}

	s.nextBookingID++
	now := time.Now()
	stored := *booking
	stored.ID = s.nextBookingID
	stored.BookingDate = date
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.bookings[stored.ID] = &stored

	booking.ID = stored.ID
	booking.BookingDate = date
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return booking, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) GetByDate(_ context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error) {
	day := domain.DateOnly(date)
	return s.filterBookings(func(b *domain.Booking) bool {
		return b.BookingDate.Equal(day) && (!activeOnly || b.IsActive())
	}, func(a, b *domain.Booking) bool {
		if a.CourtID != b.CourtID {
			return a.CourtID < b.CourtID
		}
		return a.StartTime.IsBefore(b.StartTime)
	}), nil
}

func (s *Store) ExistsOverlapping(_ context.Context, courtID, locationID int64, date time.Time, start, end types.TimeString) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day := domain.DateOnly(date)
	for _, b := range s.bookings {
		if b.IsActive() && b.CourtID == courtID && b.LocationID == locationID &&
			b.BookingDate.Equal(day) && b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetByUserMobile(_ context.Context, mobile string) ([]*domain.Booking, error) {
	return s.filterBookings(func(b *domain.Booking) bool {
		return b.UserMobile == mobile
	}, newestFirst), nil
}

func (s *Store) GetByCourtID(_ context.Context, courtID int64) ([]*domain.Booking, error) {
	return s.filterBookings(func(b *domain.Booking) bool {
		return b.CourtID == courtID
	}, newestFirst), nil
}

func (s *Store) CountByLocation(_ context.Context, locationID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, b := range s.bookings {
		if b.LocationID == locationID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CancelIfBooked(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok || b.Status != domain.StatusBooked {
		return bookingRepo.ErrCannotCancel
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
	return nil
}

// --- catalog repository ---

func (s *Store) ListLocationsWithCourts(_ context.Context) ([]*domain.Location, error) {
	return s.filterLocations(func(*domain.Location) bool { return true }), nil
}

func (s *Store) ListLocationsByAdmin(_ context.Context, adminMobile string) ([]*domain.Location, error) {
	return s.filterLocations(func(l *domain.Location) bool { return l.AdminMobile == adminMobile }), nil
}

func (s *Store) GetLocation(_ context.Context, id int64) (*domain.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.locations[id]
	if !ok {
		return nil, catalogRepo.ErrLocationNotFound
	}
	return s.locationWithCourts(loc), nil
}

func (s *Store) GetCourt(_ context.Context, id int64) (*domain.Court, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.courts[id]
	if !ok {
		return nil, catalogRepo.ErrCourtNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) GetTimeSlot(_ context.Context, id int64) (*domain.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, catalogRepo.ErrSlotNotFound
	}
	cp := *slot
	return &cp, nil
}

func (s *Store) ListTimeSlots(_ context.Context) ([]*domain.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make([]*domain.TimeSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		cp := *slot
		slots = append(slots, &cp)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime.IsBefore(slots[j].StartTime)
		}
		return slots[i].ID < slots[j].ID
	})
	return slots, nil
}

func (s *Store) CountLocationsByAdmin(_ context.Context, adminMobile string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, l := range s.locations {
		if l.AdminMobile == adminMobile {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateLocation(_ context.Context, location *domain.Location) (*domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.locations {
		if l.Name == location.Name && l.AdminMobile == location.AdminMobile {
			return nil, fmt.Errorf("%w: CreateLocation - %s", catalogRepo.ErrDuplicateLocation, location.Name)
		}
	}

	s.nextLocationID++
	stored := *location
	stored.ID = s.nextLocationID
	stored.Courts = nil
	stored.CreatedAt = time.Now()
	s.locations[stored.ID] = &stored

	location.ID = stored.ID
	location.CreatedAt = stored.CreatedAt
	return location, nil
}

func (s *Store) CreateCourt(_ context.Context, court *domain.Court) (*domain.Court, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCourtID++
	stored := *court
	stored.ID = s.nextCourtID
	s.courts[stored.ID] = &stored

	court.ID = stored.ID
	return court, nil
}

func (s *Store) DeleteCourtsByLocation(_ context.Context, locationID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, c := range s.courts {
		if c.LocationID == locationID {
			delete(s.courts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) DeleteLocation(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locations[id]; !ok {
		return catalogRepo.ErrLocationNotFound
	}
	delete(s.locations, id)
	return nil
}

// CourtCount returns the number of stored courts
func (s *Store) CourtCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courts)
}

// ActiveBookings returns the BOOKED bookings of a court on a date
func (s *Store) ActiveBookings(courtID int64, date time.Time) []*domain.Booking {
	day := domain.DateOnly(date)
	return s.filterBookings(func(b *domain.Booking) bool {
		return b.IsActive() && b.CourtID == courtID && b.BookingDate.Equal(day)
	}, newestFirst)
}

func (s *Store) filterBookings(keep func(*domain.Booking) bool, less func(a, b *domain.Booking) bool) []*domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (s *Store) filterLocations(keep func(*domain.Location) bool) []*domain.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Location, 0)
	for _, l := range s.locations {
		if keep(l) {
			out = append(out, s.locationWithCourts(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// locationWithCourts копирует локацию вместе с кортами; вызывается под s.mu
func (s *Store) locationWithCourts(l *domain.Location) *domain.Location {
	cp := *l
	cp.Courts = make([]*domain.Court, 0)
	for _, c := range s.courts {
		if c.LocationID == l.ID {
			court := *c
			cp.Courts = append(cp.Courts, &court)
		}
	}
	sort.Slice(cp.Courts, func(i, j int) bool { return cp.Courts[i].ID < cp.Courts[j].ID })
	return &cp
}

func newestFirst(a, b *domain.Booking) bool {
	if !a.BookingDate.Equal(b.BookingDate) {
		return a.BookingDate.After(b.BookingDate)
	}
	return a.StartTime.IsAfter(b.StartTime)
}
