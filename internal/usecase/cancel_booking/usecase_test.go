package cancel_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
)

const (
	owner    = "9000000001"
	stranger = "9000000002"
)

var (
	bookingDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	slotStart   = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
)

type fixture struct {
	store     *memstore.Store
	clock     *memstore.Clock
	publisher *memstore.Publisher
	outcomes  *memstore.Outcomes
	booking   *domain.Booking
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:     memstore.New(),
		clock:     memstore.NewClock(slotStart.Add(-5 * time.Hour)),
		publisher: &memstore.Publisher{},
		outcomes:  memstore.NewOutcomes(),
	}
	loc := f.store.AddLocation("Court Club", "Sports Complex", "9000000099", 1)
	slot := f.store.AddTimeSlot("18:00", "19:00")

	b, err := f.store.Create(context.Background(), &domain.Booking{
		UserMobile:  owner,
		LocationID:  loc.ID,
		CourtID:     loc.Courts[0].ID,
		SlotID:      slot.ID,
		BookingDate: bookingDate,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      domain.StatusBooked,
	})
	require.NoError(t, err)
	f.booking = b

	policy := domain.NewCancellationPolicy(domain.DefaultCancellationCutoff, time.UTC)
	f.uc = NewUseCase(f.store, memstore.TxManager{}, policy, f.publisher, f.outcomes, memstore.NopLogger{}).
		WithTimeProvider(f.clock)

	return f
}

func (f *fixture) cancel(mobile string) (*Response, error) {
	return f.uc.Execute(context.Background(), &Request{BookingID: f.booking.ID, RequesterMobile: mobile})
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.cancel(owner)

	require.NoError(t, err)
	assert.Equal(t, f.booking.ID, resp.BookingID)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, MsgCancelled, resp.Message)

	stored, err := f.store.GetByID(context.Background(), f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, stored.Status)
	assert.NotNil(t, stored.CancelledAt)

	events := f.publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventBookingCancelled, events[0].Key)
	assert.Equal(t, 1, f.outcomes.Cancellations[metrics.OutcomeSuccess])
}

func TestUseCase_Execute_FourHourBoundary(t *testing.T) {
	t.Run("exactly four hours is allowed", func(t *testing.T) {
		f := newFixture(t)
		f.clock.Set(slotStart.Add(-4 * time.Hour))

		_, err := f.cancel(owner)

		assert.NoError(t, err)
	})

	t.Run("one minute less is refused", func(t *testing.T) {
		f := newFixture(t)
		f.clock.Set(slotStart.Add(-4*time.Hour + time.Minute))

		_, err := f.cancel(owner)

		assert.ErrorIs(t, err, domain.ErrCancellationWindowClosed)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("started booking is refused", func(t *testing.T) {
		f := newFixture(t)
		f.clock.Set(slotStart.Add(30 * time.Minute))

		_, err := f.cancel(owner)

		assert.ErrorIs(t, err, domain.ErrBookingAlreadyStarted)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestUseCase_Execute_SecondCancellationFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.cancel(owner)
	require.NoError(t, err)

	_, err = f.cancel(owner)

	assert.ErrorIs(t, err, domain.ErrBookingAlreadyCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, f.publisher.Events(), 1)
}

func TestUseCase_Execute_OwnershipCheckedBeforeTiming(t *testing.T) {
	f := newFixture(t)
	// окно отмены уже закрыто, но чужой запрос должен получить Forbidden
	f.clock.Set(slotStart.Add(-time.Hour))

	_, err := f.cancel(stranger)

	assert.ErrorIs(t, err, ErrNotBookingOwner)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, errors.Is(err, domain.ErrInvalidState))

	stored, err := f.store.GetByID(context.Background(), f.booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusBooked, stored.Status)
}

func TestUseCase_Execute_NotFoundAndInvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: 404, RequesterMobile: owner})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: 0, RequesterMobile: owner})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: f.booking.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 3, f.outcomes.Cancellations[metrics.OutcomeRejected])
}

func TestUseCase_Execute_ConcurrentCancellationAppliesOnce(t *testing.T) {
	f := newFixture(t)
	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		start     = make(chan struct{})
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.cancel(owner)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrBookingAlreadyCancelled)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Len(t, f.publisher.Events(), 1)
}

// cancelRace имитирует конкурента, отменившего бронирование между чтением и обновлением
type cancelRace struct {
	*memstore.Store
}

func (r cancelRace) CancelIfBooked(ctx context.Context, id int64) error {
	_ = r.Store.CancelIfBooked(ctx, id)
	return r.Store.CancelIfBooked(ctx, id)
}

func TestUseCase_Execute_LostUpdateIsRejected(t *testing.T) {
	f := newFixture(t)
	policy := domain.NewCancellationPolicy(domain.DefaultCancellationCutoff, time.UTC)
	uc := NewUseCase(cancelRace{f.store}, memstore.TxManager{}, policy, f.publisher, f.outcomes, memstore.NopLogger{}).
		WithTimeProvider(f.clock)

	_, err := uc.Execute(context.Background(), &Request{BookingID: f.booking.ID, RequesterMobile: owner})

	assert.ErrorIs(t, err, domain.ErrBookingAlreadyCancelled)
	assert.Empty(t, f.publisher.Events())
}
