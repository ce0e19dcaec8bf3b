package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/userservice"
)

// Users is an in-memory user reference resolver
type Users struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	Err   error
}

// NewUsers creates an empty resolver
func NewUsers() *Users {
	return &Users{users: make(map[string]*domain.User)}
}

// Add registers an active user
func (u *Users) Add(mobile string, role domain.UserRole) *domain.User {
	u.mu.Lock()
	defer u.mu.Unlock()

	user := &domain.User{
		ID:           int64(len(u.users) + 1),
		MobileNumber: mobile,
		Role:         role,
		Active:       true,
	}
	u.users[mobile] = user
	return user
}

// Deactivate marks the user inactive
func (u *Users) Deactivate(mobile string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if user, ok := u.users[mobile]; ok {
		user.Active = false
	}
}

func (u *Users) GetUserByMobile(_ context.Context, mobile string) (*domain.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.users[mobile]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

// TxManager runs fn directly; Store methods are individually atomic
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func (TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Clock is a settable time provider
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock fixed at now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Event is a recorded publication
type Event struct {
	Key     string
	Payload interface{}
}

// Publisher records published events
type Publisher struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (p *Publisher) PublishJSON(_ context.Context, key string, v interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, Event{Key: key, Payload: v})
	return nil
}

// Events returns a copy of the recorded events
func (p *Publisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Outcomes records metric outcomes
type Outcomes struct {
	mu            sync.Mutex
	Admissions    map[string]int
	Cancellations map[string]int
}

// NewOutcomes creates an empty recorder
func NewOutcomes() *Outcomes {
	return &Outcomes{Admissions: make(map[string]int), Cancellations: make(map[string]int)}
}

func (o *Outcomes) ObserveAdmission(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Admissions[outcome]++
}

func (o *Outcomes) ObserveCancellation(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Cancellations[outcome]++
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
