package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	userClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

// Service сервис представлений бронирований (только чтение)
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	users        UserResolver
	policy       domain.CancellationPolicy
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	users UserResolver,
	policy domain.CancellationPolicy,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		users:        users,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, mobile string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%s", id, mobile)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !booking.IsOwnedBy(mobile) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%d", mobile, id)
		return nil, ErrAccessDenied
	}

	locations := newLocationCache(s.catalogRepo)
	location, err := locations.get(ctx, booking.LocationID)
	if err != nil {
		s.logger.Error("GetByID: failed to get location id=%d: %v", booking.LocationID, err)
		return nil, fmt.Errorf("%w: GetByID - catalog error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(booking, location, s.policy.CanCancel(booking, s.timeProvider.Now()))

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return &resp, nil
}

// GetUserBookings получает историю бронирований пользователя, новые первыми.
// canCancel считается той же политикой, что и отмена.
func (s *Service) GetUserBookings(ctx context.Context, mobile string) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", mobile)

	if strings.TrimSpace(mobile) == "" {
		return nil, fmt.Errorf("%w: mobile is required", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUserMobile(ctx, mobile)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", mobile, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	locations := newLocationCache(s.catalogRepo)
	result := make([]models.BookingResponse, 0, len(bookings))

	for _, b := range bookings {
		location, err := locations.get(ctx, b.LocationID)
		if err != nil {
			s.logger.Error("GetUserBookings: failed to get location id=%d: %v", b.LocationID, err)
			return nil, fmt.Errorf("%w: GetUserBookings - catalog error: %v", ErrInternal, err)
		}
		result = append(result, models.FromDomainBooking(b, location, s.policy.CanCancel(b, now)))
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(result), mobile)
	return &models.BookingListResponse{Bookings: result, Total: len(result)}, nil
}

// GetAdminDashboard собирает локации администратора, их корты и бронирования каждого корта
// Доступно только пользователям с ролью ADMIN
func (s *Service) GetAdminDashboard(ctx context.Context, adminMobile string) (*models.DashboardResponse, error) {
	s.logger.Info("GetAdminDashboard: admin=%s", adminMobile)

	// 1. Проверяем роль
	user, err := s.users.GetUserByMobile(ctx, adminMobile)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("GetAdminDashboard: user=%s not registered", adminMobile)
			return nil, ErrUserNotRegistered
		}
		s.logger.Error("GetAdminDashboard: failed to resolve user=%s: %v", adminMobile, err)
		return nil, fmt.Errorf("%w: GetAdminDashboard - user service error: %v", ErrInternal, err)
	}
	if !user.IsAdmin() {
		s.logger.Warn("GetAdminDashboard: user=%s is not an admin", adminMobile)
		return nil, ErrNotAdmin
	}

	// 2. Локации администратора
	locations, err := s.catalogRepo.ListLocationsByAdmin(ctx, adminMobile)
	if err != nil {
		s.logger.Error("GetAdminDashboard: failed to list locations: %v", err)
		return nil, fmt.Errorf("%w: GetAdminDashboard - catalog error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	resp := &models.DashboardResponse{
		AdminMobile: adminMobile,
		Locations:   make([]models.DashboardLocation, 0, len(locations)),
	}

	// 3. Бронирования по каждому корту
	for _, loc := range locations {
		dl := models.DashboardLocation{
			ID:          loc.ID,
			Name:        loc.Name,
			ComplexName: loc.ComplexName,
			ImageURL:    loc.ImageURL,
			Courts:      make([]models.DashboardCourt, 0, len(loc.Courts)),
		}

		for _, court := range loc.Courts {
			bookings, err := s.bookingRepo.GetByCourtID(ctx, court.ID)
			if err != nil {
				s.logger.Error("GetAdminDashboard: failed to get bookings for court=%d: %v", court.ID, err)
				return nil, fmt.Errorf("%w: GetAdminDashboard - repository error: %v", ErrInternal, err)
			}

			dc := models.DashboardCourt{
				ID:       court.ID,
				Name:     court.Name,
				Bookings: make([]models.BookingResponse, 0, len(bookings)),
			}
			for _, b := range bookings {
				dc.Bookings = append(dc.Bookings, models.FromDomainBooking(b, loc, s.policy.CanCancel(b, now)))
				resp.TotalBookings++
				if b.IsActive() {
					resp.ActiveBookings++
				}
			}

			dl.Courts = append(dl.Courts, dc)
		}

		resp.Locations = append(resp.Locations, dl)
	}

	s.logger.Info("GetAdminDashboard: admin=%s, locations=%d, bookings=%d",
		adminMobile, len(resp.Locations), resp.TotalBookings)
	return resp, nil
}

// locationCache загружает каждую локацию не больше одного раза за запрос
type locationCache struct {
	repo  CatalogRepository
	items map[int64]*domain.Location
}

func newLocationCache(repo CatalogRepository) *locationCache {
	return &locationCache{repo: repo, items: make(map[int64]*domain.Location)}
}

// get возвращает nil без ошибки для удаленной локации
func (c *locationCache) get(ctx context.Context, id int64) (*domain.Location, error) {
	if loc, ok := c.items[id]; ok {
		return loc, nil
	}
	loc, err := c.repo.GetLocation(ctx, id)
	if err != nil && !errors.Is(err, catalogRepo.ErrLocationNotFound) {
		return nil, err
	}
	c.items[id] = loc
	return loc, nil
}
