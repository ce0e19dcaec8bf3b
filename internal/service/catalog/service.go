package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	userClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// Limits ограничения администрирования каталога
type Limits struct {
	MaxLocationsPerAdmin int
	MinCourts            int
	MaxCourts            int
}

// DefaultLimits ограничения по умолчанию
func DefaultLimits() Limits {
	return Limits{
		MaxLocationsPerAdmin: domain.DefaultMaxLocationsPerAdmin,
		MinCourts:            domain.DefaultMinCourtsPerLocation,
		MaxCourts:            domain.DefaultMaxCourtsPerLocation,
	}
}

// Service сервис администрирования каталога
type Service struct {
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
	users       UserResolver
	txManager   TransactionManager
	limits      Limits
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	users UserResolver,
	txManager TransactionManager,
	limits Limits,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		users:       users,
		txManager:   txManager,
		limits:      limits,
		logger:      logger,
	}
}

// RegisterLocation создает локацию и её корты Court-1..N
// Доступно только администраторам, в пределах лимита локаций
func (s *Service) RegisterLocation(ctx context.Context, req *models.RegisterLocationRequest) (*models.LocationResponse, error) {
	s.logger.Info("RegisterLocation: admin=%s, name=%s, courts=%d", req.AdminMobile, req.Name, req.CourtCount)

	// 1. Валидируем входные данные
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.CourtCount < s.limits.MinCourts || req.CourtCount > s.limits.MaxCourts {
		s.logger.Warn("RegisterLocation: court count %d outside [%d, %d]", req.CourtCount, s.limits.MinCourts, s.limits.MaxCourts)
		return nil, fmt.Errorf("%w: must be between %d and %d", ErrInvalidCourtCount, s.limits.MinCourts, s.limits.MaxCourts)
	}

	// 2. Проверяем роль администратора
	if err := s.requireAdmin(ctx, "RegisterLocation", req.AdminMobile); err != nil {
		return nil, err
	}

	var created *domain.Location

	// 3. Лимит, локация и корты в одной транзакции
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := s.catalogRepo.CountLocationsByAdmin(txCtx, req.AdminMobile)
		if err != nil {
			return fmt.Errorf("%w: RegisterLocation - count locations: %v", ErrInternal, err)
		}
		if count >= s.limits.MaxLocationsPerAdmin {
			s.logger.Warn("RegisterLocation: admin=%s has %d/%d locations", req.AdminMobile, count, s.limits.MaxLocationsPerAdmin)
			return fmt.Errorf("%w: maximum %d locations per admin", ErrLocationLimitReached, s.limits.MaxLocationsPerAdmin)
		}

		location, err := s.catalogRepo.CreateLocation(txCtx, req.ToDomainLocation())
		if err != nil {
			if errors.Is(err, catalogRepo.ErrDuplicateLocation) {
				s.logger.Warn("RegisterLocation: location %q already exists for admin=%s", req.Name, req.AdminMobile)
				return ErrLocationAlreadyExists
			}
			return fmt.Errorf("%w: RegisterLocation - create location: %v", ErrInternal, err)
		}

		location.Courts = make([]*domain.Court, 0, req.CourtCount)
		for i := 1; i <= req.CourtCount; i++ {
			court, err := s.catalogRepo.CreateCourt(txCtx, &domain.Court{
				Name:       fmt.Sprintf(domain.CourtNameFormat, i),
				LocationID: location.ID,
			})
			if err != nil {
				return fmt.Errorf("%w: RegisterLocation - create court %d: %v", ErrInternal, i, err)
			}
			location.Courts = append(location.Courts, court)
		}

		created = location
		return nil
	})

	if err != nil {
		return nil, s.txError("RegisterLocation", err)
	}

	s.logger.Info("RegisterLocation: successfully created location id=%d with %d courts", created.ID, len(created.Courts))
	return models.FromDomainLocation(created), nil
}

// DeleteLocation удаляет локацию вместе с её кортами
// Доступно только администратору-владельцу; локации с бронированиями не удаляются
func (s *Service) DeleteLocation(ctx context.Context, locationID int64, adminMobile string) error {
	s.logger.Info("DeleteLocation: location=%d by admin=%s", locationID, adminMobile)

	if locationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем локацию с блокировкой
		location, err := s.catalogRepo.GetLocation(txCtx, locationID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrLocationNotFound) {
				s.logger.Warn("DeleteLocation: location id=%d not found", locationID)
				return ErrLocationNotFound
			}
			return fmt.Errorf("%w: DeleteLocation - get location: %v", ErrInternal, err)
		}

		// 2. Проверяем владельца
		if !location.IsOwnedBy(adminMobile) {
			s.logger.Warn("DeleteLocation: admin=%s does not own location id=%d", adminMobile, locationID)
			return ErrNotLocationOwner
		}

		// 3. Бронирования ссылаются на корты и никогда не удаляются
		count, err := s.bookingRepo.CountByLocation(txCtx, locationID)
		if err != nil {
			return fmt.Errorf("%w: DeleteLocation - count bookings: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("DeleteLocation: location id=%d has %d bookings", locationID, count)
			return fmt.Errorf("%w: %d bookings reference its courts", ErrLocationHasBookings, count)
		}

		// 4. Сначала корты, затем сама локация
		deleted, err := s.catalogRepo.DeleteCourtsByLocation(txCtx, locationID)
		if err != nil {
			return fmt.Errorf("%w: DeleteLocation - delete courts: %v", ErrInternal, err)
		}

		if err := s.catalogRepo.DeleteLocation(txCtx, locationID); err != nil {
			if errors.Is(err, catalogRepo.ErrLocationNotFound) {
				return ErrLocationNotFound
			}
			return fmt.Errorf("%w: DeleteLocation - delete location: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteLocation: deleted location id=%d and %d courts", locationID, deleted)
		return nil
	})

	if err != nil {
		return s.txError("DeleteLocation", err)
	}
	return nil
}

// ListTimeSlots возвращает глобальный каталог слотов
// Публичный метод - доступен всем
func (s *Service) ListTimeSlots(ctx context.Context) ([]models.TimeSlotResponse, error) {
	slots, err := s.catalogRepo.ListTimeSlots(ctx)
	if err != nil {
		s.logger.Error("ListTimeSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListTimeSlots - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainTimeSlots(slots), nil
}

func (s *Service) requireAdmin(ctx context.Context, op, mobile string) error {
	user, err := s.users.GetUserByMobile(ctx, mobile)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			s.logger.Warn("%s: user=%s not registered", op, mobile)
			return ErrUserNotRegistered
		}
		s.logger.Error("%s: failed to resolve user=%s: %v", op, mobile, err)
		return fmt.Errorf("%w: %s - user service error: %v", ErrInternal, op, err)
	}
	if !user.IsAdmin() {
		s.logger.Warn("%s: user=%s is not an admin", op, mobile)
		return ErrNotAdmin
	}
	return nil
}

// txError классифицирует ошибку транзакции.
// Сбой сериализации, в том числе при COMMIT, становится ErrConcurrentModification.
func (s *Service) txError(op string, err error) error {
	switch {
	case catalogRepo.IsSerializationFailure(err):
		s.logger.Warn("%s: transaction aborted by concurrent modification: %v", op, err)
		return fmt.Errorf("%w: %v", ErrConcurrentModification, err)
	case errors.Is(err, ErrInternal):
		s.logger.Error("%s: %v", op, err)
		return err
	case domain.IsKnown(err):
		return err
	default:
		// Ошибки начала и фиксации транзакции
		s.logger.Error("%s: transaction failed: %v", op, err)
		return fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
	}
}
