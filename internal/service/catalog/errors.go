package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrUserNotRegistered возвращается, когда администратор не найден
	ErrUserNotRegistered = fmt.Errorf("%w: user not registered", domain.ErrNotFound)

	// ErrNotAdmin возвращается, когда у пользователя нет роли ADMIN
	ErrNotAdmin = fmt.Errorf("%w: admin role required", domain.ErrForbidden)

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = fmt.Errorf("%w: location not found", domain.ErrNotFound)

	// ErrNotLocationOwner возвращается, когда локацию удаляет не её администратор
	ErrNotLocationOwner = fmt.Errorf("%w: location belongs to another admin", domain.ErrForbidden)

	// ErrLocationLimitReached возвращается, когда администратор исчерпал лимит локаций
	ErrLocationLimitReached = fmt.Errorf("%w: location limit reached", domain.ErrValidation)

	// ErrInvalidCourtCount возвращается, когда количество кортов вне допустимого диапазона
	ErrInvalidCourtCount = fmt.Errorf("%w: invalid court count", domain.ErrValidation)

	// ErrLocationAlreadyExists возвращается, когда у администратора уже есть локация с таким именем
	ErrLocationAlreadyExists = fmt.Errorf("%w: location already exists", domain.ErrConflict)

	// ErrLocationHasBookings возвращается при удалении локации, на корты которой есть бронирования
	ErrLocationHasBookings = fmt.Errorf("%w: location has bookings", domain.ErrInvalidState)

	// ErrConcurrentModification возвращается, когда транзакцию отменила конкурентная транзакция;
	// запрос можно повторить
	ErrConcurrentModification = fmt.Errorf("%w: concurrent modification, retry the request", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog service: internal error")
)
