package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда пользователь запрашивает чужое бронирование
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrUserNotRegistered возвращается, когда пользователь не найден
	ErrUserNotRegistered = fmt.Errorf("%w: user not registered", domain.ErrNotFound)

	// ErrNotAdmin возвращается, когда действие доступно только администратору
	ErrNotAdmin = fmt.Errorf("%w: admin role required", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
