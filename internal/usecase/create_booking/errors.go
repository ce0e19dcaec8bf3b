package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

var (
	// ErrUserNotRegistered возвращается, когда пользователь не найден или неактивен
	ErrUserNotRegistered = fmt.Errorf("%w: create_booking: user not registered", domain.ErrNotFound)

	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = fmt.Errorf("%w: create_booking: location not found", domain.ErrNotFound)

	// ErrCourtNotFound возвращается, когда корт не найден или принадлежит другой локации
	ErrCourtNotFound = fmt.Errorf("%w: create_booking: court not found", domain.ErrNotFound)

	// ErrSlotNotFound возвращается, когда временной слот не найден
	ErrSlotNotFound = fmt.Errorf("%w: create_booking: time slot not found", domain.ErrNotFound)

	// ErrSlotAlreadyBooked возвращается, когда интервал корта на дату уже занят
	ErrSlotAlreadyBooked = fmt.Errorf("%w: create_booking: slot already booked", domain.ErrConflict)

	// ErrSlotInPast возвращается, когда начало слота на указанную дату уже прошло
	ErrSlotInPast = fmt.Errorf("%w: create_booking: slot start is in the past", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
