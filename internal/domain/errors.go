package domain

import "errors"

// Виды ошибок. Каждая бизнес-ошибка оборачивает ровно один вид,
// по которому транспортный слой выбирает код ответа.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)

// IsKnown сообщает, что err оборачивает один из видов ошибок
func IsKnown(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrValidation)
}
