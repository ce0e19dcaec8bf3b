package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь с таким номером не зарегистрирован
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда UserService не ответил.
	// Бронирование без проверки пользователя не допускается.
	ErrServiceUnavailable = errors.New("userservice client: service unavailable")
)
