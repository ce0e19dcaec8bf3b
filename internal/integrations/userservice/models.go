package userservice

import "github.com/m04kA/SMC-CourtBookingService/internal/domain"

// User модель пользователя из UserService
type User struct {
	ID           int64  `json:"id"`
	MobileNumber string `json:"mobile_number"`
	Role         string `json:"role"` // USER или ADMIN
	Active       bool   `json:"active"`
}

// ToDomain конвертирует ответ UserService в доменную ссылку на пользователя
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		MobileNumber: u.MobileNumber,
		Role:         domain.UserRole(u.Role),
		Active:       u.Active,
	}
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
