package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

// MobileHeader заголовок с номером телефона пользователя.
// Аутентификация выполняется шлюзом, сервис доверяет заголовку.
const MobileHeader = "X-Mobile-Number"

const (
	msgMissingMobile = "отсутствует номер телефона пользователя"
	msgInvalidMobile = "некорректный номер телефона"
)

var mobilePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

type mobileKey struct{}

// Auth извлекает номер телефона из заголовка и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mobile := strings.TrimSpace(r.Header.Get(MobileHeader))
		if mobile == "" {
			handlers.RespondUnauthorized(w, msgMissingMobile)
			return
		}
		if !mobilePattern.MatchString(mobile) {
			handlers.RespondBadRequest(w, msgInvalidMobile)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithMobile(r.Context(), mobile)))
	})
}

// WithMobile кладет номер телефона в контекст
func WithMobile(ctx context.Context, mobile string) context.Context {
	return context.WithValue(ctx, mobileKey{}, mobile)
}

// GetMobile возвращает номер телефона из контекста
func GetMobile(ctx context.Context) (string, bool) {
	mobile, ok := ctx.Value(mobileKey{}).(string)
	return mobile, ok && mobile != ""
}
