package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestClient_GetUserByMobile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/internal/users/by-mobile/9876543210":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"mobile_number":"9876543210","role":"ADMIN","active":true}`))
		case "/internal/users/by-mobile/0000000000":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})

	t.Run("found", func(t *testing.T) {
		user, err := client.GetUserByMobile(context.Background(), "9876543210")

		require.NoError(t, err)
		assert.Equal(t, &domain.User{ID: 7, MobileNumber: "9876543210", Role: domain.RoleAdmin, Active: true}, user)
		assert.True(t, user.IsAdmin())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetUserByMobile(context.Background(), "0000000000")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("upstream failure", func(t *testing.T) {
		_, err := client.GetUserByMobile(context.Background(), "1111111111")
		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})
}

func TestClient_GetUserByMobile_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(srv.URL, 100*time.Millisecond, nopLogger{})

	_, err := client.GetUserByMobile(context.Background(), "9876543210")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
