package get_user_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil/memstore"
)

type stubService struct {
	mobile string
	err    error
}

func (s *stubService) GetUserBookings(_ context.Context, mobile string) (*models.BookingListResponse, error) {
	s.mobile = mobile
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{
		Bookings: []models.BookingResponse{
			{ID: 2, UserMobile: mobile, Status: "BOOKED", CanCancel: true},
			{ID: 1, UserMobile: mobile, Status: "CANCELLED"},
		},
		Total: 2,
	}, nil
}

func call(h *Handler, mobile string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me/bookings", nil)
	if mobile != "" {
		req = req.WithContext(middleware.WithMobile(req.Context(), mobile))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, memstore.NopLogger{})

	rec := call(h, "9000000001")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "9000000001", svc.mobile)

	var resp models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.True(t, resp.Bookings[0].CanCancel)
	assert.False(t, resp.Bookings[1].CanCancel)
}

func TestHandler_Handle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, call(NewHandler(&stubService{}, memstore.NopLogger{}), "").Code)

	h := NewHandler(&stubService{err: errors.New("db down")}, memstore.NopLogger{})
	assert.Equal(t, http.StatusInternalServerError, call(h, "9000000001").Code)
}
