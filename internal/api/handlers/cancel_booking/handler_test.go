package cancel_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil/memstore"
	cancelBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_booking"
)

type stubUseCase struct {
	got *cancelBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &cancelBooking.Response{
		BookingID: req.BookingID,
		Status:    string(domain.StatusCancelled),
		Message:   cancelBooking.MsgCancelled,
	}, nil
}

func serve(h *Handler, target, mobile string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, target, nil)
	if mobile != "" {
		req = req.WithContext(middleware.WithMobile(req.Context(), mobile))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle_Success(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, memstore.NopLogger{})

	rec := serve(h, "/api/v1/bookings/12/cancel", "9000000001")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, &cancelBooking.Request{BookingID: 12, RequesterMobile: "9000000001"}, uc.got)

	var resp CancelBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.BookingID)
	assert.Equal(t, "CANCELLED", resp.Status)
	assert.Equal(t, cancelBooking.MsgCancelled, resp.Message)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", cancelBooking.ErrBookingNotFound, http.StatusNotFound},
		{"not owner", cancelBooking.ErrNotBookingOwner, http.StatusForbidden},
		{"already cancelled", domain.ErrBookingAlreadyCancelled, http.StatusUnprocessableEntity},
		{"already started", domain.ErrBookingAlreadyStarted, http.StatusUnprocessableEntity},
		{"window closed", domain.ErrCancellationWindowClosed, http.StatusUnprocessableEntity},
		{"internal", errors.New("tx failed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, memstore.NopLogger{})

			rec := serve(h, "/api/v1/bookings/12/cancel", "9000000001")

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandler_Handle_BadRequests(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, memstore.NopLogger{})

	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/v1/bookings/abc/cancel", "9000000001").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "/api/v1/bookings/12/cancel", "").Code)
	assert.Nil(t, uc.got)
}
