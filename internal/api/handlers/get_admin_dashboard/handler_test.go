package get_admin_dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil/memstore"
)

const (
	adminMobile = "9000000099"
	userMobile  = "9000000001"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	store := memstore.New()
	users := memstore.NewUsers()
	users.Add(adminMobile, domain.RoleAdmin)
	users.Add(userMobile, domain.RoleUser)

	loc := store.AddLocation("Court Club", "Sports Complex", adminMobile, 2)
	slot := store.AddTimeSlot("18:00", "19:00")
	_, err := store.Create(context.Background(), &domain.Booking{
		UserMobile:  userMobile,
		LocationID:  loc.ID,
		CourtID:     loc.Courts[1].ID,
		SlotID:      slot.ID,
		BookingDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		Status:      domain.StatusBooked,
	})
	require.NoError(t, err)

	policy := domain.NewCancellationPolicy(domain.DefaultCancellationCutoff, time.UTC)
	svc := bookings.NewService(store, store, users, policy, memstore.NopLogger{})
	return NewHandler(svc, memstore.NopLogger{})
}

func call(h *Handler, mobile string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req = req.WithContext(middleware.WithMobile(req.Context(), mobile))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	rec := call(newHandler(t), adminMobile)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Locations, 1)
	require.Len(t, resp.Locations[0].Courts, 2)
	assert.Empty(t, resp.Locations[0].Courts[0].Bookings)
	assert.Len(t, resp.Locations[0].Courts[1].Bookings, 1)
	assert.Equal(t, 1, resp.ActiveBookings)
}

func TestHandler_Handle_Errors(t *testing.T) {
	h := newHandler(t)

	assert.Equal(t, http.StatusForbidden, call(h, userMobile).Code)
	assert.Equal(t, http.StatusNotFound, call(h, "9111111111").Code)
}
