package register_location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-CourtBookingService/internal/testutil/memstore"
)

const (
	adminMobile = "9000000099"
	userMobile  = "9000000001"
)

func newHandler() *Handler {
	store := memstore.New()
	users := memstore.NewUsers()
	users.Add(adminMobile, domain.RoleAdmin)
	users.Add(userMobile, domain.RoleUser)
	svc := catalog.NewService(store, store, users, memstore.TxManager{}, catalog.DefaultLimits(), memstore.NopLogger{})
	return NewHandler(svc, memstore.NopLogger{})
}

func call(h *Handler, mobile, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/locations", strings.NewReader(body))
	req = req.WithContext(middleware.WithMobile(req.Context(), mobile))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_Created(t *testing.T) {
	rec := call(newHandler(), adminMobile, `{"name":"Court Club","complexName":"Sports Complex","courtCount":2}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.LocationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Court Club", resp.Name)
	assert.Equal(t, adminMobile, resp.AdminMobile)
	require.Len(t, resp.Courts, 2)
	assert.Equal(t, "Court-2", resp.Courts[1].Name)
}

func TestHandler_Handle_Errors(t *testing.T) {
	h := newHandler()
	valid := `{"name":"Court Club","complexName":"Sports Complex","courtCount":2}`

	require.Equal(t, http.StatusCreated, call(h, adminMobile, valid).Code)
	assert.Equal(t, http.StatusConflict, call(h, adminMobile, valid).Code)
	assert.Equal(t, http.StatusForbidden, call(h, userMobile, valid).Code)
	assert.Equal(t, http.StatusNotFound, call(h, "9111111111", valid).Code)
	assert.Equal(t, http.StatusBadRequest, call(h, adminMobile, `{"name":"North","courtCount":9}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(h, adminMobile, `not json`).Code)
}

type failingService struct {
	err error
}

func (s failingService) RegisterLocation(context.Context, *models.RegisterLocationRequest) (*models.LocationResponse, error) {
	return nil, s.err
}

func TestHandler_Handle_ConcurrentModificationIsConflict(t *testing.T) {
	err := fmt.Errorf("%w: commit: pq: could not serialize access", catalog.ErrConcurrentModification)
	h := NewHandler(failingService{err: err}, memstore.NopLogger{})

	rec := call(h, adminMobile, `{"name":"Court Club","complexName":"Sports Complex","courtCount":2}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
