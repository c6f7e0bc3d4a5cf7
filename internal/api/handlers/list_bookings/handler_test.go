package list_bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
)

type fakeService struct {
	err    error
	caller string
	query  map[string]any
}

func (s *fakeService) List(_ context.Context, caller string, query map[string]any) (*models.BookingListResponse, error) {
	s.caller, s.query = caller, query
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{
		Bookings: []models.BookingResponse{{ID: "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f", Status: "PENDING"}},
		Total:    21,
		Page:     2,
		Limit:    20,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(t *testing.T, svc *fakeService, target string) *httptest.ResponseRecorder {
	t.Helper()
	h := middleware.RequestID(middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "198.51.100.7:40000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle_List(t *testing.T) {
	svc := &fakeService{}
	rec := serve(t, svc, "/api/v1/bookings?page=2&status=PENDING&status=CONFIRMED&sortOrder=desc&extra=1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ip:198.51.100.7", svc.caller)
	assert.Equal(t, map[string]any{
		"page":      "2",
		"status":    []string{"PENDING", "CONFIRMED"},
		"sortOrder": "desc",
	}, svc.query)

	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 21, body.Total)
	assert.Equal(t, 2, body.Page)
	require.Len(t, body.Bookings, 1)
}

func TestHandle_InternalError(t *testing.T) {
	rec := serve(t, &fakeService{err: errors.New("db is down")}, "/api/v1/bookings")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), handlers.CodeInternalError)
}
