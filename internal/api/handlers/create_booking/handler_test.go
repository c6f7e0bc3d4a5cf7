package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/api/handlers"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/service/bookings/models"
	"github.com/m04kA/SMC-BookingEngine/internal/validation"
)

const requestID = "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f"

type fakeService struct {
	err     error
	called  bool
	caller  string
	payload map[string]any
}

func (s *fakeService) Create(_ context.Context, caller string, payload map[string]any) (*models.BookingResponse, error) {
	s.called, s.caller, s.payload = true, caller, payload
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: "6f1c2d9e-8a4b-4c1e-9f7d-2b3a4c5d6e7f", Status: "PENDING"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(t *testing.T, svc *fakeService, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := middleware.RequestID(middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.RemoteAddr = "198.51.100.7:40000"
	req.Header.Set(middleware.RequestIDHeader, requestID)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	rec := serve(t, svc, `{"serviceId":"6f1c2d9e-8a4b-4c1e-9f7d-2b3a4c5d6e7f","duration":60}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ip:198.51.100.7", svc.caller)
	assert.Equal(t, map[string]any{
		"serviceId": "6f1c2d9e-8a4b-4c1e-9f7d-2b3a4c5d6e7f",
		"duration":  float64(60),
	}, svc.payload)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PENDING", body.Status)
}

func TestHandle_ValidationErrorCarriesRequestID(t *testing.T) {
	svc := &fakeService{err: &validation.Error{
		Operation: domain.OpCreate,
		Errors: []validation.FieldError{
			{Field: "duration", Message: "must be at least 15", Code: validation.CodeOutOfRange, Value: float64(5)},
		},
	}}
	rec := serve(t, svc, `{"duration":5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, handlers.CodeValidationError, body.Code)
	assert.Equal(t, requestID, body.RequestID)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "duration", body.Errors[0].Field)
	assert.Equal(t, validation.CodeOutOfRange, body.Errors[0].Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	svc := &fakeService{}
	rec := serve(t, svc, `[1, 2]`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), handlers.CodeMalformedRequest)
	assert.False(t, svc.called, "service is not called for malformed bodies")
}

func TestHandle_InternalError(t *testing.T) {
	rec := serve(t, &fakeService{err: errors.New("db is down")}, `{}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db is down")
}
