package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/ratelimit"
	"github.com/m04kA/SMC-BookingEngine/internal/validation"
)

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    map[string]any
		wantErr bool
	}{
		{"object", `{"reason":"x"}`, map[string]any{"reason": "x"}, false},
		{"empty body", ``, map[string]any{}, false},
		{"array", `[1,2]`, nil, true},
		{"null", `null`, nil, true},
		{"broken", `{"reason":`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			got, err := DecodePayload(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedBody)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRespondRejection(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ok := RespondRejection(rec, "req-1", &ratelimit.LimitError{RetryAfter: 90500 * time.Millisecond})
		require.True(t, ok)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "91", rec.Header().Get("Retry-After"))

		var body RateLimitedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, CodeRateLimited, body.Code)
		assert.Equal(t, 91, body.RetryAfterSeconds)
	})

	t.Run("validation", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := validation.NewError(domain.OpCreate, validation.FieldError{
			Field: "duration", Message: "must be at least 15", Code: validation.CodeOutOfRange, Value: float64(5),
		})
		require.True(t, RespondRejection(rec, "req-2", err))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body ValidationErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "req-2", body.RequestID)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "duration", body.Errors[0].Field)
	})

	t.Run("transition", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := &domain.TransitionError{Operation: "cancel", Current: domain.StatusCompleted, Requested: domain.StatusCancelled}
		require.True(t, RespondRejection(rec, "", err))

		assert.Equal(t, http.StatusConflict, rec.Code)
		var body TransitionErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "COMPLETED", body.CurrentStatus)
		assert.Equal(t, "CANCELLED", body.RequestedStatus)
	})

	t.Run("other errors are left to the caller", func(t *testing.T) {
		rec := httptest.NewRecorder()
		assert.False(t, RespondRejection(rec, "", errors.New("boom")))
		assert.Equal(t, 0, rec.Body.Len())
	})
}
