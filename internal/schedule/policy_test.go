package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var wErr *WindowError
	require.True(t, errors.As(err, &wErr), "expected *WindowError, got %v", err)
	return wErr.Code
}

func TestDefaultPolicy_IsStrictVariant(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 5*time.Minute, p.SkewBuffer)
	assert.Equal(t, time.Hour, p.MinLead)
	assert.Equal(t, 90*24*time.Hour, p.MaxHorizon)
}

func TestPolicy_Check_Strict(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		at       time.Time
		wantCode string
	}{
		{"two hours ahead", now.Add(2 * time.Hour), ""},
		{"exactly min lead", now.Add(time.Hour), ""},
		{"just under min lead", now.Add(59 * time.Minute), CodeLeadTimeTooShort},
		{"inside skew buffer", now.Add(-3 * time.Minute), CodeLeadTimeTooShort},
		{"one hour ago", now.Add(-time.Hour), CodeScheduledInPast},
		{"exactly horizon", now.Add(90 * 24 * time.Hour), ""},
		{"past horizon", now.Add(90*24*time.Hour + time.Second), CodeBeyondHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Check(tt.at, now)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrOutsideWindow)
			assert.Equal(t, tt.wantCode, codeOf(t, err))
		})
	}
}

func TestPolicy_Check_BufferOnly(t *testing.T) {
	p := Policy{SkewBuffer: 5 * time.Minute}

	assert.NoError(t, p.Check(now, now))
	assert.NoError(t, p.Check(now.Add(-5*time.Minute), now))
	assert.NoError(t, p.Check(now.Add(365*24*time.Hour), now), "no horizon configured")

	err := p.Check(now.Add(-5*time.Minute-time.Nanosecond), now)
	require.Error(t, err)
	assert.Equal(t, CodeScheduledInPast, codeOf(t, err))
}

func TestPolicy_Check_AcceptanceMatchesBounds(t *testing.T) {
	p := DefaultPolicy()

	for offset := -2 * time.Hour; offset <= 92*24*time.Hour; offset += 37 * time.Minute {
		at := now.Add(offset)
		want := !at.Before(now.Add(-p.SkewBuffer)) &&
			!at.Before(now.Add(p.MinLead)) &&
			!at.After(now.Add(p.MaxHorizon))

		assert.Equal(t, want, p.Check(at, now) == nil, "offset %s", offset)
	}
}

func TestWindowError_Message(t *testing.T) {
	err := DefaultPolicy().Check(now.Add(100*24*time.Hour), now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "within 90 days")

	err = DefaultPolicy().Check(now.Add(10*time.Minute), now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1 hour")
}
