package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingEngine/internal/ratelimit"
)

func TestAuth(t *testing.T) {
	var gotCaller string
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCaller = CallerID(r)
	}))

	t.Run("user header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(UserIDHeader, "0B9E8D7C-6A5F-4E3D-8C2B-1A0F9E8D7C6B")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user:0b9e8d7c-6a5f-4e3d-8c2b-1a0f9e8d7c6b", gotCaller)
	})

	t.Run("anonymous falls back to IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.7:51234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ip:10.0.0.7", gotCaller)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(UserIDHeader, "42")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func mustProxies(t *testing.T, cidrs ...string) *TrustedProxies {
	t.Helper()
	proxies, err := ParseTrustedProxies(cidrs)
	require.NoError(t, err)
	return proxies
}

func resolvedIP(proxies *TrustedProxies, req *http.Request) string {
	var got string
	RealIP(proxies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIP(r)
	})).ServeHTTP(httptest.NewRecorder(), req)
	return got
}

func TestClientIP_IgnoresHeadersFromUntrustedPeer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:40000"
	req.Header.Set(ForwardedForHeader, "203.0.113.5")
	req.Header.Set(RealIPHeader, "203.0.113.6")

	assert.Equal(t, "198.51.100.7", resolvedIP(mustProxies(t), req))
	assert.Equal(t, "198.51.100.7", resolvedIP(mustProxies(t, "10.0.0.0/8"), req))
	// без RealIP заголовки тоже не читаются
	assert.Equal(t, "198.51.100.7", ClientIP(req))
}

func TestClientIP_TrustedProxyChain(t *testing.T) {
	proxies := mustProxies(t, "10.0.0.0/8")

	tests := []struct {
		name      string
		forwarded string
		realIP    string
		want      string
	}{
		{"single hop", "203.0.113.5", "", "203.0.113.5"},
		{"spoofed leftmost entry", "1.2.3.4, 203.0.113.5, 10.0.0.2", "", "203.0.113.5"},
		{"only proxies", "10.0.0.3, 10.0.0.2", "", "10.0.0.3"},
		{"garbage hop", "203.0.113.5, nonsense", "", "10.0.0.1"},
		{"real ip header", "", "198.51.100.2", "198.51.100.2"},
		{"no headers", "", "", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:8080"
			if tt.forwarded != "" {
				req.Header.Set(ForwardedForHeader, tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set(RealIPHeader, tt.realIP)
			}
			assert.Equal(t, tt.want, resolvedIP(proxies, req))
		})
	}
}

func TestParseTrustedProxies_Invalid(t *testing.T) {
	_, err := ParseTrustedProxies([]string{"10.0.0.1"})
	assert.Error(t, err)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Смена X-Forwarded-For не должна давать анонимному клиенту новый счётчик
func TestCallerID_RotatingForwardedForSharesStrictCounter(t *testing.T) {
	clock := fixedClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(clock), nil, nopLogger{})

	var allowed []bool
	h := RealIP(mustProxies(t, "10.0.0.0/8"))(Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := limiter.Allow(r.Context(), CallerID(r), ratelimit.TierStrict)
		if err != nil {
			assert.ErrorIs(t, err, ratelimit.ErrRateLimited)
		}
		allowed = append(allowed, err == nil)
	})))

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.RemoteAddr = "198.51.100.7:40000"
		req.Header.Set(ForwardedForHeader, fmt.Sprintf("203.0.113.%d", i+1))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, allowed, 20)
	for i, ok := range allowed {
		assert.Equal(t, i < 5, ok, "request %d", i+1)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f", seen)
}

type recordedRequest struct {
	method, path string
	status       int
}

type fakeMetrics struct {
	requests []recordedRequest
}

func (m *fakeMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.requests = append(m.requests, recordedRequest{method, path, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/abc", nil))

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{http.MethodGet, "/bookings/{bookingId}", http.StatusNotFound}, m.requests[0])
}
