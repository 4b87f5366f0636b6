package mw

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

type stubResolver struct{}

func (stubResolver) FromHeader(h string) (domain.Caller, error) {
	switch h {
	case "":
		return domain.Caller{Key: domain.AnonymousCaller}, nil
	case "Bearer good":
		return domain.Caller{Key: "alice"}, nil
	default:
		return domain.Caller{}, errors.New("bad token")
	}
}

func TestIdentify(t *testing.T) {
	var seen domain.Caller
	h := Identify(stubResolver{}, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CallerFrom(r.Context())
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantKey    string
	}{
		{"anonymous", "", http.StatusOK, domain.AnonymousCaller},
		{"valid token", "Bearer good", http.StatusOK, "alice"},
		{"bad token", "Bearer bad", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = domain.Caller{}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if seen.Key != tt.wantKey {
				t.Errorf("caller = %q, want %q", seen.Key, tt.wantKey)
			}
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	h := RequireIdentity(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithCaller(req.Context(), domain.Caller{Key: "alice"}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("identified status = %d, want 200", rec.Code)
	}
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"tools.example.com", "*.internal.lan"}, logger.NewNop())(okHandler)

	tests := []struct {
		host string
		want int
	}{
		{"tools.example.com", http.StatusOK},
		{"shelf.internal.lan", http.StatusOK},
		{"TOOLS.example.com:8443", http.StatusOK},
		{"internal.lan", http.StatusForbidden},
		{"evil.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8"}, false, logger.NewNop())(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("allowed status = %d", rec.Code)
	}

	req.RemoteAddr = "192.168.1.1:5555"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("rejected status = %d", rec.Code)
	}
}

func TestLimiterAllow(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 2, RefillPerMin: 60})
	now := time.Now()

	for i := 0; i < 2; i++ {
		if ok, _, _ := l.allow("1.2.3.4", now); !ok {
			t.Fatalf("request %d denied within burst", i)
		}
	}
	ok, _, retry := l.allow("1.2.3.4", now)
	if ok {
		t.Fatal("request beyond burst allowed")
	}
	if retry != 1 {
		t.Errorf("retry = %d, want 1", retry)
	}

	if ok, _, _ := l.allow("5.6.7.8", now); !ok {
		t.Error("other client shares the bucket")
	}
	if ok, _, _ := l.allow("1.2.3.4", now.Add(time.Second)); !ok {
		t.Error("bucket did not refill")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 1, RefillPerMin: 1})(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "1.2.3.4:1000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
}

func TestRateLimitKeysIdentifiedCallers(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 1, RefillPerMin: 1})(okHandler)

	send := func(remote, caller string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = remote
		if caller != "" {
			req = req.WithContext(WithCaller(req.Context(), domain.Caller{Key: caller}))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := send("1.1.1.1:1", "alice"); got != http.StatusOK {
		t.Fatalf("alice first status = %d", got)
	}
	if got := send("2.2.2.2:1", "alice"); got != http.StatusTooManyRequests {
		t.Errorf("alice from another address status = %d, want 429", got)
	}
	if got := send("1.1.1.1:1", "bob"); got != http.StatusOK {
		t.Errorf("bob behind alice's address status = %d, want 200", got)
	}
	if got := send("1.1.1.1:1", ""); got != http.StatusOK {
		t.Errorf("anonymous status = %d, want 200", got)
	}
}
