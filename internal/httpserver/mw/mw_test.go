package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/logger"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAllowOnlyCIDRS(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		remote  string
		want    int
	}{
		{name: "loopback allowed", allowed: []string{"127.0.0.0/8"}, remote: "127.0.0.1:5000", want: http.StatusNoContent},
		{name: "lan rejected", allowed: []string{"127.0.0.0/8"}, remote: "192.168.1.20:5000", want: http.StatusForbidden},
		{name: "exact ipv6", allowed: []string{"::1"}, remote: "[::1]:5000", want: http.StatusNoContent},
		{name: "empty passthrough", allowed: nil, remote: "10.0.0.1:5000", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AllowOnlyCIDRS(tt.allowed, false, logger.NewNop())(ok)
			req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
			req.RemoteAddr = tt.remote
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestEnforceHost(t *testing.T) {
	allowed := []string{"127.0.0.1:7788", "localhost:7788", "*.tacto.test"}
	tests := []struct {
		host string
		want int
	}{
		{host: "127.0.0.1:7788", want: http.StatusNoContent},
		{host: "LOCALHOST:7788", want: http.StatusNoContent},
		{host: "panel.tacto.test", want: http.StatusNoContent},
		{host: "tacto.test", want: http.StatusMisdirectedRequest},
		{host: "evil.example:7788", want: http.StatusMisdirectedRequest},
		{host: "localhost:8080", want: http.StatusMisdirectedRequest},
	}

	h := EnforceHost(allowed, logger.NewNop())(ok)
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("Host %q: status = %d, want %d", tt.host, rec.Code, tt.want)
			}
		})
	}
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	h := RateLimit(RateLimitConfig{Burst: 2, RefillPerMin: 1})(ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/reload", nil)
		req.RemoteAddr = "127.0.0.1:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests && rec.Header().Get("Retry-After") == "" {
			t.Error("rejected response without Retry-After")
		}
	}

	want := []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", codes, want)
		}
	}

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	req.RemoteAddr = "127.0.0.2:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("second client status = %d, want 204", rec.Code)
	}
}

func TestLimiter_ForgetsIdleClients(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, RefillPerMin: 1, IdleTTL: time.Minute})
	now := time.Now()
	l.now = func() time.Time { return now }

	if ok, _ := l.reserve("a"); !ok {
		t.Fatal("first request should pass")
	}
	if ok, wait := l.reserve("a"); ok || wait <= 0 {
		t.Fatalf("second request = %v, %v, want rejection with a wait", ok, wait)
	}

	now = now.Add(2 * time.Minute)
	l.reserve("b")
	if _, found := l.clients["a"]; found {
		t.Error("idle client should have been swept")
	}
}

func TestLog_RecordsStatus(t *testing.T) {
	h := Log(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("body"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "body" {
		t.Errorf("response = %d %q", rec.Code, rec.Body.String())
	}
}
