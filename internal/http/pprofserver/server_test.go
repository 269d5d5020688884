package pprofserver

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

func gateRequest(t *testing.T, cfg Config, remoteAddr, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := authOrLocalOnly(next, cfg)

	req := httptest.NewRequest(http.MethodGet, "http://example/debug/pprof/", nil)
	req.RemoteAddr = remoteAddr
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestGate_LoopbackNeedsNoAuth(t *testing.T) {
	rr := gateRequest(t, Config{}, "127.0.0.1:12345", "")
	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected %d, got %d", http.StatusTeapot, rr.Code)
	}
}

func TestGate_RemoteWithoutCredsUnauthorized(t *testing.T) {
	rr := gateRequest(t, Config{}, "8.8.8.8:54444", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if rr.Header().Get("WWW-Authenticate") == "" {
		t.Fatal("expected WWW-Authenticate header to be set")
	}
}

func TestGate_RemoteWrongCredsUnauthorized(t *testing.T) {
	rr := gateRequest(t, Config{User: "u", Pass: "p"}, "8.8.8.8:54444", basic("u", "WRONG"))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestGate_RemoteCorrectCredsAllowed(t *testing.T) {
	rr := gateRequest(t, Config{User: "u", Pass: "p"}, "8.8.8.8:54444", basic("u", "p"))
	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected %d, got %d", http.StatusTeapot, rr.Code)
	}
}

func TestIsLoopback(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"127.0.0.1:80", true},
		{"[::1]:8080", true},
		{"127.0.0.1", true},
		{"8.8.8.8:443", false},
		{"example.com:80", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isLoopback(tc.in); got != tc.want {
			t.Fatalf("isLoopback(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
