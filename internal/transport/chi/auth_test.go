package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		path   string
		header string
		want   int
	}{
		{"no keys configured", nil, "/search", "", http.StatusOK},
		{"only blank keys", []string{"", ""}, "/search", "", http.StatusOK},
		{"missing header", []string{"secret"}, "/search", "", http.StatusUnauthorized},
		{"basic scheme", []string{"secret"}, "/search", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"wrong key", []string{"secret"}, "/search", "Bearer wrong-key", http.StatusUnauthorized},
		{"valid key", []string{"secret"}, "/search", "Bearer secret", http.StatusOK},
		{"second of two keys", []string{"key1", "key2"}, "/search", "Bearer key2", http.StatusOK},
		{"health is public", []string{"secret"}, "/health", "", http.StatusOK},
		{"metrics is public", []string{"secret"}, "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := BearerAuthMiddleware(tt.keys)(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want != http.StatusUnauthorized {
				return
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != ErrorCodeUnauthorized {
				t.Errorf("code = %s, want %s", errResp.Code, ErrorCodeUnauthorized)
			}
		})
	}
}
