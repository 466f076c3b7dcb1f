package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	allowedOrigins := []string{"http://localhost:3000", "https://pipegen.example.com"}
	handler := CORS(allowedOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	tests := []struct {
		name                   string
		method                 string
		origin                 string
		expectAllowOrigin      string
		expectAllowCredentials string
		expectStatusCode       int
	}{
		{
			name:                   "Allowed origin with credentials",
			method:                 "GET",
			origin:                 "http://localhost:3000",
			expectAllowOrigin:      "http://localhost:3000",
			expectAllowCredentials: "true",
			expectStatusCode:       http.StatusOK,
		},
		{
			name:                   "Another allowed origin",
			method:                 "POST",
			origin:                 "https://pipegen.example.com",
			expectAllowOrigin:      "https://pipegen.example.com",
			expectAllowCredentials: "true",
			expectStatusCode:       http.StatusOK,
		},
		{
			name:                   "Disallowed origin",
			method:                 "GET",
			origin:                 "https://evil.com",
			expectAllowOrigin:      "",
			expectAllowCredentials: "",
			expectStatusCode:       http.StatusOK,
		},
		{
			name:                   "No origin header",
			method:                 "GET",
			origin:                 "",
			expectAllowOrigin:      "",
			expectAllowCredentials: "",
			expectStatusCode:       http.StatusOK,
		},
		{
			name:                   "Preflight request allowed origin",
			method:                 "OPTIONS",
			origin:                 "http://localhost:3000",
			expectAllowOrigin:      "http://localhost:3000",
			expectAllowCredentials: "true",
			expectStatusCode:       http.StatusNoContent,
		},
		{
			name:                   "Preflight request disallowed origin",
			method:                 "OPTIONS",
			origin:                 "https://evil.com",
			expectAllowOrigin:      "",
			expectAllowCredentials: "",
			expectStatusCode:       http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectStatusCode {
				t.Errorf("Expected status code %d, got %d", tt.expectStatusCode, rr.Code)
			}

			allowOrigin := rr.Header().Get("Access-Control-Allow-Origin")
			if allowOrigin != tt.expectAllowOrigin {
				t.Errorf("Expected Access-Control-Allow-Origin '%s', got '%s'", tt.expectAllowOrigin, allowOrigin)
			}

			allowCredentials := rr.Header().Get("Access-Control-Allow-Credentials")
			if allowCredentials != tt.expectAllowCredentials {
				t.Errorf("Expected Access-Control-Allow-Credentials '%s', got '%s'", tt.expectAllowCredentials, allowCredentials)
			}
		})
	}
}
