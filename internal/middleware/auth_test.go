package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func performRequest(authHeader string) (*httptest.ResponseRecorder, string) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var captured string
	router.GET("/protected", RequireGitHubToken(), func(c *gin.Context) {
		captured = TokenFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder, captured
}

func TestRequireGitHubTokenMissingHeader(t *testing.T) {
	recorder, _ := performRequest("")
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", recorder.Code)
	}
}

func TestRequireGitHubTokenBearerScheme(t *testing.T) {
	recorder, token := performRequest("Bearer ghp_abc123")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if token != "ghp_abc123" {
		t.Errorf("expected extracted token, got %q", token)
	}
}

func TestRequireGitHubTokenLegacyScheme(t *testing.T) {
	recorder, token := performRequest("token ghp_abc123")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if token != "ghp_abc123" {
		t.Errorf("expected extracted token, got %q", token)
	}
}

func TestRequireGitHubTokenRejectsMalformedHeaders(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "Bearer a b"} {
		recorder, _ := performRequest(header)
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, recorder.Code)
		}
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"token abc", "abc"},
		{"abc", ""},
		{"Digest abc", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := extractToken(tt.header); got != tt.want {
			t.Errorf("extractToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
