package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"venuebook/internal/shared/middleware"
	"venuebook/pkg/logger"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService()

	r := gin.New()
	r.Use(middleware.ErrorHandler(logger.Discard(), false))
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(svc.tokens))
	NewRouter(NewController(svc)).SetupRoutes(api)
	return r
}

func post(r *gin.Engine, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndFetchProfile(t *testing.T) {
	r := newTestEngine()

	w := post(r, "/api/v1/users/register", `{"name":"Karim","email":"karim@example.com","password":"password123","phone":"01712345678"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}

	var env struct {
		Success bool         `json:"success"`
		Data    AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil || !env.Success {
		t.Fatalf("bad envelope %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password123") {
		t.Fatal("password leaked in response")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+env.Data.Tokens.AccessToken)
	pw := httptest.NewRecorder()
	r.ServeHTTP(pw, req)
	if pw.Code != http.StatusOK || !strings.Contains(pw.Body.String(), "karim@example.com") {
		t.Fatalf("profile status = %d: %s", pw.Code, pw.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	r := newTestEngine()
	w := post(r, "/api/v1/users/register", `{"name":"K","email":"not-an-email","password":"short"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	for _, field := range []string{`"email"`, `"password"`, `"name"`} {
		if !strings.Contains(w.Body.String(), field) {
			t.Errorf("missing field error for %s in %s", field, w.Body.String())
		}
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	r := newTestEngine()
	w := post(r, "/api/v1/users/login", `{"email":"ghost@example.com","password":"whatever1"}`, "")
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Fatalf("got %d %s", w.Code, w.Body.String())
	}
}
