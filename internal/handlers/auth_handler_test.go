package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nextstep-app/career-service/internal/auth"
	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/services"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubAuthService serves canned results and records the tokens it was handed.
type stubAuthService struct {
	user *models.User

	refreshedWith string
	loggedOutWith string
	validStatus   auth.TokenStatus
	validClaims   *auth.Claims
}

func (s *stubAuthService) Register(_ context.Context, _ *models.RegisterRequest) (*models.User, error) {
	return s.user, nil
}

func (s *stubAuthService) Login(_ context.Context, _ *models.LoginRequest) (*services.LoginResult, error) {
	return &services.LoginResult{
		User:         s.user,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil
}

func (s *stubAuthService) Refresh(_ context.Context, refreshToken string) (*models.RefreshResponse, error) {
	s.refreshedWith = refreshToken
	return &models.RefreshResponse{AccessToken: "fresh-access-token"}, nil
}

func (s *stubAuthService) Logout(_ context.Context, refreshToken string) error {
	s.loggedOutWith = refreshToken
	return nil
}

func (s *stubAuthService) GetUser(_ context.Context, _ uint) (*models.User, error) {
	return s.user, nil
}

func (s *stubAuthService) ChangePassword(_ context.Context, _ uint, _ *models.ChangePasswordRequest) error {
	return nil
}

func (s *stubAuthService) RequestPasswordReset(_ context.Context, _ *models.PasswordResetRequest) error {
	return nil
}

func (s *stubAuthService) ConfirmPasswordReset(_ context.Context, _ *models.PasswordResetConfirmRequest) error {
	return nil
}

func (s *stubAuthService) ValidateAccess(_ context.Context, _ string) auth.ValidationResult {
	return auth.ValidationResult{Status: s.validStatus, Claims: s.validClaims}
}

func newAuthTestRouter(stub *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(stub, CookieConfig{MaxAge: 3600}, discardLogger())
	router := gin.New()
	router.POST("/api/v1/auth/login", handler.Login)
	router.POST("/api/v1/auth/refresh", handler.Refresh)
	router.POST("/api/v1/auth/logout", handler.Logout)
	return router
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubAuthService{user: &models.User{ID: 7, Email: "amina@example.com"}}
	router := newAuthTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"amina@example.com","password":"correct-horse"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.AccessToken != "access-token" {
		t.Errorf("AccessToken = %q", body.AccessToken)
	}
	if strings.Contains(w.Body.String(), "refresh-token") {
		t.Error("refresh token leaked into the response body")
	}

	cookie := findCookie(t, w.Result(), "refresh_token")
	if cookie.Value != "refresh-token" {
		t.Errorf("cookie value = %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("refresh cookie must be HttpOnly")
	}
	if cookie.Path != "/api/v1/auth" {
		t.Errorf("cookie path = %q, want /api/v1/auth", cookie.Path)
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("cookie SameSite = %v, want Lax", cookie.SameSite)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("FromCookie", func(t *testing.T) {
		stub := &stubAuthService{}
		router := newAuthTestRouter(stub)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if stub.refreshedWith != "cookie-refresh" {
			t.Errorf("refreshed with %q, want cookie value", stub.refreshedWith)
		}
	})

	t.Run("BodyFallback", func(t *testing.T) {
		stub := &stubAuthService{}
		router := newAuthTestRouter(stub)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
			strings.NewReader(`{"refresh_token":"body-refresh"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if stub.refreshedWith != "body-refresh" {
			t.Errorf("refreshed with %q, want body value", stub.refreshedWith)
		}
	})

	t.Run("MissingToken", func(t *testing.T) {
		router := newAuthTestRouter(&stubAuthService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubAuthService{}
	router := newAuthTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if stub.loggedOutWith != "cookie-refresh" {
		t.Errorf("logged out with %q", stub.loggedOutWith)
	}

	cookie := findCookie(t, w.Result(), "refresh_token")
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("refresh cookie not cleared: value=%q max-age=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(stub *stubAuthService) *gin.Engine {
		mw := NewAuthMiddleware(stub)
		router := gin.New()
		router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
			userID, _ := CurrentUserID(c)
			c.JSON(http.StatusOK, gin.H{"user_id": userID})
		})
		router.GET("/staff", mw.RequireAuth(), mw.RequireStaff(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	get := func(router *gin.Engine, path, header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("MissingHeader", func(t *testing.T) {
		router := newRouter(&stubAuthService{})
		if w := get(router, "/protected", ""); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		router := newRouter(&stubAuthService{validStatus: auth.TokenExpired})
		w := get(router, "/protected", "Bearer stale")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Token is expired") {
			t.Errorf("body = %s", w.Body.String())
		}
	})

	t.Run("ValidToken", func(t *testing.T) {
		stub := &stubAuthService{
			validStatus: auth.TokenValid,
			validClaims: &auth.Claims{UserID: 7, Email: "amina@example.com"},
		}
		router := newRouter(stub)
		w := get(router, "/protected", "Bearer good")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"user_id":7`) {
			t.Errorf("body = %s", w.Body.String())
		}
	})

	t.Run("NonStaffForbidden", func(t *testing.T) {
		stub := &stubAuthService{
			validStatus: auth.TokenValid,
			validClaims: &auth.Claims{UserID: 7},
		}
		router := newRouter(stub)
		if w := get(router, "/staff", "Bearer good"); w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("StaffAllowed", func(t *testing.T) {
		stub := &stubAuthService{
			validStatus: auth.TokenValid,
			validClaims: &auth.Claims{UserID: 8, IsStaff: true},
		}
		router := newRouter(stub)
		if w := get(router, "/staff", "Bearer good"); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}
