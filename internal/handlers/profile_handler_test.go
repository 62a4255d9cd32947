package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nextstep-app/career-service/internal/models"
)

type stubProfileService struct {
	gotReq *models.ProfileUpdateRequest
}

func (s *stubProfileService) Get(_ context.Context, userID uint) (*models.UserProfile, error) {
	return &models.UserProfile{UserID: userID}, nil
}

func (s *stubProfileService) Update(_ context.Context, userID uint, req *models.ProfileUpdateRequest) (*models.UserProfile, error) {
	s.gotReq = req
	return &models.UserProfile{UserID: userID}, nil
}

func newProfileTestRouter(stub *stubProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewProfileHandler(stub, discardLogger())
	router := gin.New()
	authed := func(c *gin.Context) {
		c.Set("user_id", uint(7))
		c.Next()
	}
	router.GET("/api/v1/profile", authed, handler.GetProfile)
	router.PUT("/api/v1/profile", authed, handler.UpdateProfile)
	return router
}

func putProfile(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	t.Run("InterestsAsTagIDs", func(t *testing.T) {
		stub := &stubProfileService{}
		router := newProfileTestRouter(stub)

		w := putProfile(router, `{"interests":[1,2,3]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		if len(stub.gotReq.Interests) != 3 || stub.gotReq.Interests[0] != 1 {
			t.Errorf("Interests = %v, want [1 2 3]", stub.gotReq.Interests)
		}
	})

	t.Run("InterestsAsStringsRejected", func(t *testing.T) {
		stub := &stubProfileService{}
		router := newProfileTestRouter(stub)

		w := putProfile(router, `{"interests":["science","math"]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if stub.gotReq != nil {
			t.Error("service should not be called on a malformed payload")
		}
	})

	t.Run("InterestsAsObjectRejected", func(t *testing.T) {
		router := newProfileTestRouter(&stubProfileService{})

		if w := putProfile(router, `{"interests":{"tag":1}}`); w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		handler := NewProfileHandler(&stubProfileService{}, discardLogger())
		router := gin.New()
		router.GET("/api/v1/profile", handler.GetProfile)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
