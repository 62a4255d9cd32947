package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/services"
)

type stubRecommendationService struct {
	recs []models.Recommendation
	err  error
}

func (s *stubRecommendationService) Recommend(_ context.Context, _ *models.RecommendationRequest, _ uint) ([]models.Recommendation, error) {
	return s.recs, s.err
}

func newRecommendationTestRouter(stub *stubRecommendationService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewRecommendationHandler(stub, discardLogger())
	router := gin.New()
	router.POST("/api/v1/recommendations", func(c *gin.Context) {
		c.Set("user_id", uint(7))
		c.Next()
	}, handler.Recommend)
	return router
}

func postRecommendations(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations",
		strings.NewReader(`{"responses":[{"question":"What subjects do you enjoy?","answer":"Math"}]}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRecommendationHandler_Recommend(t *testing.T) {
	t.Run("BodyIsBareArray", func(t *testing.T) {
		router := newRecommendationTestRouter(&stubRecommendationService{
			recs: []models.Recommendation{
				{Career: "Data Scientist", Reason: "Strong quantitative interests"},
				{Career: "Statistician", Reason: "Enjoys mathematics"},
				{Career: "Actuary", Reason: "Analytical mindset"},
			},
		})

		w := postRecommendations(router)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}

		var recs []models.Recommendation
		if err := json.Unmarshal(w.Body.Bytes(), &recs); err != nil {
			t.Fatalf("body is not a JSON array: %v (body: %s)", err, w.Body.String())
		}
		if len(recs) != 3 || recs[0].Career != "Data Scientist" {
			t.Errorf("unexpected recommendations: %+v", recs)
		}
	})

	t.Run("NoRecommendationsIsServerError", func(t *testing.T) {
		router := newRecommendationTestRouter(&stubRecommendationService{
			err: services.ErrNoRecommendations,
		})

		w := postRecommendations(router)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}

		var body models.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if !strings.Contains(body.Message, "Could not generate recommendations") {
			t.Errorf("Message = %q", body.Message)
		}
	})
}
