package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// QA is a single answered quiz question used to build the profile summary.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Recommendation is one suggested career path.
type Recommendation struct {
	Career string `json:"career"`
	Reason string `json:"reason"`
}

// Recommender produces career suggestions from quiz responses.
type Recommender interface {
	Recommend(ctx context.Context, responses []QA) ([]Recommendation, error)
}

const systemPrompt = "You are a professional career counselor. Based on the user's " +
	"profile summary below, suggest exactly 3 distinct career paths. For each, give " +
	"the career name and a short reason why it fits the user."

type geminiRecommender struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiRecommender wraps an already constructed genai client. The client
// is injected so tests and callers control its lifecycle.
func NewGeminiRecommender(client *genai.Client, model string, logger *slog.Logger) Recommender {
	return &geminiRecommender{
		client: client,
		model:  model,
		logger: logger,
	}
}

func (g *geminiRecommender) Recommend(ctx context.Context, responses []QA) ([]Recommendation, error) {
	if g.client == nil {
		return nil, fmt.Errorf("genai client not initialized")
	}

	prompt := systemPrompt + "\n\nUser Profile Summary: " + FlattenResponses(responses)

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   recommendationSchema(),
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		config,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	return ParseRecommendations(result.Text(), g.logger), nil
}

// FlattenResponses renders answered questions as "Question: Answer" pairs
// joined with "; ".
func FlattenResponses(responses []QA) string {
	pairs := make([]string, 0, len(responses))
	for _, r := range responses {
		pairs = append(pairs, fmt.Sprintf("%s: %s", r.Question, r.Answer))
	}
	return strings.Join(pairs, "; ")
}

// ParseRecommendations decodes the model output. Malformed provider output is
// logged and yields an empty result rather than an error: the caller treats
// recommendations as best effort.
func ParseRecommendations(raw string, logger *slog.Logger) []Recommendation {
	var recs []Recommendation
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		logger.Error("Failed to parse recommendation response", "error", err, "raw", raw)
		return []Recommendation{}
	}

	for _, r := range recs {
		if r.Career == "" {
			logger.Error("Recommendation response missing career field", "raw", raw)
			return []Recommendation{}
		}
	}

	return recs
}

func recommendationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"career": {Type: genai.TypeString},
				"reason": {Type: genai.TypeString},
			},
			Required: []string{"career", "reason"},
		},
	}
}
