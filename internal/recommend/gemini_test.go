package recommend

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlattenResponses(t *testing.T) {
	responses := []QA{
		{Question: "What subjects do you enjoy?", Answer: "Math and physics"},
		{Question: "Preferred work style?", Answer: "Independent"},
	}

	want := "What subjects do you enjoy?: Math and physics; Preferred work style?: Independent"
	if got := FlattenResponses(responses); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := FlattenResponses(nil); got != "" {
		t.Errorf("Expected empty string for no responses, got %q", got)
	}
}

func TestParseRecommendations(t *testing.T) {
	logger := discardLogger()

	t.Run("ValidResponse", func(t *testing.T) {
		raw := `[
			{"career": "Data Scientist", "reason": "Strong analytical interests"},
			{"career": "Research Engineer", "reason": "Enjoys independent work"},
			{"career": "Actuary", "reason": "Mathematical aptitude"}
		]`

		recs := ParseRecommendations(raw, logger)
		if len(recs) != 3 {
			t.Fatalf("Expected 3 recommendations, got %d", len(recs))
		}
		if recs[0].Career != "Data Scientist" {
			t.Errorf("Unexpected first career %q", recs[0].Career)
		}
		if recs[2].Reason != "Mathematical aptitude" {
			t.Errorf("Unexpected third reason %q", recs[2].Reason)
		}
	})

	t.Run("MalformedJSONYieldsEmpty", func(t *testing.T) {
		recs := ParseRecommendations("I think you should be a pilot!", logger)
		if len(recs) != 0 {
			t.Fatalf("Expected empty result for malformed output, got %d", len(recs))
		}
	})

	t.Run("MissingCareerFieldYieldsEmpty", func(t *testing.T) {
		raw := `[{"career": "", "reason": "no name"}]`
		recs := ParseRecommendations(raw, logger)
		if len(recs) != 0 {
			t.Fatalf("Expected empty result for missing career, got %d", len(recs))
		}
	})

	t.Run("WrongShapeYieldsEmpty", func(t *testing.T) {
		recs := ParseRecommendations(`{"career": "Pilot"}`, logger)
		if len(recs) != 0 {
			t.Fatalf("Expected empty result for non-array output, got %d", len(recs))
		}
	})
}
