package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

func TestReportService_AttemptsWorkbook(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	svc := NewReportService(repo, discardLogger())

	user := seedUser(t, repo, "amina@example.com", "correct-horse", true)
	quiz := seedQuiz(repo, true)

	now := time.Now()
	score := 75.0
	attempts := []*models.QuizAttempt{
		{UserID: user.ID, QuizID: quiz.ID, Quiz: *quiz, Score: &score, CompletedAt: &now},
		{UserID: user.ID, QuizID: quiz.ID, Quiz: *quiz}, // still in progress, excluded
		{UserID: 999, QuizID: quiz.ID, Quiz: *quiz, CompletedAt: &now},
	}
	for _, a := range attempts {
		if err := repo.attempts.Create(ctx, nil, a); err != nil {
			t.Fatalf("seed attempt: %v", err)
		}
	}

	data, err := svc.AttemptsWorkbook(ctx, repositories.AttemptFilters{})
	if err != nil {
		t.Fatalf("AttemptsWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not parse: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Attempts")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	// Header plus the two completed attempts
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Attempt ID" || rows[0][1] != "User Email" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "amina@example.com" {
		t.Errorf("email cell = %q, want amina@example.com", rows[1][1])
	}
	if rows[1][2] != quiz.Title {
		t.Errorf("quiz cell = %q, want %q", rows[1][2], quiz.Title)
	}
	if rows[1][3] != "75.00" {
		t.Errorf("score cell = %q, want 75.00", rows[1][3])
	}
	// Unknown users render with a blank email instead of failing the export
	if rows[2][1] != "" {
		t.Errorf("email cell for unknown user = %q, want empty", rows[2][1])
	}
}
