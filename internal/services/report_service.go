package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

const attemptsSheet = "Attempts"

// AttemptsWorkbook exports completed quiz attempts as an xlsx workbook for staff.
func (s *reportService) AttemptsWorkbook(ctx context.Context, filters repositories.AttemptFilters) ([]byte, error) {
	completed := true
	filters.Completed = &completed
	// The export ignores pagination; it is bounded by the date filters
	filters.Limit = 0
	filters.Offset = 0

	attempts, _, err := s.repo.Attempt().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	rows, err := s.buildRows(ctx, attempts)
	if err != nil {
		return nil, err
	}

	data, err := renderAttemptsWorkbook(rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Attempts workbook generated", "rows", len(rows))

	return data, nil
}

func (s *reportService) buildRows(ctx context.Context, attempts []*models.QuizAttempt) ([]AttemptReportRow, error) {
	emails := make(map[uint]string)
	rows := make([]AttemptReportRow, 0, len(attempts))

	for _, attempt := range attempts {
		email, ok := emails[attempt.UserID]
		if !ok {
			user, err := s.repo.User().GetByID(ctx, nil, attempt.UserID)
			if err != nil {
				if !repositories.IsNotFoundError(err) {
					return nil, fmt.Errorf("failed to resolve attempt user: %w", err)
				}
				email = ""
			} else {
				email = user.Email
			}
			emails[attempt.UserID] = email
		}

		completedAt := ""
		if attempt.CompletedAt != nil {
			completedAt = attempt.CompletedAt.Format(time.RFC3339)
		}

		rows = append(rows, AttemptReportRow{
			AttemptID:   attempt.ID,
			UserEmail:   email,
			QuizTitle:   attempt.Quiz.Title,
			Score:       attempt.Score,
			StartedAt:   attempt.StartedAt.Format(time.RFC3339),
			CompletedAt: completedAt,
		})
	}

	return rows, nil
}

func renderAttemptsWorkbook(rows []AttemptReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attemptsSheet); err != nil {
		return nil, fmt.Errorf("failed to set sheet name: %w", err)
	}

	header := []interface{}{"Attempt ID", "User Email", "Quiz", "Score", "Started At", "Completed At"}
	if err := f.SetSheetRow(attemptsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		score := ""
		if row.Score != nil {
			score = fmt.Sprintf("%.2f", *row.Score)
		}
		values := []interface{}{
			row.AttemptID,
			row.UserEmail,
			row.QuizTitle,
			score,
			row.StartedAt,
			row.CompletedAt,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute row anchor: %w", err)
		}
		if err := f.SetSheetRow(attemptsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return buf.Bytes(), nil
}
