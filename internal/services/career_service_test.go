package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/validator"
)

func newCareerFixture() (*mockRepository, CareerService) {
	repo := newMockRepository()
	svc := NewCareerService(repo, discardLogger(), validator.New())
	return repo, svc
}

func TestCareerService_RebuildContentText(t *testing.T) {
	ctx := context.Background()

	t.Run("ComputesAndPersists", func(t *testing.T) {
		repo, svc := newCareerFixture()
		domain := "technology"
		career := &models.Career{
			Title:       "Data Scientist",
			Description: "Builds models from data.",
			Domain:      &domain,
		}
		if err := repo.careers.Create(ctx, nil, career); err != nil {
			t.Fatalf("seed career: %v", err)
		}

		resp, err := svc.RebuildContentText(ctx, career.ID)
		if err != nil {
			t.Fatalf("RebuildContentText() error = %v", err)
		}
		want := "Data Scientist | Builds models from data."
		if resp.ContentText != want {
			t.Errorf("ContentText = %q, want %q", resp.ContentText, want)
		}
		if career.ContentText != want {
			t.Error("content text not persisted on the model")
		}
	})

	t.Run("UnknownCareer", func(t *testing.T) {
		_, svc := newCareerFixture()

		_, err := svc.RebuildContentText(ctx, 999)
		if !errors.Is(err, ErrCareerNotFound) {
			t.Errorf("RebuildContentText() error = %v, want ErrCareerNotFound", err)
		}
	})
}
