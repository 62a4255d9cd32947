package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nextstep-app/career-service/internal/events"
	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

func newInteractionFixture() (*mockRepository, *events.MockEventPublisher, InteractionService) {
	repo := newMockRepository()
	publisher := events.NewMockEventPublisher(discardLogger())
	svc := NewInteractionService(repo, publisher, discardLogger(), validator.New())
	return repo, publisher, svc
}

func TestInteractionService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsAndPublishes", func(t *testing.T) {
		repo, publisher, svc := newInteractionFixture()
		career := &models.Career{Title: "Data Scientist"}
		if err := repo.careers.Create(ctx, nil, career); err != nil {
			t.Fatalf("seed career: %v", err)
		}

		interaction, err := svc.Record(ctx, &models.InteractionCreateRequest{
			TargetType: models.TargetCareer,
			TargetID:   career.ID,
			Type:       models.InteractionView,
		}, 7)
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if interaction.ID == 0 {
			t.Fatal("interaction not persisted")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("published %d events, want 1", len(published))
		}
		event := published[0]
		if event.InteractionID != interaction.ID ||
			event.UserID != 7 ||
			event.Type != string(models.InteractionView) ||
			event.TargetType != string(models.TargetCareer) ||
			event.TargetID != career.ID {
			t.Errorf("unexpected event: %+v", event)
		}
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		_, publisher, svc := newInteractionFixture()

		_, err := svc.Record(ctx, &models.InteractionCreateRequest{
			TargetType: models.TargetCareer,
			TargetID:   999,
			Type:       models.InteractionLike,
		}, 7)
		if !errors.Is(err, ErrTargetNotFound) {
			t.Errorf("Record() error = %v, want ErrTargetNotFound", err)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("no event should be published for a rejected interaction")
		}
	})

	t.Run("InvalidTypeRejected", func(t *testing.T) {
		_, _, svc := newInteractionFixture()

		_, err := svc.Record(ctx, &models.InteractionCreateRequest{
			TargetType: "playlist",
			TargetID:   1,
			Type:       models.InteractionView,
		}, 7)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("Record() error = %v, want validation errors", err)
		}
	})
}

func TestInteractionService_ListForUser(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newInteractionFixture()

	career := &models.Career{Title: "Data Scientist"}
	if err := repo.careers.Create(ctx, nil, career); err != nil {
		t.Fatalf("seed career: %v", err)
	}

	for _, userID := range []uint{7, 7, 8} {
		_, err := svc.Record(ctx, &models.InteractionCreateRequest{
			TargetType: models.TargetCareer,
			TargetID:   career.ID,
			Type:       models.InteractionView,
		}, userID)
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	resp, err := svc.ListForUser(ctx, 7, repositories.InteractionFilters{})
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("Total = %d, want 2", resp.Total)
	}
	for _, it := range resp.Items {
		if it.UserID != 7 {
			t.Errorf("leaked interaction of user %d", it.UserID)
		}
	}
}
