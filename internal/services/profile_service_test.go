package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/validator"
)

func newProfileFixture() (*mockRepository, ProfileService) {
	repo := newMockRepository()
	svc := NewProfileService(repo, discardLogger(), validator.New())
	return repo, svc
}

func TestProfileService_Get(t *testing.T) {
	ctx := context.Background()
	repo, svc := newProfileFixture()

	profile, err := svc.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if profile.UserID != 7 {
		t.Errorf("UserID = %d, want 7", profile.UserID)
	}

	// Lazy creation: the row now exists and is reused
	again, err := svc.Get(ctx, 7)
	if err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if again != profile {
		t.Error("expected the same profile row on repeat lookup")
	}
	if len(repo.profiles.profiles) != 1 {
		t.Errorf("created %d profile rows, want 1", len(repo.profiles.profiles))
	}
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdate", func(t *testing.T) {
		_, svc := newProfileFixture()
		level := models.EducationBachelors
		bio := "Exploring data careers."

		profile, err := svc.Update(ctx, 7, &models.ProfileUpdateRequest{
			EducationLevel: &level,
			Bio:            &bio,
			Interests:      []uint{1, 2},
		})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if profile.EducationLevel != models.EducationBachelors {
			t.Errorf("EducationLevel = %q, want bachelors", profile.EducationLevel)
		}
		if profile.Bio == nil || *profile.Bio != bio {
			t.Errorf("Bio = %v, want %q", profile.Bio, bio)
		}
		// Untouched fields keep their zero values
		if profile.ProfileImage != nil {
			t.Error("ProfileImage should remain unset")
		}
	})

	t.Run("InvalidEducationLevel", func(t *testing.T) {
		_, svc := newProfileFixture()
		level := models.EducationLevel("kindergarten")

		_, err := svc.Update(ctx, 7, &models.ProfileUpdateRequest{EducationLevel: &level})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("Update() error = %v, want validation errors", err)
		}
	})
}
