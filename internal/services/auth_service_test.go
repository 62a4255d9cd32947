package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nextstep-app/career-service/internal/auth"
	"github.com/nextstep-app/career-service/internal/cache"
	"github.com/nextstep-app/career-service/internal/mailer"
	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/validator"
)

func newAuthFixture(t *testing.T) (*mockRepository, AuthService) {
	t.Helper()

	repo := newMockRepository()
	logger := discardLogger()
	issuer := auth.NewIssuer("test-secret", time.Hour, 24*time.Hour, cache.NewMemoryBlacklist())
	resetTokens := auth.NewResetTokens("test-secret", time.Hour)

	svc := NewAuthService(repo, issuer, resetTokens, mailer.NewLogMailer(logger), logger, validator.New())
	return repo, svc
}

func seedUser(t *testing.T, repo *mockRepository, email, password string, active bool) *models.User {
	t.Helper()

	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Username: email,
		Email:    email,
		Password: hashed,
		Role:     models.RoleStudent,
		IsActive: active,
	}
	if err := repo.users.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesUserAndProfile", func(t *testing.T) {
		repo, svc := newAuthFixture(t)

		user, err := svc.Register(ctx, &models.RegisterRequest{
			Email:                "amina@example.com",
			Password:             "correct-horse",
			PasswordConfirmation: "correct-horse",
			Role:                 models.RoleStudent,
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if user.ID == 0 {
			t.Fatal("user not persisted")
		}
		if user.Username != "amina@example.com" {
			t.Errorf("Username = %q, want email fallback", user.Username)
		}
		if user.Password == "correct-horse" {
			t.Error("password stored in plaintext")
		}
		if !auth.CheckPassword(user.Password, "correct-horse") {
			t.Error("stored hash does not verify")
		}
		if !user.IsActive {
			t.Error("new user should be active")
		}

		if len(repo.profiles.profiles) != 1 || repo.profiles.profiles[0].UserID != user.ID {
			t.Error("profile row not created alongside the user")
		}
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		_, svc := newAuthFixture(t)

		_, err := svc.Register(ctx, &models.RegisterRequest{
			Email:                "amina@example.com",
			Password:             "correct-horse",
			PasswordConfirmation: "wrong-horse",
			Role:                 models.RoleStudent,
		})
		if !errors.Is(err, ErrPasswordMismatch) {
			t.Errorf("Register() error = %v, want ErrPasswordMismatch", err)
		}
	})

	t.Run("EmailTaken", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		seedUser(t, repo, "amina@example.com", "correct-horse", true)

		_, err := svc.Register(ctx, &models.RegisterRequest{
			Email:                "Amina@Example.com",
			Password:             "correct-horse",
			PasswordConfirmation: "correct-horse",
			Role:                 models.RoleStudent,
		})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("Register() error = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		_, svc := newAuthFixture(t)

		_, err := svc.Register(ctx, &models.RegisterRequest{
			Email:                "not-an-email",
			Password:             "short",
			PasswordConfirmation: "short",
			Role:                 models.RoleStudent,
		})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("Register() error = %v, want validation errors", err)
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		user := seedUser(t, repo, "amina@example.com", "correct-horse", true)

		result, err := svc.Login(ctx, &models.LoginRequest{Email: "amina@example.com", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Error("missing tokens in login result")
		}
		if result.User.ID != user.ID {
			t.Errorf("User.ID = %d, want %d", result.User.ID, user.ID)
		}

		stored, err := repo.tokens.GetByUserID(ctx, nil, user.ID)
		if err != nil {
			t.Fatalf("token row missing: %v", err)
		}
		if stored.AccessToken != result.AccessToken || stored.RefreshToken != result.RefreshToken {
			t.Error("stored token pair does not match issued pair")
		}
	})

	t.Run("ByUsername", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		user := seedUser(t, repo, "amina@example.com", "correct-horse", true)
		user.Username = "amina"
		if err := repo.users.Update(ctx, nil, user); err != nil {
			t.Fatalf("update user: %v", err)
		}

		if _, err := svc.Login(ctx, &models.LoginRequest{Email: "amina", Password: "correct-horse"}); err != nil {
			t.Errorf("Login() by username error = %v", err)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		seedUser(t, repo, "amina@example.com", "correct-horse", true)

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "amina@example.com", Password: "wrong-horse"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, svc := newAuthFixture(t)

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		seedUser(t, repo, "amina@example.com", "correct-horse", false)

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "amina@example.com", Password: "correct-horse"})
		if !errors.Is(err, ErrInactiveAccount) {
			t.Errorf("Login() error = %v, want ErrInactiveAccount", err)
		}
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	repo, svc := newAuthFixture(t)
	user := seedUser(t, repo, "amina@example.com", "correct-horse", true)

	result, err := svc.Login(ctx, &models.LoginRequest{Email: "amina@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	t.Run("IssuesNewAccessToken", func(t *testing.T) {
		resp, err := svc.Refresh(ctx, result.RefreshToken)
		if err != nil {
			t.Fatalf("Refresh() error = %v", err)
		}
		if resp.AccessToken == "" {
			t.Fatal("empty access token")
		}

		stored, err := repo.tokens.GetByUserID(ctx, nil, user.ID)
		if err != nil {
			t.Fatalf("token row missing: %v", err)
		}
		if stored.AccessToken != resp.AccessToken {
			t.Error("cached access token not updated")
		}
		// The refresh token itself is not rotated
		if stored.RefreshToken != result.RefreshToken {
			t.Error("refresh token should survive a refresh")
		}
	})

	t.Run("AccessTokenRejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, result.AccessToken)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Refresh() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("GarbageRejected", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "not-a-token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Refresh() error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	repo, svc := newAuthFixture(t)
	user := seedUser(t, repo, "amina@example.com", "correct-horse", true)

	result, err := svc.Login(ctx, &models.LoginRequest{Email: "amina@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, result.RefreshToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := repo.tokens.GetByUserID(ctx, nil, user.ID); err == nil {
		t.Error("token row should be deleted on logout")
	}

	// The revoked refresh token must not mint new access tokens
	_, err = svc.Refresh(ctx, result.RefreshToken)
	if !errors.Is(err, ErrBlacklistedToken) {
		t.Errorf("Refresh() after logout error = %v, want ErrBlacklistedToken", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		user := seedUser(t, repo, "amina@example.com", "correct-horse", true)

		err := svc.ChangePassword(ctx, user.ID, &models.ChangePasswordRequest{
			OldPassword: "correct-horse",
			NewPassword: "battery-staple",
		})
		if err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
		if !auth.CheckPassword(user.Password, "battery-staple") {
			t.Error("new password does not verify")
		}
	})

	t.Run("WrongOldPassword", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		user := seedUser(t, repo, "amina@example.com", "correct-horse", true)

		err := svc.ChangePassword(ctx, user.ID, &models.ChangePasswordRequest{
			OldPassword: "wrong-horse",
			NewPassword: "battery-staple",
		})
		if !errors.Is(err, ErrWrongPassword) {
			t.Errorf("ChangePassword() error = %v, want ErrWrongPassword", err)
		}
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownEmailIsSilent", func(t *testing.T) {
		_, svc := newAuthFixture(t)

		if err := svc.RequestPasswordReset(ctx, &models.PasswordResetRequest{Email: "ghost@example.com"}); err != nil {
			t.Errorf("RequestPasswordReset() error = %v, want nil", err)
		}
	})

	t.Run("ConfirmResetsPassword", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		user := seedUser(t, repo, "amina@example.com", "correct-horse", true)
		seedTokenRow(t, repo, user.ID)

		resetTokens := auth.NewResetTokens("test-secret", time.Hour)
		token, err := resetTokens.Make(user)
		if err != nil {
			t.Fatalf("make reset token: %v", err)
		}

		err = svc.ConfirmPasswordReset(ctx, &models.PasswordResetConfirmRequest{
			UID:                auth.EncodeUID(user.ID),
			Token:              token,
			NewPassword:        "battery-staple",
			ConfirmNewPassword: "battery-staple",
		})
		if err != nil {
			t.Fatalf("ConfirmPasswordReset() error = %v", err)
		}
		if !auth.CheckPassword(user.Password, "battery-staple") {
			t.Error("new password does not verify")
		}
		if _, err := repo.tokens.GetByUserID(ctx, nil, user.ID); err == nil {
			t.Error("cached tokens should be dropped on reset")
		}

		// Changing the password invalidates the token it was signed against
		err = svc.ConfirmPasswordReset(ctx, &models.PasswordResetConfirmRequest{
			UID:                auth.EncodeUID(user.ID),
			Token:              token,
			NewPassword:        "yet-another-pass",
			ConfirmNewPassword: "yet-another-pass",
		})
		if !errors.Is(err, ErrInvalidResetToken) {
			t.Errorf("reused token error = %v, want ErrInvalidResetToken", err)
		}
	})

	t.Run("BadUIDRejected", func(t *testing.T) {
		_, svc := newAuthFixture(t)

		err := svc.ConfirmPasswordReset(ctx, &models.PasswordResetConfirmRequest{
			UID:                "!!!",
			Token:              "whatever",
			NewPassword:        "battery-staple",
			ConfirmNewPassword: "battery-staple",
		})
		if !errors.Is(err, ErrInvalidResetToken) {
			t.Errorf("ConfirmPasswordReset() error = %v, want ErrInvalidResetToken", err)
		}
	})
}

func seedTokenRow(t *testing.T, repo *mockRepository, userID uint) {
	t.Helper()
	err := repo.tokens.Upsert(context.Background(), nil, &models.UserToken{
		UserID:       userID,
		AccessToken:  "stale-access",
		RefreshToken: "stale-refresh",
	})
	if err != nil {
		t.Fatalf("seed token row: %v", err)
	}
}
