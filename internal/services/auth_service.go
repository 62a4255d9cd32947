package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nextstep-app/career-service/internal/auth"
	"github.com/nextstep-app/career-service/internal/mailer"
	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
	"github.com/nextstep-app/career-service/internal/validator"
)

type authService struct {
	repo        repositories.Repository
	issuer      *auth.Issuer
	resetTokens *auth.ResetTokens
	mail        mailer.Mailer
	logger      *slog.Logger
	validator   *validator.Validator
}

func NewAuthService(repo repositories.Repository, issuer *auth.Issuer, resetTokens *auth.ResetTokens, mail mailer.Mailer, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:        repo,
		issuer:      issuer,
		resetTokens: resetTokens,
		mail:        mail,
		logger:      logger,
		validator:   validator,
	}
}

// ===== REGISTRATION =====

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Password != req.PasswordConfirmation {
		return nil, ErrPasswordMismatch
	}

	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	if username == "" {
		// Username defaults to the email address
		username = email
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	exists, err = s.repo.User().ExistsByUsername(ctx, nil, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     req.Role,
		Bio:      req.Bio,
		IsActive: true,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Create(ctx, nil, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if _, err := txRepo.Profile().GetOrCreate(ctx, nil, user.ID); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)

	return user, nil
}

// ===== LOGIN / TOKENS =====

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.lookupLoginUser(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	access, refresh, err := s.issuer.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	token := &models.UserToken{
		UserID:       user.ID,
		AccessToken:  access,
		RefreshToken: refresh,
	}
	if err := s.repo.Token().Upsert(ctx, nil, token); err != nil {
		return nil, fmt.Errorf("failed to store tokens: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return &LoginResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// lookupLoginUser resolves the identifier the way clients expect: email
// first (case-insensitive), then exact username. Both misses collapse into
// ErrInvalidCredentials.
func (s *authService) lookupLoginUser(ctx context.Context, identifier string) (*models.User, error) {
	user, err := s.repo.User().GetByEmail(ctx, nil, identifier)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user, err = s.repo.User().GetByUsername(ctx, nil, identifier)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.RefreshResponse, error) {
	result := s.issuer.Validate(ctx, refreshToken, auth.TokenRefresh)
	if err := statusToError(result.Status); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByID(ctx, nil, result.Claims.UserID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	access, err := s.issuer.IssueAccess(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	if err := s.repo.Token().UpdateAccessToken(ctx, nil, user.ID, access); err != nil {
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to store access token: %w", err)
		}
		// No cached row (logged out elsewhere); recreate it
		if err := s.repo.Token().Upsert(ctx, nil, &models.UserToken{
			UserID:       user.ID,
			AccessToken:  access,
			RefreshToken: refreshToken,
		}); err != nil {
			return nil, fmt.Errorf("failed to store access token: %w", err)
		}
	}

	return &models.RefreshResponse{AccessToken: access}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	result := s.issuer.Validate(ctx, refreshToken, auth.TokenRefresh)
	if err := statusToError(result.Status); err != nil {
		return err
	}

	if err := s.issuer.Revoke(ctx, result.Claims); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	if err := s.repo.Token().Delete(ctx, nil, result.Claims.UserID); err != nil {
		return fmt.Errorf("failed to delete cached tokens: %w", err)
	}

	s.logger.Info("User logged out", "user_id", result.Claims.UserID)

	return nil
}

func (s *authService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *authService) ValidateAccess(ctx context.Context, token string) auth.ValidationResult {
	return s.issuer.Validate(ctx, token, auth.TokenAccess)
}

// ===== PASSWORD MANAGEMENT =====

func (s *authService) ChangePassword(ctx context.Context, userID uint, req *models.ChangePasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.OldPassword) {
		return ErrWrongPassword
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	if err := s.repo.User().Update(ctx, nil, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed", "user_id", userID)

	return nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, req *models.PasswordResetRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// The response is identical whether or not the address is registered,
	// so this endpoint cannot be used to enumerate accounts.
	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.logger.Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		s.logger.Info("Password reset requested for inactive account", "user_id", user.ID)
		return nil
	}

	token, err := s.resetTokens.Make(user)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}

	if err := s.mail.SendPasswordReset(user.Email, auth.EncodeUID(user.ID), token); err != nil {
		// Do not leak delivery failures to the caller either
		s.logger.Error("Failed to send password reset email", "user_id", user.ID, "error", err)
	}

	return nil
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *models.PasswordResetConfirmRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return ErrPasswordMismatch
	}

	userID, err := auth.DecodeUID(req.UID)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !s.resetTokens.Check(user, req.Token) {
		return ErrInvalidResetToken
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.User().Update(ctx, nil, user); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		// Drop cached tokens so old sessions have to log in again
		if err := txRepo.Token().Delete(ctx, nil, user.ID); err != nil {
			return fmt.Errorf("failed to delete cached tokens: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Password reset completed", "user_id", user.ID)

	return nil
}

func statusToError(status auth.TokenStatus) error {
	switch status {
	case auth.TokenValid:
		return nil
	case auth.TokenExpired:
		return ErrExpiredToken
	case auth.TokenBlacklisted:
		return ErrBlacklistedToken
	default:
		return ErrInvalidToken
	}
}
