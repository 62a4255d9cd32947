package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidToken       = errors.New("token is invalid")
	ErrExpiredToken       = errors.New("token has expired")
	ErrBlacklistedToken   = errors.New("token has been revoked")
	ErrInvalidResetToken  = errors.New("password reset link is invalid or has expired")
	ErrWrongPassword      = errors.New("current password is incorrect")

	// Domain
	ErrUserNotFound       = errors.New("user not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrSkillNotFound      = errors.New("skill not found")
	ErrCareerNotFound     = errors.New("career not found")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrMultimediaNotFound = errors.New("multimedia not found")
	ErrStoryNotFound      = errors.New("success story not found")
	ErrFeedbackNotFound   = errors.New("feedback not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrQuestionNotFound   = errors.New("quiz question not found")
	ErrAttemptNotFound    = errors.New("quiz attempt not found")
	ErrNoActiveQuiz       = errors.New("no active quiz available")

	ErrQuizInactive      = errors.New("quiz is not active")
	ErrAttemptCompleted  = errors.New("quiz attempt is already completed")
	ErrDuplicateName     = errors.New("an entry with this name already exists")
	ErrInvalidTargetType = errors.New("unknown interaction target type")
	ErrTargetNotFound    = errors.New("interaction target not found")
	ErrNoRecommendations = errors.New("no recommendations generated")
)

// PermissionError carries who tried what on which resource.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

// IsPermissionError reports whether err (possibly wrapped) is a PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
