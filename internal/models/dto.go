package models

import (
	"gorm.io/datatypes"
)

// ===== AUTH =====

type RegisterRequest struct {
	Email                string   `json:"email" validate:"required,email,max=255"`
	Username             string   `json:"username" validate:"omitempty,max=150"`
	Password             string   `json:"password" validate:"required,min=8,max=128"`
	PasswordConfirmation string   `json:"password_confirmation" validate:"required"`
	Role                 UserRole `json:"role" validate:"required,oneof=student graduate professional"`
	Bio                  *string  `json:"bio" validate:"omitempty,max=2000"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	UID                string `json:"uid" validate:"required"`
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8,max=128"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required"`
}

// ===== PROFILE =====

type ProfileUpdateRequest struct {
	EducationLevel *EducationLevel `json:"education_level" validate:"omitempty,oneof=none primary secondary diploma bachelors masters phd other"`
	Bio            *string         `json:"bio" validate:"omitempty,max=2000"`
	ProfileImage   *string         `json:"profile_image" validate:"omitempty,url,max=500"`
	// Interests must be a JSON array of tag ids; no other encoding is accepted.
	Interests []uint `json:"interests"`
}

// ===== CATALOG =====

type TagRequest struct {
	Name string `json:"name" validate:"required,max=80"`
	Slug string `json:"slug" validate:"required,max=100"`
}

type SkillRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type CareerCreateRequest struct {
	Domain         *string  `json:"domain" validate:"omitempty,max=120"`
	Title          string   `json:"title" validate:"required,max=255"`
	Description    string   `json:"description"`
	EducationPath  string   `json:"education_path"`
	ExpectedSalary *float64 `json:"expected_salary" validate:"omitempty,min=0"`
	TagIDs         []uint   `json:"tag_ids"`
	SkillIDs       []uint   `json:"skill_ids"`
}

type CareerUpdateRequest struct {
	Domain         *string  `json:"domain" validate:"omitempty,max=120"`
	Title          *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Description    *string  `json:"description"`
	EducationPath  *string  `json:"education_path"`
	ExpectedSalary *float64 `json:"expected_salary" validate:"omitempty,min=0"`
	Popularity     *int     `json:"popularity" validate:"omitempty,min=0"`
	TagIDs         []uint   `json:"tag_ids"`
	SkillIDs       []uint   `json:"skill_ids"`
}

type ResourceCreateRequest struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Category    ResourceCategory `json:"category" validate:"omitempty,oneof=guide infographic pdf slides other"`
	Description string           `json:"description"`
	FileURL     string           `json:"file_url" validate:"omitempty,url,max=500"`
	TagIDs      []uint           `json:"tag_ids"`
}

type ResourceUpdateRequest struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=255"`
	Category    *ResourceCategory `json:"category" validate:"omitempty,oneof=guide infographic pdf slides other"`
	Description *string           `json:"description"`
	FileURL     *string           `json:"file_url" validate:"omitempty,url,max=500"`
	TagIDs      []uint            `json:"tag_ids"`
}

type MultimediaCreateRequest struct {
	Title      string         `json:"title" validate:"required,max=255"`
	Type       MultimediaType `json:"type" validate:"required,oneof=video audio image article other"`
	URL        *string        `json:"url" validate:"omitempty,url,max=500"`
	Transcript string         `json:"transcript"`
	TagIDs     []uint         `json:"tag_ids"`
}

type MultimediaUpdateRequest struct {
	Title      *string         `json:"title" validate:"omitempty,min=1,max=255"`
	Type       *MultimediaType `json:"type" validate:"omitempty,oneof=video audio image article other"`
	URL        *string         `json:"url" validate:"omitempty,url,max=500"`
	Transcript *string         `json:"transcript"`
	TagIDs     []uint          `json:"tag_ids"`
}

type SuccessStoryCreateRequest struct {
	Title     string  `json:"title" validate:"required,max=255"`
	Domain    *string `json:"domain" validate:"omitempty,max=120"`
	StoryText string  `json:"story_text" validate:"required"`
	Image     *string `json:"image" validate:"omitempty,url,max=500"`
}

type SuccessStoryUpdateRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=255"`
	Domain    *string `json:"domain" validate:"omitempty,max=120"`
	StoryText *string `json:"story_text" validate:"omitempty,min=1"`
	Image     *string `json:"image" validate:"omitempty,url,max=500"`
}

type FeedbackCreateRequest struct {
	Category FeedbackCategory `json:"category" validate:"omitempty,oneof=bug suggestion query other"`
	Message  string           `json:"message" validate:"required"`
}

type FeedbackStatusRequest struct {
	Status FeedbackStatus `json:"status" validate:"required,oneof=open in_progress closed resolved"`
}

type ContentTextResponse struct {
	Detail      string `json:"detail"`
	ContentText string `json:"content_text"`
}

// ===== QUIZ =====

type QuizCreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type QuizUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type QuizQuestionCreateRequest struct {
	QuizID        uint           `json:"quiz_id" validate:"required"`
	QuestionText  string         `json:"question_text" validate:"required"`
	Type          QuestionType   `json:"type" validate:"omitempty,oneof=mcq text likert slider"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer *string        `json:"correct_answer" validate:"omitempty,max=255"`
	Weightage     *float64       `json:"weightage" validate:"omitempty,min=0"`
}

type QuizQuestionUpdateRequest struct {
	QuestionText  *string        `json:"question_text" validate:"omitempty,min=1"`
	Type          *QuestionType  `json:"type" validate:"omitempty,oneof=mcq text likert slider"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer *string        `json:"correct_answer" validate:"omitempty,max=255"`
	Weightage     *float64       `json:"weightage" validate:"omitempty,min=0"`
}

type QuizAttemptCreateRequest struct {
	QuizID  uint              `json:"quiz_id" validate:"required"`
	Answers datatypes.JSONMap `json:"answers"`
}

type QuizAttemptCompleteRequest struct {
	Answers datatypes.JSONMap `json:"answers"`
}

// ===== INTERACTIONS =====

type InteractionCreateRequest struct {
	TargetType TargetType      `json:"target_type" validate:"required,oneof=career resource multimedia success_story quiz"`
	TargetID   uint            `json:"target_id" validate:"required"`
	Type       InteractionType `json:"type" validate:"required,oneof=view like save apply share dismiss"`
	Metadata   datatypes.JSON  `json:"metadata"`
}

// ===== RECOMMENDATIONS =====

type QuizResponse struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type RecommendationRequest struct {
	Responses []QuizResponse `json:"responses" validate:"required,min=1,dive"`
}

type Recommendation struct {
	Career string `json:"career"`
	Reason string `json:"reason"`
}

// ===== SHARED =====

type ListResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
