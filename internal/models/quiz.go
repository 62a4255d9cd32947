package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMCQ    QuestionType = "mcq"
	QuestionText   QuestionType = "text"
	QuestionLikert QuestionType = "likert"
	QuestionSlider QuestionType = "slider"
)

type Quiz struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Description string `json:"description" gorm:"type:text"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations; questions are ordered by creation.
	Questions []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	QuizID       uint         `json:"quiz_id" gorm:"not null;index"`
	QuestionText string       `json:"question_text" gorm:"type:text;not null" validate:"required"`
	Type         QuestionType `json:"type" gorm:"default:mcq;size:20" validate:"omitempty,oneof=mcq text likert slider"`

	// Options for MCQ stored as JSON: [{"id":"a","text":"Option A"}, ...]
	Options       datatypes.JSON `json:"options" gorm:"type:jsonb"`
	CorrectAnswer *string        `json:"correct_answer" gorm:"size:255"`
	Weightage     float64        `json:"weightage" gorm:"default:1"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Quiz Quiz `json:"-" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type QuizAttempt struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	QuizID uint `json:"quiz_id" gorm:"not null;index"`

	// Answer map: {"question_id": "selected_option", ...}; free form.
	Answers datatypes.JSONMap `json:"answers" gorm:"type:jsonb"`
	Score   *float64          `json:"score"`

	StartedAt   time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Quiz Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
