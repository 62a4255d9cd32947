package models

import (
	"time"

	"gorm.io/datatypes"
)

type InteractionType string

const (
	InteractionView    InteractionType = "view"
	InteractionLike    InteractionType = "like"
	InteractionSave    InteractionType = "save"
	InteractionApply   InteractionType = "apply"
	InteractionShare   InteractionType = "share"
	InteractionDismiss InteractionType = "dismiss"
)

type TargetType string

const (
	TargetCareer       TargetType = "career"
	TargetResource     TargetType = "resource"
	TargetMultimedia   TargetType = "multimedia"
	TargetSuccessStory TargetType = "success_story"
	TargetQuiz         TargetType = "quiz"
)

// Interaction is an append-only event record linking a user to an arbitrary
// catalog entity via a (type, id) pair. Immutable once created.
type Interaction struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index:idx_user_kind_created"`

	TargetType TargetType `json:"target_type" gorm:"not null;size:40;index:idx_target_created" validate:"required,oneof=career resource multimedia success_story quiz"`
	TargetID   uint       `json:"target_id" gorm:"not null;index:idx_target_created" validate:"required"`

	Type     InteractionType `json:"type" gorm:"not null;size:20;index:idx_user_kind_created" validate:"required,oneof=view like save apply share dismiss"`
	Metadata datatypes.JSON  `json:"metadata" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_user_kind_created;index:idx_target_created"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Interaction) TableName() string {
	return "interactions"
}
