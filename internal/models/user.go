package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent      UserRole = "student"
	RoleGraduate     UserRole = "graduate"
	RoleProfessional UserRole = "professional"
)

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"`
	Role     UserRole `json:"role" gorm:"not null;default:student;size:50"`
	Bio      *string  `json:"bio" gorm:"type:text"`

	// Status
	IsActive bool `json:"is_active" gorm:"default:true"`
	IsStaff  bool `json:"is_staff" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Profile *UserProfile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// UserToken caches the latest issued token pair for a user. One row per user,
// overwritten on every login and refresh, deleted on logout. The signed JWT
// itself is the source of truth for validity; this row is a convenience cache.
type UserToken struct {
	UserID       uint   `json:"user_id" gorm:"primaryKey"`
	AccessToken  string `json:"access_token" gorm:"type:text;not null"`
	RefreshToken string `json:"refresh_token" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserToken) TableName() string {
	return "user_tokens"
}

type EducationLevel string

const (
	EducationNone      EducationLevel = "none"
	EducationPrimary   EducationLevel = "primary"
	EducationSecondary EducationLevel = "secondary"
	EducationDiploma   EducationLevel = "diploma"
	EducationBachelors EducationLevel = "bachelors"
	EducationMasters   EducationLevel = "masters"
	EducationPhD       EducationLevel = "phd"
	EducationOther     EducationLevel = "other"
)

// UserProfile is created lazily on first profile access.
type UserProfile struct {
	UserID         uint           `json:"user_id" gorm:"primaryKey"`
	EducationLevel EducationLevel `json:"education_level" gorm:"default:other;size:40"`
	Bio            *string        `json:"bio" gorm:"type:text"`
	ProfileImage   *string        `json:"profile_image" gorm:"size:500"`

	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User      User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Interests []Tag `json:"interests" gorm:"many2many:user_profile_interests;"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
