package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:80" validate:"required,max=80"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null;size:100" validate:"required,max=100"`
}

func (Tag) TableName() string {
	return "tags"
}

type Skill struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:120" validate:"required,max=120"`
}

func (Skill) TableName() string {
	return "skills"
}

// Career bank entry.
type Career struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	Domain         *string  `json:"domain" gorm:"size:120;index"`
	Title          string   `json:"title" gorm:"not null;size:255;index" validate:"required,max=255"`
	Description    string   `json:"description" gorm:"type:text"`
	EducationPath  string   `json:"education_path" gorm:"type:text"`
	ExpectedSalary *float64 `json:"expected_salary"`
	Popularity     int      `json:"popularity" gorm:"default:0"`

	// Denormalized text for embeddings/search; rebuilt explicitly, never on save.
	ContentText string  `json:"content_text" gorm:"type:text"`
	EmbeddingID *string `json:"embedding_id" gorm:"size:255"`

	CreatedBy *uint          `json:"created_by" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Tags           []Tag   `json:"tags" gorm:"many2many:career_tags;"`
	RequiredSkills []Skill `json:"required_skills" gorm:"many2many:career_skills;"`
	Creator        *User   `json:"-" gorm:"foreignKey:CreatedBy"`
}

func (Career) TableName() string {
	return "careers"
}

// BuildContentText recomputes the denormalized search text from the loaded
// title, description, tags and skills. Callers must persist the result.
func (c *Career) BuildContentText() string {
	parts := []string{c.Title, c.Description, joinTagNames(c.Tags), joinSkillNames(c.RequiredSkills)}
	c.ContentText = joinContentParts(parts)
	return c.ContentText
}

type ResourceCategory string

const (
	ResourceGuide       ResourceCategory = "guide"
	ResourceInfographic ResourceCategory = "infographic"
	ResourcePDF         ResourceCategory = "pdf"
	ResourceSlides      ResourceCategory = "slides"
	ResourceOther       ResourceCategory = "other"
)

type Resource struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Title       string           `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Category    ResourceCategory `json:"category" gorm:"default:other;size:40" validate:"omitempty,oneof=guide infographic pdf slides other"`
	Description string           `json:"description" gorm:"type:text"`
	FileURL     string           `json:"file_url" gorm:"size:500"`
	ViewsCount  uint             `json:"views_count" gorm:"default:0"`

	ContentText string  `json:"content_text" gorm:"type:text"`
	EmbeddingID *string `json:"embedding_id" gorm:"size:255"`

	CreatedBy *uint          `json:"created_by" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Tags    []Tag `json:"tags" gorm:"many2many:resource_tags;"`
	Creator *User `json:"-" gorm:"foreignKey:CreatedBy"`
}

func (Resource) TableName() string {
	return "resources"
}

func (r *Resource) BuildContentText() string {
	parts := []string{r.Title, r.Description, joinTagNames(r.Tags)}
	r.ContentText = joinContentParts(parts)
	return r.ContentText
}

type MultimediaType string

const (
	MultimediaVideo   MultimediaType = "video"
	MultimediaAudio   MultimediaType = "audio"
	MultimediaImage   MultimediaType = "image"
	MultimediaArticle MultimediaType = "article"
	MultimediaOther   MultimediaType = "other"
)

type Multimedia struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Type        MultimediaType `json:"type" gorm:"not null;size:20" validate:"required,oneof=video audio image article other"`
	URL         *string        `json:"url" gorm:"size:500"`
	Transcript  string         `json:"transcript" gorm:"type:text"`
	RatingAvg   float64        `json:"rating_avg" gorm:"default:0"`
	RatingCount uint           `json:"rating_count" gorm:"default:0"`

	ContentText string  `json:"content_text" gorm:"type:text"`
	EmbeddingID *string `json:"embedding_id" gorm:"size:255"`

	CreatedBy *uint          `json:"created_by" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Tags    []Tag `json:"tags" gorm:"many2many:multimedia_tags;"`
	Creator *User `json:"-" gorm:"foreignKey:CreatedBy"`
}

func (Multimedia) TableName() string {
	return "multimedia"
}

func (m *Multimedia) BuildContentText() string {
	parts := []string{m.Title, m.Transcript, joinTagNames(m.Tags)}
	m.ContentText = joinContentParts(parts)
	return m.ContentText
}

type SuccessStory struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	Title     string  `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Domain    *string `json:"domain" gorm:"size:120"`
	StoryText string  `json:"story_text" gorm:"type:text;not null" validate:"required"`
	Image     *string `json:"image" gorm:"size:500"`

	SubmittedBy *uint      `json:"submitted_by" gorm:"index"`
	ApprovedBy  *uint      `json:"approved_by"`
	ApprovedAt  *time.Time `json:"approved_at"`
	IsApproved  bool       `json:"is_approved" gorm:"default:false"`
	SubmittedAt time.Time  `json:"submitted_at" gorm:"autoCreateTime"`

	ContentText string  `json:"content_text" gorm:"type:text"`
	EmbeddingID *string `json:"embedding_id" gorm:"size:255"`

	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Submitter *User `json:"-" gorm:"foreignKey:SubmittedBy"`
	Approver  *User `json:"-" gorm:"foreignKey:ApprovedBy"`
}

func (SuccessStory) TableName() string {
	return "success_stories"
}

// Approve marks the story approved by the given user. Callers must persist.
func (s *SuccessStory) Approve(approverID uint, at time.Time) {
	s.ApprovedBy = &approverID
	s.ApprovedAt = &at
	s.IsApproved = true
}

func (s *SuccessStory) BuildContentText() string {
	domain := ""
	if s.Domain != nil {
		domain = *s.Domain
	}
	parts := []string{s.Title, s.StoryText, domain}
	s.ContentText = joinContentParts(parts)
	return s.ContentText
}

type FeedbackCategory string

const (
	FeedbackBug        FeedbackCategory = "bug"
	FeedbackSuggestion FeedbackCategory = "suggestion"
	FeedbackQuery      FeedbackCategory = "query"
	FeedbackOther      FeedbackCategory = "other"
)

type FeedbackStatus string

const (
	FeedbackOpen       FeedbackStatus = "open"
	FeedbackInProgress FeedbackStatus = "in_progress"
	FeedbackClosed     FeedbackStatus = "closed"
	FeedbackResolved   FeedbackStatus = "resolved"
)

type Feedback struct {
	ID       uint             `json:"id" gorm:"primaryKey"`
	UserID   *uint            `json:"user_id" gorm:"index"`
	Category FeedbackCategory `json:"category" gorm:"default:other;size:30" validate:"omitempty,oneof=bug suggestion query other"`
	Message  string           `json:"message" gorm:"type:text;not null" validate:"required"`
	Status   FeedbackStatus   `json:"status" gorm:"default:open;size:30" validate:"omitempty,oneof=open in_progress closed resolved"`

	HandledBy   *uint     `json:"handled_by"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`

	// Relations
	User    *User `json:"-" gorm:"foreignKey:UserID"`
	Handler *User `json:"-" gorm:"foreignKey:HandledBy"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func joinTagNames(tags []Tag) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return strings.Join(names, " ")
}

func joinSkillNames(skills []Skill) string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return strings.Join(names, " ")
}

func joinContentParts(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " | ")
}
