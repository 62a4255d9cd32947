package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

// ===== TAG REPOSITORY =====

type tagRepository struct {
	db *gorm.DB
}

func NewTagPostgreSQL(db *gorm.DB) repositories.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tx *gorm.DB, tag *models.Tag) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(tag).Error; err != nil {
		return handleDBError(err, "create tag")
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Tag, error) {
	db := r.getDB(tx)
	var tag models.Tag

	if err := db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, handleDBError(err, "get tag by id")
	}

	return &tag, nil
}

func (r *tagRepository) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	db := r.getDB(tx)
	var tags []models.Tag

	if len(ids) == 0 {
		return tags, nil
	}

	if err := db.WithContext(ctx).Find(&tags, ids).Error; err != nil {
		return nil, handleDBError(err, "get tags by ids")
	}

	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, tx *gorm.DB, tag *models.Tag) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(tag).Error; err != nil {
		return handleDBError(err, "update tag")
	}
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Tag{}, id).Error; err != nil {
		return handleDBError(err, "delete tag")
	}
	return nil
}

func (r *tagRepository) List(ctx context.Context, tx *gorm.DB, search *string, page repositories.Page) ([]*models.Tag, int64, error) {
	db := r.getDB(tx)
	var tags []*models.Tag
	var total int64

	query := db.WithContext(ctx).Model(&models.Tag{})
	if search != nil {
		query = query.Where("name ILIKE ?", "%"+*search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count tags")
	}

	query = applyPage(query, page, map[string]string{"name": "name", "id": "id"}, "name")

	if err := query.Find(&tags).Error; err != nil {
		return nil, 0, handleDBError(err, "list tags")
	}

	return tags, total, nil
}

func (r *tagRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== SKILL REPOSITORY =====

type skillRepository struct {
	db *gorm.DB
}

func NewSkillPostgreSQL(db *gorm.DB) repositories.SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, tx *gorm.DB, skill *models.Skill) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(skill).Error; err != nil {
		return handleDBError(err, "create skill")
	}
	return nil
}

func (r *skillRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Skill, error) {
	db := r.getDB(tx)
	var skill models.Skill

	if err := db.WithContext(ctx).First(&skill, id).Error; err != nil {
		return nil, handleDBError(err, "get skill by id")
	}

	return &skill, nil
}

func (r *skillRepository) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uint) ([]models.Skill, error) {
	db := r.getDB(tx)
	var skills []models.Skill

	if len(ids) == 0 {
		return skills, nil
	}

	if err := db.WithContext(ctx).Find(&skills, ids).Error; err != nil {
		return nil, handleDBError(err, "get skills by ids")
	}

	return skills, nil
}

func (r *skillRepository) Update(ctx context.Context, tx *gorm.DB, skill *models.Skill) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(skill).Error; err != nil {
		return handleDBError(err, "update skill")
	}
	return nil
}

func (r *skillRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Skill{}, id).Error; err != nil {
		return handleDBError(err, "delete skill")
	}
	return nil
}

func (r *skillRepository) List(ctx context.Context, tx *gorm.DB, search *string, page repositories.Page) ([]*models.Skill, int64, error) {
	db := r.getDB(tx)
	var skills []*models.Skill
	var total int64

	query := db.WithContext(ctx).Model(&models.Skill{})
	if search != nil {
		query = query.Where("name ILIKE ?", "%"+*search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count skills")
	}

	query = applyPage(query, page, map[string]string{"name": "name", "id": "id"}, "name")

	if err := query.Find(&skills).Error; err != nil {
		return nil, 0, handleDBError(err, "list skills")
	}

	return skills, total, nil
}

func (r *skillRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== CAREER REPOSITORY =====

type careerRepository struct {
	db *gorm.DB
}

func NewCareerPostgreSQL(db *gorm.DB) repositories.CareerRepository {
	return &careerRepository{db: db}
}

func (r *careerRepository) Create(ctx context.Context, tx *gorm.DB, career *models.Career) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(career).Error; err != nil {
		return handleDBError(err, "create career")
	}
	return nil
}

func (r *careerRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Career, error) {
	db := r.getDB(tx)
	var career models.Career

	if err := db.WithContext(ctx).
		Preload("Tags").
		Preload("RequiredSkills").
		First(&career, id).Error; err != nil {
		return nil, handleDBError(err, "get career by id")
	}

	return &career, nil
}

func (r *careerRepository) Update(ctx context.Context, tx *gorm.DB, career *models.Career) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(career).Error; err != nil {
		return handleDBError(err, "update career")
	}
	return nil
}

func (r *careerRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Career{}, id).Error; err != nil {
		return handleDBError(err, "delete career")
	}
	return nil
}

func (r *careerRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.CareerFilters) ([]*models.Career, int64, error) {
	db := r.getDB(tx)
	var careers []*models.Career
	var total int64

	query := db.WithContext(ctx).Model(&models.Career{}).
		Preload("Tags").
		Preload("RequiredSkills")

	if filters.Search != nil {
		search := "%" + *filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}
	if filters.Domain != nil {
		query = query.Where("domain = ?", *filters.Domain)
	}
	if filters.TagID != nil {
		query = query.
			Joins("INNER JOIN career_tags ct ON ct.career_id = careers.id").
			Where("ct.tag_id = ?", *filters.TagID)
	}
	if filters.SkillID != nil {
		query = query.
			Joins("INNER JOIN career_skills cs ON cs.career_id = careers.id").
			Where("cs.skill_id = ?", *filters.SkillID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count careers")
	}

	query = applyPage(query, filters.Page, withSortColumns(map[string]string{
		"title":      "title",
		"popularity": "popularity",
	}), "created_at")

	if err := query.Find(&careers).Error; err != nil {
		return nil, 0, handleDBError(err, "list careers")
	}

	return careers, total, nil
}

func (r *careerRepository) ReplaceTags(ctx context.Context, tx *gorm.DB, career *models.Career, tags []models.Tag) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Model(career).Association("Tags").Replace(&tags); err != nil {
		return handleDBError(err, "replace career tags")
	}
	career.Tags = tags
	return nil
}

func (r *careerRepository) ReplaceSkills(ctx context.Context, tx *gorm.DB, career *models.Career, skills []models.Skill) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Model(career).Association("RequiredSkills").Replace(&skills); err != nil {
		return handleDBError(err, "replace career skills")
	}
	career.RequiredSkills = skills
	return nil
}

func (r *careerRepository) SaveContentText(ctx context.Context, tx *gorm.DB, career *models.Career) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(career).
		Update("content_text", career.ContentText).Error; err != nil {
		return handleDBError(err, "save career content text")
	}
	return nil
}

func (r *careerRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== RESOURCE REPOSITORY =====

type resourceRepository struct {
	db *gorm.DB
}

func NewResourcePostgreSQL(db *gorm.DB) repositories.ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, tx *gorm.DB, resource *models.Resource) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(resource).Error; err != nil {
		return handleDBError(err, "create resource")
	}
	return nil
}

func (r *resourceRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Resource, error) {
	db := r.getDB(tx)
	var resource models.Resource

	if err := db.WithContext(ctx).
		Preload("Tags").
		First(&resource, id).Error; err != nil {
		return nil, handleDBError(err, "get resource by id")
	}

	return &resource, nil
}

func (r *resourceRepository) Update(ctx context.Context, tx *gorm.DB, resource *models.Resource) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(resource).Error; err != nil {
		return handleDBError(err, "update resource")
	}
	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Resource{}, id).Error; err != nil {
		return handleDBError(err, "delete resource")
	}
	return nil
}

func (r *resourceRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.ResourceFilters) ([]*models.Resource, int64, error) {
	db := r.getDB(tx)
	var resources []*models.Resource
	var total int64

	query := db.WithContext(ctx).Model(&models.Resource{}).Preload("Tags")

	if filters.Search != nil {
		search := "%" + *filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.TagID != nil {
		query = query.
			Joins("INNER JOIN resource_tags rt ON rt.resource_id = resources.id").
			Where("rt.tag_id = ?", *filters.TagID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count resources")
	}

	query = applyPage(query, filters.Page, map[string]string{
		"title":       "title",
		"views_count": "views_count",
		"created_at":  "created_at",
		"id":          "id",
	}, "created_at")

	if err := query.Find(&resources).Error; err != nil {
		return nil, 0, handleDBError(err, "list resources")
	}

	return resources, total, nil
}

func (r *resourceRepository) ReplaceTags(ctx context.Context, tx *gorm.DB, resource *models.Resource, tags []models.Tag) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Model(resource).Association("Tags").Replace(&tags); err != nil {
		return handleDBError(err, "replace resource tags")
	}
	resource.Tags = tags
	return nil
}

func (r *resourceRepository) IncrementViews(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(&models.Resource{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return handleDBError(err, "increment resource views")
	}
	return nil
}

func (r *resourceRepository) SaveContentText(ctx context.Context, tx *gorm.DB, resource *models.Resource) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(resource).
		Update("content_text", resource.ContentText).Error; err != nil {
		return handleDBError(err, "save resource content text")
	}
	return nil
}

func (r *resourceRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== MULTIMEDIA REPOSITORY =====

type multimediaRepository struct {
	db *gorm.DB
}

func NewMultimediaPostgreSQL(db *gorm.DB) repositories.MultimediaRepository {
	return &multimediaRepository{db: db}
}

func (r *multimediaRepository) Create(ctx context.Context, tx *gorm.DB, media *models.Multimedia) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(media).Error; err != nil {
		return handleDBError(err, "create multimedia")
	}
	return nil
}

func (r *multimediaRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Multimedia, error) {
	db := r.getDB(tx)
	var media models.Multimedia

	if err := db.WithContext(ctx).
		Preload("Tags").
		First(&media, id).Error; err != nil {
		return nil, handleDBError(err, "get multimedia by id")
	}

	return &media, nil
}

func (r *multimediaRepository) Update(ctx context.Context, tx *gorm.DB, media *models.Multimedia) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(media).Error; err != nil {
		return handleDBError(err, "update multimedia")
	}
	return nil
}

func (r *multimediaRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.Multimedia{}, id).Error; err != nil {
		return handleDBError(err, "delete multimedia")
	}
	return nil
}

func (r *multimediaRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.MultimediaFilters) ([]*models.Multimedia, int64, error) {
	db := r.getDB(tx)
	var items []*models.Multimedia
	var total int64

	query := db.WithContext(ctx).Model(&models.Multimedia{}).Preload("Tags")

	if filters.Search != nil {
		search := "%" + *filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.TagID != nil {
		query = query.
			Joins("INNER JOIN multimedia_tags mt ON mt.multimedia_id = multimedia.id").
			Where("mt.tag_id = ?", *filters.TagID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count multimedia")
	}

	query = applyPage(query, filters.Page, map[string]string{
		"title":      "title",
		"rating_avg": "rating_avg",
		"created_at": "created_at",
		"id":         "id",
	}, "created_at")

	if err := query.Find(&items).Error; err != nil {
		return nil, 0, handleDBError(err, "list multimedia")
	}

	return items, total, nil
}

func (r *multimediaRepository) ReplaceTags(ctx context.Context, tx *gorm.DB, media *models.Multimedia, tags []models.Tag) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Model(media).Association("Tags").Replace(&tags); err != nil {
		return handleDBError(err, "replace multimedia tags")
	}
	media.Tags = tags
	return nil
}

func (r *multimediaRepository) SaveContentText(ctx context.Context, tx *gorm.DB, media *models.Multimedia) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(media).
		Update("content_text", media.ContentText).Error; err != nil {
		return handleDBError(err, "save multimedia content text")
	}
	return nil
}

func (r *multimediaRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== SUCCESS STORY REPOSITORY =====

type storyRepository struct {
	db *gorm.DB
}

func NewStoryPostgreSQL(db *gorm.DB) repositories.StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, tx *gorm.DB, story *models.SuccessStory) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(story).Error; err != nil {
		return handleDBError(err, "create success story")
	}
	return nil
}

func (r *storyRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.SuccessStory, error) {
	db := r.getDB(tx)
	var story models.SuccessStory

	if err := db.WithContext(ctx).First(&story, id).Error; err != nil {
		return nil, handleDBError(err, "get success story by id")
	}

	return &story, nil
}

func (r *storyRepository) Update(ctx context.Context, tx *gorm.DB, story *models.SuccessStory) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(story).Error; err != nil {
		return handleDBError(err, "update success story")
	}
	return nil
}

func (r *storyRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Delete(&models.SuccessStory{}, id).Error; err != nil {
		return handleDBError(err, "delete success story")
	}
	return nil
}

func (r *storyRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.StoryFilters) ([]*models.SuccessStory, int64, error) {
	db := r.getDB(tx)
	var stories []*models.SuccessStory
	var total int64

	query := db.WithContext(ctx).Model(&models.SuccessStory{})

	if filters.Search != nil {
		search := "%" + *filters.Search + "%"
		query = query.Where("title ILIKE ? OR story_text ILIKE ?", search, search)
	}
	if filters.Domain != nil {
		query = query.Where("domain = ?", *filters.Domain)
	}
	if filters.IsApproved != nil {
		query = query.Where("is_approved = ?", *filters.IsApproved)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count success stories")
	}

	query = applyPage(query, filters.Page, map[string]string{
		"title":        "title",
		"submitted_at": "submitted_at",
		"id":           "id",
	}, "submitted_at")

	if err := query.Find(&stories).Error; err != nil {
		return nil, 0, handleDBError(err, "list success stories")
	}

	return stories, total, nil
}

func (r *storyRepository) SaveContentText(ctx context.Context, tx *gorm.DB, story *models.SuccessStory) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(story).
		Update("content_text", story.ContentText).Error; err != nil {
		return handleDBError(err, "save success story content text")
	}
	return nil
}

func (r *storyRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== FEEDBACK REPOSITORY =====

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackPostgreSQL(db *gorm.DB) repositories.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, tx *gorm.DB, feedback *models.Feedback) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(feedback).Error; err != nil {
		return handleDBError(err, "create feedback")
	}
	return nil
}

func (r *feedbackRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Feedback, error) {
	db := r.getDB(tx)
	var feedback models.Feedback

	if err := db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		return nil, handleDBError(err, "get feedback by id")
	}

	return &feedback, nil
}

func (r *feedbackRepository) Update(ctx context.Context, tx *gorm.DB, feedback *models.Feedback) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(feedback).Error; err != nil {
		return handleDBError(err, "update feedback")
	}
	return nil
}

func (r *feedbackRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.FeedbackFilters) ([]*models.Feedback, int64, error) {
	db := r.getDB(tx)
	var items []*models.Feedback
	var total int64

	query := db.WithContext(ctx).Model(&models.Feedback{})

	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count feedback")
	}

	query = applyPage(query, filters.Page, map[string]string{
		"submitted_at": "submitted_at",
		"status":       "status",
		"id":           "id",
	}, "submitted_at")

	if err := query.Find(&items).Error; err != nil {
		return nil, 0, handleDBError(err, "list feedback")
	}

	return items, total, nil
}

func (r *feedbackRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
