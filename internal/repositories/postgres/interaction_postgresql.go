package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

// interactionRepository is append-only: rows are never updated or deleted.
type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionPostgreSQL(db *gorm.DB) repositories.InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, tx *gorm.DB, interaction *models.Interaction) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(interaction).Error; err != nil {
		return handleDBError(err, "create interaction")
	}
	return nil
}

func (r *interactionRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Interaction, error) {
	db := r.getDB(tx)
	var interaction models.Interaction

	if err := db.WithContext(ctx).First(&interaction, id).Error; err != nil {
		return nil, handleDBError(err, "get interaction by id")
	}

	return &interaction, nil
}

func (r *interactionRepository) List(ctx context.Context, tx *gorm.DB, filters repositories.InteractionFilters) ([]*models.Interaction, int64, error) {
	db := r.getDB(tx)
	var interactions []*models.Interaction
	var total int64

	query := db.WithContext(ctx).Model(&models.Interaction{})

	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.TargetType != nil {
		query = query.Where("target_type = ?", *filters.TargetType)
	}
	if filters.TargetID != nil {
		query = query.Where("target_id = ?", *filters.TargetID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count interactions")
	}

	query = applyPage(query, filters.Page, map[string]string{
		"created_at": "created_at",
		"id":         "id",
	}, "created_at")

	if err := query.Find(&interactions).Error; err != nil {
		return nil, 0, handleDBError(err, "list interactions")
	}

	return interactions, total, nil
}

func (r *interactionRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
