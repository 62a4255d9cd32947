package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	if err := db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	if err := db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}

	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User

	if err := db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by username")
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return handleDBError(err, "update user")
	}
	return nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check if email exists")
	}

	return count > 0, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	db := r.getDB(tx)
	var count int64

	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check if username exists")
	}

	return count > 0, nil
}

func (r *userRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== TOKEN REPOSITORY =====

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenPostgreSQL(db *gorm.DB) repositories.TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Upsert(ctx context.Context, tx *gorm.DB, token *models.UserToken) error {
	db := r.getDB(tx)

	// One row per user, replaced on every login
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "updated_at"}),
		}).
		Create(token).Error; err != nil {
		return handleDBError(err, "upsert user token")
	}

	return nil
}

func (r *tokenRepository) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserToken, error) {
	db := r.getDB(tx)
	var token models.UserToken

	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&token).Error; err != nil {
		return nil, handleDBError(err, "get user token")
	}

	return &token, nil
}

func (r *tokenRepository) UpdateAccessToken(ctx context.Context, tx *gorm.DB, userID uint, accessToken string) error {
	db := r.getDB(tx)

	result := db.WithContext(ctx).
		Model(&models.UserToken{}).
		Where("user_id = ?", userID).
		Update("access_token", accessToken)
	if result.Error != nil {
		return handleDBError(result.Error, "update access token")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "update access token")
	}

	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, tx *gorm.DB, userID uint) error {
	db := r.getDB(tx)

	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserToken{}).Error; err != nil {
		return handleDBError(err, "delete user token")
	}

	return nil
}

func (r *tokenRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== PROFILE REPOSITORY =====

type profileRepository struct {
	db *gorm.DB
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uint) (*models.UserProfile, error) {
	db := r.getDB(tx)
	var profile models.UserProfile

	err := db.WithContext(ctx).
		Preload("Interests").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, handleDBError(err, "get user profile")
	}

	profile = models.UserProfile{UserID: userID}
	if err := db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, handleDBError(err, "create user profile")
	}

	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, tx *gorm.DB, profile *models.UserProfile) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(profile).Error; err != nil {
		return handleDBError(err, "update user profile")
	}
	return nil
}

func (r *profileRepository) ReplaceInterests(ctx context.Context, tx *gorm.DB, profile *models.UserProfile, tagIDs []uint) error {
	db := r.getDB(tx)

	var tags []models.Tag
	if len(tagIDs) > 0 {
		if err := db.WithContext(ctx).Find(&tags, tagIDs).Error; err != nil {
			return handleDBError(err, "get interest tags")
		}
		if len(tags) != len(tagIDs) {
			return handleDBError(gorm.ErrRecordNotFound, "resolve interest tags")
		}
	}

	if err := db.WithContext(ctx).
		Model(profile).
		Association("Interests").
		Replace(&tags); err != nil {
		return handleDBError(err, "replace interests")
	}
	profile.Interests = tags

	return nil
}

func (r *profileRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
