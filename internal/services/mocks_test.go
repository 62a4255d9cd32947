package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nextstep-app/career-service/internal/models"
	"github.com/nextstep-app/career-service/internal/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRepository is an in-memory repositories.Repository for service tests.
// Only the stores the services under test touch are populated; the rest
// return nil.
type mockRepository struct {
	users        *mockUserRepo
	tokens       *mockTokenRepo
	profiles     *mockProfileRepo
	careers      *mockCareerRepo
	quizzes      *mockQuizRepo
	questions    *mockQuestionRepo
	attempts     *mockAttemptRepo
	interactions *mockInteractionRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:        &mockUserRepo{users: map[uint]*models.User{}},
		tokens:       &mockTokenRepo{tokens: map[uint]*models.UserToken{}},
		profiles:     &mockProfileRepo{},
		careers:      &mockCareerRepo{careers: map[uint]*models.Career{}},
		quizzes:      &mockQuizRepo{quizzes: map[uint]*models.Quiz{}},
		questions:    &mockQuestionRepo{},
		attempts:     &mockAttemptRepo{attempts: map[uint]*models.QuizAttempt{}},
		interactions: &mockInteractionRepo{},
	}
}

func (m *mockRepository) User() repositories.UserRepository               { return m.users }
func (m *mockRepository) Token() repositories.TokenRepository             { return m.tokens }
func (m *mockRepository) Profile() repositories.ProfileRepository        { return m.profiles }
func (m *mockRepository) Tag() repositories.TagRepository                { return nil }
func (m *mockRepository) Skill() repositories.SkillRepository            { return nil }
func (m *mockRepository) Career() repositories.CareerRepository          { return m.careers }
func (m *mockRepository) Resource() repositories.ResourceRepository      { return nil }
func (m *mockRepository) Multimedia() repositories.MultimediaRepository  { return nil }
func (m *mockRepository) Story() repositories.StoryRepository            { return nil }
func (m *mockRepository) Feedback() repositories.FeedbackRepository      { return nil }
func (m *mockRepository) Quiz() repositories.QuizRepository              { return m.quizzes }
func (m *mockRepository) QuizQuestion() repositories.QuizQuestionRepository {
	return m.questions
}
func (m *mockRepository) Attempt() repositories.AttemptRepository           { return m.attempts }
func (m *mockRepository) Interaction() repositories.InteractionRepository   { return m.interactions }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USERS =====

type mockUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func (r *mockUserRepo) Create(_ context.Context, _ *gorm.DB, user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetByEmail(_ context.Context, _ *gorm.DB, email string) (*models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) GetByUsername(_ context.Context, _ *gorm.DB, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) Update(_ context.Context, _ *gorm.DB, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) ExistsByEmail(_ context.Context, _ *gorm.DB, email string) (bool, error) {
	_, err := r.GetByEmail(nil, nil, email)
	return err == nil, nil
}

func (r *mockUserRepo) ExistsByUsername(_ context.Context, _ *gorm.DB, username string) (bool, error) {
	_, err := r.GetByUsername(nil, nil, username)
	return err == nil, nil
}

// ===== TOKENS =====

type mockTokenRepo struct {
	tokens map[uint]*models.UserToken
}

func (r *mockTokenRepo) Upsert(_ context.Context, _ *gorm.DB, token *models.UserToken) error {
	r.tokens[token.UserID] = token
	return nil
}

func (r *mockTokenRepo) GetByUserID(_ context.Context, _ *gorm.DB, userID uint) (*models.UserToken, error) {
	token, ok := r.tokens[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return token, nil
}

func (r *mockTokenRepo) UpdateAccessToken(_ context.Context, _ *gorm.DB, userID uint, accessToken string) error {
	token, ok := r.tokens[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	token.AccessToken = accessToken
	return nil
}

func (r *mockTokenRepo) Delete(_ context.Context, _ *gorm.DB, userID uint) error {
	delete(r.tokens, userID)
	return nil
}

// ===== PROFILES =====

type mockProfileRepo struct {
	profiles []*models.UserProfile
}

func (r *mockProfileRepo) GetOrCreate(_ context.Context, _ *gorm.DB, userID uint) (*models.UserProfile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	profile := &models.UserProfile{UserID: userID}
	r.profiles = append(r.profiles, profile)
	return profile, nil
}

func (r *mockProfileRepo) Update(_ context.Context, _ *gorm.DB, profile *models.UserProfile) error {
	return nil
}

func (r *mockProfileRepo) ReplaceInterests(_ context.Context, _ *gorm.DB, profile *models.UserProfile, tagIDs []uint) error {
	return nil
}

// ===== CAREERS =====

type mockCareerRepo struct {
	careers map[uint]*models.Career
	nextID  uint
}

func (r *mockCareerRepo) Create(_ context.Context, _ *gorm.DB, career *models.Career) error {
	r.nextID++
	career.ID = r.nextID
	r.careers[career.ID] = career
	return nil
}

func (r *mockCareerRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.Career, error) {
	career, ok := r.careers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return career, nil
}

func (r *mockCareerRepo) Update(_ context.Context, _ *gorm.DB, career *models.Career) error {
	r.careers[career.ID] = career
	return nil
}

func (r *mockCareerRepo) Delete(_ context.Context, _ *gorm.DB, id uint) error {
	delete(r.careers, id)
	return nil
}

func (r *mockCareerRepo) List(_ context.Context, _ *gorm.DB, filters repositories.CareerFilters) ([]*models.Career, int64, error) {
	out := make([]*models.Career, 0, len(r.careers))
	for _, c := range r.careers {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *mockCareerRepo) ReplaceTags(_ context.Context, _ *gorm.DB, career *models.Career, tags []models.Tag) error {
	return nil
}

func (r *mockCareerRepo) ReplaceSkills(_ context.Context, _ *gorm.DB, career *models.Career, skills []models.Skill) error {
	return nil
}

func (r *mockCareerRepo) SaveContentText(_ context.Context, _ *gorm.DB, career *models.Career) error {
	return nil
}

// ===== QUIZZES =====

type mockQuizRepo struct {
	quizzes map[uint]*models.Quiz
	nextID  uint
}

func (r *mockQuizRepo) Create(_ context.Context, _ *gorm.DB, quiz *models.Quiz) error {
	r.nextID++
	quiz.ID = r.nextID
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *mockQuizRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.Quiz, error) {
	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (r *mockQuizRepo) GetByIDWithQuestions(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	return r.GetByID(ctx, tx, id)
}

func (r *mockQuizRepo) GetActiveByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	quiz, err := r.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (r *mockQuizRepo) GetRandomActive(_ context.Context, _ *gorm.DB) (*models.Quiz, error) {
	for _, quiz := range r.quizzes {
		if quiz.IsActive {
			return quiz, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockQuizRepo) Update(_ context.Context, _ *gorm.DB, quiz *models.Quiz) error {
	r.quizzes[quiz.ID] = quiz
	return nil
}

func (r *mockQuizRepo) Delete(_ context.Context, _ *gorm.DB, id uint) error {
	delete(r.quizzes, id)
	return nil
}

func (r *mockQuizRepo) List(_ context.Context, _ *gorm.DB, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	out := make([]*models.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		out = append(out, q)
	}
	return out, int64(len(out)), nil
}

// ===== QUIZ QUESTIONS =====

type mockQuestionRepo struct {
	questions []*models.QuizQuestion
	nextID    uint
}

func (r *mockQuestionRepo) Create(_ context.Context, _ *gorm.DB, question *models.QuizQuestion) error {
	r.nextID++
	question.ID = r.nextID
	r.questions = append(r.questions, question)
	return nil
}

func (r *mockQuestionRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.QuizQuestion, error) {
	for _, q := range r.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockQuestionRepo) Update(_ context.Context, _ *gorm.DB, question *models.QuizQuestion) error {
	return nil
}

func (r *mockQuestionRepo) Delete(_ context.Context, _ *gorm.DB, id uint) error {
	return nil
}

func (r *mockQuestionRepo) ListByQuiz(_ context.Context, _ *gorm.DB, quizID uint) ([]*models.QuizQuestion, error) {
	out := []*models.QuizQuestion{}
	for _, q := range r.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

// ===== ATTEMPTS =====

type mockAttemptRepo struct {
	attempts map[uint]*models.QuizAttempt
	nextID   uint
}

func (r *mockAttemptRepo) Create(_ context.Context, _ *gorm.DB, attempt *models.QuizAttempt) error {
	r.nextID++
	attempt.ID = r.nextID
	if attempt.StartedAt.IsZero() {
		attempt.StartedAt = time.Now()
	}
	r.attempts[attempt.ID] = attempt
	return nil
}

func (r *mockAttemptRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.QuizAttempt, error) {
	attempt, ok := r.attempts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

func (r *mockAttemptRepo) Update(_ context.Context, _ *gorm.DB, attempt *models.QuizAttempt) error {
	r.attempts[attempt.ID] = attempt
	return nil
}

func (r *mockAttemptRepo) List(_ context.Context, _ *gorm.DB, filters repositories.AttemptFilters) ([]*models.QuizAttempt, int64, error) {
	out := []*models.QuizAttempt{}
	for id := uint(1); id <= r.nextID; id++ {
		attempt, ok := r.attempts[id]
		if !ok {
			continue
		}
		if filters.UserID != nil && attempt.UserID != *filters.UserID {
			continue
		}
		if filters.QuizID != nil && attempt.QuizID != *filters.QuizID {
			continue
		}
		if filters.Completed != nil && (attempt.CompletedAt != nil) != *filters.Completed {
			continue
		}
		out = append(out, attempt)
	}
	return out, int64(len(out)), nil
}

// ===== INTERACTIONS =====

type mockInteractionRepo struct {
	interactions []*models.Interaction
	nextID       uint
}

func (r *mockInteractionRepo) Create(_ context.Context, _ *gorm.DB, interaction *models.Interaction) error {
	r.nextID++
	interaction.ID = r.nextID
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}
	r.interactions = append(r.interactions, interaction)
	return nil
}

func (r *mockInteractionRepo) GetByID(_ context.Context, _ *gorm.DB, id uint) (*models.Interaction, error) {
	for _, it := range r.interactions {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockInteractionRepo) List(_ context.Context, _ *gorm.DB, filters repositories.InteractionFilters) ([]*models.Interaction, int64, error) {
	out := []*models.Interaction{}
	for _, it := range r.interactions {
		if filters.UserID != nil && it.UserID != *filters.UserID {
			continue
		}
		if filters.Type != nil && it.Type != *filters.Type {
			continue
		}
		out = append(out, it)
	}
	return out, int64(len(out)), nil
}
