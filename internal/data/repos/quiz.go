package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/db"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type QuizSearch struct {
	Query     string
	ConceptID string
	LessonID  *uuid.UUID
	Published *bool
	Limit     int
}

type QuizRepo interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *domain.Quiz) (*domain.Quiz, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Quiz, error)
	Search(ctx context.Context, tx *gorm.DB, filter QuizSearch) ([]*domain.Quiz, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizRepo(gdb *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return &quizRepo{db: gdb, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *domain.Quiz) (*domain.Quiz, error) {
	if err := r.conn(tx).WithContext(ctx).Create(quiz).Error; err != nil {
		return nil, db.MapError("quiz.create", err)
	}
	return quiz, nil
}

func (r *quizRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Quiz, error) {
	var q domain.Quiz
	if err := r.conn(tx).WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		return nil, db.MapError("quiz.get_by_id", err)
	}
	return &q, nil
}

func (r *quizRepo) Search(ctx context.Context, tx *gorm.DB, filter QuizSearch) ([]*domain.Quiz, error) {
	q := r.conn(tx).WithContext(ctx).Model(&domain.Quiz{})
	if filter.Query != "" {
		q = q.Where("title ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.ConceptID != "" {
		q = q.Where("concept_id = ?", filter.ConceptID)
	}
	if filter.LessonID != nil {
		q = q.Where("lesson_id = ?", *filter.LessonID)
	}
	if filter.Published != nil {
		q = q.Where("published = ?", *filter.Published)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var results []*domain.Quiz
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, db.MapError("quiz.search", err)
	}
	return results, nil
}

func (r *quizRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Quiz{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return db.MapError("quiz.update", err)
	}
	return nil
}

func (r *quizRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Quiz{}).Error; err != nil {
		return db.MapError("quiz.delete", err)
	}
	return nil
}

func (r *quizRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Quiz{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, db.MapError("quiz.exists", err)
	}
	return count > 0, nil
}
