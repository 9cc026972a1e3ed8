package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/db"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) (*domain.Lesson, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lesson, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*domain.Lesson, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(gdb *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: gdb, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) (*domain.Lesson, error) {
	if err := r.conn(tx).WithContext(ctx).Create(lesson).Error; err != nil {
		return nil, db.MapError("lesson.create", err)
	}
	return lesson, nil
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lesson, error) {
	var l domain.Lesson
	if err := r.conn(tx).WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, db.MapError("lesson.get_by_id", err)
	}
	return &l, nil
}

func (r *lessonRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*domain.Lesson, error) {
	var results []*domain.Lesson
	if err := r.conn(tx).WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sort_index ASC").
		Find(&results).Error; err != nil {
		return nil, db.MapError("lesson.get_by_course_id", err)
	}
	return results, nil
}

func (r *lessonRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, db.MapError("lesson.exists", err)
	}
	return count > 0, nil
}

func (r *lessonRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Lesson{}).Error; err != nil {
		return db.MapError("lesson.delete", err)
	}
	return nil
}
