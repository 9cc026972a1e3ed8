package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/db"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type CourseSearch struct {
	Query     string
	Published *bool
	Limit     int
}

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, course *domain.Course) (*domain.Course, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Course, error)
	GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*domain.Course, error)
	Search(ctx context.Context, tx *gorm.DB, filter CourseSearch) ([]*domain.Course, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	SetPublished(ctx context.Context, tx *gorm.DB, id uuid.UUID, published bool) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(gdb *gorm.DB, baseLog *logger.Logger) CourseRepo {
	return &courseRepo{db: gdb, log: baseLog.With("repo", "CourseRepo")}
}

func (r *courseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, course *domain.Course) (*domain.Course, error) {
	if err := r.conn(tx).WithContext(ctx).Create(course).Error; err != nil {
		return nil, db.MapError("course.create", err)
	}
	return course, nil
}

func (r *courseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Course, error) {
	var c domain.Course
	if err := r.conn(tx).WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, db.MapError("course.get_by_id", err)
	}
	return &c, nil
}

func (r *courseRepo) GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*domain.Course, error) {
	var c domain.Course
	if err := r.conn(tx).WithContext(ctx).First(&c, "title = ?", title).Error; err != nil {
		return nil, db.MapError("course.get_by_title", err)
	}
	return &c, nil
}

func (r *courseRepo) Search(ctx context.Context, tx *gorm.DB, filter CourseSearch) ([]*domain.Course, error) {
	q := r.conn(tx).WithContext(ctx).Model(&domain.Course{})
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Published != nil {
		q = q.Where("published = ?", *filter.Published)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var results []*domain.Course
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, db.MapError("course.search", err)
	}
	return results, nil
}

func (r *courseRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Course{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return db.MapError("course.update", err)
	}
	return nil
}

func (r *courseRepo) SetPublished(ctx context.Context, tx *gorm.DB, id uuid.UUID, published bool) error {
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Course{}).
		Where("id = ?", id).
		Update("published", published).Error; err != nil {
		return db.MapError("course.set_published", err)
	}
	return nil
}

func (r *courseRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Course{}).Error; err != nil {
		return db.MapError("course.delete", err)
	}
	return nil
}

func (r *courseRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Course{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, db.MapError("course.exists", err)
	}
	return count > 0, nil
}

func (r *courseRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.Course{}).
		Count(&count).Error; err != nil {
		return 0, db.MapError("course.count", err)
	}
	return count, nil
}
