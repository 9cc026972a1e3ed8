package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/db"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type ActivityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, activity *domain.Activity) (*domain.Activity, error)
	Recent(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.Activity, error)
	CountByKind(ctx context.Context, tx *gorm.DB, kind string) (int64, error)
	CountSince(ctx context.Context, tx *gorm.DB, kind string, since time.Time) (int64, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(gdb *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{db: gdb, log: baseLog.With("repo", "ActivityRepo")}
}

func (r *activityRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *activityRepo) Create(ctx context.Context, tx *gorm.DB, activity *domain.Activity) (*domain.Activity, error) {
	if err := r.conn(tx).WithContext(ctx).Create(activity).Error; err != nil {
		return nil, db.MapError("activity.create", err)
	}
	return activity, nil
}

func (r *activityRepo) Recent(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	var results []*domain.Activity
	if err := r.conn(tx).WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, db.MapError("activity.recent", err)
	}
	return results, nil
}

func (r *activityRepo) CountByKind(ctx context.Context, tx *gorm.DB, kind string) (int64, error) {
	var count int64
	q := r.conn(tx).WithContext(ctx).Model(&domain.Activity{})
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, db.MapError("activity.count_by_kind", err)
	}
	return count, nil
}

func (r *activityRepo) CountSince(ctx context.Context, tx *gorm.DB, kind string, since time.Time) (int64, error) {
	var count int64
	q := r.conn(tx).WithContext(ctx).
		Model(&domain.Activity{}).
		Where("created_at >= ?", since)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, db.MapError("activity.count_since", err)
	}
	return count, nil
}
