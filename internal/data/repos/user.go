package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/db"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type UserSearch struct {
	Query    string
	Role     string
	IsActive *bool
	Limit    int
}

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error)
	Search(ctx context.Context, tx *gorm.DB, filter UserSearch) ([]*domain.User, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
	CountByRole(ctx context.Context, tx *gorm.DB, role string) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(gdb *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: gdb, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *domain.User) (*domain.User, error) {
	if err := r.conn(tx).WithContext(ctx).Create(user).Error; err != nil {
		return nil, db.MapError("user.create", err)
	}
	return user, nil
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	if err := r.conn(tx).WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, db.MapError("user.get_by_id", err)
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := r.conn(tx).WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, db.MapError("user.get_by_username", err)
	}
	return &u, nil
}

func (r *userRepo) Search(ctx context.Context, tx *gorm.DB, filter UserSearch) ([]*domain.User, error) {
	q := r.conn(tx).WithContext(ctx).Model(&domain.User{})
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		q = q.Where("username ILIKE ? OR email ILIKE ?", like, like)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var results []*domain.User
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, db.MapError("user.search", err)
	}
	return results, nil
}

func (r *userRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return db.MapError("user.update", err)
	}
	return nil
}

func (r *userRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error; err != nil {
		return db.MapError("user.set_active", err)
	}
	return nil
}

func (r *userRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.User{}).Error; err != nil {
		return db.MapError("user.delete", err)
	}
	return nil
}

func (r *userRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, db.MapError("user.exists", err)
	}
	return count > 0, nil
}

func (r *userRepo) CountByRole(ctx context.Context, tx *gorm.DB, role string) (int64, error) {
	var count int64
	q := r.conn(tx).WithContext(ctx).Model(&domain.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, db.MapError("user.count_by_role", err)
	}
	return count, nil
}
