package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/db"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type QuizAttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *domain.QuizAttempt) (*domain.QuizAttempt, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.QuizAttempt, error)
	CountByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error)
	CountByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) (int64, error)
	AvgScoreByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (float64, error)
	PassCountByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error)
	DistinctUsersByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error)
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(gdb *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return &quizAttemptRepo{db: gdb, log: baseLog.With("repo", "QuizAttemptRepo")}
}

func (r *quizAttemptRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *domain.QuizAttempt) (*domain.QuizAttempt, error) {
	if err := r.conn(tx).WithContext(ctx).Create(attempt).Error; err != nil {
		return nil, db.MapError("quiz_attempt.create", err)
	}
	return attempt, nil
}

func (r *quizAttemptRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.QuizAttempt, error) {
	q := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*domain.QuizAttempt
	if err := q.Find(&results).Error; err != nil {
		return nil, db.MapError("quiz_attempt.get_by_user_id", err)
	}
	return results, nil
}

func (r *quizAttemptRepo) CountByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.QuizAttempt{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error; err != nil {
		return 0, db.MapError("quiz_attempt.count_by_quiz_id", err)
	}
	return count, nil
}

func (r *quizAttemptRepo) CountByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error; err != nil {
		return 0, db.MapError("quiz_attempt.count_by_user_and_quiz", err)
	}
	return count, nil
}

func (r *quizAttemptRepo) AvgScoreByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (float64, error) {
	var avg *float64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.QuizAttempt{}).
		Where("quiz_id = ?", quizID).
		Select("AVG(score)").
		Scan(&avg).Error; err != nil {
		return 0, db.MapError("quiz_attempt.avg_score_by_quiz_id", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}

func (r *quizAttemptRepo) PassCountByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.QuizAttempt{}).
		Where("quiz_id = ? AND passed = ?", quizID, true).
		Count(&count).Error; err != nil {
		return 0, db.MapError("quiz_attempt.pass_count_by_quiz_id", err)
	}
	return count, nil
}

func (r *quizAttemptRepo) DistinctUsersByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&domain.QuizAttempt{}).
		Where("quiz_id = ?", quizID).
		Distinct("user_id").
		Count(&count).Error; err != nil {
		return 0, db.MapError("quiz_attempt.distinct_users_by_quiz_id", err)
	}
	return count, nil
}
