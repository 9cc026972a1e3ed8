package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "pw",
		Role:     domain.RoleStudent,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *domain.Course {
	tb.Helper()
	c := &domain.Course{
		ID:    uuid.New(),
		Title: title,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedLesson(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, title string) *domain.Lesson {
	tb.Helper()
	l := &domain.Lesson{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    title,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedQuiz(tb testing.TB, ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, conceptID string) *domain.Quiz {
	tb.Helper()
	q := &domain.Quiz{
		ID:           uuid.New(),
		Title:        "quiz",
		ConceptID:    conceptID,
		LessonID:     lessonID,
		PassingScore: 70,
		MaxAttempts:  3,
	}
	if err := tx.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return q
}

func SeedAttempt(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID, score float64, passed bool) *domain.QuizAttempt {
	tb.Helper()
	a := &domain.QuizAttempt{
		ID:     uuid.New(),
		UserID: userID,
		QuizID: quizID,
		Score:  score,
		Passed: passed,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed attempt: %v", err)
	}
	return a
}
