package admin

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/oumacavin/smartlearn-backend/internal/data/graph"
	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

// QuizStore is the admin store for quizzes, attempts and quiz analytics.
type QuizStore struct {
	log      *logger.Logger
	quizzes  repos.QuizRepo
	lessons  repos.LessonRepo
	users    repos.UserRepo
	attempts repos.QuizAttemptRepo
	activity repos.ActivityRepo
	graph    graph.ConceptStore
}

func NewQuizStore(
	baseLog *logger.Logger,
	quizzes repos.QuizRepo,
	lessons repos.LessonRepo,
	users repos.UserRepo,
	attempts repos.QuizAttemptRepo,
	activity repos.ActivityRepo,
	conceptStore graph.ConceptStore,
) *QuizStore {
	return &QuizStore{
		log:      baseLog.With("store", "QuizStore"),
		quizzes:  quizzes,
		lessons:  lessons,
		users:    users,
		attempts: attempts,
		activity: activity,
		graph:    conceptStore,
	}
}

type CreateQuizInput struct {
	Title            string `json:"title"`
	ConceptID        string `json:"concept_id"`
	LessonID         string `json:"lesson_id"`
	PassingScore     int    `json:"passing_score"`
	MaxAttempts      int    `json:"max_attempts"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`
	Published        bool   `json:"published"`
}

// CreateQuiz validates the concept/lesson pair before the insert, writes the
// relational row, then links the quiz to its concept in the graph. A graph
// failure after the insert surfaces as ACTION_ERROR with the created quiz
// kept in the envelope.
func (s *QuizStore) CreateQuiz(ctx context.Context, in CreateQuizInput) Result {
	if in.Title == "" || in.ConceptID == "" || in.LessonID == "" {
		return Fail(CodeValidationError, "title, concept_id and lesson_id are required")
	}
	lessonID, err := uuid.Parse(in.LessonID)
	if err != nil {
		return Fail(CodeNotFound, "lesson %q not found", in.LessonID)
	}
	lessonExists, err := s.lessons.ExistsByID(ctx, nil, lessonID)
	if err != nil {
		s.log.Error("create_quiz failed", "action", "lesson_existence_check", "lesson_id", in.LessonID, "error", err)
		return Fail(CodeDatabaseError, "create quiz: %v", err)
	}
	if !lessonExists {
		return Fail(CodeNotFound, "lesson %q not found", in.LessonID)
	}
	if s.graph.Enabled() {
		conceptExists, err := s.graph.ConceptExists(ctx, in.ConceptID)
		if err != nil {
			s.log.Error("create_quiz failed", "action", "concept_existence_check", "concept_id", in.ConceptID, "error", err)
			return Fail(CodeDatabaseError, "create quiz: %v", err)
		}
		if !conceptExists {
			return Fail(CodeNotFound, "concept %q not found", in.ConceptID)
		}
	}

	passing := in.PassingScore
	if passing <= 0 {
		passing = 70
	}
	maxAttempts := in.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	quiz, err := s.quizzes.Create(ctx, nil, &domain.Quiz{
		Title:            in.Title,
		ConceptID:        in.ConceptID,
		LessonID:         lessonID,
		PassingScore:     passing,
		MaxAttempts:      maxAttempts,
		TimeLimitMinutes: in.TimeLimitMinutes,
		Published:        in.Published,
	})
	if err != nil {
		s.log.Error("create_quiz failed", "action", "create", "error", err)
		return Fail(CodeDatabaseError, "create quiz: %v", err)
	}
	s.recordActivity(ctx, domain.ActivityQuizCreated, uuid.Nil, quiz.ID.String())

	if err := s.graph.LinkQuizConcept(ctx, quiz.ID, quiz.ConceptID); err != nil {
		s.log.Error("create_quiz graph sync failed", "action", "graph_sync", "quiz_id", quiz.ID.String(), "error", err)
		return FailWith(quiz, CodeActionError, "quiz created but graph sync failed: %v", err)
	}
	return OK(quiz)
}

func (s *QuizStore) GetQuiz(ctx context.Context, id string) Result {
	quizID, err := uuid.Parse(id)
	if err != nil {
		return OK(nil)
	}
	quiz, err := s.quizzes.GetByID(ctx, nil, quizID)
	if err != nil {
		if !storeerr.IsNotFound(err) {
			s.log.Error("get_quiz failed", "action", "read", "quiz_id", id, "error", err)
		}
		return OK(nil)
	}
	return OK(quiz)
}

func (s *QuizStore) SearchQuizzes(ctx context.Context, filter repos.QuizSearch) Result {
	quizzes, err := s.quizzes.Search(ctx, nil, filter)
	if err != nil {
		s.log.Error("search_quizzes failed", "action", "search", "error", err)
		return OK([]*domain.Quiz{})
	}
	if quizzes == nil {
		quizzes = []*domain.Quiz{}
	}
	return OK(quizzes)
}

var quizUpdatableFields = map[string]bool{
	"title":              true,
	"passing_score":      true,
	"max_attempts":       true,
	"time_limit_minutes": true,
	"published":          true,
}

func (s *QuizStore) UpdateQuiz(ctx context.Context, id string, fields map[string]any) Result {
	quizID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "quiz %q not found", id)
	}
	updates := make(map[string]any, len(fields))
	for k, v := range fields {
		if quizUpdatableFields[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return Fail(CodeValidationError, "no updatable fields supplied")
	}

	exists, err := s.quizzes.ExistsByID(ctx, nil, quizID)
	if err != nil {
		s.log.Error("update_quiz failed", "action", "existence_check", "quiz_id", id, "error", err)
		return Fail(CodeDatabaseError, "update quiz: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "quiz %q not found", id)
	}
	if err := s.quizzes.UpdateFields(ctx, nil, quizID, updates); err != nil {
		s.log.Error("update_quiz failed", "action", "update", "quiz_id", id, "error", err)
		return Fail(CodeDatabaseError, "update quiz: %v", err)
	}
	quiz, err := s.quizzes.GetByID(ctx, nil, quizID)
	if err != nil {
		s.log.Error("update_quiz readback failed", "action", "read", "quiz_id", id, "error", err)
		return OK(nil)
	}
	return OK(quiz)
}

func (s *QuizStore) DeleteQuiz(ctx context.Context, id string) Result {
	quizID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "quiz %q not found", id)
	}
	exists, err := s.quizzes.ExistsByID(ctx, nil, quizID)
	if err != nil {
		s.log.Error("delete_quiz failed", "action", "existence_check", "quiz_id", id, "error", err)
		return Fail(CodeDatabaseError, "delete quiz: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "quiz %q not found", id)
	}
	if err := s.quizzes.DeleteByID(ctx, nil, quizID); err != nil {
		s.log.Error("delete_quiz failed", "action", "delete", "quiz_id", id, "error", err)
		return Fail(CodeDatabaseError, "delete quiz: %v", err)
	}
	return OK(map[string]any{"quiz_id": id, "deleted": true})
}

type RecordAttemptInput struct {
	UserID string  `json:"user_id"`
	QuizID string  `json:"quiz_id"`
	Score  float64 `json:"score"`
}

// RecordAttempt checks both referenced entities before the insert so a bad
// identifier reports NOT_FOUND instead of a driver error.
func (s *QuizStore) RecordAttempt(ctx context.Context, in RecordAttemptInput) Result {
	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return Fail(CodeNotFound, "user %q not found", in.UserID)
	}
	quizID, err := uuid.Parse(in.QuizID)
	if err != nil {
		return Fail(CodeNotFound, "quiz %q not found", in.QuizID)
	}

	userExists, err := s.users.ExistsByID(ctx, nil, userID)
	if err != nil {
		s.log.Error("record_attempt failed", "action", "user_existence_check", "user_id", in.UserID, "error", err)
		return Fail(CodeDatabaseError, "record attempt: %v", err)
	}
	if !userExists {
		return Fail(CodeNotFound, "user %q not found", in.UserID)
	}
	quiz, err := s.quizzes.GetByID(ctx, nil, quizID)
	if err != nil {
		if storeerr.IsNotFound(err) {
			return Fail(CodeNotFound, "quiz %q not found", in.QuizID)
		}
		s.log.Error("record_attempt failed", "action", "quiz_lookup", "quiz_id", in.QuizID, "error", err)
		return Fail(CodeDatabaseError, "record attempt: %v", err)
	}

	priorAttempts, err := s.attempts.CountByUserAndQuiz(ctx, nil, userID, quizID)
	if err != nil {
		s.log.Error("record_attempt failed", "action", "attempt_count", "quiz_id", in.QuizID, "error", err)
		return Fail(CodeDatabaseError, "record attempt: %v", err)
	}
	if quiz.MaxAttempts > 0 && priorAttempts >= int64(quiz.MaxAttempts) {
		return Fail(CodeValidationError, "max attempts (%d) reached for quiz %q", quiz.MaxAttempts, in.QuizID)
	}

	passed := in.Score >= float64(quiz.PassingScore)
	attempt, err := s.attempts.Create(ctx, nil, &domain.QuizAttempt{
		UserID: userID,
		QuizID: quizID,
		Score:  in.Score,
		Passed: passed,
	})
	if err != nil {
		s.log.Error("record_attempt failed", "action", "create", "error", err)
		return Fail(CodeDatabaseError, "record attempt: %v", err)
	}
	s.recordActivity(ctx, domain.ActivityQuizAttempted, userID, quizID.String())

	if passed {
		if err := s.graph.RecordConceptCompletion(ctx, userID, quiz.ConceptID); err != nil {
			s.log.Error("record_attempt graph sync failed", "action", "graph_sync", "concept_id", quiz.ConceptID, "error", err)
			return FailWith(attempt, CodeActionError, "attempt recorded but graph sync failed: %v", err)
		}
	}
	return OK(attempt)
}

// GetUserAttempts degrades to an empty history on any read failure.
func (s *QuizStore) GetUserAttempts(ctx context.Context, userID string, limit int) Result {
	id, err := uuid.Parse(userID)
	if err != nil {
		return OK([]*domain.QuizAttempt{})
	}
	attempts, err := s.attempts.GetByUserID(ctx, nil, id, limit)
	if err != nil {
		s.log.Error("get_user_attempts failed", "action", "read", "user_id", userID, "error", err)
		return OK([]*domain.QuizAttempt{})
	}
	if attempts == nil {
		attempts = []*domain.QuizAttempt{}
	}
	return OK(attempts)
}

// QuizAnalytics carries whichever aggregates could be computed; aggregates
// that failed are named in Failed rather than blanking the whole response.
type QuizAnalytics struct {
	QuizID        string   `json:"quiz_id"`
	TotalAttempts int64    `json:"total_attempts"`
	AverageScore  float64  `json:"average_score"`
	PassRate      float64  `json:"pass_rate"`
	UniqueUsers   int64    `json:"unique_users"`
	Failed        []string `json:"failed_aggregates,omitempty"`
}

func (s *QuizStore) GetQuizAnalytics(ctx context.Context, id string) Result {
	quizID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "quiz %q not found", id)
	}
	exists, err := s.quizzes.ExistsByID(ctx, nil, quizID)
	if err != nil {
		s.log.Error("get_quiz_analytics failed", "action", "existence_check", "quiz_id", id, "error", err)
		return Fail(CodeDatabaseError, "quiz analytics: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "quiz %q not found", id)
	}

	analytics := QuizAnalytics{QuizID: id}
	var (
		mu        sync.Mutex
		passCount int64
	)
	markFailed := func(name string, err error) {
		s.log.Error("get_quiz_analytics aggregate failed", "action", name, "quiz_id", id, "error", err)
		mu.Lock()
		analytics.Failed = append(analytics.Failed, name)
		mu.Unlock()
	}

	// Each aggregate is contained on its own: closures always return nil so
	// one failure cannot cancel the siblings.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.attempts.CountByQuizID(gctx, nil, quizID)
		if err != nil {
			markFailed("total_attempts", err)
			return nil
		}
		mu.Lock()
		analytics.TotalAttempts = n
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		avg, err := s.attempts.AvgScoreByQuizID(gctx, nil, quizID)
		if err != nil {
			markFailed("average_score", err)
			return nil
		}
		mu.Lock()
		analytics.AverageScore = avg
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		n, err := s.attempts.PassCountByQuizID(gctx, nil, quizID)
		if err != nil {
			markFailed("pass_rate", err)
			return nil
		}
		mu.Lock()
		passCount = n
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		n, err := s.attempts.DistinctUsersByQuizID(gctx, nil, quizID)
		if err != nil {
			markFailed("unique_users", err)
			return nil
		}
		mu.Lock()
		analytics.UniqueUsers = n
		mu.Unlock()
		return nil
	})
	_ = g.Wait()

	if analytics.TotalAttempts > 0 && !contains(analytics.Failed, "pass_rate") && !contains(analytics.Failed, "total_attempts") {
		analytics.PassRate = float64(passCount) / float64(analytics.TotalAttempts)
	}
	return OK(analytics)
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

func (s *QuizStore) recordActivity(ctx context.Context, kind string, actorID uuid.UUID, subjectID string) {
	if _, err := s.activity.Create(ctx, nil, &domain.Activity{
		Kind:      kind,
		ActorID:   actorID,
		SubjectID: subjectID,
	}); err != nil {
		s.log.Warn("activity record failed", "kind", kind, "subject_id", subjectID, "error", err)
	}
}
