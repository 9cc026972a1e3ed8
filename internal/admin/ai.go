package admin

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/oumacavin/smartlearn-backend/internal/data/graph"
	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

const defaultRecommendationLimit = 5

// AIStore fronts the recommendation side of the graph plus the activity
// counters that feed its stats view.
type AIStore struct {
	log      *logger.Logger
	graph    graph.ConceptStore
	activity repos.ActivityRepo
}

func NewAIStore(baseLog *logger.Logger, conceptStore graph.ConceptStore, activity repos.ActivityRepo) *AIStore {
	return &AIStore{
		log:      baseLog.With("store", "AIStore"),
		graph:    conceptStore,
		activity: activity,
	}
}

// GetRecommendations traverses completed concepts to their RECOMMENDS
// neighbors. Any graph failure, a disabled graph included, degrades to an
// empty list.
func (s *AIStore) GetRecommendations(ctx context.Context, userID string, limit int) Result {
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	concepts, err := s.graph.RecommendationsForUser(ctx, userID, limit)
	if err != nil {
		s.log.Error("get_recommendations failed", "action", "traverse", "user_id", userID, "error", err)
		return OK([]*domain.Concept{})
	}
	if concepts == nil {
		concepts = []*domain.Concept{}
	}
	return OK(concepts)
}

// RecordRecommendation writes the served edge into the graph. A missing
// endpoint surfaces as NOT_FOUND; any other failure as DATABASE_ERROR.
func (s *AIStore) RecordRecommendation(ctx context.Context, userID, conceptID string) Result {
	if userID == "" || conceptID == "" {
		return Fail(CodeValidationError, "user_id and concept_id are required")
	}
	if err := s.graph.RecordRecommendation(ctx, userID, conceptID); err != nil {
		if storeerr.IsNotFound(err) {
			return Fail(CodeNotFound, "user %q or concept %q not found", userID, conceptID)
		}
		s.log.Error("record_recommendation failed", "action", "write", "user_id", userID, "concept_id", conceptID, "error", err)
		return Fail(CodeDatabaseError, "record recommendation: %v", err)
	}
	s.recordActivity(ctx, domain.ActivityRecommendationServed, userID, conceptID)
	return OK(map[string]any{"user_id": userID, "concept_id": conceptID, "recorded": true})
}

// AIStats aggregates recommendation counters. Each aggregate is fetched
// independently; a failing aggregate lands in Failed and zeroes its field
// instead of sinking the whole call.
type AIStats struct {
	RecommendationsServed int64    `json:"recommendations_served"`
	ServedLast24h         int64    `json:"served_last_24h"`
	QuizAttempts          int64    `json:"quiz_attempts"`
	Failed                []string `json:"failed,omitempty"`
}

func (s *AIStore) GetAIStats(ctx context.Context) Result {
	var (
		stats AIStats
		mu    sync.Mutex
	)
	markFailed := func(name string, err error) {
		s.log.Error("ai_stats aggregate failed", "aggregate", name, "error", err)
		mu.Lock()
		stats.Failed = append(stats.Failed, name)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.graph.RecommendationsServed(gctx)
		if err != nil {
			markFailed("recommendations_served", err)
			return nil
		}
		mu.Lock()
		stats.RecommendationsServed = n
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		n, err := s.activity.CountSince(gctx, nil, domain.ActivityRecommendationServed, time.Now().Add(-24*time.Hour))
		if err != nil {
			markFailed("served_last_24h", err)
			return nil
		}
		mu.Lock()
		stats.ServedLast24h = n
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		n, err := s.activity.CountByKind(gctx, nil, domain.ActivityQuizAttempted)
		if err != nil {
			markFailed("quiz_attempts", err)
			return nil
		}
		mu.Lock()
		stats.QuizAttempts = n
		mu.Unlock()
		return nil
	})
	_ = g.Wait()

	return OK(&stats)
}

func (s *AIStore) recordActivity(ctx context.Context, kind, actorID, subjectID string) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		actor = uuid.Nil
	}
	if _, err := s.activity.Create(ctx, nil, &domain.Activity{
		Kind:      kind,
		ActorID:   actor,
		SubjectID: subjectID,
	}); err != nil {
		s.log.Warn("activity record failed", "kind", kind, "subject_id", subjectID, "error", err)
	}
}
