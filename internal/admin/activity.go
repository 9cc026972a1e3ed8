package admin

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

const defaultActivityLimit = 50

// ActivityStore is the admin store over the activity feed and the dashboard
// overview counters.
type ActivityStore struct {
	log      *logger.Logger
	activity repos.ActivityRepo
	users    repos.UserRepo
	courses  repos.CourseRepo
}

func NewActivityStore(baseLog *logger.Logger, activity repos.ActivityRepo, users repos.UserRepo, courses repos.CourseRepo) *ActivityStore {
	return &ActivityStore{
		log:      baseLog.With("store", "ActivityStore"),
		activity: activity,
		users:    users,
		courses:  courses,
	}
}

type RecordActivityInput struct {
	Kind      string         `json:"kind"`
	ActorID   string         `json:"actor_id"`
	SubjectID string         `json:"subject_id"`
	Detail    map[string]any `json:"detail"`
}

// RecordActivity appends one feed entry. The kind must come from the known
// vocabulary; anything else is rejected before the store is touched.
func (s *ActivityStore) RecordActivity(ctx context.Context, in RecordActivityInput) Result {
	if !domain.KnownActivityKind(in.Kind) {
		return Fail(CodeInvalidAction, "unknown activity kind %q", in.Kind)
	}
	actor, err := uuid.Parse(in.ActorID)
	if err != nil {
		actor = uuid.Nil
	}
	var detail datatypes.JSON
	if len(in.Detail) > 0 {
		raw, err := json.Marshal(in.Detail)
		if err != nil {
			return Fail(CodeValidationError, "encode detail: %v", err)
		}
		detail = datatypes.JSON(raw)
	}
	entry, err := s.activity.Create(ctx, nil, &domain.Activity{
		Kind:      in.Kind,
		ActorID:   actor,
		SubjectID: in.SubjectID,
		Detail:    detail,
	})
	if err != nil {
		s.log.Error("record_activity failed", "action", "create", "kind", in.Kind, "error", err)
		return Fail(CodeDatabaseError, "record activity: %v", err)
	}
	return OK(entry)
}

// DashboardStats carries whichever counters could be computed; counters that
// failed are named in Failed and left at zero.
type DashboardStats struct {
	Students     int64    `json:"students"`
	Teachers     int64    `json:"teachers"`
	Courses      int64    `json:"courses"`
	QuizAttempts int64    `json:"quiz_attempts"`
	Failed       []string `json:"failed,omitempty"`
}

func (s *ActivityStore) GetDashboardStats(ctx context.Context) Result {
	var (
		stats DashboardStats
		mu    sync.Mutex
	)
	markFailed := func(name string, err error) {
		s.log.Error("dashboard_stats counter failed", "counter", name, "error", err)
		mu.Lock()
		stats.Failed = append(stats.Failed, name)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.users.CountByRole(gctx, nil, domain.RoleStudent)
		if err != nil {
			markFailed("students", err)
			return nil
		}
		mu.Lock()
		stats.Students = n
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		n, err := s.users.CountByRole(gctx, nil, domain.RoleTeacher)
		if err != nil {
			markFailed("teachers", err)
			return nil
		}
		mu.Lock()
		stats.Teachers = n
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		n, err := s.courses.Count(gctx, nil)
		if err != nil {
			markFailed("courses", err)
			return nil
		}
		mu.Lock()
		stats.Courses = n
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

// GetRecentActivity degrades to an empty feed on any read failure.
func (s *ActivityStore) GetRecentActivity(ctx context.Context, limit int) Result {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	entries, err := s.activity.Recent(ctx, nil, limit)
	if err != nil {
		s.log.Error("get_recent_activity failed", "action", "read", "error", err)
		return OK([]*domain.Activity{})
	}
	if entries == nil {
		entries = []*domain.Activity{}
	}
	return OK(entries)
}
