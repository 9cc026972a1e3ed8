package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/oumacavin/smartlearn-backend/internal/domain"
)

type quizFixture struct {
	store    *QuizStore
	quizzes  *fakeQuizRepo
	lessons  *fakeLessonRepo
	users    *fakeUserRepo
	attempts *fakeAttemptRepo
	activity *fakeActivityRepo
	graph    *fakeConceptStore
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	f := &quizFixture{
		quizzes:  newFakeQuizRepo(),
		lessons:  newFakeLessonRepo(),
		users:    newFakeUserRepo(),
		attempts: newFakeAttemptRepo(),
		activity: newFakeActivityRepo(),
		graph:    newFakeConceptStore(),
	}
	f.store = NewQuizStore(testLogger(t), f.quizzes, f.lessons, f.users, f.attempts, f.activity, f.graph)
	return f
}

func (f *quizFixture) seedLessonAndConcept(t *testing.T) *domain.Lesson {
	t.Helper()
	lesson := f.lessons.add(&domain.Lesson{Title: "Loops 101", ConceptID: "loops"})
	f.graph.concepts["loops"] = &domain.Concept{ID: "loops", Name: "Loops"}
	return lesson
}

func TestCreateQuizUnknownLessonReportsNotFound(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)

	res := f.store.CreateQuiz(context.Background(), CreateQuizInput{
		Title: "Loops quiz", ConceptID: "loops", LessonID: uuid.NewString(),
	})
	if res.Success || res.Error.Code != CodeNotFound {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := f.quizzes.count("Create"); got != 0 {
		t.Fatalf("insert must not be issued for a missing lesson: got=%d calls", got)
	}
}

func TestCreateQuizUnknownConceptReportsNotFound(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	lesson := f.lessons.add(&domain.Lesson{Title: "Loops 101"})

	res := f.store.CreateQuiz(context.Background(), CreateQuizInput{
		Title: "Loops quiz", ConceptID: "ghost", LessonID: lesson.ID.String(),
	})
	if res.Success || res.Error.Code != CodeNotFound {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCreateQuizAppliesDefaults(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	lesson := f.seedLessonAndConcept(t)

	res := f.store.CreateQuiz(context.Background(), CreateQuizInput{
		Title: "Loops quiz", ConceptID: "loops", LessonID: lesson.ID.String(),
	})
	if !res.Success {
		t.Fatalf("create failed: %+v", res.Error)
	}
	quiz := res.Data.(*domain.Quiz)
	if quiz.PassingScore != 70 {
		t.Fatalf("unexpected passing score default: got=%d want=70", quiz.PassingScore)
	}
	if quiz.MaxAttempts != 3 {
		t.Fatalf("unexpected max attempts default: got=%d want=3", quiz.MaxAttempts)
	}
}

func TestCreateQuizGraphFailureKeepsRelationalWrite(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	lesson := f.seedLessonAndConcept(t)
	f.graph.failOn("LinkQuizConcept")

	res := f.store.CreateQuiz(context.Background(), CreateQuizInput{
		Title: "Loops quiz", ConceptID: "loops", LessonID: lesson.ID.String(),
	})
	if res.Success || res.Error.Code != CodeActionError {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(f.quizzes.quizzes) != 1 {
		t.Fatal("relational insert must not be rolled back")
	}
	if res.Data == nil {
		t.Fatal("created quiz must survive in the envelope")
	}
}

func TestGetQuizDegradesToNil(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	f.quizzes.failOn("GetByID")

	res := f.store.GetQuiz(context.Background(), uuid.NewString())
	if !res.Success || res.Data != nil {
		t.Fatalf("read must degrade: %+v", res)
	}
}

func TestRecordAttemptEnforcesMaxAttempts(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	user := f.users.add(&domain.User{Username: "student"})
	quiz := f.quizzes.add(&domain.Quiz{Title: "Loops quiz", ConceptID: "loops", PassingScore: 70, MaxAttempts: 3})
	f.attempts.countByUser = 3

	res := f.store.RecordAttempt(context.Background(), RecordAttemptInput{
		UserID: user.ID.String(), QuizID: quiz.ID.String(), Score: 90,
	})
	if res.Success || res.Error.Code != CodeValidationError {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := f.attempts.count("Create"); got != 0 {
		t.Fatalf("attempt must not be recorded past the cap: got=%d calls", got)
	}
}

func TestRecordAttemptPassSyncsGraph(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	user := f.users.add(&domain.User{Username: "student"})
	quiz := f.quizzes.add(&domain.Quiz{Title: "Loops quiz", ConceptID: "loops", PassingScore: 70, MaxAttempts: 3})

	res := f.store.RecordAttempt(context.Background(), RecordAttemptInput{
		UserID: user.ID.String(), QuizID: quiz.ID.String(), Score: 85,
	})
	if !res.Success {
		t.Fatalf("record failed: %+v", res.Error)
	}
	attempt := res.Data.(*domain.QuizAttempt)
	if !attempt.Passed {
		t.Fatal("score above passing must mark the attempt passed")
	}
	if got := f.graph.count("RecordConceptCompletion"); got != 1 {
		t.Fatalf("passed attempt must sync the graph: got=%d calls", got)
	}
}

func TestRecordAttemptFailedScoreSkipsGraph(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	user := f.users.add(&domain.User{Username: "student"})
	quiz := f.quizzes.add(&domain.Quiz{Title: "Loops quiz", ConceptID: "loops", PassingScore: 70, MaxAttempts: 3})

	res := f.store.RecordAttempt(context.Background(), RecordAttemptInput{
		UserID: user.ID.String(), QuizID: quiz.ID.String(), Score: 40,
	})
	if !res.Success {
		t.Fatalf("record failed: %+v", res.Error)
	}
	if got := f.graph.count("RecordConceptCompletion"); got != 0 {
		t.Fatalf("failed attempt must not sync the graph: got=%d calls", got)
	}
}

func TestRecordAttemptGraphFailureReportsActionError(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	user := f.users.add(&domain.User{Username: "student"})
	quiz := f.quizzes.add(&domain.Quiz{Title: "Loops quiz", ConceptID: "loops", PassingScore: 70, MaxAttempts: 3})
	f.graph.failOn("RecordConceptCompletion")

	res := f.store.RecordAttempt(context.Background(), RecordAttemptInput{
		UserID: user.ID.String(), QuizID: quiz.ID.String(), Score: 85,
	})
	if res.Success || res.Error.Code != CodeActionError {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(f.attempts.attempts) != 1 {
		t.Fatal("relational attempt must not be rolled back")
	}
}

func TestGetQuizAnalyticsAggregates(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	quiz := f.quizzes.add(&domain.Quiz{Title: "Loops quiz"})
	f.attempts.countByQuiz = 10
	f.attempts.avgScore = 72.5
	f.attempts.passCount = 6
	f.attempts.distinctUsers = 4

	res := f.store.GetQuizAnalytics(context.Background(), quiz.ID.String())
	if !res.Success {
		t.Fatalf("analytics failed: %+v", res.Error)
	}
	got := res.Data.(QuizAnalytics)
	if got.TotalAttempts != 10 || got.AverageScore != 72.5 || got.UniqueUsers != 4 {
		t.Fatalf("unexpected aggregates: %+v", got)
	}
	if got.PassRate != 0.6 {
		t.Fatalf("unexpected pass rate: got=%v want=0.6", got.PassRate)
	}
	if len(got.Failed) != 0 {
		t.Fatalf("no aggregate should have failed: %+v", got.Failed)
	}
}

func TestGetQuizAnalyticsPartialFailure(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	quiz := f.quizzes.add(&domain.Quiz{Title: "Loops quiz"})
	f.attempts.countByQuiz = 10
	f.attempts.distinctUsers = 4
	f.attempts.failOn("AvgScoreByQuizID")
	f.attempts.failOn("PassCountByQuizID")

	res := f.store.GetQuizAnalytics(context.Background(), quiz.ID.String())
	if !res.Success {
		t.Fatalf("partial failure must still succeed: %+v", res.Error)
	}
	got := res.Data.(QuizAnalytics)
	if got.TotalAttempts != 10 || got.UniqueUsers != 4 {
		t.Fatalf("surviving aggregates lost: %+v", got)
	}
	if got.PassRate != 0 || got.AverageScore != 0 {
		t.Fatalf("failed aggregates must stay zero: %+v", got)
	}
	if len(got.Failed) != 2 {
		t.Fatalf("expected 2 failed aggregates, got %+v", got.Failed)
	}
}

func TestGetQuizAnalyticsUnknownQuizReportsNotFound(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)

	res := f.store.GetQuizAnalytics(context.Background(), uuid.NewString())
	if res.Success || res.Error.Code != CodeNotFound {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGetUserAttemptsDegradesToEmpty(t *testing.T) {
	t.Parallel()
	f := newQuizFixture(t)
	f.attempts.failOn("GetByUserID")

	res := f.store.GetUserAttempts(context.Background(), uuid.NewString(), 10)
	if !res.Success {
		t.Fatalf("read must degrade: %+v", res.Error)
	}
	list := res.Data.([]*domain.QuizAttempt)
	if len(list) != 0 {
		t.Fatalf("expected empty history, got %+v", list)
	}
}
