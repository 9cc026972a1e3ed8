package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	t.Cleanup(func() { log.Sync() })
	return log
}

func notFoundErr(op string) error {
	return storeerr.New(storeerr.KindNotFound, op, errors.New("record not found"))
}

var errBoom = errors.New("boom")

// callRecorder counts store calls per method so tests can assert that an
// operation was or was not issued.
type callRecorder struct {
	calls map[string]int
	errs  map[string]error
}

func newCallRecorder() callRecorder {
	return callRecorder{calls: map[string]int{}, errs: map[string]error{}}
}

func (r *callRecorder) hit(method string) error {
	r.calls[method]++
	return r.errs[method]
}

func (r *callRecorder) count(method string) int { return r.calls[method] }

func (r *callRecorder) failOn(method string) { r.errs[method] = errBoom }

type fakeUserRepo struct {
	callRecorder
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{callRecorder: newCallRecorder(), users: map[uuid.UUID]*domain.User{}}
}

func (f *fakeUserRepo) add(u *domain.User) *domain.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *domain.User) (*domain.User, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	return f.add(user), nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.User, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, notFoundErr("user.get_by_id")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*domain.User, error) {
	if err := f.hit("GetByUsername"); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, notFoundErr("user.get_by_username")
}

func (f *fakeUserRepo) Search(ctx context.Context, tx *gorm.DB, filter repos.UserSearch) ([]*domain.User, error) {
	if err := f.hit("Search"); err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return f.hit("UpdateFields")
}

func (f *fakeUserRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
	if err := f.hit("SetActive"); err != nil {
		return err
	}
	if u, ok := f.users[id]; ok {
		u.IsActive = active
	}
	return nil
}

func (f *fakeUserRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := f.hit("DeleteByID"); err != nil {
		return err
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	if err := f.hit("ExistsByID"); err != nil {
		return false, err
	}
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, tx *gorm.DB, role string) (int64, error) {
	if err := f.hit("CountByRole"); err != nil {
		return 0, err
	}
	var n int64
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeCourseRepo struct {
	callRecorder
	courses map[uuid.UUID]*domain.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{callRecorder: newCallRecorder(), courses: map[uuid.UUID]*domain.Course{}}
}

func (f *fakeCourseRepo) add(c *domain.Course) *domain.Course {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.courses[c.ID] = c
	return c
}

func (f *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, course *domain.Course) (*domain.Course, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	return f.add(course), nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Course, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	c, ok := f.courses[id]
	if !ok {
		return nil, notFoundErr("course.get_by_id")
	}
	return c, nil
}

func (f *fakeCourseRepo) GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*domain.Course, error) {
	if err := f.hit("GetByTitle"); err != nil {
		return nil, err
	}
	for _, c := range f.courses {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, notFoundErr("course.get_by_title")
}

func (f *fakeCourseRepo) Search(ctx context.Context, tx *gorm.DB, filter repos.CourseSearch) ([]*domain.Course, error) {
	if err := f.hit("Search"); err != nil {
		return nil, err
	}
	out := make([]*domain.Course, 0, len(f.courses))
	for _, c := range f.courses {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return f.hit("UpdateFields")
}

func (f *fakeCourseRepo) SetPublished(ctx context.Context, tx *gorm.DB, id uuid.UUID, published bool) error {
	if err := f.hit("SetPublished"); err != nil {
		return err
	}
	if c, ok := f.courses[id]; ok {
		c.Published = published
	}
	return nil
}

func (f *fakeCourseRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := f.hit("DeleteByID"); err != nil {
		return err
	}
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	if err := f.hit("ExistsByID"); err != nil {
		return false, err
	}
	_, ok := f.courses[id]
	return ok, nil
}

func (f *fakeCourseRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	if err := f.hit("Count"); err != nil {
		return 0, err
	}
	return int64(len(f.courses)), nil
}

type fakeLessonRepo struct {
	callRecorder
	lessons map[uuid.UUID]*domain.Lesson
}

func newFakeLessonRepo() *fakeLessonRepo {
	return &fakeLessonRepo{callRecorder: newCallRecorder(), lessons: map[uuid.UUID]*domain.Lesson{}}
}

func (f *fakeLessonRepo) add(l *domain.Lesson) *domain.Lesson {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	f.lessons[l.ID] = l
	return l
}

func (f *fakeLessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *domain.Lesson) (*domain.Lesson, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	return f.add(lesson), nil
}

func (f *fakeLessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Lesson, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	l, ok := f.lessons[id]
	if !ok {
		return nil, notFoundErr("lesson.get_by_id")
	}
	return l, nil
}

func (f *fakeLessonRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*domain.Lesson, error) {
	if err := f.hit("GetByCourseID"); err != nil {
		return nil, err
	}
	var out []*domain.Lesson
	for _, l := range f.lessons {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	if err := f.hit("ExistsByID"); err != nil {
		return false, err
	}
	_, ok := f.lessons[id]
	return ok, nil
}

func (f *fakeLessonRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := f.hit("DeleteByID"); err != nil {
		return err
	}
	delete(f.lessons, id)
	return nil
}

type fakeQuizRepo struct {
	callRecorder
	quizzes map[uuid.UUID]*domain.Quiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{callRecorder: newCallRecorder(), quizzes: map[uuid.UUID]*domain.Quiz{}}
}

func (f *fakeQuizRepo) add(q *domain.Quiz) *domain.Quiz {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	f.quizzes[q.ID] = q
	return q
}

func (f *fakeQuizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *domain.Quiz) (*domain.Quiz, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	return f.add(quiz), nil
}

func (f *fakeQuizRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Quiz, error) {
	if err := f.hit("GetByID"); err != nil {
		return nil, err
	}
	q, ok := f.quizzes[id]
	if !ok {
		return nil, notFoundErr("quiz.get_by_id")
	}
	return q, nil
}

func (f *fakeQuizRepo) Search(ctx context.Context, tx *gorm.DB, filter repos.QuizSearch) ([]*domain.Quiz, error) {
	if err := f.hit("Search"); err != nil {
		return nil, err
	}
	out := make([]*domain.Quiz, 0, len(f.quizzes))
	for _, q := range f.quizzes {
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeQuizRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	return f.hit("UpdateFields")
}

func (f *fakeQuizRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := f.hit("DeleteByID"); err != nil {
		return err
	}
	delete(f.quizzes, id)
	return nil
}

func (f *fakeQuizRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	if err := f.hit("ExistsByID"); err != nil {
		return false, err
	}
	_, ok := f.quizzes[id]
	return ok, nil
}

type fakeAttemptRepo struct {
	callRecorder
	attempts []*domain.QuizAttempt

	countByQuiz   int64
	countByUser   int64
	avgScore      float64
	passCount     int64
	distinctUsers int64
}

func newFakeAttemptRepo() *fakeAttemptRepo {
	return &fakeAttemptRepo{callRecorder: newCallRecorder()}
}

func (f *fakeAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *domain.QuizAttempt) (*domain.QuizAttempt, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	f.attempts = append(f.attempts, attempt)
	return attempt, nil
}

func (f *fakeAttemptRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.QuizAttempt, error) {
	if err := f.hit("GetByUserID"); err != nil {
		return nil, err
	}
	var out []*domain.QuizAttempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) CountByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error) {
	if err := f.hit("CountByQuizID"); err != nil {
		return 0, err
	}
	return f.countByQuiz, nil
}

func (f *fakeAttemptRepo) CountByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) (int64, error) {
	if err := f.hit("CountByUserAndQuiz"); err != nil {
		return 0, err
	}
	return f.countByUser, nil
}

func (f *fakeAttemptRepo) AvgScoreByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (float64, error) {
	if err := f.hit("AvgScoreByQuizID"); err != nil {
		return 0, err
	}
	return f.avgScore, nil
}

func (f *fakeAttemptRepo) PassCountByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error) {
	if err := f.hit("PassCountByQuizID"); err != nil {
		return 0, err
	}
	return f.passCount, nil
}

func (f *fakeAttemptRepo) DistinctUsersByQuizID(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (int64, error) {
	if err := f.hit("DistinctUsersByQuizID"); err != nil {
		return 0, err
	}
	return f.distinctUsers, nil
}

type fakeActivityRepo struct {
	callRecorder
	entries []*domain.Activity

	countByKind int64
	countSince  int64
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{callRecorder: newCallRecorder()}
}

func (f *fakeActivityRepo) Create(ctx context.Context, tx *gorm.DB, activity *domain.Activity) (*domain.Activity, error) {
	if err := f.hit("Create"); err != nil {
		return nil, err
	}
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	f.entries = append(f.entries, activity)
	return activity, nil
}

func (f *fakeActivityRepo) Recent(ctx context.Context, tx *gorm.DB, limit int) ([]*domain.Activity, error) {
	if err := f.hit("Recent"); err != nil {
		return nil, err
	}
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

func (f *fakeActivityRepo) CountByKind(ctx context.Context, tx *gorm.DB, kind string) (int64, error) {
	if err := f.hit("CountByKind"); err != nil {
		return 0, err
	}
	return f.countByKind, nil
}

func (f *fakeActivityRepo) CountSince(ctx context.Context, tx *gorm.DB, kind string, since time.Time) (int64, error) {
	if err := f.hit("CountSince"); err != nil {
		return 0, err
	}
	return f.countSince, nil
}

// fakeConceptStore is an in-memory stand-in for the Neo4j adapter.
type fakeConceptStore struct {
	callRecorder
	enabled  bool
	concepts map[string]*domain.Concept
	links    []*domain.ConceptRelationship

	recsForUser []*domain.Concept
	served      int64
}

func newFakeConceptStore() *fakeConceptStore {
	return &fakeConceptStore{
		callRecorder: newCallRecorder(),
		enabled:      true,
		concepts:     map[string]*domain.Concept{},
	}
}

func (f *fakeConceptStore) Enabled() bool { return f.enabled }

func (f *fakeConceptStore) EnsureSchema(ctx context.Context) { f.hit("EnsureSchema") }

func (f *fakeConceptStore) UpsertConcept(ctx context.Context, c *domain.Concept) error {
	if err := f.hit("UpsertConcept"); err != nil {
		return err
	}
	f.concepts[c.ID] = c
	return nil
}

func (f *fakeConceptStore) UpsertConcepts(ctx context.Context, concepts []*domain.Concept) error {
	if err := f.hit("UpsertConcepts"); err != nil {
		return err
	}
	for _, c := range concepts {
		f.concepts[c.ID] = c
	}
	return nil
}

func (f *fakeConceptStore) GetConcept(ctx context.Context, id any) (*domain.Concept, error) {
	if err := f.hit("GetConcept"); err != nil {
		return nil, err
	}
	c, ok := f.concepts[graphID(id)]
	if !ok {
		return nil, notFoundErr("graph.get_concept")
	}
	return c, nil
}

func (f *fakeConceptStore) ConceptExists(ctx context.Context, id any) (bool, error) {
	if err := f.hit("ConceptExists"); err != nil {
		return false, err
	}
	_, ok := f.concepts[graphID(id)]
	return ok, nil
}

func (f *fakeConceptStore) DeleteConcept(ctx context.Context, id any) error {
	if err := f.hit("DeleteConcept"); err != nil {
		return err
	}
	delete(f.concepts, graphID(id))
	return nil
}

func (f *fakeConceptStore) LinkConcepts(ctx context.Context, rel *domain.ConceptRelationship) error {
	if err := f.hit("LinkConcepts"); err != nil {
		return err
	}
	f.links = append(f.links, rel)
	return nil
}

func (f *fakeConceptStore) RelationshipsFor(ctx context.Context, id any) ([]*domain.ConceptRelationship, error) {
	if err := f.hit("RelationshipsFor"); err != nil {
		return nil, err
	}
	var out []*domain.ConceptRelationship
	for _, rel := range f.links {
		if rel.FromID == graphID(id) || rel.ToID == graphID(id) {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (f *fakeConceptStore) LinkQuizConcept(ctx context.Context, quizID, conceptID any) error {
	return f.hit("LinkQuizConcept")
}

func (f *fakeConceptStore) SetCoursePublished(ctx context.Context, courseID any, published bool) error {
	return f.hit("SetCoursePublished")
}

func (f *fakeConceptStore) RecordConceptCompletion(ctx context.Context, userID, conceptID any) error {
	return f.hit("RecordConceptCompletion")
}

func (f *fakeConceptStore) RecordRecommendation(ctx context.Context, userID, conceptID any) error {
	return f.hit("RecordRecommendation")
}

func (f *fakeConceptStore) RecommendationsForUser(ctx context.Context, userID any, limit int) ([]*domain.Concept, error) {
	if err := f.hit("RecommendationsForUser"); err != nil {
		return nil, err
	}
	return f.recsForUser, nil
}

func (f *fakeConceptStore) RecommendationsServed(ctx context.Context) (int64, error) {
	if err := f.hit("RecommendationsServed"); err != nil {
		return 0, err
	}
	return f.served, nil
}

func graphID(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}
