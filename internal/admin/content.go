package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/oumacavin/smartlearn-backend/internal/admin/seed"
	"github.com/oumacavin/smartlearn-backend/internal/data/graph"
	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

// ContentStore is the admin store for courses, lessons and graph concepts.
type ContentStore struct {
	log      *logger.Logger
	courses  repos.CourseRepo
	lessons  repos.LessonRepo
	activity repos.ActivityRepo
	graph    graph.ConceptStore
	catalog  *seed.Catalog
}

func NewContentStore(
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	lessons repos.LessonRepo,
	activity repos.ActivityRepo,
	conceptStore graph.ConceptStore,
	catalog *seed.Catalog,
) *ContentStore {
	if catalog == nil {
		catalog = seed.Default()
	}
	return &ContentStore{
		log:      baseLog.With("store", "ContentStore"),
		courses:  courses,
		lessons:  lessons,
		activity: activity,
		graph:    conceptStore,
		catalog:  catalog,
	}
}

// InitializeContent seeds courses and the concept graph from the catalog.
// Bootstrap never fails the caller: whatever could not be seeded is logged
// and the envelope carries the records that made it in.
func (s *ContentStore) InitializeContent(ctx context.Context) Result {
	courses := make([]*domain.Course, 0, len(s.catalog.Courses))
	for _, cs := range s.catalog.Courses {
		existing, err := s.courses.GetByTitle(ctx, nil, cs.Title)
		if err == nil {
			courses = append(courses, existing)
			continue
		}
		if !storeerr.IsNotFound(err) {
			s.log.Error("initialize_content: course lookup failed", "title", cs.Title, "error", err)
			continue
		}
		created, err := s.courses.Create(ctx, nil, &domain.Course{
			Title:       cs.Title,
			Description: cs.Description,
			Published:   cs.Published,
		})
		if err != nil {
			s.log.Error("initialize_content: course seed failed", "title", cs.Title, "error", err)
			continue
		}
		courses = append(courses, created)
	}

	concepts := make([]*domain.Concept, 0, len(s.catalog.Concepts))
	for _, cs := range s.catalog.Concepts {
		concepts = append(concepts, &domain.Concept{
			ID:                cs.ConceptID,
			Name:              cs.Name,
			DifficultyLevel:   cs.DifficultyLevel,
			EstimatedDuration: cs.EstimatedDuration,
		})
	}
	seededConcepts := len(concepts)
	if err := s.graph.UpsertConcepts(ctx, concepts); err != nil {
		s.log.Error("initialize_content: concept seed failed", "error", err)
		seededConcepts = 0
	} else {
		for _, cs := range s.catalog.Concepts {
			for _, prereq := range cs.Prerequisites {
				rel := &domain.ConceptRelationship{FromID: prereq, ToID: cs.ConceptID, Type: domain.RelPrerequisiteOf, Strength: 1}
				if err := s.graph.LinkConcepts(ctx, rel); err != nil {
					s.log.Error("initialize_content: prerequisite link failed", "from", prereq, "to", cs.ConceptID, "error", err)
				}
			}
			for _, rec := range cs.Recommends {
				rel := &domain.ConceptRelationship{FromID: cs.ConceptID, ToID: rec, Type: domain.RelRecommends, Strength: 1}
				if err := s.graph.LinkConcepts(ctx, rel); err != nil {
					s.log.Error("initialize_content: recommends link failed", "from", cs.ConceptID, "to", rec, "error", err)
				}
			}
		}
	}

	return OK(map[string]any{
		"courses":  courses,
		"concepts": seededConcepts,
	})
}

type CreateCourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
}

func (s *ContentStore) CreateCourse(ctx context.Context, in CreateCourseInput) Result {
	if in.Title == "" {
		return Fail(CodeValidationError, "title is required")
	}
	course, err := s.courses.Create(ctx, nil, &domain.Course{
		Title:       in.Title,
		Description: in.Description,
		Published:   in.Published,
	})
	if err != nil {
		s.log.Error("create_course failed", "action", "create", "error", err)
		return Fail(CodeDatabaseError, "create course: %v", err)
	}
	s.recordActivity(ctx, domain.ActivityCourseCreated, uuid.Nil, course.ID.String())
	return OK(course)
}

func (s *ContentStore) GetCourse(ctx context.Context, id string) Result {
	courseID, err := uuid.Parse(id)
	if err != nil {
		return OK(nil)
	}
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		if !storeerr.IsNotFound(err) {
			s.log.Error("get_course failed", "action", "read", "course_id", id, "error", err)
		}
		return OK(nil)
	}
	return OK(course)
}

func (s *ContentStore) SearchCourses(ctx context.Context, filter repos.CourseSearch) Result {
	courses, err := s.courses.Search(ctx, nil, filter)
	if err != nil {
		s.log.Error("search_courses failed", "action", "search", "error", err)
		return OK([]*domain.Course{})
	}
	if courses == nil {
		courses = []*domain.Course{}
	}
	return OK(courses)
}

var courseUpdatableFields = map[string]bool{
	"title":       true,
	"description": true,
	"published":   true,
}

func (s *ContentStore) UpdateCourse(ctx context.Context, id string, fields map[string]any) Result {
	courseID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "course %q not found", id)
	}
	updates := make(map[string]any, len(fields))
	for k, v := range fields {
		if courseUpdatableFields[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return Fail(CodeValidationError, "no updatable fields supplied")
	}

	exists, err := s.courses.ExistsByID(ctx, nil, courseID)
	if err != nil {
		s.log.Error("update_course failed", "action", "existence_check", "course_id", id, "error", err)
		return Fail(CodeDatabaseError, "update course: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "course %q not found", id)
	}

	if err := s.courses.UpdateFields(ctx, nil, courseID, updates); err != nil {
		s.log.Error("update_course failed", "action", "update", "course_id", id, "error", err)
		return Fail(CodeDatabaseError, "update course: %v", err)
	}
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		s.log.Error("update_course readback failed", "action", "read", "course_id", id, "error", err)
		return OK(nil)
	}
	return OK(course)
}

func (s *ContentStore) DeleteCourse(ctx context.Context, id string) Result {
	courseID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "course %q not found", id)
	}
	exists, err := s.courses.ExistsByID(ctx, nil, courseID)
	if err != nil {
		s.log.Error("delete_course failed", "action", "existence_check", "course_id", id, "error", err)
		return Fail(CodeDatabaseError, "delete course: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "course %q not found", id)
	}
	if err := s.courses.DeleteByID(ctx, nil, courseID); err != nil {
		s.log.Error("delete_course failed", "action", "delete", "course_id", id, "error", err)
		return Fail(CodeDatabaseError, "delete course: %v", err)
	}
	return OK(map[string]any{"course_id": id, "deleted": true})
}

// PublishCourse writes the relational flag first, then syncs the graph copy.
// The relational store is the source of truth: a graph failure is surfaced
// as ACTION_ERROR without rolling the publish back (eventual consistency).
func (s *ContentStore) PublishCourse(ctx context.Context, id string) Result {
	courseID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "course %q not found", id)
	}
	exists, err := s.courses.ExistsByID(ctx, nil, courseID)
	if err != nil {
		s.log.Error("publish_course failed", "action", "existence_check", "course_id", id, "error", err)
		return Fail(CodeDatabaseError, "publish course: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "course %q not found", id)
	}
	if err := s.courses.SetPublished(ctx, nil, courseID, true); err != nil {
		s.log.Error("publish_course failed", "action", "set_published", "course_id", id, "error", err)
		return Fail(CodeDatabaseError, "publish course: %v", err)
	}
	s.recordActivity(ctx, domain.ActivityCoursePublished, uuid.Nil, id)

	if err := s.graph.SetCoursePublished(ctx, courseID, true); err != nil {
		s.log.Error("publish_course graph sync failed", "action", "graph_sync", "course_id", id, "error", err)
		return FailWith(map[string]any{"course_id": id, "published": true},
			CodeActionError, "course published but graph sync failed: %v", err)
	}
	return OK(map[string]any{"course_id": id, "published": true})
}

type CreateLessonInput struct {
	CourseID  string `json:"course_id"`
	Title     string `json:"title"`
	SortIndex int    `json:"sort_index"`
	ConceptID string `json:"concept_id"`
}

func (s *ContentStore) CreateLesson(ctx context.Context, in CreateLessonInput) Result {
	if in.Title == "" || in.CourseID == "" {
		return Fail(CodeValidationError, "course_id and title are required")
	}
	courseID, err := uuid.Parse(in.CourseID)
	if err != nil {
		return Fail(CodeNotFound, "course %q not found", in.CourseID)
	}
	exists, err := s.courses.ExistsByID(ctx, nil, courseID)
	if err != nil {
		s.log.Error("create_lesson failed", "action", "existence_check", "course_id", in.CourseID, "error", err)
		return Fail(CodeDatabaseError, "create lesson: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "course %q not found", in.CourseID)
	}
	lesson, err := s.lessons.Create(ctx, nil, &domain.Lesson{
		CourseID:  courseID,
		Title:     in.Title,
		SortIndex: in.SortIndex,
		ConceptID: in.ConceptID,
	})
	if err != nil {
		s.log.Error("create_lesson failed", "action", "create", "error", err)
		return Fail(CodeDatabaseError, "create lesson: %v", err)
	}
	return OK(lesson)
}

func (s *ContentStore) GetCourseLessons(ctx context.Context, courseID string) Result {
	id, err := uuid.Parse(courseID)
	if err != nil {
		return OK([]*domain.Lesson{})
	}
	lessons, err := s.lessons.GetByCourseID(ctx, nil, id)
	if err != nil {
		s.log.Error("get_course_lessons failed", "action", "read", "course_id", courseID, "error", err)
		return OK([]*domain.Lesson{})
	}
	if lessons == nil {
		lessons = []*domain.Lesson{}
	}
	return OK(lessons)
}

type CreateConceptInput struct {
	ConceptID         string `json:"concept_id"`
	Name              string `json:"name"`
	DifficultyLevel   string `json:"difficulty_level"`
	EstimatedDuration int    `json:"estimated_duration"`
}

func (s *ContentStore) CreateConcept(ctx context.Context, in CreateConceptInput) Result {
	if in.ConceptID == "" || in.Name == "" {
		return Fail(CodeValidationError, "concept_id and name are required")
	}
	switch in.DifficultyLevel {
	case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
	default:
		return Fail(CodeValidationError, "unknown difficulty_level %q", in.DifficultyLevel)
	}
	concept := &domain.Concept{
		ID:                in.ConceptID,
		Name:              in.Name,
		DifficultyLevel:   in.DifficultyLevel,
		EstimatedDuration: in.EstimatedDuration,
	}
	if err := s.graph.UpsertConcept(ctx, concept); err != nil {
		s.log.Error("create_concept failed", "action", "upsert", "concept_id", in.ConceptID, "error", err)
		return Fail(CodeDatabaseError, "create concept: %v", err)
	}
	return OK(concept)
}

func (s *ContentStore) GetConcept(ctx context.Context, id string) Result {
	concept, err := s.graph.GetConcept(ctx, id)
	if err != nil {
		if !storeerr.IsNotFound(err) {
			s.log.Error("get_concept failed", "action", "read", "concept_id", id, "error", err)
		}
		return OK(nil)
	}
	return OK(concept)
}

func (s *ContentStore) LinkConcepts(ctx context.Context, rel domain.ConceptRelationship) Result {
	if rel.FromID == "" || rel.ToID == "" {
		return Fail(CodeValidationError, "from_id and to_id are required")
	}
	if !domain.ValidRelationshipType(rel.Type) {
		return Fail(CodeInvalidAction, "unknown relationship type %q", rel.Type)
	}
	if err := s.graph.LinkConcepts(ctx, &rel); err != nil {
		if storeerr.IsNotFound(err) {
			return Fail(CodeNotFound, "concept %q or %q not found", rel.FromID, rel.ToID)
		}
		s.log.Error("link_concepts failed", "action", "link", "from", rel.FromID, "to", rel.ToID, "error", err)
		return Fail(CodeDatabaseError, "link concepts: %v", err)
	}
	return OK(rel)
}

// GetConceptRelationships degrades to an empty list on any graph failure.
func (s *ContentStore) GetConceptRelationships(ctx context.Context, id string) Result {
	rels, err := s.graph.RelationshipsFor(ctx, id)
	if err != nil {
		s.log.Error("get_concept_relationships failed", "action", "read", "concept_id", id, "error", err)
		return OK([]*domain.ConceptRelationship{})
	}
	if rels == nil {
		rels = []*domain.ConceptRelationship{}
	}
	return OK(rels)
}

func (s *ContentStore) DeleteConcept(ctx context.Context, id string) Result {
	if s.graph.Enabled() {
		exists, err := s.graph.ConceptExists(ctx, id)
		if err != nil {
			s.log.Error("delete_concept failed", "action", "existence_check", "concept_id", id, "error", err)
			return Fail(CodeDatabaseError, "delete concept: %v", err)
		}
		if !exists {
			return Fail(CodeNotFound, "concept %q not found", id)
		}
	}
	if err := s.graph.DeleteConcept(ctx, id); err != nil {
		s.log.Error("delete_concept failed", "action", "delete", "concept_id", id, "error", err)
		return Fail(CodeDatabaseError, "delete concept: %v", err)
	}
	return OK(map[string]any{"concept_id": id, "deleted": true})
}

func (s *ContentStore) recordActivity(ctx context.Context, kind string, actorID uuid.UUID, subjectID string) {
	if _, err := s.activity.Create(ctx, nil, &domain.Activity{
		Kind:      kind,
		ActorID:   actorID,
		SubjectID: subjectID,
	}); err != nil {
		s.log.Warn("activity record failed", "kind", kind, "subject_id", subjectID, "error", err)
	}
}
