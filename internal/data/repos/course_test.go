package repos

import (
	"context"
	"testing"

	"github.com/oumacavin/smartlearn-backend/internal/data/repos/testutil"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
)

func TestCourseRepoSearchFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCourseRepo(db, testutil.Logger(t))

	published, err := repo.Create(ctx, tx, &domain.Course{Title: "filter-published", Published: true})
	if err != nil {
		t.Fatalf("create published: %v", err)
	}
	if _, err := repo.Create(ctx, tx, &domain.Course{Title: "filter-draft"}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	wantPublished := true
	found, err := repo.Search(ctx, tx, CourseSearch{Query: "filter-", Published: &wantPublished, Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != published.ID {
		t.Fatalf("unexpected search result: %+v", found)
	}
}

func TestCourseRepoSetPublished(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewCourseRepo(db, testutil.Logger(t))

	course := testutil.SeedCourse(t, ctx, tx, "publish-me")
	if err := repo.SetPublished(ctx, tx, course.ID, true); err != nil {
		t.Fatalf("set published: %v", err)
	}
	got, err := repo.GetByID(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Published {
		t.Fatal("publish flag not persisted")
	}
}

func TestLessonRepoGetByCourseIDOrdersBySortIndex(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewLessonRepo(db, testutil.Logger(t))

	course := testutil.SeedCourse(t, ctx, tx, "ordered-lessons")
	if _, err := repo.Create(ctx, tx, &domain.Lesson{CourseID: course.ID, Title: "second", SortIndex: 2}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := repo.Create(ctx, tx, &domain.Lesson{CourseID: course.ID, Title: "first", SortIndex: 1}); err != nil {
		t.Fatalf("create first: %v", err)
	}

	lessons, err := repo.GetByCourseID(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("get by course: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("unexpected lesson count: got=%d want=2", len(lessons))
	}
	if lessons[0].Title != "first" || lessons[1].Title != "second" {
		t.Fatalf("lessons not ordered by sort index: %+v", lessons)
	}
}
