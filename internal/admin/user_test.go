package admin

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
)

type userFixture struct {
	store    *UserStore
	users    *fakeUserRepo
	activity *fakeActivityRepo
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	f := &userFixture{
		users:    newFakeUserRepo(),
		activity: newFakeActivityRepo(),
	}
	// nil cache: every cache call is a no-op, reads always fall through
	f.store = NewUserStore(testLogger(t), f.users, f.activity, nil, "bootstrap-secret")
	return f
}

func TestInitializeAdminCreatesBootstrapAccount(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)

	res := f.store.InitializeAdmin(context.Background())
	if !res.Success {
		t.Fatalf("bootstrap must not fail: %+v", res.Error)
	}
	admin := res.Data.(*domain.User)
	if admin.Role != domain.RoleAdmin || admin.Username != "admin" {
		t.Fatalf("unexpected bootstrap account: %+v", admin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("bootstrap-secret")); err != nil {
		t.Fatalf("bootstrap password not hashed from configured secret: %v", err)
	}
}

func TestInitializeAdminIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)

	f.store.InitializeAdmin(context.Background())
	res := f.store.InitializeAdmin(context.Background())
	if !res.Success {
		t.Fatalf("second bootstrap failed: %+v", res.Error)
	}
	if got := f.users.count("Create"); got != 1 {
		t.Fatalf("admin must be created once: got=%d creates", got)
	}
}

func TestInitializeAdminDegradesToFallbackRecord(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)
	f.users.failOn("GetByUsername")

	res := f.store.InitializeAdmin(context.Background())
	if !res.Success {
		t.Fatalf("bootstrap must degrade, not fail: %+v", res.Error)
	}
	admin := res.Data.(*domain.User)
	if admin.ID != uuid.Nil {
		t.Fatalf("fallback record must be unsaved: %+v", admin)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("fallback record must keep the admin role: %+v", admin)
	}
}

func TestCreateUserHashesPasswordAndDefaultsRole(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)

	res := f.store.CreateUser(context.Background(), CreateUserInput{
		Username: "alice", Email: "alice@example.com", Password: "hunter22",
	})
	if !res.Success {
		t.Fatalf("create failed: %+v", res.Error)
	}
	user := res.Data.(*domain.User)
	if user.Role != domain.RoleStudent {
		t.Fatalf("unexpected default role: got=%s want=%s", user.Role, domain.RoleStudent)
	}
	if user.Password == "hunter22" {
		t.Fatal("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)

	res := f.store.CreateUser(context.Background(), CreateUserInput{
		Username: "eve", Email: "eve@example.com", Password: "pw", Role: "superuser",
	})
	if res.Success || res.Error.Code != CodeValidationError {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGetUserDegradesToNil(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)
	f.users.failOn("GetByID")

	res := f.store.GetUser(context.Background(), uuid.NewString())
	if !res.Success || res.Data != nil {
		t.Fatalf("read must degrade: %+v", res)
	}
}

func TestSearchUsersDegradesToEmptyList(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)
	f.users.failOn("Search")

	res := f.store.SearchUsers(context.Background(), repos.UserSearch{})
	if !res.Success {
		t.Fatalf("search must degrade: %+v", res.Error)
	}
	list := res.Data.([]*domain.User)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestSuspendUserRecordsActivity(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)
	user := f.users.add(&domain.User{Username: "bob", IsActive: true})

	res := f.store.SuspendUser(context.Background(), user.ID.String())
	if !res.Success {
		t.Fatalf("suspend failed: %+v", res.Error)
	}
	if user.IsActive {
		t.Fatal("user still active after suspend")
	}
	if len(f.activity.entries) != 1 || f.activity.entries[0].Kind != domain.ActivityUserSuspended {
		t.Fatalf("suspend activity missing: %+v", f.activity.entries)
	}
}

func TestBulkAdminActionUnknownActionShortCircuits(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)
	user := f.users.add(&domain.User{Username: "bob"})

	res := f.store.BulkAdminAction(context.Background(), "obliterate", []string{user.ID.String()})
	if res.Success || res.Error.Code != CodeInvalidAction {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := f.users.count("ExistsByID") + f.users.count("DeleteByID") + f.users.count("SetActive"); got != 0 {
		t.Fatalf("unknown action must not reach the store: got=%d calls", got)
	}
}

func TestBulkAdminActionPartialFailure(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)
	a := f.users.add(&domain.User{Username: "a", IsActive: true})
	b := f.users.add(&domain.User{Username: "b", IsActive: true})
	ghost := uuid.NewString()

	res := f.store.BulkAdminAction(context.Background(), BulkActionSuspend, []string{
		a.ID.String(), ghost, b.ID.String(),
	})
	if !res.Success {
		t.Fatalf("bulk outcome must be an OK envelope: %+v", res.Error)
	}
	outcome := res.Data.(BulkOutcome)
	if outcome.Succeeded != 2 || outcome.Failed != 1 {
		t.Fatalf("unexpected counts: %+v", outcome)
	}
	if len(outcome.Results) != 3 {
		t.Fatalf("expected per-item results, got %+v", outcome.Results)
	}
	failed := outcome.Results[1]
	if failed.Success || failed.Error == nil || failed.Error.Code != CodeActionError {
		t.Fatalf("missing per-item ACTION_ERROR: %+v", failed)
	}
	if a.IsActive || b.IsActive {
		t.Fatal("surviving items must still be processed")
	}
}

func TestBulkAdminActionDelete(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)
	a := f.users.add(&domain.User{Username: "a"})

	res := f.store.BulkAdminAction(context.Background(), BulkActionDelete, []string{a.ID.String()})
	if !res.Success {
		t.Fatalf("bulk delete failed: %+v", res.Error)
	}
	if len(f.users.users) != 0 {
		t.Fatal("user not deleted")
	}
}

func TestDeleteUserUnknownIDReportsNotFoundWithoutMutating(t *testing.T) {
	t.Parallel()
	f := newUserFixture(t)

	res := f.store.DeleteUser(context.Background(), uuid.NewString())
	if res.Success || res.Error.Code != CodeNotFound {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := f.users.count("DeleteByID"); got != 0 {
		t.Fatalf("delete must not be issued for a missing user: got=%d calls", got)
	}
}
