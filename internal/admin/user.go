package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/oumacavin/smartlearn-backend/internal/data/cache"
	"github.com/oumacavin/smartlearn-backend/internal/data/repos"
	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/pkg/storeerr"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

var errUserMissing = errors.New("user not found")

// Bulk action codes recognized by BulkAdminAction.
const (
	BulkActionDelete   = "delete"
	BulkActionSuspend  = "suspend"
	BulkActionActivate = "activate"
)

// UserStore is the admin store for the user entity family.
type UserStore struct {
	log       *logger.Logger
	users     repos.UserRepo
	activity  repos.ActivityRepo
	userCache *cache.UserCache

	defaultAdminPassword string
}

func NewUserStore(
	baseLog *logger.Logger,
	users repos.UserRepo,
	activity repos.ActivityRepo,
	userCache *cache.UserCache,
	defaultAdminPassword string,
) *UserStore {
	return &UserStore{
		log:                  baseLog.With("store", "UserStore"),
		users:                users,
		activity:             activity,
		userCache:            userCache,
		defaultAdminPassword: defaultAdminPassword,
	}
}

// InitializeAdmin makes sure a bootstrap admin account exists. Startup never
// fails the caller: on adapter failure the envelope carries an unsaved
// default record so the process can come up.
func (s *UserStore) InitializeAdmin(ctx context.Context) Result {
	existing, err := s.users.GetByUsername(ctx, nil, "admin")
	if err == nil {
		return OK(existing)
	}
	if !storeerr.IsNotFound(err) {
		s.log.Error("initialize_admin failed", "action", "lookup", "error", err)
		return OK(fallbackAdmin())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("initialize_admin failed", "action", "hash_password", "error", err)
		return OK(fallbackAdmin())
	}
	created, err := s.users.Create(ctx, nil, &domain.User{
		Username: "admin",
		Email:    "admin@smartlearn.local",
		Password: string(hash),
		Role:     domain.RoleAdmin,
		IsActive: true,
	})
	if err != nil {
		s.log.Error("initialize_admin failed", "action", "create", "error", err)
		return OK(fallbackAdmin())
	}
	return OK(created)
}

func fallbackAdmin() *domain.User {
	return &domain.User{Username: "admin", Role: domain.RoleAdmin, IsActive: true}
}

type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *UserStore) CreateUser(ctx context.Context, in CreateUserInput) Result {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return Fail(CodeValidationError, "username, email and password are required")
	}
	role := in.Role
	if role == "" {
		role = domain.RoleStudent
	}
	switch role {
	case domain.RoleAdmin, domain.RoleTeacher, domain.RoleStudent:
	default:
		return Fail(CodeValidationError, "unknown role %q", in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("create_user failed", "action", "hash_password", "error", err)
		return Fail(CodeDatabaseError, "create user: %v", err)
	}
	user, err := s.users.Create(ctx, nil, &domain.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		s.log.Error("create_user failed", "action", "create", "error", err)
		return Fail(CodeDatabaseError, "create user: %v", err)
	}
	s.recordActivity(ctx, domain.ActivityUserRegistered, user.ID, user.ID.String())
	if err := s.userCache.Set(ctx, user); err != nil {
		s.log.Warn("user cache set failed", "user_id", user.ID.String(), "error", err)
	}
	return OK(user)
}

// GetUser reads cache-aside. A cache failure or miss falls through to the
// relational store; the full row, updated_at included, is what gets cached
// back so the mirror can never shed columns.
func (s *UserStore) GetUser(ctx context.Context, id string) Result {
	userID, err := uuid.Parse(id)
	if err != nil {
		return OK(nil)
	}
	if cached, err := s.userCache.Get(ctx, userID); err != nil {
		s.log.Warn("user cache read failed", "user_id", id, "error", err)
	} else if cached != nil {
		return OK(cached)
	}

	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if !storeerr.IsNotFound(err) {
			s.log.Error("get_user failed", "action", "read", "user_id", id, "error", err)
		}
		return OK(nil)
	}
	if err := s.userCache.Set(ctx, user); err != nil {
		s.log.Warn("user cache set failed", "user_id", id, "error", err)
	}
	return OK(user)
}

func (s *UserStore) SearchUsers(ctx context.Context, filter repos.UserSearch) Result {
	users, err := s.users.Search(ctx, nil, filter)
	if err != nil {
		s.log.Error("search_users failed", "action", "search", "error", err)
		return OK([]*domain.User{})
	}
	if users == nil {
		users = []*domain.User{}
	}
	return OK(users)
}

var userUpdatableFields = map[string]bool{
	"username":  true,
	"email":     true,
	"role":      true,
	"is_active": true,
}

func (s *UserStore) UpdateUser(ctx context.Context, id string, fields map[string]any) Result {
	userID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "user %q not found", id)
	}
	updates := make(map[string]any, len(fields))
	for k, v := range fields {
		if userUpdatableFields[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return Fail(CodeValidationError, "no updatable fields supplied")
	}

	exists, err := s.users.ExistsByID(ctx, nil, userID)
	if err != nil {
		s.log.Error("update_user failed", "action", "existence_check", "user_id", id, "error", err)
		return Fail(CodeDatabaseError, "update user: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "user %q not found", id)
	}
	if err := s.users.UpdateFields(ctx, nil, userID, updates); err != nil {
		s.log.Error("update_user failed", "action", "update", "user_id", id, "error", err)
		return Fail(CodeDatabaseError, "update user: %v", err)
	}
	if err := s.userCache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("user cache invalidate failed", "user_id", id, "error", err)
	}
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		s.log.Error("update_user readback failed", "action", "read", "user_id", id, "error", err)
		return OK(nil)
	}
	return OK(user)
}

func (s *UserStore) DeleteUser(ctx context.Context, id string) Result {
	userID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "user %q not found", id)
	}
	exists, err := s.users.ExistsByID(ctx, nil, userID)
	if err != nil {
		s.log.Error("delete_user failed", "action", "existence_check", "user_id", id, "error", err)
		return Fail(CodeDatabaseError, "delete user: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "user %q not found", id)
	}
	if err := s.users.DeleteByID(ctx, nil, userID); err != nil {
		s.log.Error("delete_user failed", "action", "delete", "user_id", id, "error", err)
		return Fail(CodeDatabaseError, "delete user: %v", err)
	}
	if err := s.userCache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("user cache invalidate failed", "user_id", id, "error", err)
	}
	return OK(map[string]any{"user_id": id, "deleted": true})
}

func (s *UserStore) SuspendUser(ctx context.Context, id string) Result {
	return s.setActive(ctx, id, false, domain.ActivityUserSuspended)
}

func (s *UserStore) ActivateUser(ctx context.Context, id string) Result {
	return s.setActive(ctx, id, true, domain.ActivityUserActivated)
}

func (s *UserStore) setActive(ctx context.Context, id string, active bool, kind string) Result {
	userID, err := uuid.Parse(id)
	if err != nil {
		return Fail(CodeNotFound, "user %q not found", id)
	}
	exists, err := s.users.ExistsByID(ctx, nil, userID)
	if err != nil {
		s.log.Error("set_active failed", "action", "existence_check", "user_id", id, "error", err)
		return Fail(CodeDatabaseError, "set active: %v", err)
	}
	if !exists {
		return Fail(CodeNotFound, "user %q not found", id)
	}
	if err := s.users.SetActive(ctx, nil, userID, active); err != nil {
		s.log.Error("set_active failed", "action", "set_active", "user_id", id, "error", err)
		return Fail(CodeDatabaseError, "set active: %v", err)
	}
	if err := s.userCache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("user cache invalidate failed", "user_id", id, "error", err)
	}
	s.recordActivity(ctx, kind, userID, id)
	return OK(map[string]any{"user_id": id, "is_active": active})
}

// BulkAdminAction dispatches one action code over a set of user ids. An
// unknown action short-circuits before any store call; a failing item is
// reported as ACTION_ERROR for that item and iteration continues.
func (s *UserStore) BulkAdminAction(ctx context.Context, action string, ids []string) Result {
	switch action {
	case BulkActionDelete, BulkActionSuspend, BulkActionActivate:
	default:
		return Fail(CodeInvalidAction, "unknown bulk action %q", action)
	}

	outcome := BulkOutcome{Action: action, Results: make([]BulkItemResult, 0, len(ids))}
	for _, id := range ids {
		if err := s.applyBulkAction(ctx, action, id); err != nil {
			s.log.Error("bulk_admin_action item failed", "action", action, "user_id", id, "error", err)
			outcome.Failed++
			outcome.Results = append(outcome.Results, BulkItemResult{
				ID:      id,
				Success: false,
				Error:   &OpError{Code: CodeActionError, Message: err.Error()},
			})
			continue
		}
		outcome.Succeeded++
		outcome.Results = append(outcome.Results, BulkItemResult{ID: id, Success: true})
	}
	return OK(outcome)
}

func (s *UserStore) applyBulkAction(ctx context.Context, action, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return storeerr.New(storeerr.KindNotFound, "bulk."+action, err)
	}
	exists, err := s.users.ExistsByID(ctx, nil, userID)
	if err != nil {
		return err
	}
	if !exists {
		return storeerr.New(storeerr.KindNotFound, "bulk."+action, errUserMissing)
	}

	switch action {
	case BulkActionDelete:
		err = s.users.DeleteByID(ctx, nil, userID)
	case BulkActionSuspend:
		err = s.users.SetActive(ctx, nil, userID, false)
	case BulkActionActivate:
		err = s.users.SetActive(ctx, nil, userID, true)
	}
	if err != nil {
		return err
	}
	if cerr := s.userCache.Invalidate(ctx, userID); cerr != nil {
		s.log.Warn("user cache invalidate failed", "user_id", id, "error", cerr)
	}
	return nil
}

func (s *UserStore) recordActivity(ctx context.Context, kind string, actorID uuid.UUID, subjectID string) {
	if _, err := s.activity.Create(ctx, nil, &domain.Activity{
		Kind:      kind,
		ActorID:   actorID,
		SubjectID: subjectID,
	}); err != nil {
		s.log.Warn("activity record failed", "kind", kind, "subject_id", subjectID, "error", err)
	}
}
