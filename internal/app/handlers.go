package app

import (
	"github.com/oumacavin/smartlearn-backend/internal/http/handlers"
	"github.com/oumacavin/smartlearn-backend/internal/http/middleware"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Content  *handlers.ContentHandler
	Quiz     *handlers.QuizHandler
	User     *handlers.UserHandler
	AI       *handlers.AIHandler
	Activity *handlers.ActivityHandler
}

func wireHandlers(log *logger.Logger, cfg Config, reposet Repos, storeset Stores, auth *middleware.AuthMiddleware) Handlers {
	return Handlers{
		Health:   handlers.NewHealthHandler(),
		Auth:     handlers.NewAuthHandler(log, reposet.User, auth, cfg.AccessTokenTTL),
		Content:  handlers.NewContentHandler(log, storeset.Content),
		Quiz:     handlers.NewQuizHandler(log, storeset.Quiz),
		User:     handlers.NewUserHandler(log, storeset.User),
		AI:       handlers.NewAIHandler(log, storeset.AI),
		Activity: handlers.NewActivityHandler(log, storeset.Activity),
	}
}
