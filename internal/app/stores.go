package app

import (
	"github.com/oumacavin/smartlearn-backend/internal/admin"
	"github.com/oumacavin/smartlearn-backend/internal/admin/seed"
	"github.com/oumacavin/smartlearn-backend/internal/data/cache"
	"github.com/oumacavin/smartlearn-backend/internal/data/graph"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

type Stores struct {
	Content  *admin.ContentStore
	Quiz     *admin.QuizStore
	User     *admin.UserStore
	AI       *admin.AIStore
	Activity *admin.ActivityStore
}

func wireStores(
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	conceptStore graph.ConceptStore,
	userCache *cache.UserCache,
) Stores {
	var catalog *seed.Catalog
	if cfg.SeedPath != "" {
		loaded, err := seed.Load(cfg.SeedPath)
		if err != nil {
			log.Warn("seed catalog load failed, using defaults", "path", cfg.SeedPath, "error", err)
		} else {
			catalog = loaded
		}
	}

	return Stores{
		Content:  admin.NewContentStore(log, reposet.Course, reposet.Lesson, reposet.Activity, conceptStore, catalog),
		Quiz:     admin.NewQuizStore(log, reposet.Quiz, reposet.Lesson, reposet.User, reposet.QuizAttempt, reposet.Activity, conceptStore),
		User:     admin.NewUserStore(log, reposet.User, reposet.Activity, userCache, cfg.DefaultAdminPassword),
		AI:       admin.NewAIStore(log, conceptStore, reposet.Activity),
		Activity: admin.NewActivityStore(log, reposet.Activity, reposet.User, reposet.Course),
	}
}
