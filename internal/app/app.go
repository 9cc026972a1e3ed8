package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oumacavin/smartlearn-backend/internal/data/cache"
	"github.com/oumacavin/smartlearn-backend/internal/data/db"
	"github.com/oumacavin/smartlearn-backend/internal/data/graph"
	"github.com/oumacavin/smartlearn-backend/internal/http/middleware"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
	"github.com/oumacavin/smartlearn-backend/internal/platform/neo4jdb"
	"github.com/oumacavin/smartlearn-backend/internal/server"
)

type App struct {
	Log     *logger.Logger
	DB      *gorm.DB
	Router  *gin.Engine
	Cfg     Config
	Repos   Repos
	Stores  Stores
	graphDB *neo4jdb.Client
	cache   *cache.UserCache
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	graphDB, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Warn("neo4j init failed, graph features disabled", "error", err)
		graphDB = nil
	}
	conceptStore := graph.NewConceptStore(graphDB, log)
	conceptStore.EnsureSchema(context.Background())

	userCache, err := cache.NewUserCacheFromEnv(log)
	if err != nil {
		log.Warn("redis init failed, user cache disabled", "error", err)
		userCache = nil
	}

	reposet := wireRepos(theDB, log)
	storeset := wireStores(log, cfg, reposet, conceptStore, userCache)

	auth := middleware.NewAuthMiddleware(log, cfg.JWTSecretKey)
	handlerset := wireHandlers(log, cfg, reposet, storeset, auth)
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		AuthMiddleware:  auth,
		HealthHandler:   handlerset.Health,
		AuthHandler:     handlerset.Auth,
		ContentHandler:  handlerset.Content,
		QuizHandler:     handlerset.Quiz,
		UserHandler:     handlerset.User,
		AIHandler:       handlerset.AI,
		ActivityHandler: handlerset.Activity,
	})

	return &App{
		Log:     log,
		DB:      theDB,
		Router:  router,
		Cfg:     cfg,
		Repos:   reposet,
		Stores:  storeset,
		graphDB: graphDB,
		cache:   userCache,
	}, nil
}

// Bootstrap seeds the admin account and the content catalog. Failures are
// contained inside the stores; the envelopes are only logged here.
func (a *App) Bootstrap(ctx context.Context) {
	if res := a.Stores.User.InitializeAdmin(ctx); !res.Success {
		a.Log.Warn("admin bootstrap returned failure envelope", "error", res.Error)
	}
	if res := a.Stores.Content.InitializeContent(ctx); !res.Success {
		a.Log.Warn("content bootstrap returned failure envelope", "error", res.Error)
	}
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.Log.Warn("redis close failed", "error", err)
		}
	}
	if a.graphDB != nil {
		if err := a.graphDB.Close(context.Background()); err != nil {
			a.Log.Warn("neo4j close failed", "error", err)
		}
	}
	a.Log.Sync()
}
