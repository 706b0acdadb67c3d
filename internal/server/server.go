package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/repository"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/session"
	"github.com/pageza/recipebox/backend/internal/view"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Minute

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
	closer func()
}

// New wires repositories, services, sessions and handlers into a server.
// rdb may be nil unless the redis session store is configured.
func New(cfg *config.Config, db *database.DB, log *zap.Logger, rdb *redis.Client) (*Server, error) {
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	store, closer, err := newSessionStore(cfg, rdb, log)
	if err != nil {
		return nil, err
	}
	sessions := session.NewManager(store, session.Options{
		CookieName: cfg.SessionCookieName,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.SessionSecureCookie,
	}, log)

	renderer, err := view.New(cfg.ViewMode)
	if err != nil {
		closer()
		return nil, err
	}

	users := repository.NewUserRepository(db.Gorm)
	recipes := repository.NewRecipeRepository(db.Gorm)
	favorites := repository.NewFavoriteRepository(db.Gorm)

	authService := service.NewAuthService(users, cfg.BcryptCost, log)
	recipeService := service.NewRecipeService(recipes, favorites, log)

	checks := map[string]api.CheckFunc{"database": db.HealthCheck}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	var metrics *middleware.Metrics
	if cfg.MetricsEnabled {
		metrics = middleware.NewMetrics()
		metrics.Registry().MustRegister(collectors.NewDBStatsCollector(db.SQL(), cfg.DBDriver))
	}

	engine := router.SetupRouter(router.Dependencies{
		Log:                log,
		Renderer:           renderer,
		Sessions:           sessions,
		AuthHandler:        api.NewAuthHandler(authService, recipeService, sessions, renderer, log),
		RecipeHandler:      api.NewRecipeHandler(recipeService, renderer, log, cfg.RequireAuthForRecipeWrites),
		HealthHandler:      api.NewHealthHandler(checks, log),
		Metrics:            metrics,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log:    log,
		closer: closer,
	}, nil
}

func newSessionStore(cfg *config.Config, rdb *redis.Client, log *zap.Logger) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory, "":
		store := session.NewMemoryStore(sessionSweepInterval, log)
		return store, store.Close, nil
	case config.SessionStoreRedis:
		if rdb == nil {
			return nil, nil, errors.New("redis session store requires a redis client")
		}
		return session.NewRedisStore(rdb), func() {}, nil
	case config.SessionStoreCookie:
		return session.NewCookieStore(cfg.SessionSecret), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}
}

// Router returns the HTTP handler
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	s.log.Info("Starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and releases the session store
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.closer()
	return s.http.Shutdown(ctx)
}
