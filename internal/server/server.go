package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	_ "flowboard/docs"
	"flowboard/internal/auth"
	"flowboard/internal/config"
	"flowboard/internal/handler"
	"flowboard/internal/middleware"
	"flowboard/internal/repository"
	"flowboard/internal/repository/mongostore"
	"flowboard/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Engine *gin.Engine
	Config *config.Config

	logger *slog.Logger
	close  func(context.Context) error
}

// Init connects the configured store and builds the router.
func Init(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	stores, closeStore, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if !cfg.StrictOwnership {
		logger.Warn("ownership checks disabled: task update/delete and board delete act on any id; set STRICT_OWNERSHIP=true to enforce")
	}

	return &Server{
		Engine: NewRouter(cfg, stores, logger, gin.DefaultWriter),
		Config: cfg,
		logger: logger,
		close:  closeStore,
	}, nil
}

// OpenStores selects the backend named by DB_DRIVER. The returned func releases it.
func OpenStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Stores, func(context.Context) error, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, cfg.DBURI)
		if err != nil {
			return repository.Stores{}, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			logger.Warn("index sync failed", "error", err)
		}
		logger.Info("connected to database", "driver", cfg.DBDriver, "database", db.Name())
		return mongostore.NewStores(db), client.Disconnect, nil

	case config.DriverPostgres, config.DriverSQLite:
		open := repository.OpenPostgres
		if cfg.DBDriver == config.DriverSQLite {
			open = repository.OpenSQLite
		}
		db, err := open(cfg.DBURI)
		if err != nil {
			return repository.Stores{}, nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		if err := repository.Migrate(db); err != nil {
			return repository.Stores{}, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return repository.Stores{}, nil, err
		}
		logger.Info("connected to database", "driver", cfg.DBDriver)
		return repository.NewStores(db), func(context.Context) error { return sqlDB.Close() }, nil
	}

	return repository.Stores{}, nil, fmt.Errorf("unsupported DB driver %q", cfg.DBDriver)
}

// NewRouter wires middleware and routes over stores. Request logs go to accessLog.
func NewRouter(cfg *config.Config, stores repository.Stores, logger *slog.Logger, accessLog io.Writer) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.LoggerWithWriter(accessLog, "/health"))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.ErrorResponse{Message: "Internal Server Error"})
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := handler.NewAuthHandler(service.NewAuthService(stores.Users, issuer), logger)
	boardHandler := handler.NewBoardHandler(service.NewBoardService(stores.Boards, cfg.StrictOwnership), logger)
	taskHandler := handler.NewTaskHandler(service.NewTaskService(stores.Tasks, cfg.StrictOwnership), logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, handler.HealthResponse{Status: "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authorized := api.Group("")
	authorized.Use(middleware.JWTAuthMiddleware(issuer))
	{
		authorized.PUT("/auth/update", authHandler.UpdateProfile)

		authorized.GET("/boards", boardHandler.List)
		authorized.POST("/boards", boardHandler.Create)
		authorized.DELETE("/boards/:id", boardHandler.Delete)

		authorized.GET("/tasks", taskHandler.List)
		authorized.POST("/tasks", taskHandler.Create)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Message: "Route not found"})
	})

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests and closes the store.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("FlowBoard backend listening", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if s.close != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := s.close(closeCtx); cerr != nil {
			s.logger.Warn("closing store", "error", cerr)
		}
	}
	if err == nil {
		s.logger.Info("server exited properly")
	}
	return err
}
