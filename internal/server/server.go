package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JustJay7/nyaya-mitra/internal/api"
	"github.com/JustJay7/nyaya-mitra/internal/cache"
	"github.com/JustJay7/nyaya-mitra/internal/cases"
	"github.com/JustJay7/nyaya-mitra/internal/config"
	"github.com/JustJay7/nyaya-mitra/internal/metrics"
	"github.com/JustJay7/nyaya-mitra/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type Server struct {
	cfg     *config.Config
	logger  *logger.Logger
	router  *gin.Engine
	handler http.Handler
}

func New(cfg *config.Config, db *gorm.DB, service *cases.Service, caseCache cache.Cache, m *metrics.Metrics, logger *logger.Logger) *Server {
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(metricsMiddleware(m))

	api.SetupRoutes(router, api.NewHandlers(service, db, caseCache, logger), m, cfg.StaticDir)

	return &Server{
		cfg:     cfg,
		logger:  logger,
		router:  router,
		handler: corsHandler(cfg.CORSAllowedOrigins).Handler(router),
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:        s.cfg.Address(),
		Handler:     s.handler,
		ReadTimeout: 10 * time.Second,
		// Generation calls can take far longer than a normal request
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("Failed to start server", "error", err)
		}
	}()

	s.logger.Info("Server started", "address", srv.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	s.logger.Info("Server exited gracefully")
	return nil
}

func loggingMiddleware(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Info("HTTP Request",
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"user_agent", c.Request.UserAgent(),
		)
	}
}

func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// corsHandler reflects any origin when the allow-list is "*", matching a
// browser front end hosted on a different domain.
func corsHandler(origins []string) *cors.Cors {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Content-Type",
			"Accept",
			"Origin",
			"X-Requested-With",
		},
		AllowCredentials: true,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		opts.AllowOriginFunc = func(string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}

	return cors.New(opts)
}
