// Package dashboard serves the progress engine as a JSON API.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/settings"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the dashboard server.
type StartOpts struct {
	DB       *gorm.DB
	Settings *settings.Store
	Project  string
	Port     int
	Out      io.Writer
}

// Start launches the dashboard HTTP server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("dashboard: db is required")
	}
	if opts.Settings == nil {
		return fmt.Errorf("dashboard: settings store is required")
	}
	if opts.Port <= 0 {
		opts.Port = 8080
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(opts)

	addr := fmt.Sprintf(":%d", opts.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Dashboard API running at http://localhost:%d/api/project\n", opts.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(opts StartOpts) *gin.Engine {
	return newRouter(opts, defaultPollInterval)
}

func newRouter(opts StartOpts, pollInterval time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	engine := progress.NewEngine(nil)
	if opts.Settings != nil {
		engine = progress.NewEngine(opts.Settings)
	}
	registerRoutes(router, &handler{
		db:       opts.DB,
		store:    opts.Settings,
		engine:   engine,
		project:  opts.Project,
		interval: pollInterval,
	})
	return router
}
