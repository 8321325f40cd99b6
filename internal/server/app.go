// Package server exposes the transcription pipeline over HTTP.
package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caplearn/internal/config"
	"caplearn/internal/diagnostics"
	"caplearn/internal/domain"
	"caplearn/internal/jobs"
	"caplearn/internal/pipeline"
)

// pipelineRunner drives one job from source media to subtitles.
type pipelineRunner interface {
	ProcessUpload(ctx context.Context, job *jobs.Job, videoPath string) (domain.FormattedSubtitles, error)
	ProcessURL(ctx context.Context, job *jobs.Job, url string) (domain.FormattedSubtitles, error)
}

// diagnosticChecker produces an environment report on demand.
type diagnosticChecker interface {
	Run() domain.DiagnosticReport
}

// App holds the HTTP surface and its collaborators.
type App struct {
	cfg     config.Config
	runner  pipelineRunner
	checker diagnosticChecker
	engine  *gin.Engine
	logf    func(format string, args ...any)
}

// New wires the application from service configuration.
func New(cfg config.Config) *App {
	return newApp(cfg, pipeline.NewRunner(cfg), diagnostics.NewChecker(cfg), log.Printf)
}

func newApp(cfg config.Config, runner pipelineRunner, checker diagnosticChecker, logf func(format string, args ...any)) *App {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware())

	app := &App{
		cfg:     cfg,
		runner:  runner,
		checker: checker,
		engine:  engine,
		logf:    logf,
	}
	app.routes()
	return app
}

// routes registers every endpoint on the engine.
func (a *App) routes() {
	a.engine.GET("/", a.healthHandler)
	a.engine.GET("/health", a.healthHandler)
	a.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := a.engine.Group("/api")
	api.GET("/models", a.modelsHandler)
	api.GET("/diagnostics", a.diagnosticsHandler)

	subs := api.Group("/subtitles")
	subs.POST("/upload", a.uploadHandler)
	subs.POST("/youtube", a.youtubeHandler)
	subs.POST("/export", a.exportHandler)
}

// Run serves the API on the configured port, blocking until the server
// stops.
func (a *App) Run() error {
	return a.engine.Run(":" + a.cfg.Port)
}

// Handler exposes the router for in-process testing.
func (a *App) Handler() http.Handler {
	return a.engine
}

// corsMiddleware opens the API to any origin; the frontend is served
// from a different host in development.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// NewForTests wires an app with injectable collaborators.
func NewForTests(cfg config.Config, runner pipelineRunner, checker diagnosticChecker, logf func(format string, args ...any)) *App {
	return newApp(cfg, runner, checker, logf)
}
