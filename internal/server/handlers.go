package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"caplearn/internal/config"
	"caplearn/internal/domain"
	"caplearn/internal/jobs"
	"caplearn/internal/metrics"
	"caplearn/internal/subtitles"
)

// youtubeRequest is the body of POST /api/subtitles/youtube.
type youtubeRequest struct {
	YoutubeURL string `json:"youtubeUrl"`
}

// exportRequest is the body of POST /api/subtitles/export.
type exportRequest struct {
	Format    string                    `json:"format"`
	Subtitles domain.FormattedSubtitles `json:"subtitles"`
}

// uploadHandler transcribes a multipart video upload. The saved file is
// tracked on the job immediately so it is removed whatever happens next.
func (a *App) uploadHandler(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	if file.Size > config.MaxMediaBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 100MB)"})
		return
	}

	videoPath := filepath.Join(a.cfg.UploadDir, uuid.New().String()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, videoPath); err != nil {
		a.logf("upload: failed to save %s: %v", videoPath, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded file"})
		return
	}

	job := jobs.NewJob(domain.SourceUpload)
	subs, err := a.runner.ProcessUpload(c.Request.Context(), job, videoPath)
	a.finish(c, job, "upload", subs, err)
}

// youtubeHandler transcribes a remote video given its URL.
func (a *App) youtubeHandler(c *gin.Context) {
	var req youtubeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.YoutubeURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No YouTube URL provided"})
		return
	}

	job := jobs.NewJob(domain.SourceURL)
	subs, err := a.runner.ProcessURL(c.Request.Context(), job, req.YoutubeURL)
	a.finish(c, job, "url", subs, err)
}

// exportHandler renders previously produced subtitles as a downloadable
// SRT or VTT file. Pure formatting; nothing touches disk.
func (a *App) exportHandler(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export request"})
		return
	}

	rendered, err := subtitles.Export(req.Subtitles, subtitles.ExportFormat(req.Format))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := "application/x-subrip"
	if req.Format == string(subtitles.ExportVTT) {
		contentType = "text/vtt"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "subtitles."+req.Format))
	c.Data(http.StatusOK, contentType, []byte(rendered))
}

// modelsHandler lists the selectable transcription models.
func (a *App) modelsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": config.ModelCatalog()})
}

// diagnosticsHandler reports the state of external tooling.
func (a *App) diagnosticsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, a.checker.Run())
}

// healthHandler is the liveness probe.
func (a *App) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// finish sends the pipeline outcome. On success the response is written
// before cleanup so formatting work never delays the client; on failure
// cleanup runs first so the error response is the request's last act.
func (a *App) finish(c *gin.Context, job *jobs.Job, source string, subs domain.FormattedSubtitles, err error) {
	if err != nil {
		a.cleanupJob(job)
		metrics.RecordRequest(source, outcomeOf(err))
		c.JSON(statusOf(err), gin.H{"error": errorMessage(err)})
		return
	}

	metrics.RecordRequest(source, "success")
	c.JSON(http.StatusOK, gin.H{"success": true, "transcription": subs})
	a.cleanupJob(job)
}

// cleanupJob removes the job's temporary files, counting any path that
// could not be deleted.
func (a *App) cleanupJob(job *jobs.Job) {
	job.Cleanup(func(format string, args ...any) {
		metrics.CleanupFailures.Inc()
		a.logf(format, args...)
	})
}

// statusOf maps failure kinds to HTTP statuses. Caller mistakes are 400;
// everything downstream is 500.
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.FailureInvalidInput, domain.FailurePayloadTooLarge:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps stage messages for the client and hides everything
// else behind a generic line.
func errorMessage(err error) string {
	var pErr *domain.PipelineError
	if errors.As(err, &pErr) && pErr.Message != "" {
		return pErr.Message
	}
	return "Internal server error"
}

// outcomeOf labels a failed request for metrics.
func outcomeOf(err error) string {
	if kind := domain.KindOf(err); kind != "" {
		return string(kind)
	}
	return "internal_error"
}
