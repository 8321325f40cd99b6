// Package diagnostics verifies the external tooling the pipeline
// depends on: binaries on PATH, a writable upload directory and the API
// credential.
package diagnostics

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"caplearn/internal/config"
	"caplearn/internal/domain"
)

// Checker runs environment checks. All side-effecting operations are
// injectable so the checks can be exercised without a real toolchain.
type Checker struct {
	cfg config.Config

	lookPath   func(string) (string, error)
	createTemp func(dir, pattern string) (*os.File, error)
	remove     func(string) error
	now        func() time.Time
}

// NewChecker constructs a checker for the given configuration.
func NewChecker(cfg config.Config) *Checker {
	return &Checker{
		cfg:        cfg,
		lookPath:   exec.LookPath,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
		now:        time.Now,
	}
}

// Run executes every check and aggregates the results. Checks never
// abort each other; a report always covers all items.
func (c *Checker) Run() domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkTool("yt-dlp", c.cfg.YtDlpPath, "install yt-dlp or set YT_DLP_PATH"),
		c.checkTool("ffmpeg", c.cfg.FFmpegPath, "install ffmpeg or set FFMPEG_PATH"),
		c.checkUploadDir(),
		c.checkAPIKey(),
	}

	report := domain.DiagnosticReport{
		GeneratedAt: c.now(),
		Items:       items,
	}
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			report.HasFailures = true
			break
		}
	}
	return report
}

// checkTool resolves an external binary through PATH lookup.
func (c *Checker) checkTool(name, binPath, hint string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   name,
		Name: fmt.Sprintf("%s binary", name),
	}

	resolved, err := c.lookPath(binPath)
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("%s not found at %q", name, binPath)
		item.Hint = hint
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("found at %s", resolved)
	return item
}

// checkUploadDir verifies the working directory accepts new files.
func (c *Checker) checkUploadDir() domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "upload-dir",
		Name: "upload directory",
	}

	f, err := c.createTemp(c.cfg.UploadDir, ".diag-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("cannot write to %q: %v", c.cfg.UploadDir, err)
		item.Hint = "create the directory or set UPLOAD_DIR to a writable path"
		return item
	}
	name := f.Name()
	_ = f.Close()
	_ = c.remove(name)

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("%q is writable", c.cfg.UploadDir)
	return item
}

// checkAPIKey verifies the transcription credential is configured. The
// key itself never appears in the report.
func (c *Checker) checkAPIKey() domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "groq-api-key",
		Name: "Groq API key",
	}

	if c.cfg.GroqAPIKey == "" {
		item.Status = domain.DiagnosticStatusFail
		item.Message = "GROQ_API_KEY is not set"
		item.Hint = "export GROQ_API_KEY or add it to .env"
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = "credential configured"
	return item
}

// NewCheckerForTests constructs a checker with injectable deps.
func NewCheckerForTests(
	cfg config.Config,
	lookPath func(string) (string, error),
	createTemp func(dir, pattern string) (*os.File, error),
	remove func(string) error,
	now func() time.Time,
) *Checker {
	return &Checker{
		cfg:        cfg,
		lookPath:   lookPath,
		createTemp: createTemp,
		remove:     remove,
		now:        now,
	}
}
