package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"caplearn/internal/config"
	"caplearn/internal/domain"
)

// Downloader fetches remote videos through an external yt-dlp process.
// The size and duration caps are enforced by the tool itself; this side
// only verifies that the expected output file appeared.
type Downloader struct {
	binPath string
	runner  commandRunner
	stat    func(string) (os.FileInfo, error)
	now     func() time.Time
}

// NewDownloader constructs a downloader using the given yt-dlp binary.
func NewDownloader(binPath string) *Downloader {
	return &Downloader{
		binPath: binPath,
		runner:  &execRunner{},
		stat:    os.Stat,
		now:     time.Now,
	}
}

// Fetch downloads the video behind url into destDir and returns the
// local path. A single invocation either succeeds or the job fails; no
// retries.
func (d *Downloader) Fetch(ctx context.Context, url, destDir string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", &domain.PipelineError{
			Kind:    domain.FailureInvalidInput,
			Message: "no YouTube URL provided",
		}
	}

	outPath := filepath.Join(destDir, fmt.Sprintf("youtube_%d.mp4", d.now().UnixNano()))
	args := buildFetchArgs(outPath, url)

	result, runErr := d.runner.Run(ctx, d.binPath, args...)
	log := domain.CommandLog{
		Command:  d.binPath,
		Args:     args,
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}
	if runErr != nil {
		return "", &domain.PipelineError{
			Kind:       domain.FailureDownloadFailed,
			Message:    "failed to download YouTube video",
			CommandLog: log,
			Err:        runErr,
		}
	}

	if _, err := d.stat(outPath); err != nil {
		return "", &domain.PipelineError{
			Kind:       domain.FailureDownloadFailed,
			Message:    "downloader exited cleanly but the video file is missing",
			CommandLog: log,
			Err:        err,
		}
	}

	return outPath, nil
}

// Metadata retrieves the source title and identifier without downloading.
// A metadata failure aborts the whole job, surfaced distinctly from a
// download failure.
func (d *Downloader) Metadata(ctx context.Context, url string) (domain.SourceInfo, error) {
	args := buildMetadataArgs(url)

	result, runErr := d.runner.Run(ctx, d.binPath, args...)
	log := domain.CommandLog{
		Command:  d.binPath,
		Args:     args,
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}
	if runErr != nil {
		return domain.SourceInfo{}, &domain.PipelineError{
			Kind:       domain.FailureMetadataFailed,
			Message:    "failed to get video info",
			CommandLog: log,
			Err:        runErr,
		}
	}

	lines := strings.Split(strings.TrimSpace(result.Stdout), "\n")
	if len(lines) < 2 {
		return domain.SourceInfo{}, &domain.PipelineError{
			Kind:       domain.FailureMetadataFailed,
			Message:    "unexpected video info output",
			CommandLog: log,
		}
	}

	return domain.SourceInfo{
		Title:   strings.TrimSpace(lines[0]),
		URL:     url,
		VideoID: strings.TrimSpace(lines[1]),
	}, nil
}

// buildFetchArgs builds the yt-dlp download invocation with format
// selection and the tool-enforced size/duration caps.
func buildFetchArgs(outPath, url string) []string {
	return []string{
		"-f", "bestaudio[ext=m4a]/best[ext=mp4]/best",
		"--max-filesize", fmt.Sprintf("%dM", config.MaxMediaBytes>>20),
		"--max-duration", fmt.Sprintf("%d", config.MaxRemoteDuration),
		"-o", outPath,
		url,
	}
}

// buildMetadataArgs builds the metadata-only invocation; title and id
// come back as two newline-delimited lines.
func buildMetadataArgs(url string) []string {
	return []string{
		"--skip-download",
		"--print", "title",
		"--print", "id",
		url,
	}
}

// NewDownloaderForTests constructs a downloader with injectable deps.
func NewDownloaderForTests(
	binPath string,
	runner commandRunner,
	stat func(string) (os.FileInfo, error),
	now func() time.Time,
) *Downloader {
	return &Downloader{
		binPath: binPath,
		runner:  runner,
		stat:    stat,
		now:     now,
	}
}
