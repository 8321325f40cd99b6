package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"caplearn/internal/domain"
)

// fakeRunner simulates command execution outcomes.
type fakeRunner struct {
	run func(ctx context.Context, name string, args ...string) (commandResult, error)
}

// Run delegates to injected behavior.
func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	if f.run == nil {
		return commandResult{}, nil
	}
	return f.run(ctx, name, args...)
}

// fixedNow pins timestamps so output paths are deterministic in tests.
func fixedNow() time.Time {
	return time.Unix(0, 1700000000000000000)
}

// TestDownloaderFetchSuccess checks argument construction and output path.
func TestDownloaderFetchSuccess(t *testing.T) {
	destDir := t.TempDir()

	var gotName string
	var gotArgs []string
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			gotName = name
			gotArgs = append([]string{}, args...)
			mustWriteFile(t, args[len(args)-2], "video")
			return commandResult{Stdout: "ok", ExitCode: 0}, nil
		},
	}

	d := NewDownloaderForTests("yt-dlp-custom", runner, os.Stat, fixedNow)
	path, err := d.Fetch(context.Background(), "https://youtu.be/abc123", destDir)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := filepath.Join(destDir, "youtube_1700000000000000000.mp4")
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	if gotName != "yt-dlp-custom" {
		t.Fatalf("command = %q, want yt-dlp-custom", gotName)
	}
	if got := argValue(gotArgs, "-f"); got != "bestaudio[ext=m4a]/best[ext=mp4]/best" {
		t.Fatalf("format selector = %q", got)
	}
	if got := argValue(gotArgs, "--max-filesize"); got != "100M" {
		t.Fatalf("max filesize = %q, want 100M", got)
	}
	if got := argValue(gotArgs, "--max-duration"); got != "1800" {
		t.Fatalf("max duration = %q, want 1800", got)
	}
	if gotArgs[len(gotArgs)-1] != "https://youtu.be/abc123" {
		t.Fatalf("url arg = %q", gotArgs[len(gotArgs)-1])
	}
}

// TestDownloaderFetchEmptyURL checks validation happens before any spawn.
func TestDownloaderFetchEmptyURL(t *testing.T) {
	spawned := false
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			spawned = true
			return commandResult{}, nil
		},
	}

	d := NewDownloaderForTests("yt-dlp", runner, os.Stat, fixedNow)
	_, err := d.Fetch(context.Background(), "  ", t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := domain.KindOf(err); kind != domain.FailureInvalidInput {
		t.Fatalf("kind = %q, want invalid_input", kind)
	}
	if spawned {
		t.Fatal("downloader must not spawn a process for an empty URL")
	}
}

// TestDownloaderFetchProcessFailure checks the download failure path.
func TestDownloaderFetchProcessFailure(t *testing.T) {
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			return commandResult{Stderr: "ERROR: video unavailable", ExitCode: 1}, errors.New("exit status 1")
		},
	}

	d := NewDownloaderForTests("yt-dlp", runner, os.Stat, fixedNow)
	_, err := d.Fetch(context.Background(), "https://youtu.be/gone", t.TempDir())
	if err == nil {
		t.Fatal("expected error")
	}

	var pErr *domain.PipelineError
	if !errors.As(err, &pErr) {
		t.Fatalf("error type = %T, want *domain.PipelineError", err)
	}
	if pErr.Kind != domain.FailureDownloadFailed {
		t.Fatalf("kind = %q, want download_failed", pErr.Kind)
	}
	if !strings.Contains(pErr.CommandLog.Stderr, "video unavailable") {
		t.Fatalf("stderr not captured: %+v", pErr.CommandLog)
	}
}

// TestDownloaderFetchMissingOutput checks clean exit without a file fails.
func TestDownloaderFetchMissingOutput(t *testing.T) {
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			return commandResult{ExitCode: 0}, nil
		},
	}

	d := NewDownloaderForTests("yt-dlp", runner, os.Stat, fixedNow)
	_, err := d.Fetch(context.Background(), "https://youtu.be/abc", t.TempDir())
	if kind := domain.KindOf(err); kind != domain.FailureDownloadFailed {
		t.Fatalf("kind = %q, want download_failed", kind)
	}
}

// TestDownloaderMetadataSuccess checks two-line title/id parsing.
func TestDownloaderMetadataSuccess(t *testing.T) {
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			if !hasArg(args, "--skip-download") {
				t.Fatalf("metadata call must skip download, args=%v", args)
			}
			return commandResult{Stdout: "Learning Go\nabc123\n", ExitCode: 0}, nil
		},
	}

	d := NewDownloaderForTests("yt-dlp", runner, os.Stat, fixedNow)
	info, err := d.Metadata(context.Background(), "https://youtu.be/abc123")
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}

	if info.Title != "Learning Go" {
		t.Fatalf("title = %q", info.Title)
	}
	if info.VideoID != "abc123" {
		t.Fatalf("video id = %q", info.VideoID)
	}
	if info.URL != "https://youtu.be/abc123" {
		t.Fatalf("url = %q", info.URL)
	}
}

// TestDownloaderMetadataShortOutput checks parse failures abort distinctly.
func TestDownloaderMetadataShortOutput(t *testing.T) {
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			return commandResult{Stdout: "only-title", ExitCode: 0}, nil
		},
	}

	d := NewDownloaderForTests("yt-dlp", runner, os.Stat, fixedNow)
	_, err := d.Metadata(context.Background(), "https://youtu.be/abc")
	if kind := domain.KindOf(err); kind != domain.FailureMetadataFailed {
		t.Fatalf("kind = %q, want metadata_failed", kind)
	}
}

// mustWriteFile creates parent directory and writes file content.
func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir parent: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

// argValue returns value for key-style CLI args.
func argValue(args []string, key string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == key {
			return args[i+1]
		}
	}
	return ""
}

// hasArg reports whether args include the target flag.
func hasArg(args []string, key string) bool {
	for _, arg := range args {
		if arg == key {
			return true
		}
	}
	return false
}
