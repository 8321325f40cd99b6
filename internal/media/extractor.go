package media

import (
	"context"
	"os"

	"caplearn/internal/domain"
)

// Extractor strips the video stream and produces a compressed audio
// sibling file through an external ffmpeg process.
type Extractor struct {
	binPath string
	runner  commandRunner
	stat    func(string) (os.FileInfo, error)
}

// NewExtractor constructs an extractor using the given ffmpeg binary.
func NewExtractor(binPath string) *Extractor {
	return &Extractor{
		binPath: binPath,
		runner:  &execRunner{},
		stat:    os.Stat,
	}
}

// ExtractAudio converts videoPath to an mp3 next to it and returns the
// new path. Blocking, single-shot; any timeout comes from the caller's
// context.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	outPath := videoPath + ".mp3"
	args := buildExtractArgs(videoPath, outPath)

	result, runErr := e.runner.Run(ctx, e.binPath, args...)
	log := domain.CommandLog{
		Command:  e.binPath,
		Args:     args,
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}
	if runErr != nil {
		return "", &domain.PipelineError{
			Kind:       domain.FailureTranscodeFailed,
			Message:    "failed to convert video to MP3",
			CommandLog: log,
			Err:        runErr,
		}
	}

	if _, err := e.stat(outPath); err != nil {
		return "", &domain.PipelineError{
			Kind:       domain.FailureTranscodeFailed,
			Message:    "ffmpeg completed but the audio file is missing",
			CommandLog: log,
			Err:        err,
		}
	}

	return outPath, nil
}

// buildExtractArgs builds ffmpeg args for 44.1 kHz stereo 192 kbps MP3
// output with the video stream dropped.
func buildExtractArgs(inputPath, outPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-ar", "44100",
		"-ac", "2",
		"-b:a", "192k",
		outPath,
	}
}

// NewExtractorForTests constructs an extractor with injectable deps.
func NewExtractorForTests(
	binPath string,
	runner commandRunner,
	stat func(string) (os.FileInfo, error),
) *Extractor {
	return &Extractor{
		binPath: binPath,
		runner:  runner,
		stat:    stat,
	}
}
