// Package pipeline drives one media job through its stages: acquire a
// video, extract its audio, transcribe the audio, shape the result.
package pipeline

import (
	"context"
	"os"
	"time"

	"caplearn/internal/config"
	"caplearn/internal/domain"
	"caplearn/internal/jobs"
	"caplearn/internal/media"
	"caplearn/internal/metrics"
	"caplearn/internal/subtitles"
	"caplearn/internal/transcribe"
)

// downloader fetches remote videos and their metadata.
type downloader interface {
	Fetch(ctx context.Context, url, destDir string) (string, error)
	Metadata(ctx context.Context, url string) (domain.SourceInfo, error)
}

// extractor converts a video file into an audio file.
type extractor interface {
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
}

// transcriber turns an audio file into a time-aligned transcript.
type transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (domain.Transcript, error)
}

// Runner executes the pipeline for one job at a time. It never runs
// stages concurrently within a job; each stage either produces the
// input for the next or fails the whole job. Every intermediate file is
// tracked on the job so the caller's cleanup removes it regardless of
// outcome.
type Runner struct {
	downloader  downloader
	extractor   extractor
	transcriber transcriber
	uploadDir   string

	stat    func(string) (os.FileInfo, error)
	observe func(stage string, d time.Duration)
}

// NewRunner wires the pipeline from service configuration.
func NewRunner(cfg config.Config) *Runner {
	return &Runner{
		downloader:  media.NewDownloader(cfg.YtDlpPath),
		extractor:   media.NewExtractor(cfg.FFmpegPath),
		transcriber: transcribe.NewClient(cfg),
		uploadDir:   cfg.UploadDir,
		stat:        os.Stat,
		observe:     metrics.ObserveStage,
	}
}

// ProcessUpload transcribes an already-saved upload. The size cap is
// re-checked against the bytes on disk before any external tool runs.
func (r *Runner) ProcessUpload(ctx context.Context, job *jobs.Job, videoPath string) (domain.FormattedSubtitles, error) {
	job.Track(videoPath)

	info, err := r.stat(videoPath)
	if err != nil {
		return r.fail(job, &domain.PipelineError{
			Kind:    domain.FailureInvalidInput,
			Message: "uploaded file is not readable",
			Err:     err,
		})
	}
	if info.Size() > config.MaxMediaBytes {
		return r.fail(job, &domain.PipelineError{
			Kind:    domain.FailurePayloadTooLarge,
			Message: "file too large (max 100MB)",
		})
	}

	return r.run(ctx, job, videoPath, nil)
}

// ProcessURL downloads a remote video and transcribes it. Metadata is
// fetched before transcoding starts; if the source cannot be described
// the job stops there.
func (r *Runner) ProcessURL(ctx context.Context, job *jobs.Job, url string) (domain.FormattedSubtitles, error) {
	start := time.Now()
	videoPath, err := r.downloader.Fetch(ctx, url, r.uploadDir)
	job.Track(videoPath)
	if err != nil {
		return r.fail(job, err)
	}

	sourceInfo, err := r.downloader.Metadata(ctx, url)
	if err != nil {
		return r.fail(job, err)
	}
	r.observe("acquire", time.Since(start))

	return r.run(ctx, job, videoPath, &sourceInfo)
}

// run executes the extract and transcribe stages shared by both sources.
func (r *Runner) run(ctx context.Context, job *jobs.Job, videoPath string, sourceInfo *domain.SourceInfo) (domain.FormattedSubtitles, error) {
	if err := job.Transition(domain.JobStatusExtracting); err != nil {
		return r.fail(job, err)
	}

	start := time.Now()
	audioPath, err := r.extractor.ExtractAudio(ctx, videoPath)
	job.Track(audioPath)
	if err != nil {
		return r.fail(job, err)
	}
	r.observe("extract", time.Since(start))

	if err := job.Transition(domain.JobStatusTranscribing); err != nil {
		return r.fail(job, err)
	}

	start = time.Now()
	transcript, err := r.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return r.fail(job, err)
	}
	r.observe("transcribe", time.Since(start))

	if err := job.Transition(domain.JobStatusDone); err != nil {
		return r.fail(job, err)
	}

	return subtitles.Format(transcript, sourceInfo), nil
}

// fail marks the job failed and passes the stage error through. No
// partial transcription results survive a failure.
func (r *Runner) fail(job *jobs.Job, err error) (domain.FormattedSubtitles, error) {
	_ = job.Transition(domain.JobStatusFailed)
	return domain.FormattedSubtitles{}, err
}

// NewRunnerForTests wires a runner with injectable stages.
func NewRunnerForTests(
	d downloader,
	e extractor,
	t transcriber,
	uploadDir string,
	stat func(string) (os.FileInfo, error),
) *Runner {
	return &Runner{
		downloader:  d,
		extractor:   e,
		transcriber: t,
		uploadDir:   uploadDir,
		stat:        stat,
		observe:     func(string, time.Duration) {},
	}
}
