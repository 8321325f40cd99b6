package jobs

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"

	"caplearn/internal/domain"
)

// fileState is the per-path cleanup state machine.
type fileState int

const (
	fileCreated fileState = iota
	filePendingDelete
	fileDeleted
)

// trackedFile records one temporary file created for a job.
type trackedFile struct {
	path  string
	state fileState
}

// Job is the ephemeral per-request media job. It owns every temporary
// file created while handling one request and is never shared across
// requests. Each tracked path is removed exactly once, on success and
// failure paths alike.
type Job struct {
	ID     string
	Source domain.SourceKind

	mu     sync.Mutex
	status domain.JobStatus
	files  []trackedFile
	remove func(string) error
}

// NewJob creates a job in acquiring state with a fresh identifier.
func NewJob(source domain.SourceKind) *Job {
	return &Job{
		ID:     uuid.New().String(),
		Source: source,
		status: domain.JobStatusAcquiring,
		remove: os.Remove,
	}
}

// Track records a temporary file for deletion at cleanup time.
func (j *Job) Track(path string) {
	if path == "" {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	for _, f := range j.files {
		if f.path == path {
			return
		}
	}
	j.files = append(j.files, trackedFile{path: path, state: fileCreated})
}

// TrackedPaths returns the recorded paths in creation order.
func (j *Job) TrackedPaths() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]string, 0, len(j.files))
	for _, f := range j.files {
		out = append(out, f.path)
	}
	return out
}

// Status returns the current job status.
func (j *Job) Status() domain.JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Transition validates and applies a status change.
func (j *Job) Transition(status domain.JobStatus) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if status == j.status {
		return nil
	}
	if !isValidTransition(j.status, status) {
		return fmt.Errorf("invalid transition: %s -> %s", j.status, status)
	}

	j.status = status
	return nil
}

// Cleanup deletes every tracked file exactly once. Deletion of an
// already-absent file is success; other deletion failures are reported
// to logf and suppressed so they never mask the request's outcome.
// Calling Cleanup again is a no-op for files already deleted.
func (j *Job) Cleanup(logf func(format string, args ...any)) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if logf == nil {
		logf = func(string, ...any) {}
	}

	for i := range j.files {
		if j.files[i].state == fileDeleted {
			continue
		}

		j.files[i].state = filePendingDelete
		err := j.remove(j.files[i].path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logf("job %s: failed to delete %s: %v", j.ID, j.files[i].path, err)
			continue
		}

		j.files[i].state = fileDeleted
	}
}

// isValidTransition enforces the allowed job state machine edges.
func isValidTransition(from, to domain.JobStatus) bool {
	switch from {
	case domain.JobStatusAcquiring:
		return to == domain.JobStatusExtracting || to == domain.JobStatusFailed
	case domain.JobStatusExtracting:
		return to == domain.JobStatusTranscribing || to == domain.JobStatusFailed
	case domain.JobStatusTranscribing:
		return to == domain.JobStatusDone || to == domain.JobStatusFailed
	default:
		return false
	}
}

// NewJobForTests creates a job with an injectable remove function.
func NewJobForTests(source domain.SourceKind, remove func(string) error) *Job {
	job := NewJob(source)
	job.remove = remove
	return job
}
