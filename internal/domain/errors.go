package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies where in the pipeline a job failed.
type FailureKind string

const (
	FailureInvalidInput        FailureKind = "invalid_input"
	FailurePayloadTooLarge     FailureKind = "payload_too_large"
	FailureDownloadFailed      FailureKind = "download_failed"
	FailureMetadataFailed      FailureKind = "metadata_failed"
	FailureTranscodeFailed     FailureKind = "transcode_failed"
	FailureTranscriptionFailed FailureKind = "transcription_failed"
)

// CommandLog captures one external command invocation result.
type CommandLog struct {
	Command  string   `json:"command"`
	Args     []string `json:"args"`
	ExitCode int      `json:"exitCode"`
	Stdout   string   `json:"stdout"`
	Stderr   string   `json:"stderr"`
}

// PipelineError is a kind-tagged error with optional command context.
type PipelineError struct {
	Kind       FailureKind `json:"kind"`
	Message    string      `json:"message"`
	CommandLog CommandLog  `json:"commandLog"`
	Err        error       `json:"-"`
}

// Error formats pipeline failures for logs and API responses.
func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	if e.CommandLog.Command == "" {
		return e.Message
	}

	return fmt.Sprintf(
		"%s (cmd=%s exit=%d)",
		e.Message,
		e.CommandLog.Command,
		e.CommandLog.ExitCode,
	)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf returns the failure kind carried by err, or empty when err is
// not a pipeline error.
func KindOf(err error) FailureKind {
	var pErr *PipelineError
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return ""
}
