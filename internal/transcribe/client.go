package transcribe

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"caplearn/internal/config"
	"caplearn/internal/domain"
)

// Client sends audio files to the Groq transcription endpoint. Groq
// speaks the OpenAI audio API, so the request is a multipart upload with
// verbose JSON output and word plus segment timestamp granularity. One
// attempt per job; no retry, no backoff.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a transcription client from service configuration.
func NewClient(cfg config.Config) *Client {
	apiConfig := openai.DefaultConfig(cfg.GroqAPIKey)
	apiConfig.BaseURL = cfg.GroqBaseURL

	return &Client{
		api:   openai.NewClientWithConfig(apiConfig),
		model: cfg.Model,
	}
}

// Transcribe uploads the audio file and returns the parsed transcript.
// Top-level word timestamps are nested into their containing segments so
// the client can render clickable words; segments without any overlapping
// words keep an empty slice.
func (c *Client) Transcribe(ctx context.Context, audioPath string) (domain.Transcript, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularitySegment,
			openai.TranscriptionTimestampGranularityWord,
		},
	})
	if err != nil {
		return domain.Transcript{}, &domain.PipelineError{
			Kind:    domain.FailureTranscriptionFailed,
			Message: remoteErrorMessage(err),
			Err:     err,
		}
	}

	return mapResponse(resp), nil
}

// mapResponse converts the verbose API payload into the domain transcript.
func mapResponse(resp openai.AudioResponse) domain.Transcript {
	words := make([]domain.Word, 0, len(resp.Words))
	for _, w := range resp.Words {
		words = append(words, domain.Word{
			Word:  w.Word,
			Start: w.Start,
			End:   w.End,
		})
	}

	segments := make([]domain.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, domain.Segment{
			ID:    s.ID,
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
			Words: []domain.Word{},
		})
	}

	return domain.Transcript{
		Text:     resp.Text,
		Segments: nestWords(segments, words),
		Words:    words,
	}
}

// nestWords assigns each word to the first segment whose end time lies
// beyond the word's start. Words are expected to be chronological, so a
// single cursor walks both sequences.
func nestWords(segments []domain.Segment, words []domain.Word) []domain.Segment {
	if len(segments) == 0 {
		return segments
	}

	idx := 0
	for _, word := range words {
		for idx < len(segments)-1 && word.Start >= segments[idx].End {
			idx++
		}
		segments[idx].Words = append(segments[idx].Words, word)
	}
	return segments
}

// remoteErrorMessage extracts the remote error body when available.
func remoteErrorMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("transcription service error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	return fmt.Sprintf("transcription request failed: %v", err)
}
