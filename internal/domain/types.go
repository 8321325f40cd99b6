package domain

// SourceKind identifies how the video for a job was obtained.
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourceURL    SourceKind = "url"
)

// JobStatus tracks each pipeline stage for a single subtitle job.
type JobStatus string

const (
	JobStatusAcquiring    JobStatus = "acquiring"
	JobStatusExtracting   JobStatus = "extracting"
	JobStatusTranscribing JobStatus = "transcribing"
	JobStatusDone         JobStatus = "done"
	JobStatusFailed       JobStatus = "failed"
)

// Word is a single transcribed token with its own timestamps.
// Invariant: Start <= End. Words are chronologically ordered and expected
// to fall inside their parent segment's time range, but the upstream
// service does not guarantee the nesting.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a contiguous span of transcript text. Invariant: Start <= End.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words"`
}

// Transcript is the value returned by the transcription client,
// immutable once received. Words holds the top-level word timeline when
// the upstream response does not nest words inside segments.
type Transcript struct {
	Text     string
	Segments []Segment
	Words    []Word
}

// SourceInfo describes the remote origin of a URL-sourced video.
type SourceInfo struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	VideoID string `json:"videoId"`
}

// FormattedSubtitles is the client-facing projection of a Transcript.
// SourceInfo is set only when the video came from a remote URL.
type FormattedSubtitles struct {
	Text       string      `json:"text"`
	Segments   []Segment   `json:"segments"`
	SourceInfo *SourceInfo `json:"sourceInfo,omitempty"`
}
