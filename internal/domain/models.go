package domain

// TranscribeModelOption describes one selectable hosted transcription model.
type TranscribeModelOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	WordLevel   bool   `json:"wordLevel"`
	Default     bool   `json:"default"`
}
