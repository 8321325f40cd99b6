package config

import "caplearn/internal/domain"

var modelCatalog = []domain.TranscribeModelOption{
	{
		ID:          "whisper-large-v3",
		Name:        "Whisper Large v3",
		Description: "Highest accuracy multilingual model.",
		WordLevel:   true,
		Default:     true,
	},
	{
		ID:          "whisper-large-v3-turbo",
		Name:        "Whisper Large v3 Turbo",
		Description: "Faster pruned variant with near-large accuracy.",
		WordLevel:   true,
	},
	{
		ID:          "distil-whisper-large-v3-en",
		Name:        "Distil-Whisper (English)",
		Description: "Fastest option, English-only.",
		WordLevel:   true,
	},
}

// ModelCatalog returns the selectable hosted transcription models.
func ModelCatalog() []domain.TranscribeModelOption {
	out := make([]domain.TranscribeModelOption, len(modelCatalog))
	copy(out, modelCatalog)
	return out
}

// IsKnownModel reports whether id matches a catalog entry.
func IsKnownModel(id string) bool {
	for _, option := range modelCatalog {
		if option.ID == id {
			return true
		}
	}
	return false
}
