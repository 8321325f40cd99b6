package config

import "testing"

// TestFromGetenvDefaults checks fallback values with an empty environment.
func TestFromGetenvDefaults(t *testing.T) {
	cfg, err := fromGetenv(func(string) string { return "" })
	if err != nil {
		t.Fatalf("fromGetenv() error = %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Fatalf("port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.GroqBaseURL != DefaultGroqBaseURL {
		t.Fatalf("base url = %q, want %q", cfg.GroqBaseURL, DefaultGroqBaseURL)
	}
	if cfg.Model != DefaultModel {
		t.Fatalf("model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.YtDlpPath != "yt-dlp" {
		t.Fatalf("yt-dlp path = %q, want yt-dlp", cfg.YtDlpPath)
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Fatalf("ffmpeg path = %q, want ffmpeg", cfg.FFmpegPath)
	}
	if cfg.UploadDir != DefaultUploadDir {
		t.Fatalf("upload dir = %q, want %q", cfg.UploadDir, DefaultUploadDir)
	}
	if cfg.GroqAPIKey != "" {
		t.Fatalf("api key = %q, want empty", cfg.GroqAPIKey)
	}
}

// TestFromGetenvOverrides checks every supported environment variable.
func TestFromGetenvOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":             "8090",
		"GROQ_API_KEY":     " gsk_test \n",
		"GROQ_BASE_URL":    "http://localhost:9999/v1",
		"TRANSCRIBE_MODEL": "whisper-large-v3-turbo",
		"YT_DLP_PATH":      "/opt/bin/yt-dlp",
		"FFMPEG_PATH":      "/opt/bin/ffmpeg",
		"UPLOAD_DIR":       "/var/tmp/uploads",
	}

	cfg, err := fromGetenv(func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("fromGetenv() error = %v", err)
	}

	if cfg.Port != "8090" {
		t.Fatalf("port = %q, want 8090", cfg.Port)
	}
	if cfg.GroqAPIKey != "gsk_test" {
		t.Fatalf("api key = %q, want trimmed gsk_test", cfg.GroqAPIKey)
	}
	if cfg.Model != "whisper-large-v3-turbo" {
		t.Fatalf("model = %q", cfg.Model)
	}
	if cfg.YtDlpPath != "/opt/bin/yt-dlp" {
		t.Fatalf("yt-dlp path = %q", cfg.YtDlpPath)
	}
	if cfg.UploadDir != "/var/tmp/uploads" {
		t.Fatalf("upload dir = %q", cfg.UploadDir)
	}
}

// TestFromGetenvRejectsUnknownModel checks catalog validation.
func TestFromGetenvRejectsUnknownModel(t *testing.T) {
	_, err := fromGetenv(func(key string) string {
		if key == "TRANSCRIBE_MODEL" {
			return "whisper-medium"
		}
		return ""
	})
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
}

// TestModelCatalogHasSingleDefault checks exactly one default entry exists.
func TestModelCatalogHasSingleDefault(t *testing.T) {
	defaults := 0
	for _, option := range ModelCatalog() {
		if option.Default {
			defaults++
			if option.ID != DefaultModel {
				t.Fatalf("default model = %q, want %q", option.ID, DefaultModel)
			}
		}
		if !IsKnownModel(option.ID) {
			t.Fatalf("catalog entry %q not recognised by IsKnownModel", option.ID)
		}
	}
	if defaults != 1 {
		t.Fatalf("default entries = %d, want 1", defaults)
	}
}
