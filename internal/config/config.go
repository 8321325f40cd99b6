package config

import (
	"fmt"
	"os"
	"strings"
)

// Hard limits mirroring the caps passed to the downloader; uploads share
// the same size ceiling.
const (
	MaxMediaBytes      int64 = 100 << 20
	MaxRemoteDuration        = 1800
	DefaultPort              = "3000"
	DefaultGroqBaseURL       = "https://api.groq.com/openai/v1"
	DefaultModel             = "whisper-large-v3"
	DefaultUploadDir         = "uploads"
)

// Config contains environment-derived runtime configuration. It is
// resolved once at startup and injected into every component; no package
// reads the environment on its own.
type Config struct {
	Port        string
	GroqAPIKey  string
	GroqBaseURL string
	Model       string
	YtDlpPath   string
	FFmpegPath  string
	UploadDir   string
}

// FromEnv builds configuration from process environment variables,
// applying defaults for everything except the API credential.
func FromEnv() (Config, error) {
	return fromGetenv(os.Getenv)
}

// fromGetenv resolves configuration through an injectable lookup.
func fromGetenv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        firstNonEmpty(getenv("PORT"), DefaultPort),
		GroqAPIKey:  strings.TrimSpace(getenv("GROQ_API_KEY")),
		GroqBaseURL: firstNonEmpty(getenv("GROQ_BASE_URL"), DefaultGroqBaseURL),
		Model:       firstNonEmpty(getenv("TRANSCRIBE_MODEL"), DefaultModel),
		YtDlpPath:   firstNonEmpty(getenv("YT_DLP_PATH"), "yt-dlp"),
		FFmpegPath:  firstNonEmpty(getenv("FFMPEG_PATH"), "ffmpeg"),
		UploadDir:   firstNonEmpty(getenv("UPLOAD_DIR"), DefaultUploadDir),
	}

	if !IsKnownModel(cfg.Model) {
		return Config{}, fmt.Errorf("unknown transcription model: %s", cfg.Model)
	}

	return cfg, nil
}

// firstNonEmpty returns the first trimmed non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
