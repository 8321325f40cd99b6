// Command server runs the CapLearn transcription API.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"caplearn/internal/config"
	"caplearn/internal/diagnostics"
	"caplearn/internal/domain"
	"caplearn/internal/server"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	report := diagnostics.NewChecker(cfg).Run()
	for _, item := range report.Items {
		if item.Status == domain.DiagnosticStatusFail {
			log.Printf("diagnostic %s: %s (%s)", item.ID, item.Message, item.Hint)
		}
	}
	if report.HasFailures {
		log.Printf("some checks failed; requests may error until fixed")
	}

	app := server.New(cfg)
	log.Printf("listening on :%s", cfg.Port)
	if err := app.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
