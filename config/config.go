package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config captures the environment once at startup. It is immutable after Load
// and passed explicitly into the services that need it; nothing reads the
// environment after process start.
type Config struct {
	GeminiAPIKey   string // GEMINI_API_KEY: credential for the hosted model API
	DocStore       string // DOC_STORE: name of the Chroma collection holding the guidance documents
	ChromaURL      string // CHROMA_URL: base URL of the Chroma server (default http://localhost:8000)
	DocsDir        string // DOCS_DIR: optional directory of source documents to index and watch
	RelevanceCheck bool   // RELEVANCE_CHECK: enable the retrieval-sufficiency pre-check before answering
	Port           string // PORT: HTTP listen port (default 8080)
}

// Load reads .env (if present) and the process environment into a Config.
// Missing credentials are not fatal here; the chat service reports them
// per-request so the health endpoint stays useful.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := Config{
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		DocStore:       os.Getenv("DOC_STORE"),
		ChromaURL:      os.Getenv("CHROMA_URL"),
		DocsDir:        os.Getenv("DOCS_DIR"),
		RelevanceCheck: os.Getenv("RELEVANCE_CHECK") == "true",
		Port:           os.Getenv("PORT"),
	}
	if cfg.ChromaURL == "" {
		cfg.ChromaURL = "http://localhost:8000"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	return cfg
}

// Complete reports whether the credential and document-store identifier the
// grounded answer path requires are both present.
func (c Config) Complete() bool {
	return c.GeminiAPIKey != "" && c.DocStore != ""
}
