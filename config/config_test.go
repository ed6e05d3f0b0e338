package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DOC_STORE", "")
	t.Setenv("CHROMA_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("RELEVANCE_CHECK", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8000", cfg.ChromaURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.RelevanceCheck)
	assert.False(t, cfg.Complete())
}

func TestLoadComplete(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DOC_STORE", "amp-guidance")
	t.Setenv("RELEVANCE_CHECK", "true")

	cfg := Load()
	assert.True(t, cfg.Complete())
	assert.True(t, cfg.RelevanceCheck)
}

func TestCompleteRequiresBothValues(t *testing.T) {
	assert.False(t, Config{GeminiAPIKey: "k"}.Complete())
	assert.False(t, Config{DocStore: "s"}.Complete())
	assert.True(t, Config{GeminiAPIKey: "k", DocStore: "s"}.Complete())
}
