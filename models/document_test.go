package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerptLocator(t *testing.T) {
	assert.Equal(t, "amp-manual.pdf#3", Excerpt{Source: "amp-manual.pdf", Chunk: 3}.Locator())
	assert.Equal(t, "fact-sheet.md#0", Excerpt{Source: "fact-sheet.md", Chunk: 0}.Locator())
	// Entries ingested through the API have no chunk number.
	assert.Equal(t, "api_ingest", Excerpt{Source: "api_ingest", Chunk: -1}.Locator())
	assert.Equal(t, "document-store", Excerpt{Chunk: -1}.Locator())
}
