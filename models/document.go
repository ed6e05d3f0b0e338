package models

import "strconv"

// Document represents a single indexed entry retrieved from the vector database.
type Document struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Excerpt is a retrieved chunk of guidance text together with its origin,
// used both to ground the model's answer and to build citation locators.
type Excerpt struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Chunk  int    `json:"chunk"`
}

// Locator renders the excerpt's origin as a citation string, e.g. "amp-manual.pdf#3".
func (e Excerpt) Locator() string {
	if e.Source == "" {
		return "document-store"
	}
	if e.Chunk < 0 {
		return e.Source
	}
	return e.Source + "#" + strconv.Itoa(e.Chunk)
}
