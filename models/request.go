package models

// ChatRequest is the body of POST /chat. Citations controls whether the
// response carries source locators for grounded answers.
type ChatRequest struct {
	Message   string `json:"message"`
	Citations bool   `json:"citations,omitempty"`
}

type IngestDocumentRequest struct {
	Text string `json:"text"`
}
