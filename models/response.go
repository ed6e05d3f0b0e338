package models

// ChatResponse is the body of every POST /chat reply. Citations is only
// populated on grounded answers when the request asked for them.
type ChatResponse struct {
	Success   bool     `json:"success"`
	Answer    string   `json:"answer"`
	Citations []string `json:"citations,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type IngestDocumentResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ListDocumentsResponse is the structure for the response of the GET /api/v1/documents endpoint.
type ListDocumentsResponse struct {
	Count     int        `json:"count"`
	Documents []Document `json:"documents"`
}
