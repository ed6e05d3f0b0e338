package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtforestry/ampchat/models"
	"github.com/vtforestry/ampchat/services"
)

type stubChatService struct {
	resp *models.ChatResponse
	err  error
}

func (s *stubChatService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	return s.resp, s.err
}

type stubStore struct {
	listResp  *models.ListDocumentsResponse
	listErr   error
	ingestErr error
}

func (s *stubStore) Retrieve(ctx context.Context, query string, nResults int) ([]models.Excerpt, error) {
	return nil, nil
}
func (s *stubStore) Ingest(ctx context.Context, req models.IngestDocumentRequest) error {
	return s.ingestErr
}
func (s *stubStore) IngestChunk(ctx context.Context, text, sourceFile, fileHash string, chunkNum int) error {
	return nil
}
func (s *stubStore) List(ctx context.Context) (*models.ListDocumentsResponse, error) {
	return s.listResp, s.listErr
}
func (s *stubStore) Count(ctx context.Context) (int, error) { return 0, nil }
func (s *stubStore) DeleteBySource(ctx context.Context, sourceFile string) error {
	return nil
}
func (s *stubStore) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, nil
}

func newTestRouter(svc services.ChatService, store services.DocumentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewChatController(svc, store)
	router := gin.New()
	router.POST("/chat", ctrl.Chat)
	router.POST("/api/v1/documents", ctrl.IngestDocument)
	router.GET("/api/v1/documents", ctrl.GetDocuments)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatEndpointSuccess(t *testing.T) {
	svc := &stubChatService{resp: &models.ChatResponse{
		Success:   true,
		Answer:    "Use a culvert sized for the stream.",
		Citations: []string{"amp-manual.pdf#7"},
	}}
	router := newTestRouter(svc, &stubStore{})

	w := postJSON(t, router, "/chat", models.ChatRequest{Message: "Do I need a culvert?", Citations: true})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Use a culvert sized for the stream.", resp.Answer)
	assert.Equal(t, []string{"amp-manual.pdf#7"}, resp.Citations)
}

func TestChatEndpointServiceError(t *testing.T) {
	svc := &stubChatService{err: services.ErrConfigurationMissing}
	router := newTestRouter(svc, &stubStore{})

	w := postJSON(t, router, "/chat", models.ChatRequest{Message: "What are the AMPs?"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, services.ConfigurationErrorReply, resp.Error)
}

func TestChatEndpointExternalFailure(t *testing.T) {
	svc := &stubChatService{err: errors.New("could not generate response from gemini: model unavailable")}
	router := newTestRouter(svc, &stubStore{})

	w := postJSON(t, router, "/chat", models.ChatRequest{Message: "What are the AMPs?"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "model unavailable")
}

func TestChatEndpointBadJSON(t *testing.T) {
	router := newTestRouter(&stubChatService{}, &stubStore{})

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestDocumentEndpoint(t *testing.T) {
	router := newTestRouter(&stubChatService{}, &stubStore{})
	w := postJSON(t, router, "/api/v1/documents", models.IngestDocumentRequest{Text: "Water bars shall be installed."})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIngestDocumentEndpointFailure(t *testing.T) {
	router := newTestRouter(&stubChatService{}, &stubStore{ingestErr: errors.New("chroma is down")})
	w := postJSON(t, router, "/api/v1/documents", models.IngestDocumentRequest{Text: "text"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetDocumentsEndpoint(t *testing.T) {
	store := &stubStore{listResp: &models.ListDocumentsResponse{
		Count:     1,
		Documents: []models.Document{{ID: "abc", Text: "Water bars shall be installed."}},
	}}
	router := newTestRouter(&stubChatService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ListDocumentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestEndpointsWithoutStore(t *testing.T) {
	// No document store configured: ingestion and listing report a server error.
	router := newTestRouter(&stubChatService{}, nil)

	w := postJSON(t, router, "/api/v1/documents", models.IngestDocumentRequest{Text: "text"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
