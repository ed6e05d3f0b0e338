package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vtforestry/ampchat/models"
	"github.com/vtforestry/ampchat/services"
)

// ChatController handles the HTTP requests for the assistant. It depends on
// the ChatService for routing/generation and the DocumentStore for ingestion.
type ChatController struct {
	chatService services.ChatService
	store       services.DocumentStore
}

// NewChatController is a constructor function that creates a new ChatController.
// This is called from main.go to inject the service dependencies.
func NewChatController(chatService services.ChatService, store services.DocumentStore) *ChatController {
	return &ChatController{
		chatService: chatService,
		store:       store,
	}
}

// Chat is the Gin handler for the POST /chat endpoint. Handled messages reply
// with 200; configuration or model failures reply with 500.
func (c *ChatController) Chat(ctx *gin.Context) {
	var req models.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.ChatResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	response, err := c.chatService.Chat(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.ChatResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, response)
}

// IngestDocument is the Gin handler for the POST /api/v1/documents endpoint.
func (c *ChatController) IngestDocument(ctx *gin.Context) {
	var req models.IngestDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if c.store == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": services.ConfigurationErrorReply})
		return
	}

	if err := c.store.Ingest(ctx.Request.Context(), req); err != nil {
		// The store logs the underlying failure.
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest document"})
		return
	}
	ctx.JSON(http.StatusCreated, models.IngestDocumentResponse{Message: "Document ingested successfully"})
}

// GetDocuments is the Gin handler for the GET /api/v1/documents endpoint.
func (c *ChatController) GetDocuments(ctx *gin.Context) {
	if c.store == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": services.ConfigurationErrorReply})
		return
	}
	response, err := c.store.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve documents"})
		return
	}
	ctx.JSON(http.StatusOK, response)
}
