package main

import (
	"context"
	"log"
	"os"

	"github.com/vtforestry/ampchat/config"
	"github.com/vtforestry/ampchat/controller"
	"github.com/vtforestry/ampchat/services"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

func main() {
	cfg := config.Load()
	log.Printf("Scope vocabulary %s loaded", services.VocabularyVersion)

	// A missing credential or store id is not fatal: the server still comes up
	// and /health works, while /chat reports the configuration error.
	var (
		store       services.DocumentStore
		chatService services.ChatService
	)
	if cfg.Complete() {
		geminiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to create Gemini client: %v", err)
		}
		log.Println("Successfully connected to Google Gemini.")

		chromaClient, err := chromago.NewHTTPClient(chromago.WithBaseURL(cfg.ChromaURL))
		if err != nil {
			log.Fatalf("FATAL: Failed to create chroma client: %v", err)
		}
		defer func() {
			if err := chromaClient.Close(); err != nil {
				log.Printf("Warning: Failed to close chroma client: %v", err)
			}
		}()

		collection, err := getOrCreateCollection(chromaClient, cfg.DocStore)
		if err != nil {
			log.Fatalf("FATAL: Failed to get or create collection: %v", err)
		}

		store = services.NewDocumentStore(collection, geminiClient)
		generator := services.NewAnswerGenerator(geminiClient)
		chatService = services.NewChatService(cfg, generator, store)

		if n, err := store.Count(context.Background()); err == nil {
			log.Printf("Document store '%s' ready with %d chunks", cfg.DocStore, n)
		} else {
			log.Printf("WARN: could not count document store chunks: %v", err)
		}

		// Background indexer: sync the docs directory into the store and keep
		// watching it for changes.
		if cfg.DocsDir != "" {
			if err := services.SetupPDFLicense(os.Getenv("UNIDOC_LICENSE_KEY")); err != nil {
				log.Printf("WARN: %v. PDF indexing will fail; .txt and .md still work.", err)
			}
			indexer := services.NewDocumentIndexer(store)
			go func() {
				ctx := context.Background()
				indexer.ScanAndIndexDirectory(ctx, cfg.DocsDir)
				indexer.WatchDirectory(ctx, cfg.DocsDir)
			}()
		}
	} else {
		log.Println("WARN: GEMINI_API_KEY or DOC_STORE not set; /chat will return a configuration error.")
		chatService = services.NewChatService(cfg, nil, nil)
	}

	chatController := controller.NewChatController(chatService, store)

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "AMP Assistant API",
			"version": "1.0.0",
		})
	})

	router.POST("/chat", chatController.Chat)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/documents", chatController.IngestDocument)
		apiV1.GET("/documents", chatController.GetDocuments)
	}

	log.Printf("AMP assistant backend starting on http://localhost:%s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/health", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("FATAL: Failed to start server: %v", err)
	}
}

// getOrCreateCollection looks up the configured document-store collection,
// creating it on first run.
func getOrCreateCollection(client chromago.Client, collectionName string) (chromago.Collection, error) {
	ctx := context.Background()

	log.Printf("Getting or creating collection '%s'...", collectionName)

	collection, err := client.GetOrCreateCollection(
		ctx,
		collectionName,
		chromago.WithCollectionMetadataCreate(
			chromago.NewMetadata(
				chromago.NewStringAttribute("description", "Vermont AMP guidance documents"),
				chromago.NewStringAttribute("created_by", "ampchat"),
			),
		),
	)
	if err != nil {
		return nil, err
	}

	log.Printf("Successfully got/created collection '%s'", collectionName)
	return collection, nil
}
