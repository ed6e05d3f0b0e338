package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/vtforestry/ampchat/models"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

const embeddingModel = "text-embedding-004"

// DocumentStore wraps the vector database holding the AMP manual and related
// guidance. Retrieval, ingestion, and listing all go through it.
type DocumentStore interface {
	Retrieve(ctx context.Context, query string, nResults int) ([]models.Excerpt, error)
	Ingest(ctx context.Context, req models.IngestDocumentRequest) error
	IngestChunk(ctx context.Context, text, sourceFile, fileHash string, chunkNum int) error
	List(ctx context.Context) (*models.ListDocumentsResponse, error)
	Count(ctx context.Context) (int, error)
	DeleteBySource(ctx context.Context, sourceFile string) error
	Embed(ctx context.Context, text string) ([]float32, error)
}

// chromaStore implements DocumentStore over a Chroma collection, using the
// Gemini embedding API for both queries and ingested text.
type chromaStore struct {
	collection   chromago.Collection
	geminiClient *genai.Client
}

// NewDocumentStore creates a store backed by the given collection.
func NewDocumentStore(collection chromago.Collection, geminiClient *genai.Client) DocumentStore {
	return &chromaStore{
		collection:   collection,
		geminiClient: geminiClient,
	}
}

// Embed generates an embedding vector for the given text with Gemini.
func (s *chromaStore) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := s.geminiClient.Models.EmbedContent(ctx, embeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embedding call failed: %w", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("gemini returned an empty embedding")
	}
	return result.Embeddings[0].Values, nil
}

// Retrieve embeds the query and returns the nearest guidance excerpts.
func (s *chromaStore) Retrieve(ctx context.Context, query string, nResults int) ([]models.Excerpt, error) {
	log.Printf("STORE: Retrieving excerpts for query...")

	queryEmbedding, err := s.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query text: %w", err)
	}
	embedding := embeddings.NewEmbeddingFromFloat32(queryEmbedding)

	results, err := s.collection.Query(
		ctx,
		chromago.WithQueryEmbeddings(embedding),
		chromago.WithNResults(nResults),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chromadb: %w", err)
	}

	var excerpts []models.Excerpt
	documentGroups := results.GetDocumentsGroups()
	metadataGroups := results.GetMetadatasGroups()

	if len(documentGroups) > 0 {
		for i, doc := range documentGroups[0] {
			if doc.ContentString() == "" {
				continue
			}
			excerpt := models.Excerpt{Text: doc.ContentString(), Chunk: -1}
			if len(metadataGroups) > 0 && i < len(metadataGroups[0]) {
				metaMap := metadataToMap(metadataGroups[0][i])
				if source, ok := metaMap["source_file"].(string); ok {
					excerpt.Source = filepath.Base(source)
				} else if source, ok := metaMap["source"].(string); ok {
					excerpt.Source = source
				}
				// JSON numbers decode as float64.
				if n, ok := metaMap["chunk_num"].(float64); ok {
					excerpt.Chunk = int(n)
				}
			}
			excerpts = append(excerpts, excerpt)
		}
	}
	log.Printf("STORE: Retrieved %d excerpts", len(excerpts))
	return excerpts, nil
}

// Ingest adds a raw text snippet supplied through the API.
func (s *chromaStore) Ingest(ctx context.Context, req models.IngestDocumentRequest) error {
	log.Printf("STORE: Ingesting document snippet...")

	embeddingVector, err := s.Embed(ctx, req.Text)
	if err != nil {
		return fmt.Errorf("could not generate embedding for document: %w", err)
	}
	embedding := embeddings.NewEmbeddingFromFloat32(embeddingVector)

	metadata := chromago.NewDocumentMetadata(
		chromago.NewStringAttribute("source", "api_ingest"),
	)
	err = s.collection.Add(ctx,
		chromago.WithIDs(chromago.DocumentID(uuid.New().String())),
		chromago.WithTexts(req.Text),
		chromago.WithEmbeddings(embedding),
		chromago.WithMetadatas(metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to add record to chromadb: %w", err)
	}
	log.Printf("STORE: Successfully added document")
	return nil
}

// IngestChunk adds one chunk of an indexed source file, tagged so the indexer
// can detect changes and drop stale versions.
func (s *chromaStore) IngestChunk(ctx context.Context, text, sourceFile, fileHash string, chunkNum int) error {
	embeddingVector, err := s.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("could not embed chunk %d of %s: %w", chunkNum, sourceFile, err)
	}
	embedding := embeddings.NewEmbeddingFromFloat32(embeddingVector)

	metadata := chromago.NewDocumentMetadata(
		chromago.NewStringAttribute("source_file", sourceFile),
		chromago.NewStringAttribute("file_hash", fileHash),
		chromago.NewIntAttribute("chunk_num", int64(chunkNum)),
	)
	docID := chromago.DocumentID(fmt.Sprintf("%s-chunk%d", uuid.New().String(), chunkNum))
	err = s.collection.Add(ctx,
		chromago.WithIDs(docID),
		chromago.WithTexts(text),
		chromago.WithEmbeddings(embedding),
		chromago.WithMetadatas(metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to add chunk %d of %s to chromadb: %w", chunkNum, sourceFile, err)
	}
	return nil
}

// List retrieves every indexed entry.
func (s *chromaStore) List(ctx context.Context) (*models.ListDocumentsResponse, error) {
	log.Printf("STORE: Listing all documents...")

	results, err := s.collection.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents from chromadb: %w", err)
	}

	ids := results.GetIDs()
	documents := results.GetDocuments()
	metadatas := results.GetMetadatas()

	if len(ids) == 0 {
		log.Printf("STORE: No documents found in the collection.")
		return &models.ListDocumentsResponse{Count: 0, Documents: []models.Document{}}, nil
	}

	docs := make([]models.Document, 0, len(documents))
	for i := range documents {
		var metaMap map[string]interface{}
		if len(metadatas) > i && metadatas[i] != nil {
			metaMap = metadataToMap(metadatas[i])
		}
		docs = append(docs, models.Document{
			ID:       string(ids[i]),
			Text:     documents[i].ContentString(),
			Metadata: metaMap,
		})
	}

	log.Printf("STORE: Successfully retrieved %d documents", len(docs))
	return &models.ListDocumentsResponse{Count: len(docs), Documents: docs}, nil
}

// Count returns the number of chunks in the collection.
func (s *chromaStore) Count(ctx context.Context) (int, error) {
	count, err := s.collection.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count items in collection: %w", err)
	}
	return int(count), nil
}

// DeleteBySource removes every chunk that came from the given source file.
func (s *chromaStore) DeleteBySource(ctx context.Context, sourceFile string) error {
	where := chromago.EqString("source_file", sourceFile)
	return s.collection.Delete(ctx, chromago.WithWhereDelete(where))
}

// metadataToMap converts Chroma's DocumentMetadata into a plain map. The type
// has no public accessor for its values, so round-trip through JSON.
func metadataToMap(metadata chromago.DocumentMetadata) map[string]interface{} {
	if metadata == nil {
		return map[string]interface{}{}
	}
	jsonBytes, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("WARN: could not marshal document metadata: %v", err)
		return map[string]interface{}{}
	}
	var metaMap map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &metaMap); err != nil {
		log.Printf("WARN: could not unmarshal document metadata: %v", err)
		return map[string]interface{}{}
	}
	return metaMap
}
