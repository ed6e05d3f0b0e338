package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/tmc/langchaingo/textsplitter"
)

// DocumentIndexer keeps the document store in sync with a directory of
// guidance documents (the AMP manual, fact sheets, and similar).
type DocumentIndexer struct {
	store DocumentStore
}

// NewDocumentIndexer creates a new indexer over the given store.
func NewDocumentIndexer(store DocumentStore) *DocumentIndexer {
	return &DocumentIndexer{store: store}
}

// indexState holds the current hash of a file in the index.
type indexState struct {
	Hash string
}

// WatchDirectory starts a long-running process to watch for file changes in real-time.
func (s *DocumentIndexer) WatchDirectory(ctx context.Context, dirPath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("WATCHER ERROR: Failed to create file watcher: %v", err)
		return
	}
	defer watcher.Close()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSupportedFile(event.Name) {
					continue
				}

				log.Printf("WATCHER EVENT: %s", event)

				// Many editors perform a "write" by creating a temp file and
				// renaming, which can trigger multiple events. Create and
				// Write are handled the same.
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					log.Printf("WATCHER: File modified/created: %s. Re-indexing...", event.Name)
					hash, err := calculateFileHash(event.Name)
					if err != nil {
						log.Printf("WATCHER WARN: Could not hash file %s: %v", event.Name, err)
						continue
					}
					// Drop stale chunks before re-indexing.
					if err := s.store.DeleteBySource(ctx, event.Name); err != nil {
						log.Printf("WATCHER WARN: Failed to delete old records for %s: %v", event.Name, err)
					}
					if err := s.processAndEmbedFile(ctx, event.Name, hash); err != nil {
						log.Printf("WATCHER ERROR: Failed to process file %s: %v", event.Name, err)
					}
				} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					// Rename is often reported as Remove by watchers.
					log.Printf("WATCHER: File removed/renamed: %s. Removing from index...", event.Name)
					if err := s.store.DeleteBySource(ctx, event.Name); err != nil {
						log.Printf("WATCHER ERROR: Failed to delete records for %s: %v", event.Name, err)
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("WATCHER ERROR: %v", err)
			case <-ctx.Done():
				log.Println("WATCHER: Context cancelled, shutting down watcher.")
				return
			}
		}
	}()

	log.Printf("WATCHER: Watching directory: %s", dirPath)
	if err := watcher.Add(dirPath); err != nil {
		log.Printf("WATCHER ERROR: Failed to add path to watcher: %v", err)
	}

	// Block until the context is cancelled (e.g., server shutdown).
	<-ctx.Done()
}

// ScanAndIndexDirectory syncs the directory with the document store: new and
// changed files are (re)indexed, deleted files are removed from the index.
func (s *DocumentIndexer) ScanAndIndexDirectory(ctx context.Context, dirPath string) {
	log.Printf("INDEXER: Starting directory scan for: %s", dirPath)

	indexedFiles, err := s.getCurrentIndexState(ctx)
	if err != nil {
		log.Printf("INDEXER ERROR: Could not get current index state: %v", err)
		return
	}
	log.Printf("INDEXER: Found %d files currently in the index.", len(indexedFiles))

	localFiles := make(map[string]bool)
	err = filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isSupportedFile(path) {
			localFiles[path] = true
			hash, err := calculateFileHash(path)
			if err != nil {
				log.Printf("INDEXER WARN: Could not hash file %s: %v", path, err)
				return nil
			}

			if state, ok := indexedFiles[path]; ok {
				if state.Hash == hash {
					return nil // File is unchanged, skip.
				}
				log.Printf("INDEXER: File has changed: %s. Re-indexing...", path)
				if err := s.store.DeleteBySource(ctx, path); err != nil {
					log.Printf("INDEXER ERROR: Failed to delete old version of %s: %v", path, err)
					return nil
				}
			}

			log.Printf("INDEXER: Indexing new/modified file: %s", path)
			if err := s.processAndEmbedFile(ctx, path, hash); err != nil {
				log.Printf("INDEXER ERROR: Failed to process file %s: %v", path, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("INDEXER ERROR: Error walking the path %s: %v", dirPath, err)
	}

	// Handle deletions.
	for path := range indexedFiles {
		if !localFiles[path] {
			log.Printf("INDEXER: File deleted: %s. Removing from index...", path)
			if err := s.store.DeleteBySource(ctx, path); err != nil {
				log.Printf("INDEXER ERROR: Failed to delete records for %s: %v", path, err)
			}
		}
	}
	log.Println("INDEXER: Directory scan finished.")
}

func (s *DocumentIndexer) processAndEmbedFile(ctx context.Context, path, hash string) error {
	content, err := ExtractTextFromFile(path)
	if err != nil {
		return err
	}

	splitter := textsplitter.NewRecursiveCharacter(textsplitter.WithChunkSize(1000), textsplitter.WithChunkOverlap(100))
	chunks, err := splitter.SplitText(content)
	if err != nil {
		return err
	}
	log.Printf("INDEXER: Split %s into %d chunks.", path, len(chunks))

	for i, chunk := range chunks {
		if err := s.store.IngestChunk(ctx, chunk, path, hash, i); err != nil {
			return err
		}
	}
	return nil
}

func (s *DocumentIndexer) getCurrentIndexState(ctx context.Context) (map[string]indexState, error) {
	state := make(map[string]indexState)
	listing, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range listing.Documents {
		path, ok := doc.Metadata["source_file"].(string)
		if !ok {
			continue
		}
		hash, ok := doc.Metadata["file_hash"].(string)
		if !ok {
			continue
		}
		if _, exists := state[path]; !exists {
			state[path] = indexState{Hash: hash}
		}
	}
	return state, nil
}

func isSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md", ".pdf":
		return true
	default:
		return false
	}
}

func calculateFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
