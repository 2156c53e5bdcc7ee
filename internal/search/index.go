// Package search keeps a semantic index of catalog planets.
package search

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/catalog"
	"github.com/spacecanva/spacecanva/internal/embeddings"
	"github.com/spacecanva/spacecanva/internal/logging"
	"github.com/spacecanva/spacecanva/internal/progress"
)

const (
	collectionName = "exoplanets"
	exportFile     = "chromem.gob.gz"
	batchSize      = 50
	defaultLimit   = 10
)

// Index is a chromem-go collection of planet descriptions.
type Index struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	logger     *zap.Logger
}

// NewIndex creates an empty in-memory index.
func NewIndex(embedder embeddings.Embedder, logger *zap.Logger) (*Index, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &Index{db: db, collection: col, embedFunc: ef, logger: logging.OrNop(logger)}, nil
}

// Index embeds and stores planets, replacing entries with the same name.
// Planets without a name are skipped. reporter may be nil.
func (x *Index) Index(ctx context.Context, planets []catalog.Exoplanet, reporter progress.Reporter) (int, error) {
	docs := make([]chromem.Document, 0, len(planets))
	seen := make(map[string]bool, len(planets))
	for _, p := range planets {
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		docs = append(docs, chromem.Document{
			ID:       p.Name,
			Content:  Describe(p),
			Metadata: metadata(p),
		})
	}

	if reporter == nil {
		reporter = progress.Nop{}
	}
	reporter.Start(len(docs))
	defer reporter.Finish()

	x.mu.RLock()
	col := x.collection
	x.mu.RUnlock()

	for i := 0; i < len(docs); i += batchSize {
		end := min(i+batchSize, len(docs))
		if err := col.AddDocuments(ctx, docs[i:end], runtime.NumCPU()); err != nil {
			return i, fmt.Errorf("indexing planets %d-%d: %w", i, end, err)
		}
		reporter.Update(end, docs[end-1].ID)
	}

	x.logger.Info("indexed exoplanets", zap.Int("documents", len(docs)))
	return len(docs), nil
}

// Search returns up to limit planets most similar to query.
func (x *Index) Search(ctx context.Context, query string, limit int, filter *Filter) ([]Hit, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	x.mu.RLock()
	col := x.collection
	x.mu.RUnlock()

	// chromem-go requires nResults <= collection size.
	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := col.Query(ctx, query, limit, filter.where(), nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = hitFromMetadata(r.Metadata, r.Content, r.Similarity)
	}
	return hits, nil
}

// Count returns the number of indexed planets.
func (x *Index) Count() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.collection.Count()
}

// Persist writes the index to dir.
func (x *Index) Persist(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	x.mu.RLock()
	defer x.mu.RUnlock()
	if err := x.db.ExportToFile(filepath.Join(dir, exportFile), true, ""); err != nil {
		return fmt.Errorf("exporting index: %w", err)
	}
	return nil
}

// Load replaces the index with the one persisted in dir.
func (x *Index) Load(dir string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if err := x.db.ImportFromFile(filepath.Join(dir, exportFile), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}
	// Re-acquire collection reference after import.
	col := x.db.GetCollection(collectionName, x.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	x.collection = col
	return nil
}

// Exists reports whether dir holds a persisted index.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, exportFile))
	return err == nil
}
