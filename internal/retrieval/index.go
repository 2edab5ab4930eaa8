// Package retrieval implements the namespaced semantic search indices used
// for assignee matching and grounded question answering. Two independent
// instances exist (team directory, meeting history); a query against one must
// never return documents from the other.
package retrieval

import (
	"context"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/team-assistant/errors"
	"github.com/johnquangdev/team-assistant/internal/domain/entities"
)

// Namespace isolates one document collection
type Namespace string

const (
	NamespaceTeamDirectory  Namespace = "team_directory"
	NamespaceMeetingHistory Namespace = "meeting_history"
)

// Document is one indexed text with its metadata
type Document struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Result is one ranked query hit
type Result struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// Embedder turns texts into vectors. The same embedder must be used at
// insert and query time for scores to be comparable.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type indexEntry struct {
	doc    Document
	vector []float32
	order  int
}

// Index is an in-memory vector index over one namespace. Insertions are
// serialized under a write lock; queries run concurrently.
type Index struct {
	ns       Namespace
	embedder Embedder
	logger   *zap.Logger

	mu      sync.RWMutex
	entries []indexEntry
}

// NewIndex creates an empty index for the given namespace
func NewIndex(ns Namespace, embedder Embedder, logger *zap.Logger) *Index {
	return &Index{
		ns:       ns,
		embedder: embedder,
		logger:   logger,
	}
}

// Namespace returns the namespace this index serves
func (ix *Index) Namespace() Namespace {
	return ix.ns
}

// Len returns the number of indexed documents
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Insert embeds and stores one document, returning its position
func (ix *Index) Insert(ctx context.Context, doc Document) (int, error) {
	ids, err := ix.BulkInsert(ctx, []Document{doc})
	if err != nil {
		return 0, err
	}
	return ids[len(ids)-1], nil
}

// BulkInsert embeds and stores documents in one batch, returning their
// positions. Used at bootstrap; also the path for incremental inserts.
func (ix *Index) BulkInsert(ctx context.Context, docs []Document) ([]int, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		if doc.Text == "" {
			return nil, entities.ErrEmptyDocument
		}
		texts[i] = doc.Text
	}

	vectors, err := ix.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ids := make([]int, len(docs))
	for i, doc := range docs {
		order := len(ix.entries)
		ix.entries = append(ix.entries, indexEntry{
			doc:    doc,
			vector: normalize(vectors[i]),
			order:  order,
		})
		ids[i] = order
	}

	if ix.logger != nil {
		ix.logger.Info("📚 Documents indexed",
			zap.String("namespace", string(ix.ns)),
			zap.Int("count", len(docs)),
			zap.Int("total", len(ix.entries)),
		)
	}
	return ids, nil
}

// Query returns the top-k documents for the text, ranked descending by
// cosine similarity with ties broken by insertion order (earlier wins).
// The caller states which namespace it expects; a mismatch is a programming
// error and fails fast.
func (ix *Index) Query(ctx context.Context, ns Namespace, text string, k int) ([]Result, error) {
	if ns != ix.ns {
		return nil, apperrors.ErrIndexMismatch(string(ix.ns), string(ns))
	}
	if k <= 0 {
		return nil, nil
	}

	vectors, err := ix.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	query := normalize(vectors[0])

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]Result, 0, len(ix.entries))
	orders := make(map[string]int, len(ix.entries))
	for _, e := range ix.entries {
		results = append(results, Result{Document: e.doc, Score: dot(query, e.vector)})
		orders[e.doc.ID] = e.order
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return orders[results[i].Document.ID] < orders[results[j].Document.ID]
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
