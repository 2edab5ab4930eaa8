package retrieval

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// EmbeddingCache stores serialized vectors keyed by model+text digest
type EmbeddingCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
}

// CachedEmbedder wraps an Embedder with a cache and transient-failure
// retries. Schema-level failures are not retried anywhere; this only covers
// the network call to the embeddings provider.
type CachedEmbedder struct {
	inner  Embedder
	cache  EmbeddingCache
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmbedder wraps inner with cache lookups under the given model key
func NewCachedEmbedder(inner Embedder, cache EmbeddingCache, model string, ttl time.Duration, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		inner:  inner,
		cache:  cache,
		model:  model,
		ttl:    ttl,
		logger: logger,
	}
}

// Embed implements Embedder. Cache hits are served directly; misses are
// embedded in one batch and written back.
func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	missIdx := make([]int, 0, len(texts))
	missTexts := make([]string, 0, len(texts))

	for i, text := range texts {
		if cached, ok := e.lookup(ctx, text); ok {
			vectors[i] = cached
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) == 0 {
		return vectors, nil
	}

	var fresh [][]float32
	embedFn := func() error {
		var err error
		fresh, err = e.inner.Embed(ctx, missTexts)
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxElapsedTime = 20 * time.Second

	if err := backoff.Retry(embedFn, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to embed %d texts: %w", len(missTexts), err)
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d inputs", len(fresh), len(missTexts))
	}

	for j, i := range missIdx {
		vectors[i] = fresh[j]
		e.store(ctx, texts[i], fresh[j])
	}
	return vectors, nil
}

func (e *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "emb:" + e.model + ":" + hex.EncodeToString(sum[:])
}

func (e *CachedEmbedder) lookup(ctx context.Context, text string) ([]float32, bool) {
	if e.cache == nil {
		return nil, false
	}
	raw, ok := e.cache.Get(ctx, e.cacheKey(text))
	if !ok {
		return nil, false
	}
	var vector []float32
	if err := json.Unmarshal([]byte(raw), &vector); err != nil {
		if e.logger != nil {
			e.logger.Warn("⚠️ Dropping corrupt cached embedding", zap.Error(err))
		}
		return nil, false
	}
	return vector, true
}

func (e *CachedEmbedder) store(ctx context.Context, text string, vector []float32) {
	if e.cache == nil {
		return
	}
	raw, err := json.Marshal(vector)
	if err != nil {
		return
	}
	e.cache.Set(ctx, e.cacheKey(text), string(raw), e.ttl)
}
