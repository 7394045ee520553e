// Package semantic keeps an embedding index over bookmarked page content
// and answers similarity queries against it.
package semantic

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/pterm/pterm"

	"github.com/nikbrunner/bms/internal/logging"
	"github.com/nikbrunner/bms/internal/storage"
)

// Persisted slot keys.
const (
	KeyDocuments = "tensor_documents"
	KeyVectors   = "tensor_vectors"
)

const (
	semanticWeight = 0.7
	keywordWeight  = 0.3
)

var (
	ErrNotInitialized    = errors.New("semantic store not initialized")
	ErrCorruptVectors    = errors.New("stored vectors do not match stored documents")
	ErrDimensionMismatch = errors.New("embedding dimension does not match the store")
)

// Hit is a document with its similarity score.
type Hit struct {
	Document
	Score float32 `json:"score"`
}

// Store holds documents and their embeddings as a row-major matrix:
// row i of vectors belongs to docs[i].
type Store struct {
	kv       storage.KV
	embedder Embedder
	logger   *pterm.Logger

	mu          sync.RWMutex
	initialized bool
	docs        []Document
	vectors     []float32
	dim         int
	byURL       map[string]bool
	keyword     bleve.Index
}

// NewStore creates a store persisted in kv. Call Initialize before use.
func NewStore(kv storage.KV, embedder Embedder, logger *pterm.Logger) *Store {
	return &Store{
		kv:       kv,
		embedder: embedder,
		logger:   logging.OrDiscard(logger),
		byURL:    map[string]bool{},
	}
}

// Initialize restores documents and vectors from the KV store. Missing
// slots leave the store empty.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docsRaw, haveDocs, err := s.kv.Get(ctx, KeyDocuments)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	vecRaw, haveVecs, err := s.kv.Get(ctx, KeyVectors)
	if err != nil {
		return fmt.Errorf("load vectors: %w", err)
	}

	var docs []Document
	var vectors []float32
	dim := 0

	if haveDocs && haveVecs {
		if err := json.Unmarshal(docsRaw, &docs); err != nil {
			return fmt.Errorf("decode documents: %w", err)
		}
		var blob []byte
		if err := json.Unmarshal(vecRaw, &blob); err != nil {
			return fmt.Errorf("decode vectors: %w", err)
		}
		vectors, dim, err = decodeMatrix(blob, len(docs))
		if err != nil {
			return err
		}
	} else if haveDocs != haveVecs {
		s.logger.Warn("semantic store is incomplete, starting empty",
			s.logger.Args("documents", haveDocs, "vectors", haveVecs))
	}

	keyword, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("create keyword index: %w", err)
	}
	for i, doc := range docs {
		if err := keyword.Index(strconv.Itoa(i), keywordDoc(doc)); err != nil {
			keyword.Close()
			return fmt.Errorf("index document %d: %w", i, err)
		}
	}

	if s.keyword != nil {
		s.keyword.Close()
	}
	s.docs = docs
	s.vectors = vectors
	s.dim = dim
	s.keyword = keyword
	s.byURL = make(map[string]bool, len(docs))
	for _, d := range docs {
		s.byURL[d.URL] = true
	}
	s.initialized = true

	s.logger.Debug("semantic store loaded", s.logger.Args("documents", len(docs), "dimension", dim))
	return nil
}

// Close releases the keyword index.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.keyword == nil {
		return nil
	}
	err := s.keyword.Close()
	s.keyword = nil
	s.initialized = false
	return err
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Dimension returns the embedding dimension, 0 while the store is empty.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim
}

// Has reports whether a document for url is stored.
func (s *Store) Has(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byURL[url]
}

// Documents returns a copy of the stored documents in insertion order.
func (s *Store) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Document(nil), s.docs...)
}

// AddDocument cleans doc.Content, embeds it and appends it to the store,
// then persists documents and vectors together. A document whose cleaned
// content is empty is ignored and reported as not added.
func (s *Store) AddDocument(ctx context.Context, doc Document) (bool, error) {
	content := CleanHTML(doc.Content)
	if content == "" {
		return false, nil
	}

	s.mu.RLock()
	ready := s.initialized
	s.mu.RUnlock()
	if !ready {
		return false, ErrNotInitialized
	}

	// Embed outside the lock; it is the slow part.
	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return false, fmt.Errorf("embed %s: %w", doc.URL, err)
	}
	if len(embedding) == 0 {
		return false, ErrEmptyEmbedding
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dim != 0 && len(embedding) != s.dim {
		return false, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(embedding), s.dim)
	}

	doc.Content = content
	if doc.Timestamp == 0 {
		doc.Timestamp = time.Now().UnixMilli()
	}

	docs := append(append([]Document(nil), s.docs...), doc)
	vectors := make([]float32, len(s.vectors)+len(embedding))
	copy(vectors, s.vectors)
	copy(vectors[len(s.vectors):], embedding)

	if err := s.persist(ctx, docs, vectors); err != nil {
		return false, err
	}

	id := strconv.Itoa(len(docs) - 1)
	if err := s.keyword.Index(id, keywordDoc(doc)); err != nil {
		s.logger.Warn("keyword index update failed", s.logger.Args("url", doc.URL, "error", err.Error()))
	}

	s.docs = docs
	s.vectors = vectors
	s.dim = len(embedding)
	s.byURL[doc.URL] = true
	return true, nil
}

func (s *Store) persist(ctx context.Context, docs []Document, vectors []float32) error {
	docsJSON, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	vecJSON, err := json.Marshal(encodeMatrix(vectors))
	if err != nil {
		return fmt.Errorf("encode vectors: %w", err)
	}
	if err := s.kv.SetMany(ctx, map[string][]byte{
		KeyDocuments: docsJSON,
		KeyVectors:   vecJSON,
	}); err != nil {
		return fmt.Errorf("persist semantic store: %w", err)
	}
	return nil
}

// Search returns the k documents most similar to query by cosine similarity.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	scores, err := s.semanticScores(ctx, query)
	if err != nil || scores == nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topK(scores, k), nil
}

// HybridSearch blends cosine similarity with a normalized keyword score
// from the full-text index: 0.7 semantic, 0.3 keyword.
func (s *Store) HybridSearch(ctx context.Context, query string, k int) ([]Hit, error) {
	scores, err := s.semanticScores(ctx, query)
	if err != nil || scores == nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	keyword, err := s.keywordScores(ctx, query)
	if err != nil {
		return nil, err
	}
	for i := range scores {
		scores[i] = semanticWeight*scores[i] + keywordWeight*keyword[i]
	}
	return s.topK(scores, k), nil
}

// semanticScores embeds query and scores every row. It returns nil scores
// when the store holds no vectors.
func (s *Store) semanticScores(ctx context.Context, query string) ([]float32, error) {
	s.mu.RLock()
	ready, empty := s.initialized, len(s.docs) == 0
	s.mu.RUnlock()
	if !ready {
		return nil, ErrNotInitialized
	}
	if empty {
		return nil, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(queryVec) != s.dim {
		return nil, fmt.Errorf("%w: query has %d, store has %d", ErrDimensionMismatch, len(queryVec), s.dim)
	}

	scores := make([]float32, len(s.docs))
	for i := range s.docs {
		scores[i] = cosineSimilarity(queryVec, s.vectors[i*s.dim:(i+1)*s.dim])
	}
	return scores, nil
}

// keywordScores returns per-document full-text scores scaled to 0-1.
// Caller holds s.mu.
func (s *Store) keywordScores(ctx context.Context, query string) ([]float32, error) {
	scores := make([]float32, len(s.docs))

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), len(s.docs), 0, false)
	res, err := s.keyword.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	if res.MaxScore <= 0 {
		return scores, nil
	}

	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil || i < 0 || i >= len(scores) {
			continue
		}
		scores[i] = float32(hit.Score / res.MaxScore)
	}
	return scores, nil
}

// topK sorts every index by score, highest first, and keeps k.
// Caller holds s.mu.
func (s *Store) topK(scores []float32, k int) []Hit {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return scores[indices[a]] > scores[indices[b]]
	})

	if k <= 0 {
		return []Hit{}
	}
	if k < len(indices) {
		indices = indices[:k]
	}

	hits := make([]Hit, len(indices))
	for n, i := range indices {
		hits[n] = Hit{Document: s.docs[i], Score: scores[i]}
	}
	return hits
}

func keywordDoc(d Document) map[string]any {
	return map[string]any{"title": d.Title, "content": d.Content, "url": d.URL}
}

func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// encodeMatrix flattens vectors into a little-endian float32 blob.
func encodeMatrix(vectors []float32) []byte {
	blob := make([]byte, 4*len(vectors))
	for i, v := range vectors {
		binary.LittleEndian.PutUint32(blob[4*i:], math.Float32bits(v))
	}
	return blob
}

// decodeMatrix reads a blob written by encodeMatrix for rows documents and
// returns the values and the row dimension.
func decodeMatrix(blob []byte, rows int) ([]float32, int, error) {
	if len(blob)%4 != 0 {
		return nil, 0, fmt.Errorf("%w: blob length %d is not a multiple of 4", ErrCorruptVectors, len(blob))
	}
	n := len(blob) / 4
	if rows == 0 {
		if n != 0 {
			return nil, 0, fmt.Errorf("%w: %d values for 0 documents", ErrCorruptVectors, n)
		}
		return nil, 0, nil
	}
	if n == 0 || n%rows != 0 {
		return nil, 0, fmt.Errorf("%w: %d values for %d documents", ErrCorruptVectors, n, rows)
	}

	vectors := make([]float32, n)
	for i := range vectors {
		vectors[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vectors, n / rows, nil
}
