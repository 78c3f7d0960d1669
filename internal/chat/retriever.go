// ABOUTME: Retrieval of the chunks most relevant to a question
// ABOUTME: VectorRetriever embeds the question and searches the SQLite index
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/menuchat/internal/kb"
	"github.com/harper/menuchat/internal/models"
	"github.com/harper/menuchat/internal/storage/sqlite"
)

// DefaultTopK is the number of chunks retrieved per question
const DefaultTopK = 4

// Retriever finds context for a question
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]models.SearchResult, error)
}

// VectorRetriever ranks indexed chunks by cosine similarity
type VectorRetriever struct {
	index    *sqlite.Index
	embedder kb.Embedder
	topK     int
}

// NewVectorRetriever checks that the index was built with model before
// returning a retriever over it
func NewVectorRetriever(index *sqlite.Index, embedder kb.Embedder, model string, topK int) (*VectorRetriever, error) {
	if _, err := index.CheckModel(model); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &VectorRetriever{index: index, embedder: embedder, topK: topK}, nil
}

// Retrieve embeds the question and returns the top-K chunks
func (r *VectorRetriever) Retrieve(ctx context.Context, question string) ([]models.SearchResult, error) {
	return r.Search(ctx, question, r.topK)
}

// Search is Retrieve with an explicit result count
func (r *VectorRetriever) Search(ctx context.Context, question string, topK int) ([]models.SearchResult, error) {
	vectors, err := r.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}
	if len(vectors) != 1 {
		return nil, errors.New("embedding question: no vector returned")
	}

	results, err := r.index.Search(vectors[0], topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	return results, nil
}
