// ABOUTME: Knowledge-base builder: restaurant records to an embedded vector index
// ABOUTME: Renders, splits, assigns deterministic chunk IDs, embeds in batches, replaces the index
package kb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/harper/menuchat/internal/logger"
	"github.com/harper/menuchat/internal/models"
	"github.com/harper/menuchat/internal/storage/sqlite"
)

// DefaultBatchSize is how many chunks are sent per embedding request
const DefaultBatchSize = 32

// chunkNamespace scopes the name-based chunk UUIDs
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("chunks.menuchat"))

// Embedder turns texts into vectors, one per input, in input order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// BuildResult summarizes one build
type BuildResult struct {
	Restaurants int `json:"restaurants"`
	Skipped     int `json:"skipped"`
	Chunks      int `json:"chunks"`
	Dimension   int `json:"dimension"`
}

// Builder produces the vector index from scrape results
type Builder struct {
	splitter  *Splitter
	embedder  Embedder
	index     *sqlite.Index
	model     string
	batchSize int
	logger    *log.Logger
}

// Option configures a Builder
type Option func(*Builder)

// WithBatchSize sets the embedding batch size
func WithBatchSize(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// WithLogger sets the builder logger
func WithLogger(l *log.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a builder; model is recorded in the index metadata
func NewBuilder(splitter *Splitter, embedder Embedder, index *sqlite.Index, model string, opts ...Option) *Builder {
	b := &Builder{
		splitter:  splitter,
		embedder:  embedder,
		index:     index,
		model:     model,
		batchSize: DefaultBatchSize,
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Chunks renders and splits every successful record. Failure records are
// skipped. The result is a pure function of the input.
func (b *Builder) Chunks(restaurants []models.Restaurant) ([]models.Chunk, int) {
	var (
		chunks  []models.Chunk
		skipped int
	)
	for _, r := range restaurants {
		if r.Failed() {
			b.logger.Warn("skipping failed record", "name", r.Name, "error", r.Error)
			skipped++
			continue
		}
		for seq, content := range b.splitter.Split(RenderDocument(r)) {
			chunks = append(chunks, models.Chunk{
				ChunkID:    ChunkID(r.Name, seq, content),
				Restaurant: r.Name,
				Seq:        seq,
				Content:    content,
			})
		}
	}
	return chunks, skipped
}

// Build chunks the records, embeds the chunks, and replaces the index
func (b *Builder) Build(ctx context.Context, restaurants []models.Restaurant) (*BuildResult, error) {
	chunks, skipped := b.Chunks(restaurants)
	if len(chunks) == 0 {
		return nil, errors.New("no chunks to index: every record failed or the input is empty")
	}
	b.logger.Info("chunked documents", "restaurants", len(restaurants)-skipped, "chunks", len(chunks))

	vectors := make([][]float64, 0, len(chunks))
	for start := 0; start < len(chunks); start += b.batchSize {
		end := start + b.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Content)
		}

		batch, err := b.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunks %d-%d: %w", start, end-1, err)
		}
		if len(batch) != len(texts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(batch), len(texts))
		}
		vectors = append(vectors, batch...)
		b.logger.Debug("embedded batch", "from", start, "to", end-1)
	}

	if err := b.index.Replace(b.model, chunks, vectors); err != nil {
		return nil, fmt.Errorf("writing index: %w", err)
	}

	return &BuildResult{
		Restaurants: len(restaurants) - skipped,
		Skipped:     skipped,
		Chunks:      len(chunks),
		Dimension:   len(vectors[0]),
	}, nil
}

// ChunkID derives a stable UUIDv5 from the chunk's origin and content
func ChunkID(restaurant string, seq int, content string) string {
	name := restaurant + "\x00" + strconv.Itoa(seq) + "\x00" + content
	return uuid.NewSHA1(chunkNamespace, []byte(name)).String()
}
