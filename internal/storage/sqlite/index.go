// ABOUTME: Vector index operations over the chunks table
// ABOUTME: Stores vectors as BLOBs and ranks chunks by cosine similarity
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/harper/menuchat/internal/models"
)

const (
	metaEmbeddingModel = "embedding_model"
	metaDimension      = "dimension"
	metaSchemaVersion  = "schema_version"
	metaBuiltAt        = "built_at"
)

var (
	// ErrIndexEmpty is returned when the index has no build metadata
	ErrIndexEmpty = errors.New("vector index has not been built")
	// ErrModelMismatch is returned when querying with a different embedding model
	ErrModelMismatch = errors.New("embedding model mismatch")
)

// Meta describes how an index was built
type Meta struct {
	EmbeddingModel string
	Dimension      int
	SchemaVersion  int
	BuiltAt        time.Time
}

// RestaurantSummary is a restaurant present in the index with its chunk count
type RestaurantSummary struct {
	Name   string `json:"name"`
	Chunks int    `json:"chunks"`
}

// Index handles chunk and vector persistence
type Index struct {
	db *DB
}

// NewIndex creates a new Index
func NewIndex(db *DB) *Index {
	return &Index{db: db}
}

// Replace discards the current contents and writes chunks with their vectors
// in a single transaction. Every vector must have the same dimension.
func (ix *Index) Replace(model string, chunks []models.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}

	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM chunks"); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM meta"); err != nil {
		return fmt.Errorf("failed to clear meta: %w", err)
	}

	now := time.Now().UTC()
	meta := map[string]string{
		metaEmbeddingModel: model,
		metaDimension:      strconv.Itoa(dim),
		metaSchemaVersion:  strconv.Itoa(SchemaVersion),
		metaBuiltAt:        now.Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("failed to write meta %s: %w", k, err)
		}
	}

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (chunk_id, restaurant, seq, content, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			restaurant = excluded.restaurant,
			seq = excluded.seq,
			content = excluded.content,
			vector = excluded.vector
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, c := range chunks {
		emb := models.Embedding{ChunkID: c.ChunkID, Vector: vectors[i]}
		if err := emb.ValidateDimension(dim); err != nil {
			return fmt.Errorf("chunk %s: %w", c.ChunkID, err)
		}
		if _, err := stmt.Exec(c.ChunkID, c.Restaurant, c.Seq, c.Content, vectorToBlob(vectors[i]), now); err != nil {
			return fmt.Errorf("failed to save chunk %s: %w", c.ChunkID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index: %w", err)
	}
	return nil
}

// Meta returns the build metadata, or ErrIndexEmpty if none was written
func (ix *Index) Meta() (*Meta, error) {
	rows, err := ix.db.Query("SELECT key, value FROM meta")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	model, ok := values[metaEmbeddingModel]
	if !ok {
		return nil, ErrIndexEmpty
	}

	meta := &Meta{EmbeddingModel: model}
	meta.Dimension, _ = strconv.Atoi(values[metaDimension])
	meta.SchemaVersion, _ = strconv.Atoi(values[metaSchemaVersion])
	meta.BuiltAt, _ = time.Parse(time.RFC3339, values[metaBuiltAt])
	return meta, nil
}

// CheckModel verifies the index was built with the given embedding model
func (ix *Index) CheckModel(model string) (*Meta, error) {
	meta, err := ix.Meta()
	if err != nil {
		return nil, err
	}
	if meta.EmbeddingModel != model {
		return nil, fmt.Errorf("%w: index built with %q, querying with %q", ErrModelMismatch, meta.EmbeddingModel, model)
	}
	return meta, nil
}

// Search returns the topK chunks most similar to the query vector. Ties keep
// restaurant and sequence order. A non-positive topK returns every chunk.
func (ix *Index) Search(queryVector []float64, topK int) ([]models.SearchResult, error) {
	rows, err := ix.db.Query(`
		SELECT chunk_id, restaurant, seq, content, vector
		FROM chunks
		ORDER BY restaurant ASC, seq ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []models.SearchResult
	for rows.Next() {
		var (
			c    models.Chunk
			blob []byte
		)
		if err := rows.Scan(&c.ChunkID, &c.Restaurant, &c.Seq, &c.Content, &blob); err != nil {
			return nil, err
		}
		results = append(results, models.SearchResult{
			Chunk:           c,
			SimilarityScore: CosineSimilarity(queryVector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SimilarityScore > results[j].SimilarityScore
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Chunks lists stored chunks in restaurant and sequence order; an empty
// restaurant name lists every chunk
func (ix *Index) Chunks(restaurant string) ([]models.Chunk, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if restaurant == "" {
		rows, err = ix.db.Query("SELECT chunk_id, restaurant, seq, content FROM chunks ORDER BY restaurant ASC, seq ASC")
	} else {
		rows, err = ix.db.Query("SELECT chunk_id, restaurant, seq, content FROM chunks WHERE restaurant = ? ORDER BY seq ASC", restaurant)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.Chunk
	for rows.Next() {
		var c models.Chunk
		if err := rows.Scan(&c.ChunkID, &c.Restaurant, &c.Seq, &c.Content); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// Restaurants lists the restaurants in the index with their chunk counts
func (ix *Index) Restaurants() ([]RestaurantSummary, error) {
	rows, err := ix.db.Query(`
		SELECT restaurant, COUNT(*)
		FROM chunks
		GROUP BY restaurant
		ORDER BY restaurant ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RestaurantSummary
	for rows.Next() {
		var r RestaurantSummary
		if err := rows.Scan(&r.Name, &r.Chunks); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored chunks
func (ix *Index) Count() (int, error) {
	var n int
	err := ix.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&n)
	return n, err
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
