// ABOUTME: Tests for the vector index
// ABOUTME: Verifies replace, metadata, similarity ranking, and model checks
package sqlite

import (
	"errors"
	"math"
	"testing"

	"github.com/harper/menuchat/internal/models"
)

func testChunks() []models.Chunk {
	return []models.Chunk{
		{ChunkID: "c1", Restaurant: "Quay", Seq: 0, Content: "Restaurant Name: Quay"},
		{ChunkID: "c2", Restaurant: "Quay", Seq: 1, Content: "- Spicy Tofu ($9)"},
		{ChunkID: "c3", Restaurant: "Bresca", Seq: 0, Content: "Restaurant Name: Bresca"},
	}
}

func testVectors() [][]float64 {
	return [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.7, 0.7, 0},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewIndex(db)
}

func TestIndexReplaceAndMeta(t *testing.T) {
	ix := newTestIndex(t)

	if _, err := ix.Meta(); !errors.Is(err, ErrIndexEmpty) {
		t.Fatalf("Meta() on empty index error = %v, want ErrIndexEmpty", err)
	}

	if err := ix.Replace("all-MiniLM-L6-v2", testChunks(), testVectors()); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	meta, err := ix.Meta()
	if err != nil {
		t.Fatalf("Meta() error = %v", err)
	}
	if meta.EmbeddingModel != "all-MiniLM-L6-v2" || meta.Dimension != 3 {
		t.Errorf("Meta() = %+v", meta)
	}
	if meta.SchemaVersion != SchemaVersion || meta.BuiltAt.IsZero() {
		t.Errorf("Meta() = %+v", meta)
	}

	n, err := ix.Count()
	if err != nil || n != 3 {
		t.Errorf("Count() = %d, %v", n, err)
	}
}

func TestIndexReplaceDiscardsPrevious(t *testing.T) {
	ix := newTestIndex(t)

	if err := ix.Replace("m1", testChunks(), testVectors()); err != nil {
		t.Fatal(err)
	}
	if err := ix.Replace("m2", testChunks()[:1], [][]float64{{1, 2}}); err != nil {
		t.Fatal(err)
	}

	n, _ := ix.Count()
	if n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
	meta, _ := ix.Meta()
	if meta.EmbeddingModel != "m2" || meta.Dimension != 2 {
		t.Errorf("Meta() = %+v", meta)
	}
}

func TestIndexReplaceRejectsBadInput(t *testing.T) {
	ix := newTestIndex(t)

	if err := ix.Replace("m", testChunks(), testVectors()[:2]); err == nil {
		t.Error("Replace() expected count mismatch error")
	}

	vectors := testVectors()
	vectors[2] = []float64{1, 2}
	if err := ix.Replace("m", testChunks(), vectors); err == nil {
		t.Error("Replace() expected dimension mismatch error")
	}

	// Failed replaces roll back
	if _, err := ix.Meta(); !errors.Is(err, ErrIndexEmpty) {
		t.Errorf("Meta() error = %v, want ErrIndexEmpty after rollback", err)
	}
}

func TestIndexSearch(t *testing.T) {
	ix := newTestIndex(t)
	if err := ix.Replace("m", testChunks(), testVectors()); err != nil {
		t.Fatal(err)
	}

	results, err := ix.Search([]float64{0, 1, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Search() returned %d results, want 2", len(results))
	}
	if results[0].ChunkID != "c2" || results[0].Content != "- Spicy Tofu ($9)" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if math.Abs(results[0].SimilarityScore-1.0) > 1e-9 {
		t.Errorf("results[0] score = %v", results[0].SimilarityScore)
	}
	if results[1].ChunkID != "c3" {
		t.Errorf("results[1] = %+v", results[1])
	}
	if results[0].SimilarityScore < results[1].SimilarityScore {
		t.Error("results not sorted by similarity")
	}
}

func TestIndexSearchAllAndEmpty(t *testing.T) {
	ix := newTestIndex(t)

	results, err := ix.Search([]float64{1, 0, 0}, 4)
	if err != nil || len(results) != 0 {
		t.Errorf("Search() on empty index = %v, %v", results, err)
	}

	_ = ix.Replace("m", testChunks(), testVectors())
	results, _ = ix.Search([]float64{1, 0, 0}, 0)
	if len(results) != 3 {
		t.Errorf("Search(topK=0) returned %d results, want 3", len(results))
	}
}

func TestIndexCheckModel(t *testing.T) {
	ix := newTestIndex(t)

	if _, err := ix.CheckModel("m"); !errors.Is(err, ErrIndexEmpty) {
		t.Errorf("CheckModel() on empty index error = %v", err)
	}

	_ = ix.Replace("model-a", testChunks(), testVectors())

	if _, err := ix.CheckModel("model-a"); err != nil {
		t.Errorf("CheckModel() error = %v", err)
	}
	if _, err := ix.CheckModel("model-b"); !errors.Is(err, ErrModelMismatch) {
		t.Errorf("CheckModel() error = %v, want ErrModelMismatch", err)
	}
}

func TestIndexRestaurantsAndChunks(t *testing.T) {
	ix := newTestIndex(t)
	_ = ix.Replace("m", testChunks(), testVectors())

	restaurants, err := ix.Restaurants()
	if err != nil {
		t.Fatal(err)
	}
	want := []RestaurantSummary{{Name: "Bresca", Chunks: 1}, {Name: "Quay", Chunks: 2}}
	if len(restaurants) != len(want) {
		t.Fatalf("Restaurants() = %+v", restaurants)
	}
	for i := range want {
		if restaurants[i] != want[i] {
			t.Errorf("Restaurants()[%d] = %+v, want %+v", i, restaurants[i], want[i])
		}
	}

	chunks, err := ix.Chunks("Quay")
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 || chunks[0].Seq != 0 || chunks[1].Seq != 1 {
		t.Errorf("Chunks(Quay) = %+v", chunks)
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vector := []float64{0, -1.5, math.Pi, 1e-12}
	got := blobToVector(vectorToBlob(vector))
	for i := range vector {
		if got[i] != vector[i] {
			t.Errorf("vector[%d] = %v, want %v", i, got[i], vector[i])
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"length mismatch", []float64{1}, []float64{1, 0}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
