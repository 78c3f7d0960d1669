// ABOUTME: End-to-end retrieval over a real in-memory index
// ABOUTME: A hashed bag-of-words embedder stands in for the embedding service
package chat

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"testing"
	"unicode"

	"github.com/harper/menuchat/internal/kb"
	"github.com/harper/menuchat/internal/models"
	"github.com/harper/menuchat/internal/storage/sqlite"
)

const bagDimension = 512

type bagOfWords struct{}

func (bagOfWords) Embed(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		v := make([]float64, bagDimension)
		words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, w := range words {
			h := fnv.New32a()
			_, _ = h.Write([]byte(w))
			v[h.Sum32()%bagDimension]++
		}
		out = append(out, v)
	}
	return out, nil
}

func buildIndex(t *testing.T, model string) *sqlite.Index {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	index := sqlite.NewIndex(db)

	records := []models.Restaurant{
		models.NewRestaurant("Restaurant-X", "https://x.example", "X", []models.MenuItem{
			{Item: "Spicy Tofu ($9.00)", Price: "$9.00", Description: "Crispy tofu tossed in a spicy chili glaze", Spicy: true},
		}, models.NewContactInfo()),
		models.NewRestaurant("Bland Diner", "https://bland.example", "Bland", []models.MenuItem{
			{Item: "Plain Rice", Price: "$3", Description: "Steamed white rice"},
			{Item: "Boiled Potatoes", Price: "$4", Description: "Lightly salted"},
		}, models.NewContactInfo()),
	}

	splitter, err := kb.NewSplitter(kb.DefaultChunkSize, kb.DefaultChunkOverlap)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := kb.NewBuilder(splitter, bagOfWords{}, index, model).Build(context.Background(), records); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return index
}

func TestVectorRetriever_SurfacesSpicyItem(t *testing.T) {
	index := buildIndex(t, "bag-of-words")
	retriever, err := NewVectorRetriever(index, bagOfWords{}, "bag-of-words", 1)
	if err != nil {
		t.Fatalf("NewVectorRetriever() error = %v", err)
	}

	results, err := retriever.Retrieve(context.Background(), "What spicy items does Restaurant-X have?")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Restaurant != "Restaurant-X" || !strings.Contains(JoinContext(results), "Spicy Tofu") {
		t.Errorf("top result = %+v", results[0])
	}
}

func TestVectorRetriever_DefaultTopK(t *testing.T) {
	index := buildIndex(t, "bag-of-words")
	retriever, err := NewVectorRetriever(index, bagOfWords{}, "bag-of-words", 0)
	if err != nil {
		t.Fatal(err)
	}

	results, err := retriever.Retrieve(context.Background(), "rice")
	if err != nil {
		t.Fatal(err)
	}
	// Only two chunks exist, fewer than the default of four
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestVectorRetriever_SearchOverridesTopK(t *testing.T) {
	index := buildIndex(t, "bag-of-words")
	retriever, err := NewVectorRetriever(index, bagOfWords{}, "bag-of-words", 1)
	if err != nil {
		t.Fatal(err)
	}

	results, err := retriever.Search(context.Background(), "rice", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestNewVectorRetriever_RejectsModelMismatch(t *testing.T) {
	index := buildIndex(t, "bag-of-words")

	_, err := NewVectorRetriever(index, bagOfWords{}, "sentence-transformers/all-MiniLM-L6-v2", 4)
	if !errors.Is(err, sqlite.ErrModelMismatch) {
		t.Errorf("error = %v, want ErrModelMismatch", err)
	}
}

func TestServiceAsk_EndToEnd(t *testing.T) {
	index := buildIndex(t, "bag-of-words")
	retriever, err := NewVectorRetriever(index, bagOfWords{}, "bag-of-words", DefaultTopK)
	if err != nil {
		t.Fatal(err)
	}
	gen := &fakeGenerator{answer: "Restaurant-X has Spicy Tofu."}
	svc := NewService(retriever, gen, nil)

	answer, err := svc.Ask(context.Background(), NewSession(), "What spicy items does Restaurant-X have?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer.Sources[0].Restaurant != "Restaurant-X" {
		t.Errorf("first source = %s", answer.Sources[0].Restaurant)
	}
	if !strings.Contains(gen.prompts[0], "Spicy Tofu ($9.00)") {
		t.Error("prompt context missing the spicy item")
	}
}
