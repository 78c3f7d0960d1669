// ABOUTME: Export of the indexed chunks for inspection
// ABOUTME: Supports YAML and Markdown formats; vectors are left out
package sqlite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportData is the exportable view of an index
type ExportData struct {
	Version        string             `yaml:"version" json:"version"`
	ExportedAt     string             `yaml:"exported_at" json:"exported_at"`
	Tool           string             `yaml:"tool" json:"tool"`
	EmbeddingModel string             `yaml:"embedding_model" json:"embedding_model"`
	Dimension      int                `yaml:"dimension" json:"dimension"`
	BuiltAt        string             `yaml:"built_at,omitempty" json:"built_at,omitempty"`
	Restaurants    []ExportRestaurant `yaml:"restaurants" json:"restaurants"`
}

// ExportRestaurant groups the chunks of one restaurant
type ExportRestaurant struct {
	Name   string        `yaml:"name" json:"name"`
	Chunks []ExportChunk `yaml:"chunks" json:"chunks"`
}

// ExportChunk is one chunk without its vector
type ExportChunk struct {
	ChunkID string `yaml:"chunk_id" json:"chunk_id"`
	Seq     int    `yaml:"seq" json:"seq"`
	Content string `yaml:"content" json:"content"`
}

// Export collects the index metadata and every chunk
func (ix *Index) Export() (*ExportData, error) {
	data := &ExportData{
		Version:     "1.0",
		ExportedAt:  time.Now().Format(time.RFC3339),
		Tool:        "menuchat",
		Restaurants: []ExportRestaurant{},
	}

	meta, err := ix.Meta()
	if err != nil && !errors.Is(err, ErrIndexEmpty) {
		return nil, fmt.Errorf("failed to read index meta: %w", err)
	}
	if meta != nil {
		data.EmbeddingModel = meta.EmbeddingModel
		data.Dimension = meta.Dimension
		if !meta.BuiltAt.IsZero() {
			data.BuiltAt = meta.BuiltAt.Format(time.RFC3339)
		}
	}

	chunks, err := ix.Chunks("")
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}

	for _, c := range chunks {
		n := len(data.Restaurants)
		if n == 0 || data.Restaurants[n-1].Name != c.Restaurant {
			data.Restaurants = append(data.Restaurants, ExportRestaurant{Name: c.Restaurant})
			n++
		}
		data.Restaurants[n-1].Chunks = append(data.Restaurants[n-1].Chunks, ExportChunk{
			ChunkID: c.ChunkID,
			Seq:     c.Seq,
			Content: c.Content,
		})
	}

	return data, nil
}

// ExportToYAML writes the export to a YAML file
func (ix *Index) ExportToYAML(outputPath string) error {
	return ix.exportToFile(outputPath, ix.WriteYAML)
}

// ExportToMarkdown writes the export as a readable Markdown document
func (ix *Index) ExportToMarkdown(outputPath string) error {
	return ix.exportToFile(outputPath, ix.WriteMarkdown)
}

// WriteYAML encodes the export as YAML to w
func (ix *Index) WriteYAML(w io.Writer) error {
	data, err := ix.Export()
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteMarkdown renders the export as Markdown to w
func (ix *Index) WriteMarkdown(w io.Writer) error {
	data, err := ix.Export()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "# Menu Index Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)
	if data.EmbeddingModel != "" {
		_, _ = fmt.Fprintf(w, "- **Embedding model:** %s\n", data.EmbeddingModel)
		_, _ = fmt.Fprintf(w, "- **Dimension:** %d\n\n", data.Dimension)
	}

	for _, r := range data.Restaurants {
		_, _ = fmt.Fprintf(w, "## %s\n\n", r.Name)
		for _, c := range r.Chunks {
			_, _ = fmt.Fprintf(w, "### Chunk %d\n\n", c.Seq)
			_, _ = fmt.Fprintf(w, "```\n%s\n```\n\n", c.Content)
		}
	}

	return nil
}

func (ix *Index) exportToFile(outputPath string, write func(io.Writer) error) error {
	file, err := createOutput(outputPath)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func createOutput(outputPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}
