// ABOUTME: Chunk represents an overlapping window of a restaurant document
// ABOUTME: Carries the source restaurant name as retrieval metadata
package models

// Chunk is the unit of retrieval stored in the vector index
type Chunk struct {
	ChunkID    string `json:"chunk_id"`
	Restaurant string `json:"restaurant"`
	Seq        int    `json:"seq"`
	Content    string `json:"content"`
}
