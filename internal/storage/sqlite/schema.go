// ABOUTME: SQLite schema for the menu vector index
// ABOUTME: Chunk text and vectors plus a key/value table of index metadata
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Index metadata (embedding model, vector dimension, build time)
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Chunks with their embedding vectors stored as little-endian float64 BLOBs
CREATE TABLE IF NOT EXISTS chunks (
    chunk_id TEXT PRIMARY KEY,
    restaurant TEXT NOT NULL,
    seq INTEGER NOT NULL,
    content TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_chunks_restaurant ON chunks(restaurant, seq);
`

// SchemaVersion is recorded in the meta table when an index is reset
const SchemaVersion = 1
