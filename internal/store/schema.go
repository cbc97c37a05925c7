package store

// Staging schema: one row per record, the pruned document held as JSON.
// created_at is written once on insert; updated_at refreshes on every
// upsert, mirroring the document-database contract.
const stageSchemaV1 = `
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS authors (
  id TEXT PRIMARY KEY,
  document TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS plays (
  play_id TEXT PRIMARY KEY,
  document TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_authors_updated_at ON authors(updated_at);
CREATE INDEX IF NOT EXISTS idx_plays_updated_at ON plays(updated_at);
`

const stageSchemaVersion = 1
