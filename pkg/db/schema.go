package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// This schema pertains to the 'journaldb' component: a single string-keyed
	// table holding JSON-serialized collections and settings, mirroring the
	// key-value store the mobile application persists into.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS selah_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS kv_store (
    key VARCHAR(256) PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at REAL DEFAULT (unixepoch())
);
`
)
