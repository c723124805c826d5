package index

// SchemaVersion identifies the current index layout. A version mismatch
// on open means the database was written by an incompatible build and
// must be rebuilt.
const SchemaVersion = 1

// Schema creates the index tables. Group labels live in a column named
// "labels" because GROUPS is a reserved word in SQLite's window
// function syntax.
const Schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	path TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	labels TEXT NOT NULL DEFAULT '[]',
	ingredients INTEGER NOT NULL DEFAULT 0,
	steps INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_recipes_title ON recipes(title);

CREATE TABLE IF NOT EXISTS schema_info (
	version INTEGER NOT NULL
);
`

// InsertSchemaVersion records the schema version on first open.
const InsertSchemaVersion = `
INSERT INTO schema_info (version)
SELECT ? WHERE NOT EXISTS (SELECT 1 FROM schema_info);
`

// GetSchemaVersion reads the recorded schema version.
const GetSchemaVersion = `SELECT version FROM schema_info LIMIT 1;`
