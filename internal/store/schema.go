package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS payloads (
    ref          TEXT PRIMARY KEY,
    body         BLOB NOT NULL,
    fetched_at   TEXT NOT NULL
);
`
