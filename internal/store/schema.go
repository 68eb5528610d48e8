package store

// schema creates the artifact manifest tables.
const schema = `
-- Generated files
CREATE TABLE IF NOT EXISTS artifacts (
    path         TEXT PRIMARY KEY,
    kind         TEXT NOT NULL,
    module       TEXT NOT NULL,
    digest       TEXT NOT NULL,
    generated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_artifacts_module ON artifacts(module);

-- Source files each artifact was generated from
CREATE TABLE IF NOT EXISTS artifact_deps (
    artifact TEXT NOT NULL,
    source   TEXT NOT NULL,
    PRIMARY KEY (artifact, source),
    FOREIGN KEY (artifact) REFERENCES artifacts(path) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_artifact_deps_source ON artifact_deps(source);

-- Run metadata
CREATE TABLE IF NOT EXISTS metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
