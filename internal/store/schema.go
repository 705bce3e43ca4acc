package store

const schema = `
CREATE TABLE IF NOT EXISTS watch_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_type TEXT NOT NULL,
    path TEXT NOT NULL,
    detail TEXT,
    timestamp TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_watch_events_timestamp ON watch_events(timestamp);
CREATE INDEX IF NOT EXISTS idx_watch_events_path ON watch_events(path);
`
