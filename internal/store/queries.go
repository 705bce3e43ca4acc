package store

import (
	"fmt"
	"time"
)

// timeFormat is the timestamp layout stored in the database.
const timeFormat = "2006-01-02T15:04:05Z07:00"

// InsertEvent journals one event. A zero Timestamp is replaced by the
// current time.
func (s *Store) InsertEvent(e *Event) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO watch_events (event_type, path, detail, timestamp) VALUES (?, ?, ?, ?)`,
		e.Type, e.Path, e.Detail, ts.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("insert event for %s: %w", e.Path, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

// RecentEvents returns up to limit events, most recent first.
func (s *Store) RecentEvents(limit int) ([]*Event, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := s.db.Query(
		`SELECT id, event_type, path, detail, timestamp FROM watch_events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		var ts string
		if err := rows.Scan(&e.ID, &e.Type, &e.Path, &e.Detail, &ts); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		parsed, err := time.Parse(timeFormat, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		e.Timestamp = parsed
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// CountEvents returns the total number of journaled events.
func (s *Store) CountEvents() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM watch_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
