// Package store keeps the site's privacy-conscious visitor and chat logs in
// sqlite. IP addresses arrive already hashed; nothing here sees raw IPs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

// DefaultRetention is how long visitor and chat records are kept.
const DefaultRetention = 365 * 24 * time.Hour

type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Country   string    `json:"country,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Chat struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	Country   string    `json:"country,omitempty"`
	Query     string    `json:"query"`
	Answered  bool      `json:"answered"`
	Timestamp time.Time `json:"timestamp"`
}

type Stats struct {
	TotalVisitors    int64     `json:"total_visitors"`
	UniqueVisitors   int64     `json:"unique_visitors"`
	VisitorsToday    int64     `json:"visitors_today"`
	VisitorsThisWeek int64     `json:"visitors_this_week"`
	TotalChats       int64     `json:"total_chats"`
	UnansweredChats  int64     `json:"unanswered_chats"`
	RecentVisitors   []Visitor `json:"recent_visitors"`
	RecentChats      []Chat    `json:"recent_chats"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT,
			path TEXT,
			country TEXT,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`,
		`CREATE TABLE IF NOT EXISTS chats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			country TEXT,
			query TEXT NOT NULL,
			answered INTEGER NOT NULL DEFAULT 0,
			timestamp TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS chats_timestamp ON chats (timestamp)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
	}
	return nil
}

func (s *Store) stamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func (s *Store) RecordVisit(ctx context.Context, v Visitor) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, country, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Country, s.stamp(v.Timestamp))
	if err != nil {
		return fmt.Errorf("recording visitor: %w", err)
	}
	return nil
}

func (s *Store) RecordChat(ctx context.Context, c Chat) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chats (hashed_ip, country, query, answered, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, c.HashedIP, c.Country, c.Query, c.Answered, s.stamp(c.Timestamp))
	if err != nil {
		return fmt.Errorf("recording chat: %w", err)
	}
	return nil
}

func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), COALESCE(country, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Visitor
	for rows.Next() {
		var v Visitor
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Country, &ts); err != nil {
			continue
		}
		v.Timestamp = parseStamp(ts)
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) RecentChats(ctx context.Context, limit int) ([]Chat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(country, ''), query, answered, timestamp
		FROM chats
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Chat
	for rows.Next() {
		var c Chat
		var ts string
		if err := rows.Scan(&c.ID, &c.HashedIP, &c.Country, &c.Query, &c.Answered, &ts); err != nil {
			continue
		}
		c.Timestamp = parseStamp(ts)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Stats summarises traffic for the admin dashboard.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	startOfDay := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	stats := &Stats{}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{s.stamp(startOfDay)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{s.stamp(weekAgo)}},
		{&stats.TotalChats, `SELECT COUNT(*) FROM chats`, nil},
		{&stats.UnansweredChats, `SELECT COUNT(*) FROM chats WHERE answered = 0`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, err
		}
	}

	var err error
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentChats, err = s.RecentChats(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

// Cleanup removes visitor and chat records older than retention and returns
// how many rows went.
func (s *Store) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.stamp(s.now().Add(-retention))

	var total int64
	for _, table := range []string{"visitors", "chats"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleaning %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if total > 0 {
		log.Printf("Privacy cleanup: removed %d records older than %s", total, cutoff)
	}
	return total, nil
}

func parseStamp(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
