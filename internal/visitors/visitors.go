// Package visitors records privacy-conscious page visits in SQLite: IPs are
// salted and hashed before they are stored, Do Not Track is honored, and
// rows older than the retention window are purged.
package visitors

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Visitor is one recorded page view.
type Visitor struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// SectionCount is how often a section became active.
type SectionCount struct {
	Section string `json:"section"`
	Views   int64  `json:"views"`
}

// Stats summarizes the visitors table for the admin dashboard.
type Stats struct {
	TotalVisitors    int64          `json:"total_visitors"`
	UniqueVisitors   int64          `json:"unique_visitors"`
	VisitorsToday    int64          `json:"visitors_today"`
	VisitorsThisWeek int64          `json:"visitors_this_week"`
	TopSections      []SectionCount `json:"top_sections"`
	RecentVisitors   []Visitor      `json:"recent_visitors"`
}

// Tracker writes and summarizes visits.
type Tracker struct {
	db        *sql.DB
	salt      string
	retention int
	log       *zap.Logger
	now       func() time.Time
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	// a single writer keeps SQLite from returning SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database %s: %w", path, err)
	}
	return db, nil
}

// New prepares the schema and returns a Tracker. retentionMonths bounds how
// long rows are kept by Cleanup.
func New(ctx context.Context, db *sql.DB, retentionMonths int, log *zap.Logger) (*Tracker, error) {
	if log == nil {
		log = zap.NewNop()
	}
	salt, err := RandomToken()
	if err != nil {
		return nil, err
	}
	t := &Tracker{
		db:        db,
		salt:      salt,
		retention: retentionMonths,
		log:       log,
		now:       time.Now,
	}
	if err := t.migrate(ctx); err != nil {
		return nil, err
	}
	log.Info("privacy-conscious visitor tracking initialized")
	return t, nil
}

func (t *Tracker) migrate(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("creating visitors table: %w", err)
	}

	_, err = t.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS section_views (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		section TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("creating section_views table: %w", err)
	}

	if _, err := t.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp)`); err != nil {
		return fmt.Errorf("creating visitors index: %w", err)
	}
	return nil
}

// RandomToken returns 32 random bytes, hex encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP hashes ip with the tracker's salt. The same ip always hashes the
// same for the lifetime of the process.
func (t *Tracker) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + t.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Record stores a visit.
func (t *Tracker) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, t.HashIP(ip), userAgent, path, t.now().UTC())
	if err != nil {
		return fmt.Errorf("recording visitor: %w", err)
	}
	return nil
}

// RecordSection stores that section became active.
func (t *Tracker) RecordSection(ctx context.Context, section string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO section_views (section, timestamp) VALUES (?, ?)
	`, section, t.now().UTC())
	if err != nil {
		return fmt.Errorf("recording section view: %w", err)
	}
	return nil
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/favicon",
	"/privacy",
	"/metrics",
	"/healthz",
	"/events",
}

// Middleware records visits to pages in the background. Static assets,
// admin pages and requests carrying DNT: 1 are not recorded.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || c.GetHeader("DNT") == "1" || untracked(path) {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := t.Record(ctx, ip, ua, path); err != nil {
				t.log.Warn("error recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

func untracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Cleanup deletes visits and section views older than the retention window
// and returns how many visits were removed.
func (t *Tracker) Cleanup(ctx context.Context) (int64, error) {
	cutoff := t.now().UTC().AddDate(0, -t.retention, 0)

	result, err := t.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	if _, err := t.db.ExecContext(ctx, `DELETE FROM section_views WHERE timestamp < ?`, cutoff); err != nil {
		return 0, fmt.Errorf("cleaning up section views: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		t.log.Info("privacy cleanup removed old visitor records",
			zap.Int64("rows", rows),
			zap.Int("retentionMonths", t.retention),
		)
	}
	return rows, nil
}

// Stats gathers the dashboard numbers.
func (t *Tracker) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := t.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.AddDate(0, 0, -7)}, &stats.VisitorsThisWeek},
	}
	for _, q := range counts {
		if err := t.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("querying stats: %w", err)
		}
	}

	rows, err := t.db.QueryContext(ctx, `
		SELECT section, COUNT(*) AS views
		FROM section_views
		GROUP BY section
		ORDER BY views DESC, section ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("querying section views: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc SectionCount
		if err := rows.Scan(&sc.Section, &sc.Views); err != nil {
			return nil, fmt.Errorf("scanning section views: %w", err)
		}
		stats.TopSections = append(stats.TopSections, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading section views: %w", err)
	}

	stats.RecentVisitors, err = t.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Recent returns the latest visits, newest first.
func (t *Tracker) Recent(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var visitors []Visitor
	for rows.Next() {
		var v Visitor
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading visitors: %w", err)
	}
	return visitors, nil
}

// DeleteAll removes every recorded visit and section view.
func (t *Tracker) DeleteAll(ctx context.Context) (int64, error) {
	result, err := t.db.ExecContext(ctx, `DELETE FROM visitors`)
	if err != nil {
		return 0, fmt.Errorf("deleting visitor data: %w", err)
	}
	if _, err := t.db.ExecContext(ctx, `DELETE FROM section_views`); err != nil {
		return 0, fmt.Errorf("deleting section views: %w", err)
	}
	rows, _ := result.RowsAffected()
	t.log.Info("all visitor data deleted", zap.Int64("rows", rows))
	return rows, nil
}
