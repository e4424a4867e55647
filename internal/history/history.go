// Package history keeps an append-only review log in a local sqlite
// database. The log feeds day-level statistics that the deck snapshot
// alone cannot answer, like how many reviews happened on a given day.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB wraps the review log database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to
// date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Review is one logged card review.
type Review struct {
	CardID     string
	DeckID     string
	Grade      int
	Correct    bool
	ReviewedAt time.Time
}

// Insert appends a review to the log.
func (db *DB) Insert(r Review) error {
	_, err := db.conn.Exec(`
		INSERT INTO reviews (card_id, deck_id, grade, correct, reviewed_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		r.CardID,
		r.DeckID,
		r.Grade,
		r.Correct,
		r.ReviewedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert review for card %s: %w", r.CardID, err)
	}
	return nil
}

// CountForCard returns how many reviews the card has logged.
func (db *DB) CountForCard(cardID string) (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM reviews WHERE card_id = ?`, cardID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count reviews for card %s: %w", cardID, err)
	}
	return n, nil
}

// ReviewDays returns the distinct UTC days on which at least one review
// was logged, most recent first.
func (db *DB) ReviewDays() ([]time.Time, error) {
	rows, err := db.conn.Query(`
		SELECT DISTINCT date(reviewed_at) FROM reviews ORDER BY date(reviewed_at) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query review days: %w", err)
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan review day: %w", err)
		}
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("unexpected day format %q: %w", day, err)
		}
		days = append(days, t)
	}
	return days, rows.Err()
}

// DailyCounts returns review counts per UTC day for the last n days,
// oldest first. Days without reviews are omitted.
func (db *DB) DailyCounts(n int) (map[string]int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -n)
	rows, err := db.conn.Query(`
		SELECT date(reviewed_at), COUNT(*) FROM reviews
		WHERE reviewed_at >= ?
		GROUP BY date(reviewed_at)
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts[day] = count
	}
	return counts, rows.Err()
}

// StudyStreak counts consecutive UTC days with at least one review,
// ending today or yesterday.
func (db *DB) StudyStreak() (int, error) {
	days, err := db.ReviewDays()
	if err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	cursor := today
	if !days[0].Equal(cursor) {
		cursor = cursor.AddDate(0, 0, -1)
		if !days[0].Equal(cursor) {
			return 0, nil
		}
	}

	streak := 0
	for _, day := range days {
		if !day.Equal(cursor) {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}
