package lexrain

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// ExportVersion identifies the export file layout.
const ExportVersion = "1"

// Export is a full dump of the store: every word, every memory state and
// the complete review history.
type Export struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Words      []Word          `json:"words"`
	States     []MemoryState   `json:"states"`
	History    []HistoryRecord `json:"history"`
}

// ExportJSON writes the full store contents to w as indented JSON.
func (c *Client) ExportJSON(w io.Writer) error {
	dump, err := c.store.dump()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

func (s *Store) dump() (*Export, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	dump := &Export{Version: ExportVersion, ExportedAt: time.Now().UTC()}

	rows, err := s.db.Query("SELECT " + wordColumns + " FROM words ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("store: dump words: %w", err)
	}
	dump.Words, err = collectWords(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT word_id, repetition, interval_days, ease_factor, next_due, mastery
		FROM memory_state ORDER BY word_id
	`)
	if err != nil {
		return nil, fmt.Errorf("store: dump states: %w", err)
	}
	for rows.Next() {
		var st MemoryState
		var nextDue string
		if err := rows.Scan(&st.WordID, &st.Repetition, &st.IntervalDays, &st.EaseFactor, &nextDue, &st.Mastery); err != nil {
			rows.Close()
			return nil, fmt.Errorf("store: scan state: %w", err)
		}
		st.NextDue = parseTime(nextDue)
		dump.States = append(dump.States, st)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.Query(`
		SELECT id, word_id, reviewed_at, quality, repetition, interval_days, ease_factor
		FROM review_history ORDER BY reviewed_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("store: dump history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec HistoryRecord
		var reviewedAt string
		if err := rows.Scan(&rec.ID, &rec.WordID, &reviewedAt, &rec.Quality, &rec.Repetition, &rec.IntervalDays, &rec.EaseFactor); err != nil {
			return nil, fmt.Errorf("store: scan history: %w", err)
		}
		rec.ReviewedAt = parseTime(reviewedAt)
		dump.History = append(dump.History, rec)
	}
	return dump, rows.Err()
}
