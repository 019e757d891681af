package cache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fragmede/tutor/internal/api"
)

// GetTopics returns the cached topic catalogue in backend order.
// Returns (topics, isFresh, error); topics is nil on cache miss.
func (d *DB) GetTopics(ttl time.Duration) ([]api.Topic, bool, error) {
	rows, err := d.db.Query(`SELECT id, name, icon, fetched_at FROM topics ORDER BY position`)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var topics []api.Topic
	var oldest int64
	for rows.Next() {
		var t api.Topic
		var icon sql.NullString
		var fetchedAt int64
		if err := rows.Scan(&t.ID, &t.Name, &icon, &fetchedAt); err != nil {
			return nil, false, err
		}
		t.Icon = icon.String
		if oldest == 0 || fetchedAt < oldest {
			oldest = fetchedAt
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(topics) == 0 {
		return nil, false, nil
	}

	isFresh := time.Since(time.Unix(oldest, 0)) < ttl
	return topics, isFresh, nil
}

// PutTopics replaces the cached catalogue.
func (d *DB) PutTopics(topics []api.Topic) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM topics`); err != nil {
		return fmt.Errorf("clearing topics: %w", err)
	}
	now := time.Now().Unix()
	for i, t := range topics {
		if _, err := tx.Exec(`INSERT INTO topics (id, name, icon, position, fetched_at) VALUES (?, ?, ?, ?, ?)`,
			t.ID, t.Name, nullStr(t.Icon), i, now); err != nil {
			return fmt.Errorf("storing topic %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}
