package cache

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fragmede/tutor/internal/api"
)

// GetProgress retrieves the last progress snapshot for a user.
func (d *DB) GetProgress(userID string, ttl time.Duration) (*api.Progress, bool, error) {
	row := d.db.QueryRow(`SELECT user_id, xp_points, topics_learned, learning_streak, last_activity, fetched_at
		FROM progress WHERE user_id = ?`, userID)

	var p api.Progress
	var topicsJSON string
	var lastActivity sql.NullString
	var fetchedAt int64

	err := row.Scan(&p.UserID, &p.XPPoints, &topicsJSON, &p.LearningStreak, &lastActivity, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	json.Unmarshal([]byte(topicsJSON), &p.TopicsLearned)
	p.LastActivity = lastActivity.String

	isFresh := time.Since(time.Unix(fetchedAt, 0)) < ttl
	return &p, isFresh, nil
}

// PutProgress stores a progress snapshot under userID.
func (d *DB) PutProgress(userID string, p *api.Progress) error {
	topics := p.TopicsLearned
	if topics == nil {
		topics = []string{}
	}
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`INSERT OR REPLACE INTO progress
		(user_id, xp_points, topics_learned, learning_streak, last_activity, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, p.XPPoints, string(topicsJSON), p.LearningStreak, nullStr(p.LastActivity), time.Now().Unix())
	return err
}
