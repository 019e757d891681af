package cache

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"
)

// SaveCookies replaces the stored session cookies. Cookies returned by a
// jar carry only name and value, so domain and path are whatever the
// caller supplies.
func (d *DB) SaveCookies(cookies []*http.Cookie) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cookies`); err != nil {
		return fmt.Errorf("clearing cookies: %w", err)
	}
	now := time.Now().Unix()
	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		var expires sql.NullInt64
		if !c.Expires.IsZero() {
			expires = sql.NullInt64{Int64: c.Expires.Unix(), Valid: true}
		}
		if _, err := tx.Exec(`INSERT OR REPLACE INTO cookies
			(name, domain, path, value, expires_unix, secure, http_only, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.Name, c.Domain, path, c.Value, expires, boolInt(c.Secure), boolInt(c.HttpOnly), now); err != nil {
			return fmt.Errorf("storing cookie %s: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

// LoadCookies returns the stored cookies that have not expired.
func (d *DB) LoadCookies() ([]*http.Cookie, error) {
	rows, err := d.db.Query(`SELECT name, domain, path, value, expires_unix, secure, http_only FROM cookies`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	var cookies []*http.Cookie
	for rows.Next() {
		var c http.Cookie
		var expires sql.NullInt64
		var secure, httpOnly int
		if err := rows.Scan(&c.Name, &c.Domain, &c.Path, &c.Value, &expires, &secure, &httpOnly); err != nil {
			return nil, err
		}
		if expires.Valid {
			c.Expires = time.Unix(expires.Int64, 0)
			if c.Expires.Before(now) {
				continue
			}
		}
		c.Secure = secure != 0
		c.HttpOnly = httpOnly != 0
		cookies = append(cookies, &c)
	}
	return cookies, rows.Err()
}

// ClearCookies forgets the saved session.
func (d *DB) ClearCookies() error {
	_, err := d.db.Exec(`DELETE FROM cookies`)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
