package storage

import (
	"database/sql"
	"fmt"
	"time"

	"claimboard/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			surname TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS claims (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			amount REAL NOT NULL,
			category TEXT NOT NULL,
			comments TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			document_url TEXT,
			verified_at DATETIME,
			owner_id INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (owner_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			expires_at DATETIME NOT NULL,
			last_activity DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_claims_status ON claims(status)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return nil
}

// CreateClaim inserts a new claim and returns it with its assigned ID.
func (db *DB) CreateClaim(c *models.Claim) (*models.Claim, error) {
	c.EnsureDefaults()
	if !c.Status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", c.Status)
	}
	if !c.Category.IsValid() {
		return nil, fmt.Errorf("invalid category: %s", c.Category)
	}

	now := time.Now()
	result, err := db.conn.Exec(
		`INSERT INTO claims (amount, category, comments, status, document_url, verified_at, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Amount, c.Category, c.Comments, c.Status, c.DocumentURL, c.VerifiedAt, c.OwnerID, now, now,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetClaim(id)
}

const claimColumns = `c.id, c.amount, c.category, c.comments, c.status, c.document_url, c.verified_at,
	c.owner_id, c.created_at, c.updated_at, u.id, u.username, u.name, u.surname, u.email, u.avatar_url`

func scanClaim(row interface{ Scan(...any) error }) (*models.Claim, error) {
	var c models.Claim
	var u models.User
	if err := row.Scan(
		&c.ID, &c.Amount, &c.Category, &c.Comments, &c.Status, &c.DocumentURL, &c.VerifiedAt,
		&c.OwnerID, &c.CreatedAt, &c.UpdatedAt, &u.ID, &u.Username, &u.Name, &u.Surname, &u.Email, &u.AvatarURL,
	); err != nil {
		return nil, err
	}
	c.Owner = &u
	return &c, nil
}

// GetClaim retrieves a single claim by ID, with its owner attached.
func (db *DB) GetClaim(id int64) (*models.Claim, error) {
	row := db.conn.QueryRow(
		`SELECT `+claimColumns+` FROM claims c JOIN users u ON c.owner_id = u.id WHERE c.id = ?`,
		id,
	)
	return scanClaim(row)
}

// ListClaims retrieves claims ordered by creation date descending.
// limit <= 0 means no limit; offset is ignored when limit is unset.
func (db *DB) ListClaims(limit, offset int) ([]models.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims c JOIN users u ON c.owner_id = u.id ORDER BY c.created_at DESC, c.id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// UpdateClaimStatus sets the status of a claim. Any known status may
// follow any other; restrictions, if ever wanted, belong here and not
// in the UI.
func (db *DB) UpdateClaimStatus(id int64, status models.Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}
	result, err := db.conn.Exec(
		"UPDATE claims SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), id,
	)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteClaim removes a claim by ID.
func (db *DB) DeleteClaim(id int64) error {
	result, err := db.conn.Exec("DELETE FROM claims WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClaimCount returns the number of claims in the database.
func (db *DB) ClaimCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM claims").Scan(&count)
	return count, err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
