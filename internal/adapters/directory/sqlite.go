package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gamevault/authcore/internal/domain/auth"
)

const localSchema = `
CREATE TABLE IF NOT EXISTS staff_admins (
	steam_id   TEXT PRIMARY KEY,
	staff_name TEXT NOT NULL DEFAULT '',
	staff_role TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore is the embedded local directory backend. It satisfies
// ports.DirectoryBackend with the same semantics as the remote service so
// deployments without one still get a durable admin list.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the local store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local directory: %w", err)
	}
	// SQLite serializes writers; one connection avoids lock contention.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(localSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate local directory: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// SetNow overrides the clock (for testing).
func (s *SQLiteStore) SetNow(now func() time.Time) { s.now = now }

// Name implements ports.DirectoryBackend.
func (s *SQLiteStore) Name() string { return "local" }

func (s *SQLiteStore) List(ctx context.Context) ([]auth.AdminRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT steam_id, staff_name, staff_role, created_at, updated_at
		 FROM staff_admins ORDER BY steam_id`)
	if err != nil {
		return nil, s.storageErr(err)
	}
	defer rows.Close()

	var records []auth.AdminRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, s.storageErr(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, s.storageErr(err)
	}
	return records, nil
}

func (s *SQLiteStore) Get(ctx context.Context, steamID string) (auth.AdminRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT steam_id, staff_name, staff_role, created_at, updated_at
		 FROM staff_admins WHERE steam_id = ?`, steamID)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.AdminRecord{}, auth.ErrNotFound
	}
	if err != nil {
		return auth.AdminRecord{}, s.storageErr(err)
	}
	return rec, nil
}

func (s *SQLiteStore) Add(ctx context.Context, record auth.AdminRecord) (auth.AdminRecord, error) {
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO staff_admins (steam_id, staff_name, staff_role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(steam_id) DO UPDATE SET
			staff_name = excluded.staff_name,
			staff_role = excluded.staff_role,
			updated_at = excluded.updated_at`,
		record.SteamID, record.StaffName, string(record.StaffRole),
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return auth.AdminRecord{}, s.storageErr(err)
	}
	return s.Get(ctx, record.SteamID)
}

func (s *SQLiteStore) Update(ctx context.Context, steamID string, patch auth.AdminRecordPatch) (auth.AdminRecord, error) {
	current, err := s.Get(ctx, steamID)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	if patch.StaffName != nil {
		current.StaffName = *patch.StaffName
	}
	if patch.StaffRole != nil {
		current.StaffRole = *patch.StaffRole
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE staff_admins SET staff_name = ?, staff_role = ?, updated_at = ? WHERE steam_id = ?`,
		current.StaffName, string(current.StaffRole), s.now().UTC().Format(time.RFC3339Nano), steamID)
	if err != nil {
		return auth.AdminRecord{}, s.storageErr(err)
	}
	return s.Get(ctx, steamID)
}

func (s *SQLiteStore) Remove(ctx context.Context, steamID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM staff_admins WHERE steam_id = ?`, steamID)
	if err != nil {
		return s.storageErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return s.storageErr(err)
	}
	if n == 0 {
		return auth.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff_admins`).Scan(&n); err != nil {
		return 0, s.storageErr(err)
	}
	return n, nil
}

func (s *SQLiteStore) storageErr(err error) error {
	return &auth.StorageUnavailableError{Backend: s.Name(), Err: err}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (auth.AdminRecord, error) {
	var rec auth.AdminRecord
	var role, created, updated string
	if err := row.Scan(&rec.SteamID, &rec.StaffName, &role, &created, &updated); err != nil {
		return auth.AdminRecord{}, err
	}
	rec.StaffRole = auth.Role(role)
	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return auth.AdminRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return auth.AdminRecord{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return rec, nil
}
