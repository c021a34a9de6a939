package export

import (
	"context"
	"database/sql"
	"fmt"
	"net/netip"
	"os"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/phoneinv/internal/model"
)

const inventorySchema = `
CREATE TABLE inventory (
	position INTEGER NOT NULL,
	mac TEXT PRIMARY KEY,
	serial TEXT NOT NULL DEFAULT '',
	host TEXT NOT NULL DEFAULT ''
);
CREATE INDEX idx_inventory_position ON inventory(position);
`

// openSQLite opens the database file with a single connection.
func openSQLite(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

// writeSQLite builds the database in a temporary file and renames it over path.
func writeSQLite(path string, entries []model.Entry) error {
	return replaceFile(path, func(tmp *os.File) error {
		db, err := openSQLite(tmp.Name())
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := insertEntries(context.Background(), db, entries); err != nil {
			return err
		}
		return db.Close()
	})
}

func insertEntries(ctx context.Context, db *sql.DB, entries []model.Entry) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, inventorySchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO inventory (position, mac, serial, host) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range entries {
		host := ""
		if e.Host.IsValid() {
			host = e.Host.String()
		}
		if _, err := stmt.ExecContext(ctx, i, e.MAC, e.Serial, host); err != nil {
			return fmt.Errorf("insert %s: %w", e.MAC, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func loadSQLite(path string) ([]model.Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := openSQLite(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	rows, err := db.QueryContext(ctx, `SELECT mac, serial, host FROM inventory ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Entry
	for rows.Next() {
		var (
			e    model.Entry
			host string
		)
		if err := rows.Scan(&e.MAC, &e.Serial, &host); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if host != "" {
			if addr, err := netip.ParseAddr(host); err == nil {
				e.Host = addr
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return entries, nil
}
