// Package sqlite implements the alternative Store backend on SQLite.
// It keeps the same whole-document semantics as the jsonfile backend:
// a mutation loads every row, applies the change, and rewrites the
// document inside a single transaction.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Schema DDL. Items keep insertion order through the rowid; meta holds
// the document-level fields (lastUpdated, nextId).
const (
	createItems = `CREATE TABLE IF NOT EXISTS items (
    position INTEGER PRIMARY KEY AUTOINCREMENT,
    item_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    quantity TEXT NOT NULL,
    item_group TEXT NOT NULL
);`

	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
)

const (
	metaLastUpdated = "lastUpdated"
	metaNextID      = "nextId"
)

// Store persists the inventory document in a SQLite database. The
// database-level write lock serializes concurrent mutations.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// Whole-document read-modify-write needs one writer at a time.
	db.SetMaxOpenConns(1)

	for _, ddl := range []string{createItems, createMeta} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("initializing schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Load returns the current document. Returns types.ErrDocumentMissing
// when the database has never been written.
func (s *Store) Load() (types.Inventory, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return types.Inventory{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	return loadTx(tx)
}

// Mutate loads the document, applies fn, and rewrites every row inside
// one transaction. A missing document starts empty. If fn returns an
// error the transaction rolls back and nothing changes.
func (s *Store) Mutate(fn func(*types.Inventory) error) (types.Inventory, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return types.Inventory{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	inv, err := loadTx(tx)
	if err == types.ErrDocumentMissing {
		inv = types.NewInventory()
	} else if err != nil {
		return types.Inventory{}, err
	}

	if err := fn(&inv); err != nil {
		return types.Inventory{}, err
	}

	inv.Touch()
	if err := writeTx(tx, inv); err != nil {
		return types.Inventory{}, err
	}
	if err := tx.Commit(); err != nil {
		return types.Inventory{}, fmt.Errorf("committing: %w", err)
	}
	return inv, nil
}

// Replace overwrites the document wholesale.
func (s *Store) Replace(inv types.Inventory) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := writeTx(tx, inv); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func loadTx(tx *sql.Tx) (types.Inventory, error) {
	var lastUpdated string
	err := tx.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaLastUpdated).Scan(&lastUpdated)
	if err == sql.ErrNoRows {
		return types.Inventory{}, types.ErrDocumentMissing
	}
	if err != nil {
		return types.Inventory{}, fmt.Errorf("reading meta: %w", err)
	}

	var nextID int
	err = tx.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaNextID).Scan(&nextID)
	if err != nil && err != sql.ErrNoRows {
		return types.Inventory{}, fmt.Errorf("reading meta: %w", err)
	}

	rows, err := tx.Query(`SELECT item_id, name, quantity, item_group FROM items ORDER BY position`)
	if err != nil {
		return types.Inventory{}, fmt.Errorf("reading items: %w", err)
	}
	defer rows.Close()

	inv := types.Inventory{Items: []types.Item{}, LastUpdated: lastUpdated, NextID: nextID}
	for rows.Next() {
		var item types.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Group); err != nil {
			return types.Inventory{}, fmt.Errorf("scanning item: %w", err)
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return types.Inventory{}, fmt.Errorf("reading items: %w", err)
	}
	return inv, nil
}

func writeTx(tx *sql.Tx, inv types.Inventory) error {
	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	for _, item := range inv.Items {
		_, err := tx.Exec(
			`INSERT INTO items (item_id, name, quantity, item_group) VALUES (?, ?, ?, ?)`,
			item.ID, item.Name, item.Quantity, item.Group,
		)
		if err != nil {
			return fmt.Errorf("inserting item %s: %w", item.ID, err)
		}
	}

	upsert := `INSERT INTO meta (key, value) VALUES (?, ?)
    ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, metaLastUpdated, inv.LastUpdated); err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}
	if _, err := tx.Exec(upsert, metaNextID, fmt.Sprintf("%d", inv.NextID)); err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}
	return nil
}
