// Package sqlite persists boards in an SQLite database as an alternative to the board file.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/n2code/favcurator/internal/asset"
	"github.com/n2code/favcurator/internal/board"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Storage implements board.Persistence on top of an SQLite database file.
type Storage struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database and brings its schema up to date.
func Open(path string) (*Storage, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating board database %s: %w", path, err)
	}
	return &Storage{db: db, path: path}, nil
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}
	//m.Close is not called because it would close the shared *sql.DB as well
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Load() (*board.Collection, error) {
	rows, err := s.db.Query(`SELECT id, name FROM pages ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	type pageRow struct {
		id   uuid.UUID
		name string
	}
	var pageRows []pageRow
	for rows.Next() {
		var rawId, name string
		if err := rows.Scan(&rawId, &name); err != nil {
			rows.Close()
			return nil, err
		}
		id, err := uuid.Parse(rawId)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("page with bad ID %q: %w", rawId, err)
		}
		pageRows = append(pageRows, pageRow{id: id, name: name})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	pages := make([]board.Page, 0, len(pageRows))
	for _, page := range pageRows {
		items, err := s.loadItems(page.id)
		if err != nil {
			return nil, err
		}
		pages = append(pages, board.RestorePage(page.id, page.name, items))
	}
	return board.NewCollection(pages...), nil
}

func (s *Storage) loadItems(pageId uuid.UUID) ([]asset.Ref, error) {
	rows, err := s.db.Query(`SELECT ref FROM favorites WHERE page_id = ? ORDER BY position`, pageId.String())
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()
	var items []asset.Ref
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		ref, err := asset.FromAnchored(raw)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", pageId, err)
		}
		items = append(items, ref)
	}
	return items, rows.Err()
}

// Save replaces the stored board with the given snapshot in a single transaction.
func (s *Storage) Save(snapshot *board.Collection) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := replaceBoard(tx, snapshot); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("saving board failed: %w", err)
	}
	return tx.Commit()
}

func replaceBoard(tx *sql.Tx, snapshot *board.Collection) error {
	if _, err := tx.Exec(`DELETE FROM favorites`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM pages`); err != nil {
		return err
	}
	for position, page := range snapshot.Pages() {
		if _, err := tx.Exec(`INSERT INTO pages (id, position, name) VALUES (?, ?, ?)`, page.ID().String(), position, page.Name()); err != nil {
			return err
		}
		for itemPosition, ref := range page.Items() {
			if _, err := tx.Exec(`INSERT INTO favorites (page_id, position, ref) VALUES (?, ?, ?)`, page.ID().String(), itemPosition, ref.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
