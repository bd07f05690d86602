package data

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	series_id   BIGINT PRIMARY KEY,
	title       VARCHAR NOT NULL,
	author      VARCHAR NOT NULL,
	novel_count INTEGER NOT NULL,
	file_path   VARCHAR NOT NULL,
	built_at    TIMESTAMP NOT NULL
)`

func InitDuckDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Repository tracks which series have already been built into books.
type Repository struct {
	db *sql.DB
}

var duckDB *sql.DB

func NewDuckDBRepository(path string) *Repository {
	if duckDB == nil {
		db, err := InitDuckDB(path)
		if err != nil {
			log.Fatal(err)
		}
		duckDB = db
	}

	return &Repository{db: duckDB}
}

// SaveBook inserts or replaces the record for a series.
func (r *Repository) SaveBook(book *Book) error {
	if book.BuiltAt.IsZero() {
		book.BuiltAt = time.Now()
	}
	_, err := r.db.Exec(`
		INSERT OR REPLACE INTO books (series_id, title, author, novel_count, file_path, built_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		book.SeriesID, book.Title, book.Author, book.NovelCount, book.FilePath, book.BuiltAt,
	)
	return err
}

// GetBook returns the record for a series, or nil when unknown.
func (r *Repository) GetBook(seriesID int64) (*Book, error) {
	row := r.db.QueryRow(`
		SELECT series_id, title, author, novel_count, file_path, built_at
		FROM books WHERE series_id = ?`, seriesID)

	var book Book
	err := row.Scan(&book.SeriesID, &book.Title, &book.Author, &book.NovelCount, &book.FilePath, &book.BuiltAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// ListBooks returns all built books, most recent first.
func (r *Repository) ListBooks() ([]*Book, error) {
	rows, err := r.db.Query(`
		SELECT series_id, title, author, novel_count, file_path, built_at
		FROM books ORDER BY built_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		var book Book
		if err := rows.Scan(&book.SeriesID, &book.Title, &book.Author, &book.NovelCount, &book.FilePath, &book.BuiltAt); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

// DeleteBook removes the record for a series.
func (r *Repository) DeleteBook(seriesID int64) error {
	_, err := r.db.Exec(`DELETE FROM books WHERE series_id = ?`, seriesID)
	return err
}
