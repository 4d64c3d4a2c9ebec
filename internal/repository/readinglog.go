package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// PostgresReadingLogRepository implements book and reading record
// persistence against PostgreSQL. Authors, categories and tags are stored
// as JSON text columns; the encode/decode boundary is confined to this
// type and raw serialized text never leaves it.
type PostgresReadingLogRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresReadingLogRepository creates a PostgresReadingLogRepository
// with the given database connection.
func NewPostgresReadingLogRepository(db *sql.DB) *PostgresReadingLogRepository {
	return &PostgresReadingLogRepository{DB: db}
}

// encodeList serializes an ordered string list for a JSON text column.
func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

// decodeList deserializes a JSON text column into an ordered string list.
// NULL, empty and undecodable values all yield an empty list, never an
// error.
func decodeList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw.String), &list); err != nil || list == nil {
		return []string{}
	}
	return list
}

const bookColumns = `id, google_books_id, title, authors, description, thumbnail, published_date, page_count, categories, created_at`

// scanBook scans one book row, decoding the JSON list columns.
func scanBook(scan func(dest ...any) error) (*models.Book, error) {
	var b models.Book
	var authors, description, thumbnail, publishedDate, categories sql.NullString
	var pageCount sql.NullInt64
	if err := scan(&b.ID, &b.GoogleBooksID, &b.Title, &authors, &description, &thumbnail, &publishedDate, &pageCount, &categories, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Authors = decodeList(authors)
	b.Description = description.String
	b.Thumbnail = thumbnail.String
	b.PublishedDate = publishedDate.String
	b.PageCount = int(pageCount.Int64)
	b.Categories = decodeList(categories)
	return &b, nil
}

// BookByGoogleID returns the book with the given external catalog id, or
// (nil, nil) if none exists.
func (r *PostgresReadingLogRepository) BookByGoogleID(ctx context.Context, googleBooksID string) (*models.Book, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+bookColumns+` FROM books WHERE google_books_id = $1
	`, googleBooksID)
	b, err := scanBook(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("BookByGoogleID: %w", err)
	}
	return b, nil
}

// CreateBook inserts a new book and returns the stored row.
func (r *PostgresReadingLogRepository) CreateBook(ctx context.Context, b *models.Book) (*models.Book, error) {
	stored := *b
	stored.Authors = normalizeList(b.Authors)
	stored.Categories = normalizeList(b.Categories)
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO books (google_books_id, title, authors, description, thumbnail, published_date, page_count, categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, b.GoogleBooksID, b.Title, encodeList(b.Authors), nullIfEmpty(b.Description), nullIfEmpty(b.Thumbnail),
		nullIfEmpty(b.PublishedDate), nullIfZero(b.PageCount), encodeList(b.Categories)).
		Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateBook: %w", err)
	}
	return &stored, nil
}

const recordColumns = `id, user_id, book_id, rating, review, tags, finished_date, created_at, updated_at`

// scanRecord scans one reading record row, decoding the tags column.
func scanRecord(scan func(dest ...any) error) (*models.ReadingRecord, error) {
	var rec models.ReadingRecord
	var review, tags, finishedDate sql.NullString
	if err := scan(&rec.ID, &rec.UserID, &rec.BookID, &rec.Rating, &review, &tags, &finishedDate, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Review = review.String
	rec.Tags = decodeList(tags)
	rec.FinishedDate = finishedDate.String
	return &rec, nil
}

// RecordsWithBooks returns reading records joined with their book, ordered
// by creation time. When showAll is false only records owned by userID are
// returned.
func (r *PostgresReadingLogRepository) RecordsWithBooks(ctx context.Context, userID int64, showAll bool) ([]models.ReadingRecordWithBook, error) {
	query := `
		SELECT r.id, r.user_id, r.book_id, r.rating, r.review, r.tags, r.finished_date, r.created_at, r.updated_at,
		       b.id, b.google_books_id, b.title, b.authors, b.description, b.thumbnail, b.published_date, b.page_count, b.categories, b.created_at
		  FROM reading_records r
		  JOIN books b ON b.id = r.book_id`
	args := []any{}
	if !showAll {
		query += ` WHERE r.user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY r.created_at`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("RecordsWithBooks: %w", err)
	}
	defer rows.Close()

	var records []models.ReadingRecordWithBook
	for rows.Next() {
		var rec models.ReadingRecordWithBook
		var review, tags, finishedDate sql.NullString
		var authors, description, thumbnail, publishedDate, categories sql.NullString
		var pageCount sql.NullInt64
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.BookID, &rec.Rating, &review, &tags, &finishedDate, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.Book.ID, &rec.Book.GoogleBooksID, &rec.Book.Title, &authors, &description, &thumbnail, &publishedDate, &pageCount, &categories, &rec.Book.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec.Review = review.String
		rec.Tags = decodeList(tags)
		rec.FinishedDate = finishedDate.String
		rec.Book.Authors = decodeList(authors)
		rec.Book.Description = description.String
		rec.Book.Thumbnail = thumbnail.String
		rec.Book.PublishedDate = publishedDate.String
		rec.Book.PageCount = int(pageCount.Int64)
		rec.Book.Categories = decodeList(categories)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateRecord inserts a new reading record and returns the stored row.
func (r *PostgresReadingLogRepository) CreateRecord(ctx context.Context, rec *models.ReadingRecord) (*models.ReadingRecord, error) {
	stored := *rec
	stored.Tags = normalizeList(rec.Tags)
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO reading_records (user_id, book_id, rating, review, tags, finished_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, rec.UserID, rec.BookID, rec.Rating, nullIfEmpty(rec.Review), encodeList(rec.Tags), nullIfEmpty(rec.FinishedDate)).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("CreateRecord: %w", err)
	}
	return &stored, nil
}

// RecordByID returns the record with the given id, or (nil, nil) if none
// exists.
func (r *PostgresReadingLogRepository) RecordByID(ctx context.Context, id int64) (*models.ReadingRecord, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM reading_records WHERE id = $1
	`, id)
	rec, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("RecordByID: %w", err)
	}
	return rec, nil
}

// UpdateRecord overwrites the mutable fields of the record with the given
// id, refreshes updated_at, and returns the stored row.
func (r *PostgresReadingLogRepository) UpdateRecord(ctx context.Context, rec *models.ReadingRecord) (*models.ReadingRecord, error) {
	stored := *rec
	stored.Tags = normalizeList(rec.Tags)
	err := r.DB.QueryRowContext(ctx, `
		UPDATE reading_records
		   SET rating = $2, review = $3, tags = $4, finished_date = $5, updated_at = now()
		 WHERE id = $1
		RETURNING created_at, updated_at
	`, rec.ID, rec.Rating, nullIfEmpty(rec.Review), encodeList(rec.Tags), nullIfEmpty(rec.FinishedDate)).
		Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("UpdateRecord: %w", err)
	}
	return &stored, nil
}

// DeleteRecord removes the record with the given id.
func (r *PostgresReadingLogRepository) DeleteRecord(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM reading_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteRecord: %w", err)
	}
	return nil
}

// normalizeList maps a nil list to an empty one.
func normalizeList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// nullIfZero maps a zero page count to SQL NULL.
func nullIfZero(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
