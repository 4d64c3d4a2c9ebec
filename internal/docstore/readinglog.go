package docstore

import (
	"context"
	"sort"
	"time"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// BookByGoogleID returns the book with the given external catalog id, or
// (nil, nil) if none exists.
func (s *Store) BookByGoogleID(_ context.Context, googleBooksID string) (*models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.books.Docs {
		if b.GoogleBooksID == googleBooksID {
			book := b
			return &book, nil
		}
	}
	return nil, nil
}

// CreateBook inserts a new book and returns the stored document. Ordered
// string lists are stored natively; nil lists normalize to empty.
func (s *Store) CreateBook(_ context.Context, b *models.Book) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *b
	stored.ID = s.books.allocate()
	stored.Authors = normalizeList(b.Authors)
	stored.Categories = normalizeList(b.Categories)
	stored.CreatedAt = time.Now().UTC()
	s.books.Docs[stored.ID] = stored

	if err := save(s.dir, "books", &s.books); err != nil {
		return nil, err
	}
	return &stored, nil
}

// RecordsWithBooks returns reading records joined with their book,
// ordered by creation time. When showAll is false only records owned by
// userID are returned.
func (s *Store) RecordsWithBooks(_ context.Context, userID int64, showAll bool) ([]models.ReadingRecordWithBook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]models.ReadingRecordWithBook, 0, len(s.records.Docs))
	for _, rec := range s.records.Docs {
		if !showAll && rec.UserID != userID {
			continue
		}
		records = append(records, models.ReadingRecordWithBook{
			ReadingRecord: rec,
			Book:          s.books.Docs[rec.BookID],
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// CreateRecord inserts a new reading record and returns the stored
// document.
func (s *Store) CreateRecord(_ context.Context, rec *models.ReadingRecord) (*models.ReadingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := *rec
	stored.ID = s.records.allocate()
	stored.Tags = normalizeList(rec.Tags)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.records.Docs[stored.ID] = stored

	if err := save(s.dir, "reading_records", &s.records); err != nil {
		return nil, err
	}
	return &stored, nil
}

// RecordByID returns the record with the given id, or (nil, nil) if none
// exists.
func (s *Store) RecordByID(_ context.Context, id int64) (*models.ReadingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records.Docs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// UpdateRecord overwrites the mutable fields of the record with the given
// id, refreshes updatedAt, and returns the stored document.
func (s *Store) UpdateRecord(_ context.Context, rec *models.ReadingRecord) (*models.ReadingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records.Docs[rec.ID]
	if !ok {
		return nil, nil
	}

	existing.Rating = rec.Rating
	existing.Review = rec.Review
	existing.Tags = normalizeList(rec.Tags)
	existing.FinishedDate = rec.FinishedDate
	existing.UpdatedAt = time.Now().UTC()
	s.records.Docs[existing.ID] = existing

	if err := save(s.dir, "reading_records", &s.records); err != nil {
		return nil, err
	}
	return &existing, nil
}

// DeleteRecord removes the record with the given id.
func (s *Store) DeleteRecord(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records.Docs, id)
	return save(s.dir, "reading_records", &s.records)
}

// normalizeList maps a nil list to an empty one.
func normalizeList(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
