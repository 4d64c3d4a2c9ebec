package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// fakeReadingLogRepo is an in-memory ReadingLogRepository that counts
// book insertions.
type fakeReadingLogRepo struct {
	books       map[int64]models.Book
	records     map[int64]models.ReadingRecord
	nextBookID  int64
	nextRecID   int64
	createBooks int
}

func newFakeReadingLogRepo() *fakeReadingLogRepo {
	return &fakeReadingLogRepo{
		books:      make(map[int64]models.Book),
		records:    make(map[int64]models.ReadingRecord),
		nextBookID: 1,
		nextRecID:  1,
	}
}

func (f *fakeReadingLogRepo) BookByGoogleID(_ context.Context, googleBooksID string) (*models.Book, error) {
	for _, b := range f.books {
		if b.GoogleBooksID == googleBooksID {
			book := b
			return &book, nil
		}
	}
	return nil, nil
}

func (f *fakeReadingLogRepo) CreateBook(_ context.Context, b *models.Book) (*models.Book, error) {
	f.createBooks++
	stored := *b
	stored.ID = f.nextBookID
	f.books[stored.ID] = stored
	f.nextBookID++
	return &stored, nil
}

func (f *fakeReadingLogRepo) RecordsWithBooks(_ context.Context, userID int64, showAll bool) ([]models.ReadingRecordWithBook, error) {
	var out []models.ReadingRecordWithBook
	for _, r := range f.records {
		if !showAll && r.UserID != userID {
			continue
		}
		out = append(out, models.ReadingRecordWithBook{ReadingRecord: r, Book: f.books[r.BookID]})
	}
	return out, nil
}

func (f *fakeReadingLogRepo) CreateRecord(_ context.Context, r *models.ReadingRecord) (*models.ReadingRecord, error) {
	stored := *r
	stored.ID = f.nextRecID
	f.records[stored.ID] = stored
	f.nextRecID++
	return &stored, nil
}

func (f *fakeReadingLogRepo) RecordByID(_ context.Context, id int64) (*models.ReadingRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeReadingLogRepo) UpdateRecord(_ context.Context, r *models.ReadingRecord) (*models.ReadingRecord, error) {
	stored := *r
	f.records[stored.ID] = stored
	return &stored, nil
}

func (f *fakeReadingLogRepo) DeleteRecord(_ context.Context, id int64) error {
	delete(f.records, id)
	return nil
}

func TestAddRecord_DeduplicatesBook(t *testing.T) {
	repo := newFakeReadingLogRepo()
	svc := NewReadingLogService(repo)
	ctx := context.Background()

	params := AddRecordParams{
		Book:   models.BookData{GoogleBooksID: "abc123", Title: "Go入門", Authors: []string{"山田"}},
		Rating: 4.5,
	}

	first, err := svc.AddRecord(ctx, 1, params)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := svc.AddRecord(ctx, 1, params)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if repo.createBooks != 1 {
		t.Errorf("book insertions = %d; want 1", repo.createBooks)
	}
	if len(repo.records) != 2 {
		t.Errorf("records = %d; want 2", len(repo.records))
	}
	if first.BookID != second.BookID {
		t.Errorf("records reference different books: %d vs %d", first.BookID, second.BookID)
	}
}

func TestAddRecord_NormalizesOptionalFields(t *testing.T) {
	repo := newFakeReadingLogRepo()
	svc := NewReadingLogService(repo)

	rec, err := svc.AddRecord(context.Background(), 1, AddRecordParams{
		Book:   models.BookData{GoogleBooksID: "abc123", Title: "Go入門"},
		Rating: 3,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if rec.Tags == nil {
		t.Error("tags is nil; want empty slice")
	}
	if rec.Review != "" || rec.FinishedDate != "" {
		t.Errorf("optional fields not empty: review=%q finishedDate=%q", rec.Review, rec.FinishedDate)
	}
	book := repo.books[rec.BookID]
	if book.Authors == nil || book.Categories == nil {
		t.Error("book lists are nil; want empty slices")
	}
}

func TestUpdateRecord(t *testing.T) {
	repo := newFakeReadingLogRepo()
	svc := NewReadingLogService(repo)
	ctx := context.Background()

	rec, err := svc.AddRecord(ctx, 1, AddRecordParams{
		Book:   models.BookData{GoogleBooksID: "abc123", Title: "Go入門"},
		Rating: 3,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	tests := []struct {
		name    string
		userID  int64
		id      int64
		wantErr error
	}{
		{name: "owner", userID: 1, id: rec.ID},
		{name: "other user", userID: 2, id: rec.ID, wantErr: ErrNotOwner},
		{name: "unknown id", userID: 1, id: 99, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := svc.UpdateRecord(ctx, tt.userID, tt.id, UpdateRecordParams{
				Rating: 5, Review: "great", Tags: []string{"tech"}, FinishedDate: "2025-06-02",
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v; want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Rating != 5 || updated.Review != "great" {
				t.Errorf("update not applied: %+v", updated)
			}
		})
	}
}

func TestDeleteRecord(t *testing.T) {
	repo := newFakeReadingLogRepo()
	svc := NewReadingLogService(repo)
	ctx := context.Background()

	rec, err := svc.AddRecord(ctx, 1, AddRecordParams{
		Book:   models.BookData{GoogleBooksID: "abc123", Title: "Go入門"},
		Rating: 3,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.DeleteRecord(ctx, 2, rec.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("foreign delete error = %v; want ErrNotOwner", err)
	}
	if err := svc.DeleteRecord(ctx, 1, rec.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.DeleteRecord(ctx, 1, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat delete error = %v; want ErrNotFound", err)
	}
}
