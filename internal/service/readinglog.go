package service

import (
	"context"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// ReadingLogRepository defines the persistence operations required by the
// reading log service.
type ReadingLogRepository interface {
	// BookByGoogleID returns the book with the given external catalog
	// id, or (nil, nil) if none exists.
	BookByGoogleID(ctx context.Context, googleBooksID string) (*models.Book, error)
	// CreateBook inserts a new book and returns the stored row.
	CreateBook(ctx context.Context, b *models.Book) (*models.Book, error)
	// RecordsWithBooks returns reading records joined with their book.
	// When showAll is false only records owned by userID are returned.
	RecordsWithBooks(ctx context.Context, userID int64, showAll bool) ([]models.ReadingRecordWithBook, error)
	// CreateRecord inserts a new reading record and returns the stored
	// row.
	CreateRecord(ctx context.Context, r *models.ReadingRecord) (*models.ReadingRecord, error)
	// RecordByID returns the record with the given id, or (nil, nil)
	// if none exists.
	RecordByID(ctx context.Context, id int64) (*models.ReadingRecord, error)
	// UpdateRecord overwrites the mutable fields of the record with the
	// given id, refreshes updatedAt, and returns the stored row.
	UpdateRecord(ctx context.Context, r *models.ReadingRecord) (*models.ReadingRecord, error)
	// DeleteRecord removes the record with the given id.
	DeleteRecord(ctx context.Context, id int64) error
}

// AddRecordParams carries a new reading record submission: the book
// metadata from the external catalog plus the user's rating and notes.
type AddRecordParams struct {
	Book         models.BookData
	Rating       float64
	Review       string
	Tags         []string
	FinishedDate string
}

// UpdateRecordParams carries the mutable fields of a reading record
// update. The original client always submits the full set, so the update
// overwrites all four fields.
type UpdateRecordParams struct {
	Rating       float64
	Review       string
	Tags         []string
	FinishedDate string
}

// ReadingLogService implements reading record listing, the
// find-or-create-book insertion path, and owner-only mutation.
type ReadingLogService struct {
	// repo performs the data-layer operations.
	repo ReadingLogRepository
}

// NewReadingLogService constructs a ReadingLogService using the provided
// repository.
func NewReadingLogService(repo ReadingLogRepository) *ReadingLogService {
	return &ReadingLogService{repo: repo}
}

// Records returns the caller's reading records joined with their books,
// or every user's records when showAll is true.
func (s *ReadingLogService) Records(ctx context.Context, userID int64, showAll bool) ([]models.ReadingRecordWithBook, error) {
	return s.repo.RecordsWithBooks(ctx, userID, showAll)
}

// AddRecord resolves the submitted book by its external catalog id,
// creating the Book row if it does not exist yet, then inserts a new
// reading record referencing it. Every submission creates a new record,
// even for a book already read; only the Book row is deduplicated.
// Optional review, tags and finishedDate are stored as explicit empty
// values so consumers always see a present field.
func (s *ReadingLogService) AddRecord(ctx context.Context, userID int64, params AddRecordParams) (*models.ReadingRecord, error) {
	book, err := s.repo.BookByGoogleID(ctx, params.Book.GoogleBooksID)
	if err != nil {
		return nil, err
	}

	if book == nil {
		book, err = s.repo.CreateBook(ctx, &models.Book{
			GoogleBooksID: params.Book.GoogleBooksID,
			Title:         params.Book.Title,
			Authors:       emptyIfNil(params.Book.Authors),
			Description:   params.Book.Description,
			Thumbnail:     params.Book.Thumbnail,
			PublishedDate: params.Book.PublishedDate,
			PageCount:     params.Book.PageCount,
			Categories:    emptyIfNil(params.Book.Categories),
		})
		if err != nil {
			return nil, err
		}
	}

	return s.repo.CreateRecord(ctx, &models.ReadingRecord{
		UserID:       userID,
		BookID:       book.ID,
		Rating:       params.Rating,
		Review:       params.Review,
		Tags:         emptyIfNil(params.Tags),
		FinishedDate: params.FinishedDate,
	})
}

// UpdateRecord overwrites the rating, review, tags and finished date of
// the record with the given id. Returns ErrNotFound when the id is
// unknown and ErrNotOwner when the record belongs to another user.
func (s *ReadingLogService) UpdateRecord(ctx context.Context, userID, id int64, params UpdateRecordParams) (*models.ReadingRecord, error) {
	existing, err := s.repo.RecordByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}
	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	existing.Rating = params.Rating
	existing.Review = params.Review
	existing.Tags = emptyIfNil(params.Tags)
	existing.FinishedDate = params.FinishedDate

	return s.repo.UpdateRecord(ctx, existing)
}

// DeleteRecord removes the record with the given id. Returns ErrNotFound
// when the id is unknown and ErrNotOwner when the record belongs to
// another user.
func (s *ReadingLogService) DeleteRecord(ctx context.Context, userID, id int64) error {
	existing, err := s.repo.RecordByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.DeleteRecord(ctx, id)
}

// emptyIfNil normalizes a nil slice to an empty one so JSON responses
// carry [] instead of null.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
