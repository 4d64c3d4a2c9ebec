// Package models defines the core data structures for users, calendar
// events, attendance entries, books and reading records.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Name is the login name chosen by the user. Unique across users.
	Name string `json:"name"`
	// PasswordHash is the hex-encoded SHA-256 digest of the password.
	// Never serialized in API responses.
	PasswordHash string `json:"-"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// Event represents a calendar event owned by a single user.
type Event struct {
	// ID is the unique identifier for the event.
	ID int64 `json:"id"`
	// Title is the short headline of the event.
	Title string `json:"title"`
	// Description holds optional free text.
	Description string `json:"description"`
	// StartTime is when the event begins.
	StartTime time.Time `json:"startTime"`
	// EndTime is when the event ends. Expected to be >= StartTime.
	EndTime time.Time `json:"endTime"`
	// UserID is the owning user.
	UserID int64 `json:"userId"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// AttendanceStatus defines the set of valid attendance status identifiers.
type AttendanceStatus = string

const (
	// StatusPresent marks a normal working day.
	StatusPresent AttendanceStatus = "present"
	// StatusVacation marks a full day off.
	StatusVacation AttendanceStatus = "vacation"
	// StatusMorningOff marks the morning taken off.
	StatusMorningOff AttendanceStatus = "am_off"
	// StatusAfternoonOff marks the afternoon taken off.
	StatusAfternoonOff AttendanceStatus = "pm_off"
)

// Attendance represents one user's attendance entry for a single calendar
// day. At most one entry exists per (UserID, Date) pair; the upsert path in
// the attendance service enforces that.
type Attendance struct {
	// ID is the unique identifier for the entry.
	ID int64 `json:"id"`
	// UserID is the owning user.
	UserID int64 `json:"userId"`
	// Date is the calendar day in YYYY-MM-DD form.
	Date string `json:"date"`
	// Status is one of present, vacation, am_off, pm_off.
	Status AttendanceStatus `json:"status"`
	// Location holds an optional work location.
	Location string `json:"location"`
	// Tasks holds optional free-text planned tasks.
	Tasks string `json:"tasks"`
	// Consultation holds an optional free-text consultation note.
	Consultation string `json:"consultation"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every upsert or patch.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Book holds metadata for a book resolved from the external catalog.
// Books are shared by many reading records and deduplicated by
// GoogleBooksID; they are never owned by a single user.
type Book struct {
	// ID is the unique identifier for the book.
	ID int64 `json:"id"`
	// GoogleBooksID is the external catalog identifier. Unique.
	GoogleBooksID string `json:"googleBooksId"`
	// Title is the book title.
	Title string `json:"title"`
	// Authors is the ordered list of author names. Possibly empty,
	// never absent.
	Authors []string `json:"authors"`
	// Description holds an optional synopsis.
	Description string `json:"description"`
	// Thumbnail is an optional cover image URL.
	Thumbnail string `json:"thumbnail"`
	// PublishedDate is an optional publication date string.
	PublishedDate string `json:"publishedDate"`
	// PageCount is the optional number of pages (0 when unknown).
	PageCount int `json:"pageCount"`
	// Categories is the ordered list of catalog categories.
	Categories []string `json:"categories"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// ReadingRecord represents one reading of a book by a user. Every
// submission creates a new record; only the referenced Book is
// deduplicated.
type ReadingRecord struct {
	// ID is the unique identifier for the record.
	ID int64 `json:"id"`
	// UserID is the owning user.
	UserID int64 `json:"userId"`
	// BookID references the book that was read. The book must exist
	// before the record is created.
	BookID int64 `json:"bookId"`
	// Rating is 0.5-5.0 in 0.5 increments.
	Rating float64 `json:"rating"`
	// Review holds an optional free-text review. Always present in
	// JSON, possibly empty.
	Review string `json:"review"`
	// Tags is the ordered list of user tags. Possibly empty, never
	// absent.
	Tags []string `json:"tags"`
	// FinishedDate is the optional YYYY-MM-DD completion date.
	FinishedDate string `json:"finishedDate"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every patch.
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReadingRecordWithBook is a reading record denormalized with its book,
// the shape returned by the reading-records list endpoint.
type ReadingRecordWithBook struct {
	ReadingRecord
	// Book is the referenced book.
	Book Book `json:"book"`
}

// BookData is the caller-supplied book description accompanying a new
// reading record, matching the shape returned by the book search endpoint.
type BookData struct {
	// GoogleBooksID is the external catalog identifier.
	GoogleBooksID string `json:"googleBooksId"`
	// Title is the book title.
	Title string `json:"title"`
	// Authors is the ordered list of author names.
	Authors []string `json:"authors"`
	// Description holds an optional synopsis.
	Description string `json:"description"`
	// Thumbnail is an optional cover image URL.
	Thumbnail string `json:"thumbnail"`
	// PublishedDate is an optional publication date string.
	PublishedDate string `json:"publishedDate"`
	// PageCount is the optional number of pages.
	PageCount int `json:"pageCount"`
	// Categories is the ordered list of catalog categories.
	Categories []string `json:"categories"`
}
