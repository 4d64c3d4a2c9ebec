// Package records holds the client-side reading log logic: fetching
// records from the server and filtering, sorting and summarizing them
// locally. All transformations are pure: they operate on an in-memory
// list and produce a new list without mutating the input.
package records

import (
	"sort"
	"strings"

	"github.com/tkhr-dev/teamlog/internal/models"
)

// SortKey selects the ordering of a record list.
type SortKey string

const (
	// SortByDate orders by finished date, newest first. Records with
	// no finished date sort last.
	SortByDate SortKey = "date"
	// SortByRating orders by rating, highest first.
	SortByRating SortKey = "rating"
)

// Filters holds the active filter conditions. A zero value passes every
// record.
type Filters struct {
	// SearchText matches case-insensitively against the book title and
	// author names. Empty means no text filtering.
	SearchText string
	// SelectedTags keeps records whose tag set intersects it. Empty
	// means no tag filtering.
	SelectedTags []string
}

// Summary holds derived counts over a record list.
type Summary struct {
	// Total is the number of records.
	Total int
	// AverageRating is the arithmetic mean rating, 0 for an empty list.
	AverageRating float64
	// HighlyRated counts records with rating >= 4.
	HighlyRated int
	// Reviewed counts records with a non-empty review.
	Reviewed int
}

// TagUniverse returns the sorted set of distinct tags appearing across
// all records.
func TagUniverse(records []models.ReadingRecordWithBook) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, tag := range rec.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// matches reports whether a record passes the filter conditions. Each
// clause is vacuously satisfied when its condition is unset.
func (f Filters) matches(rec models.ReadingRecordWithBook) bool {
	if f.SearchText != "" {
		search := strings.ToLower(f.SearchText)
		ok := strings.Contains(strings.ToLower(rec.Book.Title), search)
		if !ok {
			for _, author := range rec.Book.Authors {
				if strings.Contains(strings.ToLower(author), search) {
					ok = true
					break
				}
			}
		}
		if !ok {
			return false
		}
	}

	if len(f.SelectedTags) > 0 {
		recordTags := make(map[string]struct{}, len(rec.Tags))
		for _, tag := range rec.Tags {
			recordTags[tag] = struct{}{}
		}
		ok := false
		for _, tag := range f.SelectedTags {
			if _, found := recordTags[tag]; found {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}

	return true
}

// Apply filters and sorts the records, returning a new list. Ties keep
// their incoming relative order.
func Apply(records []models.ReadingRecordWithBook, filters Filters, sortBy SortKey) []models.ReadingRecordWithBook {
	out := make([]models.ReadingRecordWithBook, 0, len(records))
	for _, rec := range records {
		if filters.matches(rec) {
			out = append(out, rec)
		}
	}

	if sortBy == SortByRating {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	} else {
		// An absent finished date compares as the earliest possible
		// value, so it sorts last under descending order.
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].FinishedDate > out[j].FinishedDate
		})
	}
	return out
}

// Summarize derives counts over the records. The mean is 0 for an empty
// list.
func Summarize(records []models.ReadingRecordWithBook) Summary {
	s := Summary{Total: len(records)}
	if s.Total == 0 {
		return s
	}

	var sum float64
	for _, rec := range records {
		sum += rec.Rating
		if rec.Rating >= 4 {
			s.HighlyRated++
		}
		if rec.Review != "" {
			s.Reviewed++
		}
	}
	s.AverageRating = sum / float64(s.Total)
	return s
}
