package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CategoryPersonal = "personal"
	CategoryWork     = "work"
	CategoryCreative = "creative"
	CategoryStudy    = "study"
)

// NoteCategories lists the fixed category enumeration in stable order.
var NoteCategories = []string{CategoryPersonal, CategoryWork, CategoryCreative, CategoryStudy}

// ValidCategory reports whether c is one of the fixed note categories.
func ValidCategory(c string) bool {
	for _, v := range NoteCategories {
		if c == v {
			return true
		}
	}
	return false
}

const (
	DefaultNoteColor = "#ffffff"

	MaxTitleLength   = 200
	MaxContentLength = 10000
	MaxTags          = 10
	MaxTagLength     = 30
)

type Note struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	Category   string    `json:"category" db:"category"`
	Tags       []string  `json:"tags" db:"tags"`
	IsPinned   bool      `json:"is_pinned" db:"is_pinned"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	Color      string    `json:"color" db:"color"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// NoteFilter holds the listing criteria for note queries. The zero value
// is not usable directly; services normalize it before it reaches the
// repository.
type NoteFilter struct {
	Category   *string `json:"category,omitempty"`    // exact match against the fixed enumeration
	IsPinned   *bool   `json:"is_pinned,omitempty"`   // exact boolean match
	IsArchived bool    `json:"is_archived"`           // archived notes are hidden unless requested
	Search     string  `json:"search,omitempty"`      // weighted free-text match over title, tags, content
	SortBy     string  `json:"sort_by,omitempty"`     // created_at, updated_at or title
	SortOrder  string  `json:"sort_order,omitempty"`  // asc or desc
	Page       int     `json:"page,omitempty"`        // 1-based
	Limit      int     `json:"limit,omitempty"`       // page size, 1..100
}

// Offset returns the row offset implied by Page and Limit.
func (f *NoteFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Pagination describes the page window of a listing response. TotalPages
// is the ceiling of TotalCount/limit computed from an independent count
// over the same predicate as the listing.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalCount  int  `json:"total_count"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

type NoteList struct {
	Notes      []*Note    `json:"notes"`
	Pagination Pagination `json:"pagination"`
}

// CategoryCounts always carries all four category keys, zero-filled.
type CategoryCounts struct {
	Personal int `json:"personal"`
	Work     int `json:"work"`
	Creative int `json:"creative"`
	Study    int `json:"study"`
}

// NoteStats aggregates non-archived notes for one owner.
type NoteStats struct {
	TotalNotes  int            `json:"total_notes"`
	PinnedNotes int            `json:"pinned_notes"`
	Categories  CategoryCounts `json:"categories"`
}
