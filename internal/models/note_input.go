package models

// NoteCreate carries the fields a user supplies when creating a note.
// Category and Color fall back to defaults when empty.
type NoteCreate struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Color    string   `json:"color"`
}

// NoteUpdate is a partial update: nil fields are left untouched.
type NoteUpdate struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	Category   *string  `json:"category"`
	Tags       []string `json:"tags"`
	IsPinned   *bool    `json:"is_pinned"`
	IsArchived *bool    `json:"is_archived"`
	Color      *string  `json:"color"`
}
