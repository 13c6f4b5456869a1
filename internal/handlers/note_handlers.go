package handlers

import (
	"net/http"

	"notehub/internal/models"
	"notehub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NoteHandlers handles note CRUD, toggles, listing and statistics. All
// operations are scoped to the authenticated user.
type NoteHandlers struct {
	noteSvc services.NoteService
}

func NewNoteHandlers(noteSvc services.NoteService) *NoteHandlers {
	return &NoteHandlers{noteSvc: noteSvc}
}

func noteIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// ListNotesRequest represents the listing query parameters.
type ListNotesRequest struct {
	Category   string `query:"category"`
	IsPinned   *bool  `query:"is_pinned"`
	IsArchived *bool  `query:"is_archived"`
	Search     string `query:"search"`
	SortBy     string `query:"sort_by"`
	SortOrder  string `query:"sort_order"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

// ListNotes handles filtered, sorted, paginated note listings with
// optional free-text search. Archived notes are hidden unless
// is_archived=true is passed explicitly.
func (h *NoteHandlers) ListNotes(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}

	var req ListNotesRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "Invalid query parameters")
	}

	filter := &models.NoteFilter{
		IsPinned:  req.IsPinned,
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      req.Page,
		Limit:     req.Limit,
	}
	if req.Category != "" {
		filter.Category = &req.Category
	}
	if req.IsArchived != nil {
		filter.IsArchived = *req.IsArchived
	}

	list, err := h.noteSvc.List(c.Request().Context(), userID, filter)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Notes retrieved", list)
}

// CreateNote handles creating a note owned by the current user.
func (h *NoteHandlers) CreateNote(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}

	var in models.NoteCreate
	if err := c.Bind(&in); err != nil {
		return respondBadRequest(c, "Invalid request format")
	}

	note, err := h.noteSvc.Create(c.Request().Context(), userID, &in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusCreated, "Note created successfully", note)
}

// GetNote handles fetching a single note by id.
func (h *NoteHandlers) GetNote(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}
	noteID, err := noteIDParam(c)
	if err != nil {
		return respondBadRequest(c, "Invalid note ID format")
	}

	note, err := h.noteSvc.GetByID(c.Request().Context(), userID, noteID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Note retrieved", note)
}

// UpdateNote handles a partial note update; omitted fields are left
// untouched.
func (h *NoteHandlers) UpdateNote(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}
	noteID, err := noteIDParam(c)
	if err != nil {
		return respondBadRequest(c, "Invalid note ID format")
	}

	var in models.NoteUpdate
	if err := c.Bind(&in); err != nil {
		return respondBadRequest(c, "Invalid request format")
	}

	note, err := h.noteSvc.Update(c.Request().Context(), userID, noteID, &in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Note updated successfully", note)
}

// DeleteNote handles a hard delete of an owned note.
func (h *NoteHandlers) DeleteNote(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}
	noteID, err := noteIDParam(c)
	if err != nil {
		return respondBadRequest(c, "Invalid note ID format")
	}

	if err := h.noteSvc.Delete(c.Request().Context(), userID, noteID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Note deleted successfully", map[string]any{"id": noteID})
}

// TogglePin flips a note's pinned flag.
func (h *NoteHandlers) TogglePin(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}
	noteID, err := noteIDParam(c)
	if err != nil {
		return respondBadRequest(c, "Invalid note ID format")
	}

	pinned, err := h.noteSvc.TogglePin(c.Request().Context(), userID, noteID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Note pin toggled", map[string]any{"id": noteID, "is_pinned": pinned})
}

// ToggleArchive flips a note's archived flag.
func (h *NoteHandlers) ToggleArchive(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}
	noteID, err := noteIDParam(c)
	if err != nil {
		return respondBadRequest(c, "Invalid note ID format")
	}

	archived, err := h.noteSvc.ToggleArchive(c.Request().Context(), userID, noteID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Note archive toggled", map[string]any{"id": noteID, "is_archived": archived})
}

// NoteStats returns aggregate counts over the user's non-archived
// notes; a user with no notes gets the zero-filled shape.
func (h *NoteHandlers) NoteStats(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return respondUnauthorized(c)
	}

	stats, err := h.noteSvc.Stats(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, http.StatusOK, "Statistics retrieved", stats)
}
