package services

import (
	"context"
	"strings"

	"notehub/internal/common"
	"notehub/internal/models"
	"notehub/internal/repositories"

	"github.com/google/uuid"
)

// NoteService owns note CRUD, owner scoping, the list query contract
// and statistics aggregation. Every operation is scoped to the owner:
// a note is never visible or mutable by any other identity.
type NoteService interface {
	Create(ctx context.Context, userID uuid.UUID, in *models.NoteCreate) (*models.Note, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Note, error)
	Update(ctx context.Context, userID, id uuid.UUID, in *models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	TogglePin(ctx context.Context, userID, id uuid.UUID) (bool, error)
	ToggleArchive(ctx context.Context, userID, id uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID, filter *models.NoteFilter) (*models.NoteList, error)
	Stats(ctx context.Context, userID uuid.UUID) (*models.NoteStats, error)
}

type noteService struct {
	noteRepo repositories.NoteRepository
}

func NewNoteService(noteRepo repositories.NoteRepository) NoteService {
	return &noteService{noteRepo: noteRepo}
}

func (s *noteService) Create(ctx context.Context, userID uuid.UUID, in *models.NoteCreate) (*models.Note, error) {
	verr := &common.ValidationError{}

	title := strings.TrimSpace(in.Title)
	if err := common.ValidateBoundedString(title, "title", 1, models.MaxTitleLength); err != nil {
		verr.Add("title", err.Error())
	}

	content := strings.TrimSpace(in.Content)
	if err := common.ValidateBoundedString(content, "content", 1, models.MaxContentLength); err != nil {
		verr.Add("content", err.Error())
	}

	category := in.Category
	if category == "" {
		category = models.CategoryPersonal
	} else if !models.ValidCategory(category) {
		verr.Add("category", "category must be one of: personal, work, creative, study")
	}

	tags := common.NormalizeTags(in.Tags)
	if err := common.ValidateTags(tags, models.MaxTags, models.MaxTagLength); err != nil {
		verr.Add("tags", err.Error())
	}

	color := in.Color
	if color == "" {
		color = models.DefaultNoteColor
	} else if err := common.ValidateHexColor(color); err != nil {
		verr.Add("color", err.Error())
	}

	if verr.HasErrors() {
		return nil, verr
	}

	note := &models.Note{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    title,
		Content:  content,
		Category: category,
		Tags:     tags,
		Color:    color,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, userID, id)
}

func (s *noteService) Update(ctx context.Context, userID, id uuid.UUID, in *models.NoteUpdate) (*models.Note, error) {
	verr := &common.ValidationError{}

	if in.Title != nil {
		*in.Title = strings.TrimSpace(*in.Title)
		if err := common.ValidateBoundedString(*in.Title, "title", 1, models.MaxTitleLength); err != nil {
			verr.Add("title", err.Error())
		}
	}
	if in.Content != nil {
		*in.Content = strings.TrimSpace(*in.Content)
		if err := common.ValidateBoundedString(*in.Content, "content", 1, models.MaxContentLength); err != nil {
			verr.Add("content", err.Error())
		}
	}
	if in.Category != nil && !models.ValidCategory(*in.Category) {
		verr.Add("category", "category must be one of: personal, work, creative, study")
	}
	if in.Tags != nil {
		in.Tags = common.NormalizeTags(in.Tags)
		if err := common.ValidateTags(in.Tags, models.MaxTags, models.MaxTagLength); err != nil {
			verr.Add("tags", err.Error())
		}
	}
	if in.Color != nil {
		if err := common.ValidateHexColor(*in.Color); err != nil {
			verr.Add("color", err.Error())
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	// The lookup predicate is owner-scoped, so a note owned by someone
	// else surfaces as not found here, identical to a missing id.
	note, err := s.noteRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		note.Title = *in.Title
	}
	if in.Content != nil {
		note.Content = *in.Content
	}
	if in.Category != nil {
		note.Category = *in.Category
	}
	if in.Tags != nil {
		note.Tags = in.Tags
	}
	if in.IsPinned != nil {
		note.IsPinned = *in.IsPinned
	}
	if in.IsArchived != nil {
		note.IsArchived = *in.IsArchived
	}
	if in.Color != nil {
		note.Color = *in.Color
	}

	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.noteRepo.Delete(ctx, userID, id)
}

func (s *noteService) TogglePin(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	return s.noteRepo.TogglePin(ctx, userID, id)
}

func (s *noteService) ToggleArchive(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	return s.noteRepo.ToggleArchive(ctx, userID, id)
}

// listSortColumns maps the accepted sortBy values to their columns.
var listSortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"title":      "title",
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (s *noteService) List(ctx context.Context, userID uuid.UUID, filter *models.NoteFilter) (*models.NoteList, error) {
	if filter == nil {
		filter = &models.NoteFilter{}
	}

	if filter.Category != nil && !models.ValidCategory(*filter.Category) {
		verr := &common.ValidationError{}
		return nil, verr.Add("category", "category must be one of: personal, work, creative, study")
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if column, ok := listSortColumns[filter.SortBy]; ok {
		filter.SortBy = column
	} else {
		filter.SortBy = "updated_at"
	}
	filter.SortOrder = common.ValidateSortOrder(filter.SortOrder)
	filter.Search = strings.TrimSpace(filter.Search)

	notes, err := s.noteRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.noteRepo.Count(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	if notes == nil {
		notes = []*models.Note{}
	}

	return &models.NoteList{
		Notes: notes,
		Pagination: models.Pagination{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNextPage: filter.Page < totalPages,
			HasPrevPage: filter.Page > 1,
		},
	}, nil
}

func (s *noteService) Stats(ctx context.Context, userID uuid.UUID) (*models.NoteStats, error) {
	return s.noteRepo.Stats(ctx, userID)
}
