package repositories

import (
	"context"
	"errors"
	"fmt"

	"notehub/internal/common"
	"notehub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	TogglePin(ctx context.Context, userID, id uuid.UUID) (bool, error)
	ToggleArchive(ctx context.Context, userID, id uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID, filter *models.NoteFilter) ([]*models.Note, error)
	Count(ctx context.Context, userID uuid.UUID, filter *models.NoteFilter) (int, error)
	RecentlyUpdated(ctx context.Context, userID uuid.UUID, pinnedOnly bool, limit int) ([]*models.Note, error)
	CountUpdatedToday(ctx context.Context, userID uuid.UUID) (int, error)
	Stats(ctx context.Context, userID uuid.UUID) (*models.NoteStats, error)
}

type noteRepo struct {
	db Database
}

func NewNoteRepo(db Database) NoteRepository {
	return &noteRepo{db: db}
}

const noteColumns = `id, user_id, title, content, category, tags, is_pinned, is_archived, color, created_at, updated_at`

// tsRankWeights orders {D, C, B, A}: content 0.5, tags 0.8, title 1.0,
// matching the title > tags > content search weighting.
const tsRankWeights = `'{0.1, 0.5, 0.8, 1.0}'`

func (r *noteRepo) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, user_id, title, content, category, tags, is_pinned, is_archived, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.Category,
		note.Tags, note.IsPinned, note.IsArchived, note.Color).
		Scan(&note.CreatedAt, &note.UpdatedAt)
}

func (r *noteRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Note, error) {
	note := &models.Note{}
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, userID, id).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Content, &note.Category, &note.Tags,
		&note.IsPinned, &note.IsArchived, &note.Color, &note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (r *noteRepo) Update(ctx context.Context, note *models.Note) error {
	query := `
		UPDATE notes
		SET title = $1, content = $2, category = $3, tags = $4, is_pinned = $5, is_archived = $6, color = $7, updated_at = NOW()
		WHERE user_id = $8 AND id = $9
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		note.Title, note.Content, note.Category, note.Tags,
		note.IsPinned, note.IsArchived, note.Color, note.UserID, note.ID).
		Scan(&note.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrNoteNotFound
	}
	return err
}

func (r *noteRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE user_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNoteNotFound
	}
	return nil
}

func (r *noteRepo) TogglePin(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `
		UPDATE notes
		SET is_pinned = NOT is_pinned, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING is_pinned
	`
	var pinned bool
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&pinned)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, common.ErrNoteNotFound
	}
	return pinned, err
}

func (r *noteRepo) ToggleArchive(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	query := `
		UPDATE notes
		SET is_archived = NOT is_archived, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING is_archived
	`
	var archived bool
	err := r.db.QueryRow(ctx, query, userID, id).Scan(&archived)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, common.ErrNoteNotFound
	}
	return archived, err
}

// filterClause builds the WHERE clause shared by List and Count. The
// returned searchArg is the positional index of the search term, or 0
// when no search was requested.
func filterClause(userID uuid.UUID, filter *models.NoteFilter) (string, []any, int) {
	clause := `WHERE user_id = $1 AND is_archived = $2`
	args := []any{userID, filter.IsArchived}
	searchArg := 0

	if filter.Category != nil {
		args = append(args, *filter.Category)
		clause += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.IsPinned != nil {
		args = append(args, *filter.IsPinned)
		clause += fmt.Sprintf(` AND is_pinned = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		searchArg = len(args)
		clause += fmt.Sprintf(` AND search_vector @@ plainto_tsquery('english', $%d)`, searchArg)
	}

	return clause, args, searchArg
}

var noteSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
}

func (r *noteRepo) List(ctx context.Context, userID uuid.UUID, filter *models.NoteFilter) ([]*models.Note, error) {
	clause, args, searchArg := filterClause(userID, filter)

	sortColumn, ok := noteSortColumns[filter.SortBy]
	if !ok {
		sortColumn = "updated_at"
	}
	sortOrder := common.ValidateSortOrder(filter.SortOrder)

	orderBy := fmt.Sprintf(`ORDER BY %s %s`, sortColumn, sortOrder)
	if searchArg > 0 {
		// Rank matches first, title weighted highest; the requested
		// sort breaks ties between equally ranked notes.
		orderBy = fmt.Sprintf(`ORDER BY ts_rank(%s, search_vector, plainto_tsquery('english', $%d)) DESC, %s %s`,
			tsRankWeights, searchArg, sortColumn, sortOrder)
	}

	args = append(args, filter.Limit)
	limitArg := len(args)
	args = append(args, filter.Offset())
	offsetArg := len(args)

	query := fmt.Sprintf(`
		SELECT `+noteColumns+`
		FROM notes
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, clause, orderBy, limitArg, offsetArg)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(
			&note.ID, &note.UserID, &note.Title, &note.Content, &note.Category, &note.Tags,
			&note.IsPinned, &note.IsArchived, &note.Color, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// Count runs over the identical predicate as List, without the page
// window, so pagination totals match the listing.
func (r *noteRepo) Count(ctx context.Context, userID uuid.UUID, filter *models.NoteFilter) (int, error) {
	clause, args, _ := filterClause(userID, filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM notes %s`, clause)

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *noteRepo) RecentlyUpdated(ctx context.Context, userID uuid.UUID, pinnedOnly bool, limit int) ([]*models.Note, error) {
	query := `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE user_id = $1 AND is_archived = FALSE AND ($2 = FALSE OR is_pinned = TRUE)
		ORDER BY updated_at DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, userID, pinnedOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(
			&note.ID, &note.UserID, &note.Title, &note.Content, &note.Category, &note.Tags,
			&note.IsPinned, &note.IsArchived, &note.Color, &note.CreatedAt, &note.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// CountUpdatedToday counts non-archived notes touched since midnight in
// the database server's timezone.
func (r *noteRepo) CountUpdatedToday(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notes
		WHERE user_id = $1 AND is_archived = FALSE AND updated_at >= date_trunc('day', NOW())
	`
	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Stats aggregates non-archived notes in a single grouped-count query.
// A user with zero notes still gets one all-zero row.
func (r *noteRepo) Stats(ctx context.Context, userID uuid.UUID) (*models.NoteStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_pinned),
		       COUNT(*) FILTER (WHERE category = 'personal'),
		       COUNT(*) FILTER (WHERE category = 'work'),
		       COUNT(*) FILTER (WHERE category = 'creative'),
		       COUNT(*) FILTER (WHERE category = 'study')
		FROM notes
		WHERE user_id = $1 AND is_archived = FALSE
	`
	stats := &models.NoteStats{}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.TotalNotes, &stats.PinnedNotes,
		&stats.Categories.Personal, &stats.Categories.Work,
		&stats.Categories.Creative, &stats.Categories.Study)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
