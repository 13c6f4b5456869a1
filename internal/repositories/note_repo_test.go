package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"notehub/internal/common"
	"notehub/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type NoteRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    NoteRepository
	userID1 uuid.UUID
	userID2 uuid.UUID
	noteID  uuid.UUID
	context context.Context
}

func (suite *NoteRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewNoteRepo(mock)
	suite.userID1 = uuid.New()
	suite.userID2 = uuid.New()
	suite.noteID = uuid.New()
	suite.context = context.Background()
}

func (suite *NoteRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestNoteRepoTestSuite(t *testing.T) {
	suite.Run(t, new(NoteRepoTestSuite))
}

func noteRow(note *models.Note) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "title", "content", "category", "tags", "is_pinned", "is_archived", "color", "created_at", "updated_at"}).
		AddRow(note.ID, note.UserID, note.Title, note.Content, note.Category, note.Tags,
			note.IsPinned, note.IsArchived, note.Color, note.CreatedAt, note.UpdatedAt)
}

func (suite *NoteRepoTestSuite) TestCreate_Success() {
	note := &models.Note{
		ID:       uuid.New(),
		UserID:   suite.userID1,
		Title:    "Groceries",
		Content:  "milk, eggs",
		Category: models.CategoryPersonal,
		Tags:     []string{"errands"},
		Color:    models.DefaultNoteColor,
	}
	now := time.Now()

	suite.mock.ExpectQuery(`
			INSERT INTO notes \(id, user_id, title, content, category, tags, is_pinned, is_archived, color, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8, \$9, NOW\(\), NOW\(\)\)
			RETURNING created_at, updated_at
	`).WithArgs(note.ID, note.UserID, note.Title, note.Content, note.Category,
		note.Tags, note.IsPinned, note.IsArchived, note.Color).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	err := suite.repo.Create(suite.context, note)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), now, note.CreatedAt)
	assert.Equal(suite.T(), now, note.UpdatedAt)
}

func (suite *NoteRepoTestSuite) TestGetByID_Success() {
	note := &models.Note{
		ID:       suite.noteID,
		UserID:   suite.userID1,
		Title:    "Meeting notes",
		Content:  "quarterly planning",
		Category: models.CategoryWork,
		Tags:     []string{"planning", "q3"},
		Color:    "#ffcc00",
	}

	suite.mock.ExpectQuery(`
			SELECT id, user_id, title, content, category, tags, is_pinned, is_archived, color, created_at, updated_at
			FROM notes
			WHERE user_id = \$1 AND id = \$2
	`).WithArgs(suite.userID1, suite.noteID).
		WillReturnRows(noteRow(note))

	result, err := suite.repo.GetByID(suite.context, suite.userID1, suite.noteID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), note.Title, result.Title)
	assert.Equal(suite.T(), note.Tags, result.Tags)
	assert.Equal(suite.T(), note.UserID, result.UserID)
}

func (suite *NoteRepoTestSuite) TestGetByID_WrongOwner() {
	suite.mock.ExpectQuery(`
			SELECT id, user_id, title, content, category, tags, is_pinned, is_archived, color, created_at, updated_at
			FROM notes
			WHERE user_id = \$1 AND id = \$2
	`).WithArgs(suite.userID2, suite.noteID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, suite.userID2, suite.noteID)
	assert.ErrorIs(suite.T(), err, common.ErrNoteNotFound)
	assert.Nil(suite.T(), result)
}

func (suite *NoteRepoTestSuite) TestUpdate_NotFound() {
	note := &models.Note{
		ID:       suite.noteID,
		UserID:   suite.userID1,
		Title:    "Gone",
		Content:  "already deleted",
		Category: models.CategoryPersonal,
		Color:    models.DefaultNoteColor,
	}

	suite.mock.ExpectQuery(`
			UPDATE notes
			SET title = \$1, content = \$2, category = \$3, tags = \$4, is_pinned = \$5, is_archived = \$6, color = \$7, updated_at = NOW\(\)
			WHERE user_id = \$8 AND id = \$9
			RETURNING updated_at
	`).WithArgs(note.Title, note.Content, note.Category, note.Tags,
		note.IsPinned, note.IsArchived, note.Color, note.UserID, note.ID).
		WillReturnError(pgx.ErrNoRows)

	err := suite.repo.Update(suite.context, note)
	assert.ErrorIs(suite.T(), err, common.ErrNoteNotFound)
}

func (suite *NoteRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(`DELETE FROM notes WHERE user_id = \$1 AND id = \$2`).
		WithArgs(suite.userID1, suite.noteID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.userID1, suite.noteID)
	assert.NoError(suite.T(), err)
}

func (suite *NoteRepoTestSuite) TestDelete_WrongOwner() {
	suite.mock.ExpectExec(`DELETE FROM notes WHERE user_id = \$1 AND id = \$2`).
		WithArgs(suite.userID2, suite.noteID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.userID2, suite.noteID)
	assert.ErrorIs(suite.T(), err, common.ErrNoteNotFound)
}

func (suite *NoteRepoTestSuite) TestTogglePin_Success() {
	suite.mock.ExpectQuery(`
			UPDATE notes
			SET is_pinned = NOT is_pinned, updated_at = NOW\(\)
			WHERE user_id = \$1 AND id = \$2
			RETURNING is_pinned
	`).WithArgs(suite.userID1, suite.noteID).
		WillReturnRows(pgxmock.NewRows([]string{"is_pinned"}).AddRow(true))

	pinned, err := suite.repo.TogglePin(suite.context, suite.userID1, suite.noteID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), pinned)
}

func (suite *NoteRepoTestSuite) TestToggleArchive_NotFound() {
	suite.mock.ExpectQuery(`
			UPDATE notes
			SET is_archived = NOT is_archived, updated_at = NOW\(\)
			WHERE user_id = \$1 AND id = \$2
			RETURNING is_archived
	`).WithArgs(suite.userID1, suite.noteID).
		WillReturnError(pgx.ErrNoRows)

	archived, err := suite.repo.ToggleArchive(suite.context, suite.userID1, suite.noteID)
	assert.ErrorIs(suite.T(), err, common.ErrNoteNotFound)
	assert.False(suite.T(), archived)
}

func (suite *NoteRepoTestSuite) TestList_DefaultFilter() {
	filter := &models.NoteFilter{
		SortBy:    "updated_at",
		SortOrder: "DESC",
		Page:      1,
		Limit:     20,
	}

	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "content", "category", "tags", "is_pinned", "is_archived", "color", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.userID1, "First", "body", "personal", []string{}, false, false, "#ffffff", time.Now(), time.Now()).
		AddRow(uuid.New(), suite.userID1, "Second", "body", "work", []string{"x"}, true, false, "#ffffff", time.Now(), time.Now())

	// Archived notes are excluded by default; only the page window follows
	// the two predicate args.
	suite.mock.ExpectQuery(`SELECT (.+) FROM notes\s+WHERE user_id = \$1 AND is_archived = \$2\s+ORDER BY updated_at DESC\s+LIMIT \$3 OFFSET \$4`).
		WithArgs(suite.userID1, false, 20, 0).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, suite.userID1, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), "First", result[0].Title)
}

func (suite *NoteRepoTestSuite) TestList_CategoryAndPinned() {
	category := models.CategoryWork
	pinned := true
	filter := &models.NoteFilter{
		Category:  &category,
		IsPinned:  &pinned,
		SortBy:    "created_at",
		SortOrder: "ASC",
		Page:      2,
		Limit:     10,
	}

	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "content", "category", "tags", "is_pinned", "is_archived", "color", "created_at", "updated_at"})

	suite.mock.ExpectQuery(`WHERE user_id = \$1 AND is_archived = \$2 AND category = \$3 AND is_pinned = \$4\s+ORDER BY created_at ASC\s+LIMIT \$5 OFFSET \$6`).
		WithArgs(suite.userID1, false, category, pinned, 10, 10).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, suite.userID1, filter)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}

func (suite *NoteRepoTestSuite) TestList_ArchivedOnly() {
	filter := &models.NoteFilter{
		IsArchived: true,
		SortBy:     "updated_at",
		SortOrder:  "DESC",
		Page:       1,
		Limit:      20,
	}

	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "content", "category", "tags", "is_pinned", "is_archived", "color", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.userID1, "Old plans", "body", "personal", []string{}, false, true, "#ffffff", time.Now(), time.Now())

	// With is_archived bound to true the listing flips to archived notes
	// only; active notes never satisfy the predicate.
	suite.mock.ExpectQuery(`SELECT (.+) FROM notes\s+WHERE user_id = \$1 AND is_archived = \$2\s+ORDER BY updated_at DESC\s+LIMIT \$3 OFFSET \$4`).
		WithArgs(suite.userID1, true, 20, 0).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, suite.userID1, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
	assert.True(suite.T(), result[0].IsArchived)
}

func (suite *NoteRepoTestSuite) TestCount_ArchivedOnly() {
	filter := &models.NoteFilter{
		IsArchived: true,
		SortBy:     "updated_at",
		SortOrder:  "DESC",
		Page:       1,
		Limit:      20,
	}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notes WHERE user_id = \$1 AND is_archived = \$2`).
		WithArgs(suite.userID1, true).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	count, err := suite.repo.Count(suite.context, suite.userID1, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, count)
}

func (suite *NoteRepoTestSuite) TestList_SearchOrdersByRank() {
	filter := &models.NoteFilter{
		Search:    "project deadline",
		SortBy:    "updated_at",
		SortOrder: "DESC",
		Page:      1,
		Limit:     20,
	}

	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "content", "category", "tags", "is_pinned", "is_archived", "color", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.userID1, "Project deadline", "title match ranks first", "work", []string{}, false, false, "#ffffff", time.Now(), time.Now())

	suite.mock.ExpectQuery(`AND search_vector @@ plainto_tsquery\('english', \$3\)\s+ORDER BY ts_rank\('\{0\.1, 0\.5, 0\.8, 1\.0\}', search_vector, plainto_tsquery\('english', \$3\)\) DESC, updated_at DESC`).
		WithArgs(suite.userID1, false, "project deadline", 20, 0).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, suite.userID1, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
}

func (suite *NoteRepoTestSuite) TestCount_MatchesListPredicate() {
	filter := &models.NoteFilter{
		Search:    "deadline",
		SortBy:    "updated_at",
		SortOrder: "DESC",
		Page:      1,
		Limit:     20,
	}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notes WHERE user_id = \$1 AND is_archived = \$2 AND search_vector @@ plainto_tsquery\('english', \$3\)`).
		WithArgs(suite.userID1, false, "deadline").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := suite.repo.Count(suite.context, suite.userID1, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7, count)
}

func (suite *NoteRepoTestSuite) TestRecentlyUpdated_PinnedOnly() {
	rows := pgxmock.NewRows([]string{"id", "user_id", "title", "content", "category", "tags", "is_pinned", "is_archived", "color", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.userID1, "Pinned", "body", "personal", []string{}, true, false, "#ffffff", time.Now(), time.Now())

	suite.mock.ExpectQuery(`WHERE user_id = \$1 AND is_archived = FALSE AND \(\$2 = FALSE OR is_pinned = TRUE\)\s+ORDER BY updated_at DESC\s+LIMIT \$3`).
		WithArgs(suite.userID1, true, 5).
		WillReturnRows(rows)

	result, err := suite.repo.RecentlyUpdated(suite.context, suite.userID1, true, 5)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
	assert.True(suite.T(), result[0].IsPinned)
}

func (suite *NoteRepoTestSuite) TestCountUpdatedToday() {
	suite.mock.ExpectQuery(`WHERE user_id = \$1 AND is_archived = FALSE AND updated_at >= date_trunc\('day', NOW\(\)\)`).
		WithArgs(suite.userID1).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repo.CountUpdatedToday(suite.context, suite.userID1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
}

func (suite *NoteRepoTestSuite) TestStats_Success() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\),`).
		WithArgs(suite.userID1).
		WillReturnRows(pgxmock.NewRows([]string{"total", "pinned", "personal", "work", "creative", "study"}).
			AddRow(10, 2, 4, 3, 2, 1))

	stats, err := suite.repo.Stats(suite.context, suite.userID1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 10, stats.TotalNotes)
	assert.Equal(suite.T(), 2, stats.PinnedNotes)
	assert.Equal(suite.T(), 4, stats.Categories.Personal)
	assert.Equal(suite.T(), 1, stats.Categories.Study)
}

func (suite *NoteRepoTestSuite) TestStats_NoNotes() {
	// The grouped count always yields exactly one row, zero-filled for a
	// user without notes.
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\),`).
		WithArgs(suite.userID1).
		WillReturnRows(pgxmock.NewRows([]string{"total", "pinned", "personal", "work", "creative", "study"}).
			AddRow(0, 0, 0, 0, 0, 0))

	stats, err := suite.repo.Stats(suite.context, suite.userID1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, stats.TotalNotes)
	assert.Equal(suite.T(), 0, stats.Categories.Work)
}

func (suite *NoteRepoTestSuite) TestList_DatabaseError() {
	filter := &models.NoteFilter{SortBy: "updated_at", SortOrder: "DESC", Page: 1, Limit: 20}

	suite.mock.ExpectQuery(`SELECT (.+) FROM notes`).
		WithArgs(suite.userID1, false, 20, 0).
		WillReturnError(errors.New("database connection failed"))

	result, err := suite.repo.List(suite.context, suite.userID1, filter)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}
