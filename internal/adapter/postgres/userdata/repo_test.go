package userdata

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscripture/lectern/internal/domain"
)

func intPtr(n int) *int { return &n }

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestRepo_Get(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	lastRead := domain.Reference{Book: "gen", Chapter: 3}
	bookmarks := []domain.Reference{{Book: "psa", Chapter: 23, Verse: intPtr(1)}}
	highlights := []domain.Highlight{{Reference: domain.Reference{Book: "jhn", Chapter: 3, Verse: intPtr(16)}, Color: "yellow"}}
	plans := []domain.ReadingPlan{{ID: "plan-1", Name: "Canon in a year", Progress: 0.25}}

	mock := newMock(t)
	rows := pgxmock.NewRows([]string{"user_id", "last_read", "bookmarks", "highlights", "reading_plans", "updated_at"}).
		AddRow(userID, mustJSON(t, lastRead), mustJSON(t, bookmarks), mustJSON(t, highlights), mustJSON(t, plans), now)
	mock.ExpectQuery(`SELECT .+ FROM user_bible_data`).
		WithArgs(userID).
		WillReturnRows(rows)

	repo := New(mock)
	data, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, data.UserID)
	require.NotNil(t, data.LastRead)
	assert.Equal(t, lastRead, *data.LastRead)
	assert.Equal(t, bookmarks, data.Bookmarks)
	assert.Equal(t, highlights, data.Highlights)
	assert.Equal(t, plans, data.ReadingPlans)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Get_NullColumns(t *testing.T) {
	userID := uuid.New()

	mock := newMock(t)
	rows := pgxmock.NewRows([]string{"user_id", "last_read", "bookmarks", "highlights", "reading_plans", "updated_at"}).
		AddRow(userID, []byte(nil), []byte(nil), []byte(nil), []byte(nil), time.Now())
	mock.ExpectQuery(`SELECT .+ FROM user_bible_data`).
		WithArgs(userID).
		WillReturnRows(rows)

	repo := New(mock)
	data, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Nil(t, data.LastRead)
	assert.Empty(t, data.Bookmarks)
	assert.Empty(t, data.Highlights)
	assert.Empty(t, data.ReadingPlans)
}

func TestRepo_Get_NotFound(t *testing.T) {
	userID := uuid.New()

	mock := newMock(t)
	mock.ExpectQuery(`SELECT .+ FROM user_bible_data`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	repo := New(mock)
	_, err := repo.Get(context.Background(), userID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Ensure(t *testing.T) {
	userID := uuid.New()

	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO user_bible_data`).
		WithArgs(userID, []byte("[]"), []byte("[]"), []byte("[]")).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := New(mock)
	require.NoError(t, repo.Ensure(context.Background(), userID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_SetLastRead(t *testing.T) {
	userID := uuid.New()
	ref := domain.Reference{Book: "gen", Chapter: 2}

	mock := newMock(t)
	mock.ExpectExec(`UPDATE user_bible_data SET last_read`).
		WithArgs(mustJSON(t, ref), userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := New(mock)
	require.NoError(t, repo.SetLastRead(context.Background(), userID, ref))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_SetLastRead_MissingRow(t *testing.T) {
	userID := uuid.New()

	mock := newMock(t)
	mock.ExpectExec(`UPDATE user_bible_data SET last_read`).
		WithArgs(pgxmock.AnyArg(), userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := New(mock)
	err := repo.SetLastRead(context.Background(), userID, domain.Reference{Book: "gen", Chapter: 1})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_SetBookmarks_NilBecomesEmptyArray(t *testing.T) {
	userID := uuid.New()

	mock := newMock(t)
	mock.ExpectExec(`UPDATE user_bible_data SET bookmarks`).
		WithArgs([]byte("[]"), userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := New(mock)
	require.NoError(t, repo.SetBookmarks(context.Background(), userID, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_SetHighlights_PersistenceError(t *testing.T) {
	userID := uuid.New()

	mock := newMock(t)
	mock.ExpectExec(`UPDATE user_bible_data SET highlights`).
		WithArgs(pgxmock.AnyArg(), userID).
		WillReturnError(assert.AnError)

	repo := New(mock)
	err := repo.SetHighlights(context.Background(), userID, []domain.Highlight{
		{Reference: domain.Reference{Book: "gen", Chapter: 1, Verse: intPtr(1)}, Color: "blue"},
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
}
