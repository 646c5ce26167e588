package repo

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/entity"
)

var fightCols = []string{"id", "user_id", "fight_date", "opponent_name", "fight_type", "notes", "created_at"}

func newRepoWithMock(t *testing.T) (*FightRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewFightRepo(sqlx.NewDb(db, "postgres")), mock
}

func TestFightCreate(t *testing.T) {
	r, mock := newRepoWithMock(t)
	date := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+fight_logs\s*\(user_id,\s*fight_date,\s*opponent_name,\s*fight_type,\s*notes\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,`).
		WithArgs(int64(1), date, "J. Doe", "Sparring", "").
		WillReturnRows(sqlmock.NewRows(fightCols).AddRow(int64(10), int64(1), date, "J. Doe", "Sparring", "", now))

	f, err := r.Create(context.Background(), 1, entity.NewFight{FightDate: date, OpponentName: "J. Doe", FightType: "Sparring"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), f.ID)
	assert.Equal(t, int64(1), f.UserID)
	assert.Equal(t, "", f.Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFightCreate_DBError(t *testing.T) {
	r, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT INTO fight_logs`).WillReturnError(errors.New("db down"))

	_, err := r.Create(context.Background(), 1, entity.NewFight{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert fight: db down")
}

func TestFightList(t *testing.T) {
	r, mock := newRepoWithMock(t)
	d1 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM fight_logs WHERE user_id = $1 AND fight_type = $2`)).
		WithArgs(int64(4), "Sparring").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_id = $1 AND fight_type = $2 ORDER BY fight_date DESC, id DESC LIMIT $3 OFFSET $4`)).
		WithArgs(int64(4), "Sparring", 50, 0).
		WillReturnRows(sqlmock.NewRows(fightCols).
			AddRow(int64(2), int64(4), d1, "B", "Sparring", "", d1).
			AddRow(int64(1), int64(4), d2, "A", "Sparring", "notes", d2))

	page, err := r.List(context.Background(), 4, entity.ListFilter{Type: "Sparring"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 0, page.Offset)
	require.Len(t, page.Fights, 2)
	assert.Equal(t, int64(2), page.Fights[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFightList_EmptyIsNotNil(t *testing.T) {
	r, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT COUNT`).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`ORDER BY`).WillReturnRows(sqlmock.NewRows(fightCols))

	page, err := r.List(context.Background(), 4, entity.ListFilter{})
	require.NoError(t, err)
	assert.NotNil(t, page.Fights)
	assert.Empty(t, page.Fights)
}

func TestFightUpdatePartial_OnlyPresentFields(t *testing.T) {
	r, mock := newRepoWithMock(t)
	notes := "left hook landed"
	date := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE fight_logs SET notes = $1 WHERE id = $2 AND user_id = $3 RETURNING id,`)).
		WithArgs(notes, int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows(fightCols).AddRow(int64(10), int64(1), date, "J. Doe", "Sparring", notes, date))

	f, err := r.UpdatePartial(context.Background(), 10, 1, entity.FightPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, f.Notes)
	assert.Equal(t, "J. Doe", f.OpponentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFightUpdatePartial_AllFields(t *testing.T) {
	r, mock := newRepoWithMock(t)
	date := time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC)
	name, typ, notes := "R. Roe", "Competition", ""

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE fight_logs SET fight_date = $1, opponent_name = $2, fight_type = $3, notes = $4 WHERE id = $5 AND user_id = $6`)).
		WithArgs(date, name, typ, notes, int64(10), int64(1)).
		WillReturnRows(sqlmock.NewRows(fightCols).AddRow(int64(10), int64(1), date, name, typ, notes, date))

	_, err := r.UpdatePartial(context.Background(), 10, 1, entity.FightPatch{FightDate: &date, OpponentName: &name, FightType: &typ, Notes: &notes})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFightUpdatePartial_NotOwned(t *testing.T) {
	r, mock := newRepoWithMock(t)
	notes := "x"
	mock.ExpectQuery(`UPDATE fight_logs`).WithArgs(notes, int64(10), int64(2)).WillReturnError(sql.ErrNoRows)

	_, err := r.UpdatePartial(context.Background(), 10, 2, entity.FightPatch{Notes: &notes})
	assert.ErrorIs(t, err, ErrFightNotFound)
}

func TestFightUpdatePartial_EmptyPatch(t *testing.T) {
	r, _ := newRepoWithMock(t)
	_, err := r.UpdatePartial(context.Background(), 10, 1, entity.FightPatch{})
	require.Error(t, err)
}

func TestFightDelete(t *testing.T) {
	r, mock := newRepoWithMock(t)
	q := regexp.QuoteMeta(`DELETE FROM fight_logs WHERE id = $1 AND user_id = $2`)
	mock.ExpectExec(q).WithArgs(int64(10), int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(10), int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := r.Delete(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.Delete(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFightWrite_ValueTooLong(t *testing.T) {
	r, mock := newRepoWithMock(t)
	tooLong := &pq.Error{Code: "22001", Message: "value too long for type character varying(255)"}
	mock.ExpectQuery(`INSERT INTO fight_logs`).WillReturnError(tooLong)
	mock.ExpectQuery(`UPDATE fight_logs`).WillReturnError(tooLong)

	_, err := r.Create(context.Background(), 1, entity.NewFight{OpponentName: "x"})
	assert.ErrorIs(t, err, ErrValueTooLong)

	name := "x"
	_, err = r.UpdatePartial(context.Background(), 10, 1, entity.FightPatch{OpponentName: &name})
	assert.ErrorIs(t, err, ErrValueTooLong)
}
