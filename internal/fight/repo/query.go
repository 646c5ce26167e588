package repo

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/entity"
)

const fightColumns = `id, user_id, fight_date, opponent_name, fight_type, COALESCE(notes, '') AS notes, created_at`

// listQuery is a rendered, parameterized list read. Count and Data share the
// same WHERE clause; Data additionally binds limit and offset.
type listQuery struct {
	Count    string
	Data     string
	Args     []any
	DataArgs []any
	Limit    int
	Offset   int
}

// buildListQuery renders the filtered, paginated read for one owner. Every
// filter value travels as a bind parameter; only fixed SQL fragments are
// concatenated.
func buildListQuery(userID int64, f entity.ListFilter) listQuery {
	f = f.Normalized()

	where := []string{"user_id = ?"}
	args := []any{userID}

	if f.Type != "" {
		where = append(where, "fight_type = ?")
		args = append(args, f.Type)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		where = append(where, `(opponent_name ILIKE ? ESCAPE '\' OR COALESCE(notes, '') ILIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if f.From != nil {
		where = append(where, "fight_date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, "fight_date <= ?")
		args = append(args, *f.To)
	}
	if f.Before != nil {
		where = append(where, "fight_date < ?")
		args = append(args, *f.Before)
	}

	clause := " WHERE " + strings.Join(where, " AND ")
	count := "SELECT COUNT(*) FROM fight_logs" + clause
	data := "SELECT " + fightColumns + " FROM fight_logs" + clause +
		" ORDER BY fight_date DESC, id DESC LIMIT ? OFFSET ?"

	dataArgs := make([]any, 0, len(args)+2)
	dataArgs = append(dataArgs, args...)
	dataArgs = append(dataArgs, f.Limit, f.Offset)

	return listQuery{
		Count:    sqlx.Rebind(sqlx.DOLLAR, count),
		Data:     sqlx.Rebind(sqlx.DOLLAR, data),
		Args:     args,
		DataArgs: dataArgs,
		Limit:    f.Limit,
		Offset:   f.Offset,
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE metacharacters in s match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
