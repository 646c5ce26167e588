package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/entity"
)

var (
	// ErrFightNotFound covers both a missing row and a row owned by someone else.
	ErrFightNotFound = errors.New("fight not found")
	ErrValueTooLong  = errors.New("value too long for column")
)

// postgres string_data_right_truncation
const stringDataTooLong = pq.ErrorCode("22001")

// mapWriteErr turns column-width violations into ErrValueTooLong.
func mapWriteErr(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == stringDataTooLong {
		return ErrValueTooLong
	}
	return fmt.Errorf("%s: %w", op, err)
}

// FightRepo provides data access for the fight_logs table using sqlx.
// Every statement is scoped by user_id.
type FightRepo struct {
	db *sqlx.DB
}

func NewFightRepo(db *sqlx.DB) *FightRepo { return &FightRepo{db: db} }

// Create inserts a fight owned by userID.
func (r *FightRepo) Create(ctx context.Context, userID int64, in entity.NewFight) (*entity.Fight, error) {
	q := `INSERT INTO fight_logs (user_id, fight_date, opponent_name, fight_type, notes)
		VALUES ($1, $2, $3, $4, $5) RETURNING ` + fightColumns
	var f entity.Fight
	if err := r.db.GetContext(ctx, &f, q, userID, in.FightDate, in.OpponentName, in.FightType, in.Notes); err != nil {
		return nil, mapWriteErr("insert fight", err)
	}
	return &f, nil
}

// List returns one page of userID's fights matching filter and the total
// number of matches. Count and page are two separate reads.
func (r *FightRepo) List(ctx context.Context, userID int64, filter entity.ListFilter) (*entity.Page, error) {
	lq := buildListQuery(userID, filter)

	var total int
	if err := r.db.GetContext(ctx, &total, lq.Count, lq.Args...); err != nil {
		return nil, fmt.Errorf("count fights: %w", err)
	}
	fights := []entity.Fight{}
	if err := r.db.SelectContext(ctx, &fights, lq.Data, lq.DataArgs...); err != nil {
		return nil, fmt.Errorf("select fights: %w", err)
	}
	return &entity.Page{Fights: fights, Total: total, Limit: lq.Limit, Offset: lq.Offset}, nil
}

// UpdatePartial sets only the fields present in p, in one statement matching
// both id and owner.
func (r *FightRepo) UpdatePartial(ctx context.Context, id, userID int64, p entity.FightPatch) (*entity.Fight, error) {
	var (
		sets []string
		args []any
	)
	if p.FightDate != nil {
		sets = append(sets, "fight_date = ?")
		args = append(args, *p.FightDate)
	}
	if p.OpponentName != nil {
		sets = append(sets, "opponent_name = ?")
		args = append(args, *p.OpponentName)
	}
	if p.FightType != nil {
		sets = append(sets, "fight_type = ?")
		args = append(args, *p.FightType)
	}
	if p.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *p.Notes)
	}
	if len(sets) == 0 {
		return nil, errors.New("update fight: empty patch")
	}
	args = append(args, id, userID)

	q := sqlx.Rebind(sqlx.DOLLAR, "UPDATE fight_logs SET "+strings.Join(sets, ", ")+
		" WHERE id = ? AND user_id = ? RETURNING "+fightColumns)
	var f entity.Fight
	if err := r.db.GetContext(ctx, &f, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFightNotFound
		}
		return nil, mapWriteErr("update fight", err)
	}
	return &f, nil
}

// Delete removes the fight if userID owns it and reports whether a row went away.
func (r *FightRepo) Delete(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fight_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete fight: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete fight: %w", err)
	}
	return n > 0, nil
}
