package entity

import "time"

// Fight is one row of the `fight_logs` table. Every fight has exactly one owner.
type Fight struct {
	ID           int64     `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	FightDate    time.Time `db:"fight_date" json:"fight_date"`
	OpponentName string    `db:"opponent_name" json:"opponent_name"`
	FightType    string    `db:"fight_type" json:"fight_type"`
	Notes        string    `db:"notes" json:"notes"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// NewFight holds the validated fields of a create request.
type NewFight struct {
	FightDate    time.Time
	OpponentName string
	FightType    string
	Notes        string
}

// FightPatch lists the fields a partial update changes; nil means untouched.
type FightPatch struct {
	FightDate    *time.Time
	OpponentName *string
	FightType    *string
	Notes        *string
}

// IsEmpty reports whether the patch changes nothing.
func (p FightPatch) IsEmpty() bool {
	return p.FightDate == nil && p.OpponentName == nil && p.FightType == nil && p.Notes == nil
}
