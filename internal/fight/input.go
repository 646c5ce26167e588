package fight

import (
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/entity"
)

const dateOnly = "2006-01-02"

// column widths of fight_logs
const (
	maxOpponentNameLen = 255
	maxFightTypeLen    = 100
)

func checkLengths(opponentName, fightType *string) error {
	if opponentName != nil && utf8.RuneCountInString(*opponentName) > maxOpponentNameLen {
		return apperr.Invalid("opponent_name must be at most 255 characters")
	}
	if fightType != nil && utf8.RuneCountInString(*fightType) > maxFightTypeLen {
		return apperr.Invalid("fight_type must be at most 100 characters")
	}
	return nil
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseDate accepts a full timestamp or a bare date. dateOnlyInput reports
// whether the value had no time component.
func parseDate(s string) (t time.Time, dateOnlyInput bool, ok bool) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(dateOnly, s); err == nil {
		return d, true, true
	}
	for _, layout := range dateTimeLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), false, true
		}
	}
	return time.Time{}, false, false
}

// CreateRequest is the body of POST /fights.
type CreateRequest struct {
	FightDate    string  `json:"fight_date"`
	OpponentName string  `json:"opponent_name"`
	FightType    string  `json:"fight_type"`
	Notes        *string `json:"notes"`
}

func (req CreateRequest) validate() (entity.NewFight, error) {
	if strings.TrimSpace(req.FightDate) == "" || strings.TrimSpace(req.OpponentName) == "" || strings.TrimSpace(req.FightType) == "" {
		return entity.NewFight{}, apperr.Invalid("Fight date, opponent name, and fight type required")
	}
	if err := checkLengths(&req.OpponentName, &req.FightType); err != nil {
		return entity.NewFight{}, err
	}
	date, _, ok := parseDate(req.FightDate)
	if !ok {
		return entity.NewFight{}, apperr.Invalid("fight_date is not a valid date")
	}
	in := entity.NewFight{FightDate: date, OpponentName: req.OpponentName, FightType: req.FightType}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}
	return in, nil
}

// UpdateRequest is the body of PATCH /fights/{id}. Absent and null fields are left unchanged.
type UpdateRequest struct {
	FightDate    *string `json:"fight_date"`
	OpponentName *string `json:"opponent_name"`
	FightType    *string `json:"fight_type"`
	Notes        *string `json:"notes"`
}

func (req UpdateRequest) validate() (entity.FightPatch, error) {
	var p entity.FightPatch
	if req.FightDate != nil {
		date, _, ok := parseDate(*req.FightDate)
		if !ok {
			return p, apperr.Invalid("fight_date is not a valid date")
		}
		p.FightDate = &date
	}
	if req.OpponentName != nil {
		if strings.TrimSpace(*req.OpponentName) == "" {
			return p, apperr.Invalid("opponent_name cannot be empty")
		}
		p.OpponentName = req.OpponentName
	}
	if req.FightType != nil {
		if strings.TrimSpace(*req.FightType) == "" {
			return p, apperr.Invalid("fight_type cannot be empty")
		}
		p.FightType = req.FightType
	}
	if err := checkLengths(req.OpponentName, req.FightType); err != nil {
		return p, err
	}
	p.Notes = req.Notes
	if p.IsEmpty() {
		return p, apperr.Invalid("Send at least one field to update")
	}
	return p, nil
}

// parseListQuery maps the GET /fights query string onto a filter. Paging
// values that are not integers fall back to the defaults.
func parseListQuery(v url.Values) (entity.ListFilter, error) {
	f := entity.ListFilter{
		Type:   v.Get("type"),
		Search: v.Get("q"),
	}
	if s := v.Get("from"); strings.TrimSpace(s) != "" {
		from, _, ok := parseDate(s)
		if !ok {
			return f, apperr.Invalid("from is not a valid date")
		}
		f.From = &from
	}
	if s := v.Get("to"); strings.TrimSpace(s) != "" {
		to, bare, ok := parseDate(s)
		if !ok {
			return f, apperr.Invalid("to is not a valid date")
		}
		if bare {
			next := to.AddDate(0, 0, 1)
			f.Before = &next
		} else {
			f.To = &to
		}
	}
	if n, err := strconv.Atoi(v.Get("limit")); err == nil {
		f.Limit = n
	}
	if n, err := strconv.Atoi(v.Get("offset")); err == nil {
		f.Offset = n
	}
	return f.Normalized(), nil
}

// parseID reads a positive integer path id.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Invalid("invalid fight id")
	}
	return id, nil
}
