package entity

import (
	"strings"
	"time"
)

const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ListFilter narrows a user's fight list. Zero values mean "no filter";
// all present filters are combined with AND. To is inclusive, Before is
// exclusive; a whole-day upper bound is carried as Before (next midnight)
// because TIMESTAMP columns only keep microseconds.
type ListFilter struct {
	Type   string
	Search string
	From   *time.Time
	To     *time.Time
	Before *time.Time
	Limit  int
	Offset int
}

// Normalized applies the paging rules: limit 0 becomes the default, other
// values are clamped to [1, MaxLimit]; offset is clamped to >= 0. Search
// text is trimmed.
func (f ListFilter) Normalized() ListFilter {
	switch {
	case f.Limit == 0:
		f.Limit = DefaultLimit
	case f.Limit < 1:
		f.Limit = 1
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// Page is one page of a filtered list plus the total match count.
type Page struct {
	Fights []Fight
	Total  int
	Limit  int
	Offset int
}
