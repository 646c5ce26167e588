// Package fighttest provides an in-memory fight store for tests.
package fighttest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/entity"
	fightrepo "github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/repo"
)

// MemoryStore mirrors the filtering, ordering and ownership rules of the
// PostgreSQL store.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.Fight
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: map[int64]entity.Fight{}}
}

func (m *MemoryStore) Create(_ context.Context, userID int64, in entity.NewFight) (*entity.Fight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	f := entity.Fight{
		ID:           m.nextID,
		UserID:       userID,
		FightDate:    in.FightDate,
		OpponentName: in.OpponentName,
		FightType:    in.FightType,
		Notes:        in.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	m.rows[f.ID] = f
	return &f, nil
}

func (m *MemoryStore) List(_ context.Context, userID int64, filter entity.ListFilter) (*entity.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := filter.Normalized()
	q := strings.ToLower(f.Search)

	matched := []entity.Fight{}
	for _, row := range m.rows {
		switch {
		case row.UserID != userID:
		case f.Type != "" && row.FightType != f.Type:
		case q != "" && !strings.Contains(strings.ToLower(row.OpponentName), q) && !strings.Contains(strings.ToLower(row.Notes), q):
		case f.From != nil && row.FightDate.Before(*f.From):
		case f.To != nil && row.FightDate.After(*f.To):
		case f.Before != nil && !row.FightDate.Before(*f.Before):
		default:
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].FightDate.Equal(matched[j].FightDate) {
			return matched[i].FightDate.After(matched[j].FightDate)
		}
		return matched[i].ID > matched[j].ID
	})

	page := &entity.Page{Fights: []entity.Fight{}, Total: len(matched), Limit: f.Limit, Offset: f.Offset}
	if f.Offset < len(matched) {
		end := min(f.Offset+f.Limit, len(matched))
		page.Fights = append(page.Fights, matched[f.Offset:end]...)
	}
	return page, nil
}

func (m *MemoryStore) UpdatePartial(_ context.Context, id, userID int64, p entity.FightPatch) (*entity.Fight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.UserID != userID {
		return nil, fightrepo.ErrFightNotFound
	}
	if p.FightDate != nil {
		row.FightDate = *p.FightDate
	}
	if p.OpponentName != nil {
		row.OpponentName = *p.OpponentName
	}
	if p.FightType != nil {
		row.FightType = *p.FightType
	}
	if p.Notes != nil {
		row.Notes = *p.Notes
	}
	m.rows[id] = row
	return &row, nil
}

func (m *MemoryStore) Delete(_ context.Context, id, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok || row.UserID != userID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}
