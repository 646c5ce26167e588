// Package usertest provides an in-memory credential store for tests.
package usertest

import (
	"context"
	"sync"
	"time"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-fightlog-go/internal/user/repo"
)

type MemoryStore struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byEmail: map[string]*entity.User{}}
}

func (m *MemoryStore) Create(_ context.Context, email, passwordHash string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return nil, userrepo.ErrEmailTaken
	}
	u := &entity.User{ID: int64(len(m.byEmail) + 1), Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	m.byEmail[email] = u
	return u, nil
}

func (m *MemoryStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, userrepo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}
