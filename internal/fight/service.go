package fight

import (
	"context"
	"errors"

	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/entity"
	fightrepo "github.com/ovaphlow/pitchfork/service-fightlog-go/internal/fight/repo"
)

// Store is the fight log store. Implementations scope every call to userID.
type Store interface {
	Create(ctx context.Context, userID int64, in entity.NewFight) (*entity.Fight, error)
	List(ctx context.Context, userID int64, filter entity.ListFilter) (*entity.Page, error)
	UpdatePartial(ctx context.Context, id, userID int64, p entity.FightPatch) (*entity.Fight, error)
	Delete(ctx context.Context, id, userID int64) (bool, error)
}

var (
	ErrNotFound     = apperr.New(apperr.ErrNotFound, "Record not found or not permitted")
	ErrValueTooLong = apperr.New(apperr.ErrInvalidInput, "A field is longer than allowed")
)

// Service encapsulates business logic for fight logs and depends on a Store.
type Service struct {
	store Store
}

func NewService(s Store) *Service {
	return &Service{store: s}
}

func (s *Service) Create(ctx context.Context, userID int64, in entity.NewFight) (*entity.Fight, error) {
	f, err := s.store.Create(ctx, userID, in)
	if errors.Is(err, fightrepo.ErrValueTooLong) {
		return nil, ErrValueTooLong
	}
	return f, err
}

// List returns a page using the clamped limit and offset.
func (s *Service) List(ctx context.Context, userID int64, filter entity.ListFilter) (*entity.Page, error) {
	return s.store.List(ctx, userID, filter.Normalized())
}

// Update applies p to the fight if userID owns it.
func (s *Service) Update(ctx context.Context, id, userID int64, p entity.FightPatch) (*entity.Fight, error) {
	if p.IsEmpty() {
		return nil, apperr.Invalid("Send at least one field to update")
	}
	f, err := s.store.UpdatePartial(ctx, id, userID, p)
	if err != nil {
		switch {
		case errors.Is(err, fightrepo.ErrFightNotFound):
			return nil, ErrNotFound
		case errors.Is(err, fightrepo.ErrValueTooLong):
			return nil, ErrValueTooLong
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the fight if userID owns it.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	ok, err := s.store.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
