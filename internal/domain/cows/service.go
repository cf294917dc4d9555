package cows

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicateID  = errors.New("cow id already exists")
	ErrNotFound     = errors.New("cow not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	CowID string
	Notes string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Cow, error) {
	id := strings.TrimSpace(in.CowID)
	if id == "" {
		return Cow{}, ErrInvalidInput
	}

	c := Cow{
		CowID:     id,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Cow{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, cowID string) (Cow, error) {
	cowID = strings.TrimSpace(cowID)
	if cowID == "" {
		return Cow{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, cowID)
}

func (s *Service) List(ctx context.Context) ([]Cow, error) {
	return s.repo.List(ctx)
}

// Delete devuelve false si la vaca no existe. El borrado en cascada
// de sus eventos es responsabilidad del repo para que sea atómico.
func (s *Service) Delete(ctx context.Context, cowID string) (bool, error) {
	cowID = strings.TrimSpace(cowID)
	if cowID == "" {
		return false, ErrInvalidInput
	}
	return s.repo.Delete(ctx, cowID)
}
