package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/poster"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
)

// SessionStore is the persistence SessionService needs.
type SessionStore interface {
	FindAll(ctx context.Context) ([]model.MovieSession, error)
	FindByID(ctx context.Context, id uint64) (model.MovieSession, error)
	Poster(ctx context.Context, id uint64) ([]byte, error)
	Create(ctx context.Context, s *model.MovieSession) error
	Update(ctx context.Context, s model.MovieSession) error
}

// SessionService manages movie sessions and their posters.
type SessionService struct {
	store SessionStore
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

func (s *SessionService) List(ctx context.Context) ([]model.MovieSession, error) {
	return s.store.FindAll(ctx)
}

func (s *SessionService) Get(ctx context.Context, id uint64) (model.MovieSession, error) {
	ms, err := s.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.MovieSession{}, fmt.Errorf("session %d: %w", id, ErrSessionNotFound)
	}
	return ms, err
}

// Create validates and stores ms, setting its ID.
func (s *SessionService) Create(ctx context.Context, ms *model.MovieSession) error {
	ms.Title = strings.TrimSpace(ms.Title)
	if ms.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.store.Create(ctx, ms); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Update changes title and description, and the poster when one is given.
func (s *SessionService) Update(ctx context.Context, ms model.MovieSession) error {
	ms.Title = strings.TrimSpace(ms.Title)
	if ms.ID == 0 || ms.Title == "" {
		return fmt.Errorf("%w: id and title are required", ErrInvalidInput)
	}
	err := s.store.Update(ctx, ms)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("session %d: %w", ms.ID, ErrSessionNotFound)
	}
	return err
}

// Poster returns the poster of session id.  With a non-zero width or height
// a JPEG thumbnail bounded by them is rendered instead of the raw bytes.
// The second return value is the content type.
func (s *SessionService) Poster(ctx context.Context, id uint64, width, height uint) ([]byte, string, error) {
	raw, err := s.store.Poster(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("session %d: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return nil, "", err
	}
	if width == 0 && height == 0 {
		return raw, "application/octet-stream", nil
	}
	thumb, err := poster.Thumbnail(raw, width, height)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return thumb, "image/jpeg", nil
}
