package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
)

type fakeSessions struct {
	byID map[uint64]model.MovieSession
}

func (f *fakeSessions) FindAll(context.Context) ([]model.MovieSession, error) {
	out := make([]model.MovieSession, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessions) FindByID(_ context.Context, id uint64) (model.MovieSession, error) {
	s, ok := f.byID[id]
	if !ok {
		return model.MovieSession{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessions) Poster(ctx context.Context, id uint64) ([]byte, error) {
	s, err := f.FindByID(ctx, id)
	return s.Poster, err
}

func (f *fakeSessions) Create(_ context.Context, s *model.MovieSession) error {
	if f.byID == nil {
		f.byID = map[uint64]model.MovieSession{}
	}
	s.ID = uint64(len(f.byID) + 1)
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeSessions) Update(_ context.Context, s model.MovieSession) error {
	old, ok := f.byID[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if len(s.Poster) == 0 {
		s.Poster = old.Poster
	}
	f.byID[s.ID] = s
	return nil
}

func TestSessionService(t *testing.T) {
	t.Parallel()

	store := &fakeSessions{}
	svc := NewSessionService(store)
	ctx := context.Background()

	if err := svc.Create(ctx, &model.MovieSession{Title: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank title err = %v", err)
	}

	ms := model.MovieSession{Title: " Heat ", Description: "170 min", Poster: []byte("raw")}
	if err := svc.Create(ctx, &ms); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ms.ID == 0 || ms.Title != "Heat" {
		t.Fatalf("created = %+v", ms)
	}

	body, ctype, err := svc.Poster(ctx, ms.ID, 0, 0)
	if err != nil || string(body) != "raw" || ctype != "application/octet-stream" {
		t.Fatalf("Poster = %q, %q, %v", body, ctype, err)
	}
	if _, _, err := svc.Poster(ctx, ms.ID, 10, 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("thumbnail of non-image err = %v", err)
	}
	if _, _, err := svc.Poster(ctx, 99, 0, 0); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("missing poster err = %v", err)
	}

	if err := svc.Update(ctx, model.MovieSession{ID: 99, Title: "x"}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("update missing err = %v", err)
	}
	if _, err := svc.Get(ctx, 99); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("get missing err = %v", err)
	}
}
