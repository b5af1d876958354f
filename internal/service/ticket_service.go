package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-ticketing/internal/logging"
	"github.com/iliyamo/cinema-ticketing/internal/model"
	"github.com/iliyamo/cinema-ticketing/internal/queue"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
)

// TicketStore is the persistence TicketService needs.
type TicketStore interface {
	Create(ctx context.Context, t *model.Ticket) error
	FindBySession(ctx context.Context, sessionID uint64) ([]model.Ticket, error)
	FindByUser(ctx context.Context, userID uint64) ([]model.Ticket, error)
}

// TicketService turns a completed reservation into a ticket.
type TicketService struct {
	store     TicketStore
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewTicketService(store TicketStore, publisher EventPublisher, logger *zap.Logger) *TicketService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &TicketService{store: store, publisher: publisher, logger: logger, now: time.Now}
}

// Purchase inserts the ticket described by r for buyer.  The insert is the
// only check: a taken seat comes back as ErrSeatTaken, a session that no
// longer exists as ErrSessionNotFound, anything else is a store failure.
// A purchased event is published after the insert; publishing problems are
// logged and never undo the purchase.
func (s *TicketService) Purchase(ctx context.Context, r model.Reservation, buyer model.User) (model.Ticket, error) {
	t, err := r.Ticket(buyer.ID)
	if err != nil {
		return model.Ticket{}, err
	}
	if err := s.store.Create(ctx, &t); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return model.Ticket{}, fmt.Errorf("session %d row %d seat %d: %w", t.SessionID, t.Row, t.Seat, ErrSeatTaken)
		case errors.Is(err, repository.ErrInvalidReference):
			return model.Ticket{}, fmt.Errorf("session %d: %w", t.SessionID, ErrSessionNotFound)
		}
		return model.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}

	ev := queue.TicketPurchasedEvent{
		TicketID:     t.ID,
		SessionID:    t.SessionID,
		SessionTitle: r.Session.Title,
		Row:          t.Row,
		Seat:         t.Seat,
		UserID:       buyer.ID,
		UserEmail:    buyer.Email,
		PurchasedAt:  s.now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishTicketPurchased(ctx, ev); err != nil {
		logging.Or(ctx, s.logger).Warn("publish ticket event failed", zap.Uint64("ticket_id", t.ID), zap.Error(err))
	}
	return t, nil
}

// TakenSeats lists the tickets already sold for a session.
func (s *TicketService) TakenSeats(ctx context.Context, sessionID uint64) ([]model.Ticket, error) {
	return s.store.FindBySession(ctx, sessionID)
}

// UserTickets lists the tickets bought by userID.
func (s *TicketService) UserTickets(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	return s.store.FindByUser(ctx, userID)
}
