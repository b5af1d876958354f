package model

import (
    "errors"
    "math"
)

// Stage is the position of a Reservation in the seat-selection wizard.
type Stage int

const (
    StageBrowsing Stage = iota
    StageSessionChosen
    StageRowChosen
    StageSeatChosen
)

func (s Stage) String() string {
    switch s {
    case StageSessionChosen:
        return "session_chosen"
    case StageRowChosen:
        return "row_chosen"
    case StageSeatChosen:
        return "seat_chosen"
    }
    return "browsing"
}

var (
    // ErrNoSessionChosen is returned when a row is picked before a session.
    ErrNoSessionChosen = errors.New("no movie session chosen")
    // ErrNoRowChosen is returned when a seat is picked before a row.
    ErrNoRowChosen = errors.New("no row chosen")
    // ErrIncompleteReservation is returned when a ticket is requested
    // before session, row and seat are all known.
    ErrIncompleteReservation = errors.New("reservation incomplete")
    // ErrInvalidPosition rejects row or seat numbers outside 0..MaxPosition.
    ErrInvalidPosition = errors.New("row and seat must be between 0 and 2147483647")
)

// MaxPosition is the largest row or seat number; tickets.pos_row and
// tickets.cell are 32-bit columns.
const MaxPosition = math.MaxInt32

// Reservation is the in-progress seat selection of one visitor.  It lives
// only inside the visitor's server-side session and is never persisted.
// Rows and seats are not checked against a hall layout: any integer in
// 0..MaxPosition is accepted and the ticket insert is the only arbiter.
type Reservation struct {
    Session *MovieSession `json:"session,omitempty"`
    Row     *int          `json:"row,omitempty"`
    Seat    *int          `json:"seat,omitempty"`
}

// Stage derives the wizard state from the fields that are set.
func (r Reservation) Stage() Stage {
    switch {
    case r.Session == nil:
        return StageBrowsing
    case r.Row == nil:
        return StageSessionChosen
    case r.Seat == nil:
        return StageRowChosen
    }
    return StageSeatChosen
}

// ChooseSession starts over with s. Any previous row and seat are dropped.
func (r *Reservation) ChooseSession(s MovieSession) {
    snap := s.Snapshot()
    r.Session = &snap
    r.Row = nil
    r.Seat = nil
}

// ChooseRow stores row and drops any previously chosen seat.
func (r *Reservation) ChooseRow(row int) error {
    if r.Session == nil {
        return ErrNoSessionChosen
    }
    if row < 0 || row > MaxPosition {
        return ErrInvalidPosition
    }
    r.Row = &row
    r.Seat = nil
    return nil
}

// ChooseSeat stores seat; a row must already be chosen.
func (r *Reservation) ChooseSeat(seat int) error {
    if r.Row == nil {
        if r.Session == nil {
            return ErrNoSessionChosen
        }
        return ErrNoRowChosen
    }
    if seat < 0 || seat > MaxPosition {
        return ErrInvalidPosition
    }
    r.Seat = &seat
    return nil
}

// Ticket builds the ticket to insert for userID.
func (r Reservation) Ticket(userID uint64) (Ticket, error) {
    if r.Stage() != StageSeatChosen {
        return Ticket{}, ErrIncompleteReservation
    }
    return Ticket{
        SessionID: r.Session.ID,
        Row:       *r.Row,
        Seat:      *r.Seat,
        UserID:    userID,
    }, nil
}

// Clear returns the reservation to the browsing state.
func (r *Reservation) Clear() {
    *r = Reservation{}
}
