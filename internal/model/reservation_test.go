package model

import (
    "errors"
    "testing"
)

func TestReservationWizard(t *testing.T) {
    t.Parallel()

    t.Run("walks through every stage", func(t *testing.T) {
        t.Parallel()

        var r Reservation
        if r.Stage() != StageBrowsing {
            t.Fatalf("zero value stage = %s", r.Stage())
        }
        r.ChooseSession(MovieSession{ID: 1, Title: "Alien", Poster: []byte{1, 2, 3}})
        if r.Stage() != StageSessionChosen {
            t.Fatalf("stage = %s, want session_chosen", r.Stage())
        }
        if r.Session.Poster != nil {
            t.Fatalf("snapshot must not carry poster bytes")
        }
        if err := r.ChooseRow(2); err != nil {
            t.Fatalf("ChooseRow: %v", err)
        }
        if err := r.ChooseSeat(5); err != nil {
            t.Fatalf("ChooseSeat: %v", err)
        }
        if r.Stage() != StageSeatChosen {
            t.Fatalf("stage = %s, want seat_chosen", r.Stage())
        }
        tk, err := r.Ticket(10)
        if err != nil {
            t.Fatalf("Ticket: %v", err)
        }
        want := Ticket{SessionID: 1, Row: 2, Seat: 5, UserID: 10}
        if tk != want {
            t.Fatalf("ticket = %+v, want %+v", tk, want)
        }
    })

    t.Run("rejects out of order steps", func(t *testing.T) {
        t.Parallel()

        var r Reservation
        if err := r.ChooseRow(1); !errors.Is(err, ErrNoSessionChosen) {
            t.Fatalf("ChooseRow without session: %v", err)
        }
        if err := r.ChooseSeat(1); !errors.Is(err, ErrNoSessionChosen) {
            t.Fatalf("ChooseSeat without session: %v", err)
        }
        r.ChooseSession(MovieSession{ID: 3})
        if err := r.ChooseSeat(1); !errors.Is(err, ErrNoRowChosen) {
            t.Fatalf("ChooseSeat without row: %v", err)
        }
        if _, err := r.Ticket(1); !errors.Is(err, ErrIncompleteReservation) {
            t.Fatalf("Ticket before seat: %v", err)
        }
    })

    t.Run("rejects negative positions", func(t *testing.T) {
        t.Parallel()

        var r Reservation
        r.ChooseSession(MovieSession{ID: 3})
        if err := r.ChooseRow(-1); !errors.Is(err, ErrInvalidPosition) {
            t.Fatalf("negative row: %v", err)
        }
        if err := r.ChooseRow(0); err != nil {
            t.Fatalf("row 0: %v", err)
        }
        if err := r.ChooseSeat(-4); !errors.Is(err, ErrInvalidPosition) {
            t.Fatalf("negative seat: %v", err)
        }
    })

    t.Run("rejects positions beyond the stored column range", func(t *testing.T) {
        t.Parallel()

        var r Reservation
        r.ChooseSession(MovieSession{ID: 3})
        if err := r.ChooseRow(MaxPosition + 1); !errors.Is(err, ErrInvalidPosition) {
            t.Fatalf("row 2^31: %v", err)
        }
        if r.Row != nil {
            t.Fatalf("rejected row was stored: %d", *r.Row)
        }
        if err := r.ChooseRow(MaxPosition); err != nil {
            t.Fatalf("row 2^31-1: %v", err)
        }
        if err := r.ChooseSeat(MaxPosition + 1); !errors.Is(err, ErrInvalidPosition) {
            t.Fatalf("seat 2^31: %v", err)
        }
        if err := r.ChooseSeat(MaxPosition); err != nil {
            t.Fatalf("seat 2^31-1: %v", err)
        }
    })

    t.Run("choosing a new row drops the seat", func(t *testing.T) {
        t.Parallel()

        var r Reservation
        r.ChooseSession(MovieSession{ID: 3})
        _ = r.ChooseRow(1)
        _ = r.ChooseSeat(1)
        _ = r.ChooseRow(4)
        if r.Stage() != StageRowChosen {
            t.Fatalf("stage = %s, want row_chosen", r.Stage())
        }
    })

    t.Run("clear from any stage returns to browsing", func(t *testing.T) {
        t.Parallel()

        var r Reservation
        r.ChooseSession(MovieSession{ID: 1})
        _ = r.ChooseRow(2)
        _ = r.ChooseSeat(5)
        r.Clear()
        if r.Stage() != StageBrowsing || r.Session != nil || r.Row != nil || r.Seat != nil {
            t.Fatalf("clear left state behind: %+v", r)
        }
        if _, err := r.Ticket(10); !errors.Is(err, ErrIncompleteReservation) {
            t.Fatalf("ticket after clear: %v", err)
        }
    })
}
