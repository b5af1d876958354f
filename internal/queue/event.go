// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketQueue is the durable queue ticket events are routed to.
const TicketQueue = "ticket.purchased"

// TicketPurchasedEvent is published after a ticket insert commits.  It
// carries enough for consumers to log or notify without querying the
// primary database.
type TicketPurchasedEvent struct {
    TicketID     uint64 `json:"ticket_id"`
    SessionID    uint64 `json:"session_id"`
    SessionTitle string `json:"session_title"`
    Row          int    `json:"row"`
    Seat         int    `json:"seat"`
    UserID       uint64 `json:"user_id"`
    UserEmail    string `json:"user_email"`
    PurchasedAt  string `json:"purchased_at"`
}
