package model

// Ticket is a purchased seat.  At most one ticket exists per
// (SessionID, Row, Seat); the store enforces it.
type Ticket struct {
    ID        uint64 `json:"id"`
    SessionID uint64 `json:"session_id"` // tickets.session_id
    Row       int    `json:"row"`        // tickets.pos_row
    Seat      int    `json:"seat"`       // tickets.cell
    UserID    uint64 `json:"user_id"`    // tickets.user_id
}
