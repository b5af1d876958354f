package model

// User represents a registered visitor stored in the `users` table.
// Password carries a bcrypt hash once persisted; it is never serialized.
// The store rejects a second user with the same (Email, Phone) pair.
type User struct {
    ID       uint64 `json:"id"`
    Name     string `json:"name"`
    Password string `json:"-"`
    Email    string `json:"email"`
    Phone    string `json:"phone"`
}
