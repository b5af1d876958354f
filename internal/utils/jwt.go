package utils // package utils provides password hashing and session cookie signing

import (
    "errors" // errors for the invalid-token sentinel
    "time"   // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidSessionToken is returned for tampered, expired or malformed
// session cookies.
var ErrInvalidSessionToken = errors.New("invalid session token")

// sessionClaims is the payload of the session cookie.  Only the opaque
// session id travels to the browser; the session data stays server-side.
type sessionClaims struct {
    SID string `json:"sid"`
    jwt.RegisteredClaims
}

// NewSessionToken signs an HS256 JWT carrying the session id sid.  The
// token expires after ttl, matching the server-side session lifetime.
func NewSessionToken(secret, sid string, ttl time.Duration) (string, time.Time, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := sessionClaims{
        SID: sid,
        RegisteredClaims: jwt.RegisteredClaims{
            ExpiresAt: jwt.NewNumericDate(exp),
            IssuedAt:  jwt.NewNumericDate(now),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return "", time.Time{}, err
    }
    return signed, exp, nil
}

// ParseSessionToken verifies raw and returns the session id it carries.
func ParseSessionToken(secret, raw string) (string, error) {
    var claims sessionClaims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        // Reject anything not signed with HMAC.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidSessionToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid || claims.SID == "" {
        return "", ErrInvalidSessionToken
    }
    return claims.SID, nil
}
