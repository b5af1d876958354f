package model

// MovieSession is a scheduled showing of a film as stored in the
// `sessions` table.
//
// Fields:
//  ID          – sessions.id
//  Title       – film title.
//  Description – free text, usually the plot and running time.
//  Poster      – raw image bytes (sessions.photo); may be empty.
type MovieSession struct {
    ID          uint64 `json:"id"`
    Title       string `json:"title"`
    Description string `json:"description"`
    Poster      []byte `json:"-"`
}

// Snapshot returns a copy without the poster bytes.  Snapshots are what
// the visitor session keeps while a seat is being picked.
func (s MovieSession) Snapshot() MovieSession {
    s.Poster = nil
    return s
}
