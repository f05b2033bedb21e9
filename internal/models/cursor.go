package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor marks the position after which the next feed page starts.
// PostID is zero for cursors carrying only a timestamp.
type Cursor struct {
	CreatedAt time.Time
	PostID    int
}

// maxCursorMillis is 9999-12-31T23:59:59.999Z. Later instants don't fit
// the microsecond timestamps the driver and postgres exchange.
const maxCursorMillis = 253402300799999

// ParseCursor accepts "<unix millis>" or "<unix millis>:<post id>".
// An empty string means no cursor.
func ParseCursor(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	msPart, idPart, hasID := strings.Cut(s, ":")
	ms, err := strconv.ParseInt(msPart, 10, 64)
	if err != nil || ms < 0 || ms > maxCursorMillis {
		return nil, Invalid("cursor %q", s)
	}
	c := &Cursor{CreatedAt: time.UnixMilli(ms)}
	if hasID {
		id, err := strconv.Atoi(idPart)
		if err != nil || id <= 0 {
			return nil, Invalid("cursor %q", s)
		}
		c.PostID = id
	}
	return c, nil
}

func (c Cursor) String() string {
	if c.PostID == 0 {
		return strconv.FormatInt(c.CreatedAt.UnixMilli(), 10)
	}
	return fmt.Sprintf("%d:%d", c.CreatedAt.UnixMilli(), c.PostID)
}

// CursorFor returns the cursor resuming the feed right after p.
func CursorFor(p Post) string {
	return Cursor{CreatedAt: p.CreatedAt, PostID: p.ID}.String()
}
