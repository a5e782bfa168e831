package pagination

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Pagination is the query-string shape for cursor-paginated listings.
type Pagination struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit,default=50" binding:"omitempty,gte=1,lte=250"`
}

// Cursor points past the last row of the previous page. Ordering is
// (created_at DESC, id DESC), so both fields are needed for a stable resume
// point when timestamps collide.
type Cursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
}

type PageInfo struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

func EncodeCursor(c Cursor) string {
	b, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(b)
}

func DecodeCursor(data string) (*Cursor, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}

	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, err
	}

	return &cursor, nil
}

// TrimPage cuts an over-fetched result set (limit+1 rows) down to the page
// and derives the next cursor from the last visible row.
func TrimPage[T any](rows []*T, limit int, cursorOf func(*T) Cursor) ([]*T, *PageInfo) {
	if len(rows) <= limit {
		return rows, &PageInfo{HasMore: false}
	}

	rows = rows[:limit]
	return rows, &PageInfo{
		HasMore:    true,
		NextCursor: EncodeCursor(cursorOf(rows[len(rows)-1])),
	}
}
