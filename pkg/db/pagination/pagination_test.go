package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type row struct {
	ID        string
	CreatedAt time.Time
}

func cursorOf(r *row) Cursor {
	return Cursor{CreatedAt: r.CreatedAt, ID: r.ID}
}

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{CreatedAt: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC), ID: "abc"}

	out, err := DecodeCursor(EncodeCursor(in))
	require.NoError(t, err)
	require.Equal(t, in.ID, out.ID)
	require.True(t, in.CreatedAt.Equal(out.CreatedAt))
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64!!")
	require.Error(t, err)

	// Valid base64, invalid payload.
	_, err = DecodeCursor("bm90LWpzb24=")
	require.Error(t, err)
}

func TestTrimPage(t *testing.T) {
	now := time.Now()
	rows := []*row{
		{ID: "c", CreatedAt: now},
		{ID: "b", CreatedAt: now.Add(-time.Minute)},
		{ID: "a", CreatedAt: now.Add(-2 * time.Minute)},
	}

	t.Run("under limit", func(t *testing.T) {
		page, info := TrimPage(rows, 5, cursorOf)
		require.Len(t, page, 3)
		require.False(t, info.HasMore)
		require.Empty(t, info.NextCursor)
	})

	t.Run("over limit", func(t *testing.T) {
		page, info := TrimPage(rows, 2, cursorOf)
		require.Len(t, page, 2)
		require.True(t, info.HasMore)

		cursor, err := DecodeCursor(info.NextCursor)
		require.NoError(t, err)
		require.Equal(t, "b", cursor.ID)
	})

	t.Run("empty", func(t *testing.T) {
		page, info := TrimPage([]*row{}, 2, cursorOf)
		require.Empty(t, page)
		require.False(t, info.HasMore)
	})
}
