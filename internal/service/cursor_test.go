package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	in := archiveCursor{
		Date: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		ID:   uuid.New(),
	}

	out, err := decodeCursor(encodeCursor(in))
	require.NoError(t, err)
	assert.Equal(t, in.Date, out.Date)
	assert.Equal(t, in.ID, out.ID)
}

func TestDecodeCursorInvalid(t *testing.T) {
	cases := []struct {
		name   string
		cursor string
	}{
		{"не base64", "%%%"},
		{"нет разделителя", "MjAyNi0wOC0xNQ"},
		{"кривая дата", "bm90LWEtZGF0ZXwxMjM"},
		{"кривой uuid", "MjAyNi0wOC0xNXxub3QtYS11dWlk"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeCursor(tc.cursor)
			assert.Error(t, err)
		})
	}
}
