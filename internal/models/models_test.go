package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCursor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMs  int64
		wantID  int
		wantNil bool
		wantErr bool
	}{
		{name: "absent", input: "", wantNil: true},
		{name: "millis only", input: "1600000000123", wantMs: 1600000000123},
		{name: "millis and id", input: "1600000000123:42", wantMs: 1600000000123, wantID: 42},
		{name: "zero", input: "0", wantMs: 0},
		{name: "not a number", input: "yesterday", wantErr: true},
		{name: "float", input: "16.5", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "empty id", input: "1600000000123:", wantErr: true},
		{name: "bad id", input: "1600000000123:x", wantErr: true},
		{name: "zero id", input: "1600000000123:0", wantErr: true},
		{name: "trailing junk", input: "1600000000123:4:2", wantErr: true},
		{name: "last representable", input: "253402300799999:3", wantMs: 253402300799999, wantID: 3},
		{name: "out of range", input: "99999999999999999", wantErr: true},
		{name: "int64 overflow of micros", input: "9000000000000000000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCursor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				require.Nil(t, c)
				return
			}
			require.Equal(t, tt.wantMs, c.CreatedAt.UnixMilli())
			require.Equal(t, tt.wantID, c.PostID)
			require.Equal(t, tt.input, c.String())
		})
	}
}
func TestCursorFor(t *testing.T) {
	p := Post{ID: 7, CreatedAt: time.UnixMilli(1600000000123)}
	cursor := CursorFor(p)
	require.Equal(t, "1600000000123:7", cursor)

	c, err := ParseCursor(cursor)
	require.NoError(t, err)
	require.True(t, c.CreatedAt.Equal(p.CreatedAt))
	require.Equal(t, p.ID, c.PostID)
}
func TestClampLimit(t *testing.T) {
	require := require.New(t)
	for _, in := range []int{0, -1, -100} {
		_, err := ClampLimit(in)
		require.True(errors.Is(err, ErrValidation), "limit %d", in)
	}
	l, err := ClampLimit(1000)
	require.NoError(err)
	require.Equal(MaxPageSize, l)

	l, err = ClampLimit(MaxPageSize)
	require.NoError(err)
	require.Equal(MaxPageSize, l)

	l, err = ClampLimit(3)
	require.NoError(err)
	require.Equal(3, l)
}
func TestNewPage(t *testing.T) {
	require := require.New(t)
	rows := make([]Post, 4)
	for i := range rows {
		rows[i].ID = i + 1
	}

	page := NewPage(rows, 3)
	require.True(page.HasMore)
	require.Len(page.Posts, 3)
	require.Equal(3, page.Posts[2].ID)

	page = NewPage(rows[:3], 3)
	require.False(page.HasMore)
	require.Len(page.Posts, 3)

	page = NewPage(nil, 3)
	require.False(page.HasMore)
	require.Empty(page.Posts)
}
func TestVoteDirection(t *testing.T) {
	require := require.New(t)

	d, err := ParseVoteDirection("up")
	require.NoError(err)
	v, err := d.Value()
	require.NoError(err)
	require.Equal(1, v)

	d, err = ParseVoteDirection("down")
	require.NoError(err)
	v, err = d.Value()
	require.NoError(err)
	require.Equal(-1, v)

	for _, bad := range []string{"", "UP", "sideways", "1"} {
		_, err = ParseVoteDirection(bad)
		require.True(errors.Is(err, ErrValidation), "direction %q", bad)
	}
	_, err = VoteDirection("left").Value()
	require.True(errors.Is(err, ErrValidation))

	d, err = DirectionFromValue(-1)
	require.NoError(err)
	require.Equal(VoteDown, d)
	d, err = DirectionFromValue(1)
	require.NoError(err)
	require.Equal(VoteUp, d)
	for _, bad := range []int{0, 2, -2} {
		_, err = DirectionFromValue(bad)
		require.True(errors.Is(err, ErrValidation), "value %d", bad)
	}
}
func TestTextSnippet(t *testing.T) {
	short := Post{Text: "short"}
	require.Equal(t, "short", short.TextSnippet())

	long := Post{Text: strings.Repeat("è", 80)}
	require.Equal(t, strings.Repeat("è", SnippetLen), long.TextSnippet())
}
func TestValidate(t *testing.T) {
	require := require.New(t)
	require.NoError(PostInput{Title: "Hello", Text: ""}.Validate())
	require.True(errors.Is(PostInput{Title: "   "}.Validate(), ErrValidation))
	require.True(errors.Is(PostInput{Title: strings.Repeat("a", LimitMaxTitle+1)}.Validate(), ErrValidation))

	require.NoError((&User{Username: "pippo_42"}).Validate())
	require.Error((&User{Username: "no"}).Validate())
	require.Error((&User{Username: "has space"}).Validate())
}
func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&StorageError{Op: "cast vote", Err: cause})
	require.True(t, errors.Is(err, cause))
	require.Equal(t, "storage: cast vote: connection reset", err.Error())
}
