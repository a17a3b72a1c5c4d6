package util

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Format(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := DatabaseConnectionError("postgres://localhost/app", cause)

	assert.Equal(t, "Cannot connect to database", err.Error())
	assert.ErrorIs(t, err, cause)

	out := err.Format()
	assert.Contains(t, out, "Error: Cannot connect to database")
	assert.Contains(t, out, "postgres://localhost/app")
	assert.Contains(t, out, "Possible causes:")
	assert.Contains(t, out, "$ dataview config database.url <url>")
	assert.Contains(t, out, "dial tcp: refused")
}

func TestErrorConstructors(t *testing.T) {
	assert.ErrorIs(t, ScreenNotFoundError("nope"), ErrScreenNotFound)
	assert.ErrorIs(t, UnsupportedFormatError("x.csv"), ErrUnsupportedFormat)

	parse := errors.New("bad escape")
	state := InvalidStateError("%zz", parse)
	assert.ErrorIs(t, state, ErrInvalidState)
	assert.ErrorIs(t, state, parse)

	missing := MissingArgumentError("file", "dataview view areas.json")
	require.Len(t, missing.Suggestions, 1)
	assert.Empty(t, MissingArgumentError("file", "").Suggestions)

	assert.Equal(t, "Too many arguments: expected 1, got 3", TooManyArgumentsError(1, 3).Error())
}

func TestToValidUTF8(t *testing.T) {
	assert.Equal(t, "Área", ToValidUTF8("Área"))
	// "Área" in Latin-1
	assert.Equal(t, "Área", ToValidUTF8(string([]byte{0xC1, 'r', 'e', 'a'})))
	assert.Equal(t, []byte("ñandú"), ToValidUTF8Bytes([]byte{0xF1, 'a', 'n', 'd', 0xFA}))
}

func TestTruncateAndEscape(t *testing.T) {
	assert.Equal(t, "descripción", Truncate("descripción", 11))
	assert.Equal(t, "descr…", Truncate("descripción", 6))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, `a\nb\tc`, Escape("a\nb\tc"))
}

func TestULID(t *testing.T) {
	when := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	id := NewULIDWithTime(when)
	require.True(t, ValidateULID(id))

	got, err := ParseULID(id)
	require.NoError(t, err)
	assert.True(t, got.Equal(when))

	next := NewULIDWithTime(when)
	assert.Less(t, id, next, "monotonic within the same millisecond")

	assert.Len(t, ShortID(id), 7)
	assert.Equal(t, "abc", ShortID("ABC"))
	assert.False(t, ValidateULID("not-a-ulid"))
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", RelativeTime(now))
	assert.Equal(t, "5 minutes ago", RelativeTime(now.Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "1 hour ago", RelativeTime(now.Add(-61*time.Minute)))
	assert.Equal(t, "2 weeks ago", RelativeTime(now.Add(-15*24*time.Hour)))

	old := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jan 2, 2020", RelativeTime(old))
	assert.Equal(t, "2020-01-02", FormatDate(old, ""))
	assert.Equal(t, "02/01/2020", FormatDate(old, "02/01/2006"))
	assert.Equal(t, "Jan 2, 2020", FormatDate(old, LayoutRelative))
}

func TestRelativeTimeShort(t *testing.T) {
	now := time.Now()
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "now"},
		{5*time.Minute + time.Second, "5m ago"},
		{3*time.Hour + time.Second, "3h ago"},
		{73 * time.Hour, "3d ago"},
		{15 * 24 * time.Hour, "2w ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTimeShort(now.Add(-tt.ago)), tt.ago)
		assert.Equal(t, tt.want, FormatDate(now.Add(-tt.ago), LayoutRelativeShort), tt.ago)
	}

	old := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Jan 2", RelativeTimeShort(old))
	assert.Equal(t, "Jan 2", FormatDate(old, LayoutRelativeShort))
}

func TestRelativeTime_Future(t *testing.T) {
	soon := time.Now().Add(48 * time.Hour)
	assert.Equal(t, soon.Format("Jan 2, 2006"), RelativeTime(soon))
	assert.Equal(t, soon.Format("Jan 2"), RelativeTimeShort(soon))
}
