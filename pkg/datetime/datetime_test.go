package datetime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tablemate/pkg/tz"
)

func TestParse(t *testing.T) {
	t.Run("should build the instant in the given location", func(t *testing.T) {
		req := require.New(t)

		got, err := Parse("14/07/2026", "20:30", tz.Paris)

		req.NoError(err)
		req.Equal(time.Date(2026, 7, 14, 18, 30, 0, 0, time.UTC), got.UTC())
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, in := range [][2]string{{"", "20:30"}, {"2026-07-14", "20:30"}, {"14/07/2026", "8pm"}} {
			_, err := Parse(in[0], in[1], tz.Paris)
			require.Error(t, err, in)
		}
	})
}

func TestParseStamp(t *testing.T) {
	req := require.New(t)

	got, err := ParseStamp(" 01/12/2026 09:05 ", time.UTC)
	req.NoError(err)
	req.Equal(time.Date(2026, 12, 1, 9, 5, 0, 0, time.UTC), got)

	_, err = ParseStamp("01/12/2026", time.UTC)
	req.Error(err)
}

func TestFormat(t *testing.T) {
	req := require.New(t)
	req.Empty(Format(time.Time{}, tz.Paris))
	req.Equal("01/01/2026 13:00", Format(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), tz.Paris))
}
