package internal

import (
	"chat-events/errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestParseDate(t *testing.T) {
	req := require.New(t)
	paris, err := time.LoadLocation("Europe/Paris")
	req.NoError(err)

	at, err := ParseDate("20-12-2020T13:45:00", paris)
	req.NoError(err)
	req.Equal(time.Date(2020, 12, 20, 13, 45, 0, 0, paris), *at)

	at, err = ParseDate("  ", paris)
	req.NoError(err)
	req.Nil(at)

	_, err = ParseDate("2020-12-20 13:45", paris)
	req.Error(err)
}

func TestParseRange_Reports_Every_Failure(t *testing.T) {
	req := require.New(t)

	// When both dates are unreadable
	_, _, err := ParseRange("yesterday", "tomorrow", time.UTC)

	// Then both are reported
	req.ErrorIs(err, errors.ErrInvalidFromDate)
	req.ErrorIs(err, errors.ErrInvalidToDate)
	req.Len(multierr.Errors(err), 2)
}

func TestParseRange_From_After_To(t *testing.T) {
	req := require.New(t)

	_, _, err := ParseRange("21-12-2020T00:00:00", "20-12-2020T00:00:00", time.UTC)

	req.ErrorIs(err, errors.ErrInvalidDateRange)
}

func TestParseRange_Open_Bounds(t *testing.T) {
	req := require.New(t)

	from, to, err := ParseRange("", "20-12-2020T00:00:00", time.UTC)
	req.NoError(err)
	req.Nil(from)
	req.Equal(time.Date(2020, 12, 20, 0, 0, 0, 0, time.UTC), *to)

	// Equal bounds are accepted and simply match nothing downstream
	from, to, err = ParseRange("20-12-2020T00:00:00", "20-12-2020T00:00:00", time.UTC)
	req.NoError(err)
	req.Equal(*from, *to)
}
