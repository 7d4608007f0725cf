package internal

import (
	"chat-events/errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// DateLayout is dd-MM-yyyyTHH:mm:ss.
const DateLayout = "02-01-2006T15:04:05"

// ParseDate reads value in loc. An empty value is an absent bound.
func ParseDate(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	at, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

// ParseRange reads an optional [from, to] pair. Every failure is reported:
// an unreadable from, an unreadable to and a from after to.
func ParseRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	var err error
	fromAt, fromErr := ParseDate(from, loc)
	if fromErr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %q", errors.ErrInvalidFromDate, from))
	}
	toAt, toErr := ParseDate(to, loc)
	if toErr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %q", errors.ErrInvalidToDate, to))
	}
	if fromAt != nil && toAt != nil && fromAt.After(*toAt) {
		err = multierr.Append(err, errors.ErrInvalidDateRange)
	}
	if err != nil {
		return nil, nil, err
	}
	return fromAt, toAt, nil
}
