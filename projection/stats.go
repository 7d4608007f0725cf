package projection

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"chat-events/errors"
	"slices"
	"time"

	"github.com/samber/lo"
)

// BucketStats summarizes one granularity-hour window.
// Every counter but CommentCount counts distinct users.
type BucketStats struct {
	Hour                  time.Time
	PeopleEnteredCount    int
	PeopleLeftCount       int
	CommentCount          int
	PeopleHighFivingCount int
	PeopleHighFivedCount  int
}

// ValidGranularity reports whether g hours split a day evenly.
func ValidGranularity(g int) bool {
	return g > 0 && 24%g == 0
}

// BucketStart truncates at down to the start of its granularity-hour window
// within the same calendar day. When a daylight saving jump skips that wall
// hour, the window starts at the jump instead.
func BucketStart(at time.Time, granularity int) time.Time {
	hour := at.Hour() - at.Hour()%granularity
	start := time.Date(at.Year(), at.Month(), at.Day(), hour, 0, 0, 0, at.Location())
	if start.Hour() != hour || start.Day() != at.Day() {
		start, _ = at.ZoneBounds()
	}
	return start
}

// Aggregate groups a timeline into buckets of granularity hours.
// An empty timeline yields no bucket at all.
func Aggregate(timeline []event.DomainEvent, granularity int) ([]BucketStats, error) {
	if !ValidGranularity(granularity) {
		return nil, errors.ErrInvalidGranularity
	}

	var keys []int64
	starts := make(map[int64]time.Time)
	groups := make(map[int64][]event.DomainEvent)
	for _, e := range timeline {
		start := BucketStart(e.OccurredAt(), granularity)
		key := start.UnixNano()
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
			starts[key] = start
		}
		groups[key] = append(groups[key], e)
	}

	buckets := lo.Map(keys, func(key int64, _ int) BucketStats {
		return summarize(starts[key], groups[key])
	})
	slices.SortStableFunc(buckets, func(a, b BucketStats) int {
		return a.Hour.Compare(b.Hour)
	})
	return buckets, nil
}

func summarize(start time.Time, events []event.DomainEvent) BucketStats {
	var entered, left, highFiving, highFived []domain.UserID
	comments := 0
	for _, e := range events {
		switch evt := e.(type) {
		case event.EnterRoom:
			entered = append(entered, evt.User)
		case event.LeaveRoom:
			left = append(left, evt.User)
		case event.Comment:
			comments++
		case event.HighFive:
			highFiving = append(highFiving, evt.User)
			highFived = append(highFived, evt.OtherUser)
		}
	}
	return BucketStats{
		Hour:                  start,
		PeopleEnteredCount:    len(lo.Uniq(entered)),
		PeopleLeftCount:       len(lo.Uniq(left)),
		CommentCount:          comments,
		PeopleHighFivingCount: len(lo.Uniq(highFiving)),
		PeopleHighFivedCount:  len(lo.Uniq(highFived)),
	}
}
