package reminder

import (
	"fmt"
	c "remindchat/internal/core/domain/common"
	"strings"
	"time"
)

// TIME_IN_PAST_TOLERANCE absorbs clock skew for "right now" phrasing.
const TIME_IN_PAST_TOLERANCE = 30 * time.Second

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

var dateLayouts = []string{
	"2006-01-02",
}

type ResolveInput struct {
	DueAtRaw  c.Optional[string]
	Repeat    RepeatType
	Interval  uint32
	TimeOfDay c.Optional[string]
	EndDate   c.Optional[string]
}

type Resolution struct {
	DueAt     time.Time
	Cadence   Cadence
	TimeOfDay c.Optional[TimeOfDay]
	EndDate   c.Optional[time.Time]
}

func (r Resolution) IsRecurring() bool {
	return r.Cadence.IsRecurring()
}

func (r Resolution) Label() string {
	return r.Cadence.Label()
}

// Resolve turns loosely typed time slots into the first fire instant and cadence.
// Timestamps without an explicit offset are read in loc.
func Resolve(input ResolveInput, now time.Time, loc *time.Location) (result Resolution, err error) {
	result.Cadence = NewCadence(input.Repeat, input.Interval)
	if err := result.Cadence.Validate(); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}

	if input.TimeOfDay.IsPresent && strings.TrimSpace(input.TimeOfDay.Value) != "" {
		tod, err := ParseTimeOfDay(strings.TrimSpace(input.TimeOfDay.Value))
		if err != nil {
			return result, fmt.Errorf("%w: %v", ErrInvalidTime, err)
		}
		result.TimeOfDay = c.NewOptional(tod, true)
	}

	if input.EndDate.IsPresent && strings.TrimSpace(input.EndDate.Value) != "" {
		endDate, err := parseEndDate(strings.TrimSpace(input.EndDate.Value), loc)
		if err != nil {
			return result, err
		}
		result.EndDate = c.NewOptional(endDate, true)
	}

	if input.DueAtRaw.IsPresent && strings.TrimSpace(input.DueAtRaw.Value) != "" {
		dueAt, err := ParseTimestamp(strings.TrimSpace(input.DueAtRaw.Value), loc)
		if err != nil {
			return result, err
		}
		if dueAt.Before(now.Add(-TIME_IN_PAST_TOLERANCE)) {
			return result, ErrTimeInPast
		}
		result.DueAt = dueAt
		if result.IsRecurring() && !result.TimeOfDay.IsPresent {
			result.TimeOfDay = c.NewOptional(TimeOfDay{Hour: dueAt.Hour(), Minute: dueAt.Minute()}, true)
		}
		return result, nil
	}

	if !result.IsRecurring() {
		return result, ErrMissingTime
	}

	if result.TimeOfDay.IsPresent {
		result.DueAt = firstOccurrence(result.TimeOfDay.Value, result.Cadence, now, loc)
		return result, nil
	}

	if result.Cadence.IsSubDaily() {
		result.DueAt = result.Cadence.NextFrom(now.In(loc).Truncate(time.Second))
		return result, nil
	}

	return result, ErrMissingTime
}

// firstOccurrence starts from today's occurrence of tod. Calendar cadences step
// exactly once when it has passed; sub-daily cadences step until it is ahead of now.
func firstOccurrence(tod TimeOfDay, cadence Cadence, now time.Time, loc *time.Location) time.Time {
	first := tod.On(now, loc)
	if first.After(now) {
		return first
	}
	if !cadence.IsSubDaily() {
		return cadence.NextFrom(first)
	}
	for !first.After(now) {
		first = cadence.NextFrom(first)
	}
	return first
}

func ParseTimestamp(raw string, loc *time.Location) (t time.Time, err error) {
	for _, layout := range timestampLayouts {
		t, err = time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t.In(loc), nil
		}
	}
	return t, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
}

func parseEndDate(raw string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		day, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return day.Add(24*time.Hour - time.Second), nil
		}
	}
	return ParseTimestamp(raw, loc)
}
