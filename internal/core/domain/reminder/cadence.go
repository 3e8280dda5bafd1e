package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-module/carbon/v2"
)

var (
	ErrParseRepeatType = errors.New("invalid repeat type")
	ErrInvalidCadence  = errors.New("invalid cadence")
	ErrParseTimeOfDay  = errors.New("invalid time of day")
)

type RepeatType struct {
	v string
}

func (t RepeatType) String() string {
	return t.v
}

var (
	RepeatNone    = RepeatType{v: "none"}
	RepeatMinutes = RepeatType{v: "minutes"}
	RepeatHours   = RepeatType{v: "hours"}
	RepeatDaily   = RepeatType{v: "daily"}
	RepeatWeekly  = RepeatType{v: "weekly"}
	RepeatMonthly = RepeatType{v: "monthly"}
	RepeatYearly  = RepeatType{v: "yearly"}
)

func ParseRepeatType(value string) (RepeatType, error) {
	switch value {
	case "", "none":
		return RepeatNone, nil
	case "minutes":
		return RepeatMinutes, nil
	case "hours":
		return RepeatHours, nil
	case "daily":
		return RepeatDaily, nil
	case "weekly":
		return RepeatWeekly, nil
	case "monthly":
		return RepeatMonthly, nil
	case "yearly":
		return RepeatYearly, nil
	default:
		return RepeatNone, ErrParseRepeatType
	}
}

type Cadence struct {
	Type     RepeatType
	Interval uint32
}

var NoCadence = Cadence{Type: RepeatNone}

// NewCadence defaults a zero interval to 1.
func NewCadence(t RepeatType, interval uint32) Cadence {
	if t == RepeatNone || t == (RepeatType{}) {
		return NoCadence
	}
	if interval == 0 {
		interval = 1
	}
	return Cadence{Type: t, Interval: interval}
}

func (c Cadence) String() string {
	if !c.IsRecurring() {
		return RepeatNone.v
	}
	return fmt.Sprintf("%d %s", c.Interval, c.Type.v)
}

func (c Cadence) IsRecurring() bool {
	return c.Type != RepeatNone && c.Type != (RepeatType{})
}

func (c Cadence) IsSubDaily() bool {
	return c.Type == RepeatMinutes || c.Type == RepeatHours
}

var maxIntervals = map[RepeatType]uint32{
	RepeatMinutes: 60 * 24 * 366,
	RepeatHours:   24 * 366,
	RepeatDaily:   366,
	RepeatWeekly:  53,
	RepeatMonthly: 12,
	RepeatYearly:  10,
}

func (c Cadence) Validate() error {
	if !c.IsRecurring() {
		return nil
	}
	max, ok := maxIntervals[c.Type]
	if !ok {
		return ErrInvalidCadence
	}
	if c.Interval == 0 || c.Interval > max {
		return ErrInvalidCadence
	}
	return nil
}

// NextFrom returns t advanced by one cadence step. Calendar units keep the
// wall clock of t and clamp to the end of shorter months.
func (c Cadence) NextFrom(t time.Time) time.Time {
	n := int(c.Interval)
	switch c.Type {
	case RepeatMinutes:
		return t.Add(time.Duration(n) * time.Minute)
	case RepeatHours:
		return t.Add(time.Duration(n) * time.Hour)
	case RepeatDaily:
		return carbon.Time2Carbon(t).AddDays(n).Carbon2Time().In(t.Location())
	case RepeatWeekly:
		return carbon.Time2Carbon(t).AddWeeks(n).Carbon2Time().In(t.Location())
	case RepeatMonthly:
		return carbon.Time2Carbon(t).AddMonthsNoOverflow(n).Carbon2Time().In(t.Location())
	case RepeatYearly:
		return carbon.Time2Carbon(t).AddYearsNoOverflow(n).Carbon2Time().In(t.Location())
	default:
		panic(fmt.Sprintf("unexpected repeat type: %v", c.Type))
	}
}

// Label is the Indonesian recurrence phrase; only minutes and hours mention the interval.
func (c Cadence) Label() string {
	switch c.Type {
	case RepeatMinutes:
		return fmt.Sprintf("setiap %d menit", c.Interval)
	case RepeatHours:
		if c.Interval <= 1 {
			return "setiap jam"
		}
		return fmt.Sprintf("setiap %d jam", c.Interval)
	case RepeatDaily:
		return "setiap hari"
	case RepeatWeekly:
		return "setiap minggu"
	case RepeatMonthly:
		return "setiap bulan"
	case RepeatYearly:
		return "setiap tahun"
	default:
		return ""
	}
}

type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func ParseTimeOfDay(value string) (t TimeOfDay, err error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		parsed, err = time.Parse("15.04", value)
	}
	if err != nil {
		return t, ErrParseTimeOfDay
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// On returns the occurrence of t on the calendar day of day, in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), t.Hour, t.Minute, 0, 0, loc)
}
