package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepeatType(t *testing.T) {
	cases := []struct {
		raw      string
		expected RepeatType
	}{
		{raw: "", expected: RepeatNone},
		{raw: "none", expected: RepeatNone},
		{raw: "minutes", expected: RepeatMinutes},
		{raw: "hours", expected: RepeatHours},
		{raw: "daily", expected: RepeatDaily},
		{raw: "weekly", expected: RepeatWeekly},
		{raw: "monthly", expected: RepeatMonthly},
		{raw: "yearly", expected: RepeatYearly},
	}
	for _, testcase := range cases {
		t.Run(testcase.raw, func(t *testing.T) {
			actual, err := ParseRepeatType(testcase.raw)
			require.Nil(t, err)
			require.Equal(t, testcase.expected, actual)
		})
	}

	_, err := ParseRepeatType("fortnightly")
	require.ErrorIs(t, err, ErrParseRepeatType)
}

func TestNewCadenceDefaultsInterval(t *testing.T) {
	assert := require.New(t)

	assert.Equal(Cadence{Type: RepeatDaily, Interval: 1}, NewCadence(RepeatDaily, 0))
	assert.Equal(Cadence{Type: RepeatMinutes, Interval: 7}, NewCadence(RepeatMinutes, 7))
	assert.Equal(NoCadence, NewCadence(RepeatNone, 5))
	assert.False(NoCadence.IsRecurring())
}

func TestCadenceLabel(t *testing.T) {
	cases := []struct {
		cadence  Cadence
		expected string
	}{
		{cadence: NewCadence(RepeatMinutes, 5), expected: "setiap 5 menit"},
		{cadence: NewCadence(RepeatHours, 1), expected: "setiap jam"},
		{cadence: NewCadence(RepeatHours, 2), expected: "setiap 2 jam"},
		{cadence: NewCadence(RepeatDaily, 1), expected: "setiap hari"},
		{cadence: NewCadence(RepeatDaily, 3), expected: "setiap hari"},
		{cadence: NewCadence(RepeatWeekly, 1), expected: "setiap minggu"},
		{cadence: NewCadence(RepeatMonthly, 1), expected: "setiap bulan"},
		{cadence: NewCadence(RepeatYearly, 1), expected: "setiap tahun"},
		{cadence: NoCadence, expected: ""},
	}
	for _, testcase := range cases {
		t.Run(testcase.cadence.String(), func(t *testing.T) {
			assert.Equal(t, testcase.expected, testcase.cadence.Label())
		})
	}
}

func TestCadenceValidate(t *testing.T) {
	assert := require.New(t)

	assert.Nil(NewCadence(RepeatMinutes, 1).Validate())
	assert.Nil(NewCadence(RepeatWeekly, 53).Validate())
	assert.Nil(NoCadence.Validate())
	assert.ErrorIs(NewCadence(RepeatMonthly, 13).Validate(), ErrInvalidCadence)
	assert.ErrorIs(NewCadence(RepeatYearly, 11).Validate(), ErrInvalidCadence)
	assert.ErrorIs(Cadence{Type: RepeatHours, Interval: 0}.Validate(), ErrInvalidCadence)
}

func TestCadenceNextFrom(t *testing.T) {
	cases := []struct {
		id       string
		cadence  Cadence
		from     string
		expected string
	}{
		{id: "1", cadence: NewCadence(RepeatMinutes, 5), from: "2024-01-01T10:00:00+07:00", expected: "2024-01-01T10:05:00+07:00"},
		{id: "2", cadence: NewCadence(RepeatHours, 3), from: "2024-01-01T23:00:00+07:00", expected: "2024-01-02T02:00:00+07:00"},
		{id: "3", cadence: NewCadence(RepeatDaily, 1), from: "2024-02-28T12:00:00+07:00", expected: "2024-02-29T12:00:00+07:00"},
		{id: "4", cadence: NewCadence(RepeatWeekly, 1), from: "2024-12-30T12:00:00+07:00", expected: "2025-01-06T12:00:00+07:00"},
		{id: "5", cadence: NewCadence(RepeatMonthly, 1), from: "2024-01-31T12:00:00+07:00", expected: "2024-02-29T12:00:00+07:00"},
		{id: "6", cadence: NewCadence(RepeatMonthly, 1), from: "2024-03-15T12:00:00+07:00", expected: "2024-04-15T12:00:00+07:00"},
		{id: "7", cadence: NewCadence(RepeatYearly, 1), from: "2024-02-29T12:00:00+07:00", expected: "2025-02-28T12:00:00+07:00"},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			from, err := time.Parse(time.RFC3339, testcase.from)
			require.Nil(t, err)
			expected, err := time.Parse(time.RFC3339, testcase.expected)
			require.Nil(t, err)

			actual := testcase.cadence.NextFrom(from)
			require.True(t, expected.Equal(actual), "expected %v, got %v", expected, actual)
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	assert := require.New(t)

	tod, err := ParseTimeOfDay("07:30")
	assert.Nil(err)
	assert.Equal(TimeOfDay{Hour: 7, Minute: 30}, tod)
	assert.Equal("07:30", tod.String())

	tod, err = ParseTimeOfDay("21.05")
	assert.Nil(err)
	assert.Equal(TimeOfDay{Hour: 21, Minute: 5}, tod)

	_, err = ParseTimeOfDay("25:00")
	assert.ErrorIs(err, ErrParseTimeOfDay)
	_, err = ParseTimeOfDay("pagi")
	assert.ErrorIs(err, ErrParseTimeOfDay)
}
