package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"remindchat/internal/core/domain/chat"
	c "remindchat/internal/core/domain/common"
	"strconv"
	"strings"
)

var ErrNoJSONObject = errors.New("model output has no JSON object")

// flexInt accepts numbers, numeric strings and null. Values are clamped to
// the int32 range so later narrowing never wraps.
type flexInt struct {
	value c.Optional[int]
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.value = c.NewOptional(int(math.Max(math.MinInt32, math.Min(math.MaxInt32, n))), true)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	n2, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil
	}
	f.value = c.NewOptional(int(n2), true)
	return nil
}

// flexString accepts strings, null and anything else as empty.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(strings.TrimSpace(s))
	}
	return nil
}

// flexBool accepts booleans and "true"/"false" strings.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
	}
	return nil
}

// flexStrings accepts a list of strings or a single comma separated string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var list []interface{}
	if err := json.Unmarshal(data, &list); err == nil {
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				*f = append(*f, strings.TrimSpace(s))
			}
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		for _, part := range strings.Split(s, ",") {
			if strings.TrimSpace(part) != "" {
				*f = append(*f, strings.TrimSpace(part))
			}
		}
	}
	return nil
}

type wireRepeatDetails struct {
	Interval  flexInt    `json:"interval"`
	TimeOfDay flexString `json:"timeOfDay"`
	EndDate   flexString `json:"endDate"`
}

type wireExtraction struct {
	Intent             flexString         `json:"intent"`
	Title              flexString         `json:"title"`
	DueAtWIB           flexString         `json:"dueAtWIB"`
	TimeType           flexString         `json:"timeType"`
	Repeat             flexString         `json:"repeat"`
	RepeatDetails      *wireRepeatDetails `json:"repeatDetails"`
	IsRecurring        flexBool           `json:"isRecurring"`
	RecipientUsernames flexStrings        `json:"recipientUsernames"`
	Reply              flexString         `json:"reply"`
	StopNumber         flexInt            `json:"stopNumber"`
}

// jsonObject cuts the outermost {...} out of model output that may carry
// code fences or prose around it.
func jsonObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONObject
	}
	return raw[start : end+1], nil
}

// ParseExtraction decodes model output leniently. Slots with the wrong type are dropped.
func ParseExtraction(raw string) (chat.Extraction, error) {
	object, err := jsonObject(raw)
	if err != nil {
		return chat.UnknownExtraction(), err
	}
	var wire wireExtraction
	if err := json.Unmarshal([]byte(object), &wire); err != nil {
		return chat.UnknownExtraction(), fmt.Errorf("could not decode model output: %w", err)
	}

	extraction := chat.Extraction{
		Intent:             chat.ParseIntent(strings.ToLower(string(wire.Intent))),
		Title:              string(wire.Title),
		DueAtWIB:           string(wire.DueAtWIB),
		TimeType:           string(wire.TimeType),
		Repeat:             strings.ToLower(string(wire.Repeat)),
		IsRecurring:        bool(wire.IsRecurring),
		RecipientUsernames: []string(wire.RecipientUsernames),
		Reply:              string(wire.Reply),
		StopNumber:         wire.StopNumber.value,
	}
	if wire.RepeatDetails != nil {
		details := chat.RepeatDetails{
			TimeOfDay: string(wire.RepeatDetails.TimeOfDay),
			EndDate:   string(wire.RepeatDetails.EndDate),
		}
		if interval := wire.RepeatDetails.Interval.value; interval.IsPresent && interval.Value > 0 {
			details.Interval = uint32(interval.Value)
		}
		extraction.RepeatDetails = details
	}
	return extraction, nil
}
