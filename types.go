package main

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// series names as they appear in the profile blob
const (
	SeriesCarbRatio  = "carbratio"
	SeriesSens       = "sens"
	SeriesBasal      = "basal"
	SeriesTargetLow  = "target_low"
	SeriesTargetHigh = "target_high"
)

type (
	// ProfileSwitchEvent is one "Profile Switch" treatment returned by
	// the treatments endpoint.
	ProfileSwitchEvent struct {
		Profile     string `json:"profile"`
		CreatedAt   string `json:"created_at"`
		Duration    Number `json:"duration"`
		ProfileJSON string `json:"profileJson"`
	}

	// RawProfile is the profile blob as decoded from profileJson. Pointer
	// fields are nil when the key is absent or null.
	RawProfile struct {
		Name       *string     `json:"name"`
		Timezone   Text        `json:"timezone"`
		Units      *string     `json:"units"`
		DIA        *Number     `json:"dia"`
		Delay      Text        `json:"delay"`
		StartDate  Text        `json:"startDate"`
		CarbRatio  *[]RawEntry `json:"carbratio"`
		Sens       *[]RawEntry `json:"sens"`
		Basal      *[]RawEntry `json:"basal"`
		TargetLow  *[]RawEntry `json:"target_low"`
		TargetHigh *[]RawEntry `json:"target_high"`
	}

	RawEntry struct {
		Time          *string `json:"time"`
		TimeAsSeconds *Number `json:"timeAsSeconds"`
		Value         *Number `json:"value"`
	}

	// Profile is a fully populated profile, ready to render.
	Profile struct {
		Name       string
		Timezone   string
		Units      string
		DIA        Number
		Delay      string
		StartDate  string
		CarbRatio  []TimedEntry
		Sens       []TimedEntry
		Basal      []TimedEntry
		TargetLow  []TimedEntry
		TargetHigh []TimedEntry
	}

	TimedEntry struct {
		Time          string // HH:MM
		TimeAsSeconds int64
		Start         string // HH:MM:SS
		Minutes       int64
		Value         Number
	}

	// TimeSlot is one schedule row. Nil values render as blank cells.
	TimeSlot struct {
		Time       string
		Basal      *Number
		Sens       *Number
		CarbRatio  *Number
		TargetLow  *Number
		TargetHigh *Number
	}
)

// Raw converts a normalized entry back into its decoded form.
func (e TimedEntry) Raw() RawEntry {
	t := e.Time
	s := Number(e.TimeAsSeconds)
	v := e.Value
	return RawEntry{Time: &t, TimeAsSeconds: &s, Value: &v}
}

// Number is a JSON number that also accepts a quoted numeric string.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = bytes.TrimSpace(data[1 : len(data)-1])
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %s: not finite", data)
	}
	*n = Number(f)
	return nil
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Text is an optional profile attribute printed as-is. Strings pass through,
// numbers and booleans are formatted, and falsy values (absent, null, "",
// 0, false, empty list or object) become "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch v := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(v)
	case bool:
		if v {
			*t = "true"
		} else {
			*t = ""
		}
	case float64:
		if v == 0 {
			*t = ""
		} else {
			*t = Text(Number(v).String())
		}
	case []any:
		if len(v) == 0 {
			*t = ""
		} else {
			*t = Text(bytes.TrimSpace(data))
		}
	case map[string]any:
		if len(v) == 0 {
			*t = ""
		} else {
			*t = Text(bytes.TrimSpace(data))
		}
	default:
		*t = Text(bytes.TrimSpace(data))
	}
	return nil
}

// rawSwitchEvent is the wire form of a switch event; nil fields were absent.
type rawSwitchEvent struct {
	Profile     *string `json:"profile"`
	CreatedAt   *string `json:"created_at"`
	Duration    *Number `json:"duration"`
	ProfileJSON *string `json:"profileJson"`
}

func (r rawSwitchEvent) event() (ProfileSwitchEvent, error) {
	switch {
	case r.Profile == nil:
		return ProfileSwitchEvent{}, &MissingFieldError{Field: "profile"}
	case r.CreatedAt == nil:
		return ProfileSwitchEvent{}, &MissingFieldError{Field: "created_at"}
	case r.Duration == nil:
		return ProfileSwitchEvent{}, &MissingFieldError{Field: "duration"}
	case r.ProfileJSON == nil:
		return ProfileSwitchEvent{}, &MissingFieldError{Field: "profileJson"}
	}

	return ProfileSwitchEvent{
		Profile:     *r.Profile,
		CreatedAt:   *r.CreatedAt,
		Duration:    *r.Duration,
		ProfileJSON: *r.ProfileJSON,
	}, nil
}
