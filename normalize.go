package main

import (
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

var (
	ErrNoTimeInformation = errors.New("entry has no time information")
	ErrInvalidTime       = errors.New("time is not in HH:MM form")
	ErrMinuteMismatch    = errors.New("timeAsSeconds gives different minutes under legacy and fixed formulas")
)

const secondsPerDay = 24 * 3600

// MinuteMode selects how the minute is derived when only timeAsSeconds is
// known.
type MinuteMode string

const (
	// MinuteLegacy uses seconds%60, matching what older releases printed.
	MinuteLegacy MinuteMode = "legacy"
	// MinuteFixed uses (seconds/60)%60.
	MinuteFixed MinuteMode = "fixed"
	// MinuteStrict refuses values where the two formulas disagree.
	MinuteStrict MinuteMode = "strict"
)

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("profile is missing required field %q", e.Field)
}

// DecodeProfile decodes the profile embedded in a switch event and fills in
// defaults. The event's profile name overrides any name in the blob.
func DecodeProfile(event ProfileSwitchEvent, mode MinuteMode) (Profile, error) {
	var raw RawProfile
	if err := json.Unmarshal([]byte(event.ProfileJSON), &raw); err != nil {
		return Profile{}, fmt.Errorf("error decoding profileJson of %q: %w", event.Profile, err)
	}

	return WithDefaults(event.Profile, raw, mode)
}

func WithDefaults(name string, raw RawProfile, mode MinuteMode) (Profile, error) {
	p := Profile{
		Name:      name,
		Timezone:  string(raw.Timezone),
		Delay:     string(raw.Delay),
		StartDate: string(raw.StartDate),
	}

	if raw.Units == nil {
		return Profile{}, &MissingFieldError{Field: "units"}
	}
	p.Units = *raw.Units

	if raw.DIA == nil {
		return Profile{}, &MissingFieldError{Field: "dia"}
	}
	p.DIA = *raw.DIA

	series := []struct {
		name string
		raw  *[]RawEntry
		dst  *[]TimedEntry
	}{
		{SeriesCarbRatio, raw.CarbRatio, &p.CarbRatio},
		{SeriesSens, raw.Sens, &p.Sens},
		{SeriesBasal, raw.Basal, &p.Basal},
		{SeriesTargetLow, raw.TargetLow, &p.TargetLow},
		{SeriesTargetHigh, raw.TargetHigh, &p.TargetHigh},
	}
	for _, s := range series {
		if s.raw == nil {
			return Profile{}, &MissingFieldError{Field: s.name}
		}

		entries := make([]TimedEntry, 0, len(*s.raw))
		for i, r := range *s.raw {
			e, err := NormalizeEntry(r, mode)
			if err != nil {
				return Profile{}, fmt.Errorf("%s[%d]: %w", s.name, i, err)
			}
			entries = append(entries, e)
		}
		*s.dst = entries
	}

	return p, nil
}

// NormalizeEntry derives whichever of time and timeAsSeconds is missing and
// recomputes start and minutes.
func NormalizeEntry(raw RawEntry, mode MinuteMode) (TimedEntry, error) {
	if raw.Time == nil && raw.TimeAsSeconds == nil {
		return TimedEntry{}, ErrNoTimeInformation
	}
	if raw.Value == nil {
		return TimedEntry{}, &MissingFieldError{Field: "value"}
	}

	var e TimedEntry
	e.Value = *raw.Value

	if raw.TimeAsSeconds != nil {
		s := float64(*raw.TimeAsSeconds)
		if s < 0 || s >= secondsPerDay {
			return TimedEntry{}, fmt.Errorf("%w: timeAsSeconds %v is outside one day", ErrInvalidTime, s)
		}
		e.TimeAsSeconds = int64(s)
	} else {
		t, err := time.Parse("15:04", *raw.Time)
		if err != nil {
			return TimedEntry{}, fmt.Errorf("%w: %q", ErrInvalidTime, *raw.Time)
		}
		e.TimeAsSeconds = int64(t.Hour()*3600 + t.Minute()*60)
	}

	if raw.Time != nil {
		e.Time = *raw.Time
	} else {
		hhmm, err := clockFromSeconds(e.TimeAsSeconds, mode)
		if err != nil {
			return TimedEntry{}, err
		}
		e.Time = hhmm
	}

	e.Start = e.Time + ":00"
	e.Minutes = e.TimeAsSeconds / 60

	return e, nil
}

func clockFromSeconds(seconds int64, mode MinuteMode) (string, error) {
	hour := seconds / 3600
	legacy := seconds % 60
	fixed := (seconds / 60) % 60

	var minute int64
	switch mode {
	case MinuteFixed:
		minute = fixed
	case MinuteStrict:
		if legacy != fixed {
			return "", fmt.Errorf("%w: %d", ErrMinuteMismatch, seconds)
		}
		minute = fixed
	default:
		minute = legacy
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
