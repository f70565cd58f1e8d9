package main

import (
	"fmt"
	"io"
	"sort"
)

var (
	summaryHeaders  = []string{"Profile name", "Timezone", "Units", "DIA", "Delay", "Start date"}
	scheduleHeaders = []string{"Time", "Basal", "ISF", "CR", "Target Low", "Target High"}
)

// BuildSchedule merges the five series into one row per distinct time,
// sorted by time. A later entry with the same time replaces an earlier one.
func BuildSchedule(p Profile) []TimeSlot {
	slots := make(map[string]*TimeSlot)
	slot := func(t string) *TimeSlot {
		s, ok := slots[t]
		if !ok {
			s = &TimeSlot{Time: t}
			slots[t] = s
		}
		return s
	}

	merge := func(entries []TimedEntry, set func(*TimeSlot, *Number)) {
		for _, e := range entries {
			v := e.Value
			set(slot(e.Time), &v)
		}
	}
	merge(p.Basal, func(s *TimeSlot, v *Number) { s.Basal = v })
	merge(p.Sens, func(s *TimeSlot, v *Number) { s.Sens = v })
	merge(p.CarbRatio, func(s *TimeSlot, v *Number) { s.CarbRatio = v })
	merge(p.TargetHigh, func(s *TimeSlot, v *Number) { s.TargetHigh = v })
	merge(p.TargetLow, func(s *TimeSlot, v *Number) { s.TargetLow = v })

	times := make([]string, 0, len(slots))
	for t := range slots {
		times = append(times, t)
	}
	sort.Strings(times)

	schedule := make([]TimeSlot, 0, len(times))
	for _, t := range times {
		schedule = append(schedule, *slots[t])
	}
	return schedule
}

func SummaryRow(p Profile) []string {
	return []string{p.Name, p.Timezone, p.Units, p.DIA.String(), p.Delay, p.StartDate}
}

func ScheduleRows(schedule []TimeSlot) [][]string {
	rows := make([][]string, 0, len(schedule))
	for _, s := range schedule {
		rows = append(rows, []string{
			s.Time,
			FormatNumber(s.Basal),
			FormatNumber(s.Sens),
			FormatNumber(s.CarbRatio),
			FormatNumber(s.TargetLow),
			FormatNumber(s.TargetHigh),
		})
	}
	return rows
}

// RenderProfile writes the summary and schedule tables, each followed by a
// blank line.
func RenderProfile(w io.Writer, p Profile) error {
	summary := Table{Style: StyleHeader, Headers: summaryHeaders, Rows: [][]string{SummaryRow(p)}}
	if err := summary.Draw(w); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	schedule := Table{Style: StyleBoxed, Headers: scheduleHeaders, Rows: ScheduleRows(BuildSchedule(p))}
	if err := schedule.Draw(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
