package main

import (
	"context"
	"fmt"
	"io"

	"github.com/nexidian/gocliselect"
	"github.com/rs/zerolog"
)

// Selector narrows the fetched events down to the ones to display.
type Selector func(events []ProfileSwitchEvent) ([]ProfileSwitchEvent, error)

type App struct {
	client *Client
	out    io.Writer
	log    zerolog.Logger
	mode   MinuteMode
	choose Selector
}

func NewApp(conf *Config, out io.Writer, log zerolog.Logger) *App {
	a := &App{
		client: NewClient(conf.Nightscout, conf.Token, conf.Timeout, log),
		out:    out,
		log:    log,
		mode:   MinuteMode(conf.MinuteMode),
	}
	if conf.Select {
		a.choose = MenuSelect
	}
	return a
}

// ShowProfiles fetches profile switches and prints each one in order. The
// first failing event aborts the run.
func (a *App) ShowProfiles(ctx context.Context, dateFrom, count string) error {
	events, err := a.client.GetProfileSwitches(ctx, dateFrom, count)
	if err != nil {
		return err
	}

	if a.choose != nil {
		events, err = a.choose(events)
		if err != nil {
			return err
		}
	}

	for _, event := range events {
		if err := a.showProfile(event); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) showProfile(event ProfileSwitchEvent) error {
	fmt.Fprintf(a.out, "Profile named %s enabled at %s for duration %s\n",
		event.Profile, event.CreatedAt, event.Duration)

	profile, err := DecodeProfile(event, a.mode)
	if err != nil {
		return err
	}

	a.log.Debug().
		Str("profile", profile.Name).
		Int("basal", len(profile.Basal)).
		Int("sens", len(profile.Sens)).
		Int("carbratio", len(profile.CarbRatio)).
		Int("target_low", len(profile.TargetLow)).
		Int("target_high", len(profile.TargetHigh)).
		Msg("profile normalized")

	return RenderProfile(a.out, profile)
}

// MenuSelect lets the user pick one event from a terminal menu. Nothing is
// returned when the menu is dismissed.
func MenuSelect(events []ProfileSwitchEvent) ([]ProfileSwitchEvent, error) {
	if len(events) <= 1 {
		return events, nil
	}

	menu := gocliselect.NewMenu("Choose a profile switch")
	for i, e := range events {
		menu.AddItem(fmt.Sprintf("%s (%s)", e.Profile, e.CreatedAt), i)
	}

	choice, err := menu.Display()
	if err != nil {
		return nil, fmt.Errorf("error selecting profile switch: %w", err)
	}

	return pickEvent(events, choice), nil
}

// pickEvent maps a menu choice back to its event. Escape yields "" and
// selects nothing.
func pickEvent(events []ProfileSwitchEvent, choice any) []ProfileSwitchEvent {
	i, ok := choice.(int)
	if !ok || i < 0 || i >= len(events) {
		return nil
	}
	return events[i : i+1]
}
