package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	treatmentsPath    = "/api/v1/treatments.json"
	profileSwitchType = "Profile%20Switch"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a Nightscout client. A zero timeout leaves the request
// unbounded.
func NewClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ProfileSwitchURL builds the treatments query for profile switches created
// at or after dateFrom. Empty count or dateFrom leaves that filter out.
func (c *Client) ProfileSwitchURL(dateFrom, count string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString(treatmentsPath)
	b.WriteString("?find[eventType][$eq]=" + profileSwitchType)
	if count != "" {
		b.WriteString("&count=" + url.QueryEscape(count))
	}
	if dateFrom != "" {
		b.WriteString("&find[created_at][$gte]=" + url.QueryEscape(dateFrom))
	}
	if c.token != "" {
		b.WriteString("&token=" + url.QueryEscape(c.token))
	}
	return b.String()
}

// fetches profile switch treatments
func (c *Client) GetProfileSwitches(ctx context.Context, dateFrom, count string) ([]ProfileSwitchEvent, error) {
	u := c.ProfileSwitchURL(dateFrom, count)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", c.redact(u)).Msg("fetching profile switches")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []rawSwitchEvent
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	events := make([]ProfileSwitchEvent, 0, len(raw))
	for i, r := range raw {
		event, err := r.event()
		if err != nil {
			return nil, fmt.Errorf("treatment %d: %w", i, err)
		}
		events = append(events, event)
	}

	c.log.Debug().Int("count", len(events)).Msg("profile switches received")
	return events, nil
}

func (c *Client) redact(u string) string {
	if c.token == "" {
		return u
	}
	return strings.Replace(u, "token="+url.QueryEscape(c.token), "token=REDACTED", 1)
}
