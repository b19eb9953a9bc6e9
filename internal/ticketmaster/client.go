package ticketmaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://app.ticketmaster.com/discovery/v2"

	pageSize = 100
	// Hard cap on pages per fetch so a huge market never turns one sync into
	// hundreds of requests.
	maxPages = 5
)

// FetchError is returned for any non-2xx response, malformed payload, or open
// circuit. Callers use it to decide which fallback tier to drop to.
type FetchError struct {
	Status  int
	Message string
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ticketmaster: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("ticketmaster: %s", e.Message)
}

// Filters narrows an events search. Zero values are omitted from the query.
type Filters struct {
	Keyword            string
	ClassificationName string
	City               string
	StartDateTime      string
	EndDateTime        string
}

type Config struct {
	APIKey  string
	BaseURL string
	// DenySegments are classification segments stripped at the boundary so
	// downstream components never see them. Defaults to {"Sports"}.
	DenySegments []string
	// Throttle is the minimum interval between page requests. Defaults to 1s.
	Throttle time.Duration
	Timeout  time.Duration
	Logger   *slog.Logger
}

type Client struct {
	apiKey     string
	baseURL    string
	deny       map[string]struct{}
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*discoveryPage]
	logger     *slog.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Throttle <= 0 {
		cfg.Throttle = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.DenySegments == nil {
		cfg.DenySegments = []string{"Sports"}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	deny := make(map[string]struct{}, len(cfg.DenySegments))
	for _, s := range cfg.DenySegments {
		deny[s] = struct{}{}
	}

	breaker := gobreaker.NewCircuitBreaker[*discoveryPage](gobreaker.Settings{
		Name:    "ticketmaster",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		deny:       deny,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.Throttle), 1),
		breaker:    breaker,
		logger:     cfg.Logger,
	}
}

// FetchEvents pulls every events page for a country (up to the page cap),
// waiting on the rate limiter between pages. Denied segments are filtered out
// before returning.
func (c *Client) FetchEvents(ctx context.Context, country string, filters Filters) ([]RawEvent, error) {
	var all []RawEvent

	for page := 0; page < maxPages; page++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Message: fmt.Sprintf("throttle wait aborted: %v", err)}
		}

		result, err := c.fetchPage(ctx, country, filters, page)
		if err != nil {
			return nil, err
		}

		events, err := c.decodeEvents(result)
		if err != nil {
			return nil, err
		}
		all = append(all, events...)

		if page+1 >= result.Page.TotalPages {
			break
		}
	}

	c.logger.Debug("fetched events from ticketmaster", "country", country, "count", len(all))
	return all, nil
}

// FetchEvent looks up a single event by its provider-assigned ID. Returns
// (nil, nil) when the event does not exist.
func (c *Client) FetchEvent(ctx context.Context, id string) (*RawEvent, error) {
	endpoint := fmt.Sprintf("%s/events/%s.json?apikey=%s", c.baseURL, url.PathEscape(id), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, &FetchError{Status: resp.StatusCode, Message: "event lookup failed"}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	ev, ok, err := decodeEvent(raw)
	if err != nil {
		return nil, err
	}
	if !ok || c.denied(&ev.Payload) {
		return nil, nil
	}
	return &ev, nil
}

func (c *Client) fetchPage(ctx context.Context, country string, filters Filters, page int) (*discoveryPage, error) {
	result, err := c.breaker.Execute(func() (*discoveryPage, error) {
		return c.doFetchPage(ctx, country, filters, page)
	})
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, err
		}
		// breaker-open or other wrapper errors
		return nil, &FetchError{Message: err.Error()}
	}
	return result, nil
}

func (c *Client) doFetchPage(ctx context.Context, country string, filters Filters, page int) (*discoveryPage, error) {
	u, err := url.Parse(c.baseURL + "/events.json")
	if err != nil {
		return nil, &FetchError{Message: fmt.Sprintf("bad base url: %v", err)}
	}

	q := u.Query()
	q.Set("apikey", c.apiKey)
	q.Set("countryCode", country)
	q.Set("size", strconv.Itoa(pageSize))
	q.Set("page", strconv.Itoa(page))
	q.Set("sort", "date,asc")
	if filters.Keyword != "" {
		q.Set("keyword", filters.Keyword)
	}
	if filters.ClassificationName != "" {
		q.Set("classificationName", filters.ClassificationName)
	}
	if filters.City != "" {
		q.Set("city", filters.City)
	}
	if filters.StartDateTime != "" {
		q.Set("startDateTime", filters.StartDateTime)
	}
	if filters.EndDateTime != "" {
		q.Set("endDateTime", filters.EndDateTime)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{Status: resp.StatusCode, Message: string(body)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	var result discoveryPage
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &FetchError{Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return &result, nil
}

func (c *Client) decodeEvents(page *discoveryPage) ([]RawEvent, error) {
	events := make([]RawEvent, 0, len(page.Embedded.Events))
	for _, raw := range page.Embedded.Events {
		ev, ok, err := decodeEvent(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if c.denied(&ev.Payload) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *Client) denied(p *EventPayload) bool {
	for _, cl := range p.Classifications {
		if _, blocked := c.deny[cl.Segment.Name]; blocked {
			return true
		}
	}
	return false
}

func decodeEvent(raw json.RawMessage) (RawEvent, bool, error) {
	var payload EventPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return RawEvent{}, false, &FetchError{Message: fmt.Sprintf("malformed event payload: %v", err)}
	}
	if payload.ID == "" {
		return RawEvent{}, false, nil
	}
	return RawEvent{Payload: payload, Raw: raw}, true, nil
}
