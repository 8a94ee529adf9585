package snapmill

import (
	"context"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/snapmill/snapmill-go/httpclient"
)

// ScheduleRequest registers a recurring capture. Cron semantics are
// evaluated server-side; the client only requires the expression to be
// present.
type ScheduleRequest struct {
	Name       string    `json:"name" validate:"required,max=120"`
	Cron       string    `json:"cron" validate:"required"`
	URL        string    `json:"url" validate:"required,url"`
	Format     string    `json:"format,omitempty" validate:"omitempty,oneof=png jpeg webp pdf"`
	FullPage   bool      `json:"fullPage,omitempty"`
	Viewport   *Viewport `json:"viewport,omitempty"`
	WebhookURL string    `json:"webhookUrl,omitempty" validate:"omitempty,url"`
	Enabled    *bool     `json:"enabled,omitempty"`
}

// Schedule is a registered recurring capture.
type Schedule struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Cron      string    `json:"cron"`
	URL       string    `json:"url"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	NextRunAt time.Time `json:"nextRunAt"`
}

// ScheduleList is the structured response of ListSchedules.
type ScheduleList struct {
	Schedules []Schedule `json:"schedules"`
	Total     int        `json:"total"`
}

// ListSchedulesOptions filters ListSchedules. Nil fields are omitted from
// the query entirely.
type ListSchedulesOptions struct {
	Enabled *bool
	Limit   *int
}

// CreateSchedule registers a recurring capture.
func (c *Client) CreateSchedule(ctx context.Context, req *ScheduleRequest) (*Schedule, error) {
	if err := c.prepare(ctx, req); err != nil {
		return nil, err
	}
	schedule, err := httpclient.Do[Schedule](ctx, c.rest, &httpclient.Request{
		Method: nethttp.MethodPost,
		Path:   "/v1/schedules",
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// GetSchedule fetches one schedule by ID.
func (c *Client) GetSchedule(ctx context.Context, id string) (*Schedule, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := c.prepare(ctx, nil); err != nil {
		return nil, err
	}
	schedule, err := httpclient.Do[Schedule](ctx, c.rest, &httpclient.Request{
		Method: nethttp.MethodGet,
		Path:   "/v1/schedules/" + url.PathEscape(id),
	})
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListSchedules returns registered schedules, newest first.
func (c *Client) ListSchedules(ctx context.Context, opts *ListSchedulesOptions) (*ScheduleList, error) {
	if err := c.prepare(ctx, nil); err != nil {
		return nil, err
	}

	query := map[string]any{}
	if opts != nil {
		if opts.Enabled != nil {
			query["enabled"] = *opts.Enabled
		}
		if opts.Limit != nil {
			query["limit"] = *opts.Limit
		}
	}

	list, err := httpclient.Do[ScheduleList](ctx, c.rest, &httpclient.Request{
		Method: nethttp.MethodGet,
		Path:   "/v1/schedules",
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteSchedule removes a schedule by ID.
func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := c.prepare(ctx, nil); err != nil {
		return err
	}
	_, err := c.rest.Do(ctx, &httpclient.Request{
		Method: nethttp.MethodDelete,
		Path:   "/v1/schedules/" + url.PathEscape(id),
	})
	return err
}

func validateID(id string) error {
	if id == "" {
		return httpclient.NewValidationError("schedule id is required", map[string]string{
			"id": "id must be non-empty",
		})
	}
	return nil
}
