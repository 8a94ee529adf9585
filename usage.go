package snapmill

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/snapmill/snapmill-go/httpclient"
)

// Usage reports the account's quota counters for the current billing period.
type Usage struct {
	Plan      string    `json:"plan"`
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	ResetsAt  time.Time `json:"resetsAt"`
}

// Usage fetches the account's current quota counters.
func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	if err := c.prepare(ctx, nil); err != nil {
		return nil, err
	}
	usage, err := httpclient.Do[Usage](ctx, c.rest, &httpclient.Request{
		Method: nethttp.MethodGet,
		Path:   "/v1/usage",
	})
	if err != nil {
		return nil, err
	}
	return &usage, nil
}
