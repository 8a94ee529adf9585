package snapmill

import (
	"context"
	nethttp "net/http"

	"github.com/snapmill/snapmill-go/httpclient"
)

// BulkRequest captures up to fifty pages in one call. Options apply to
// every URL in the batch.
type BulkRequest struct {
	URLs     []string  `json:"urls" validate:"required,min=1,max=50,dive,url"`
	Format   string    `json:"format,omitempty" validate:"omitempty,oneof=png jpeg webp pdf"`
	FullPage bool      `json:"fullPage,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// BulkItem is the per-URL outcome of a bulk capture. Failed items carry an
// error string; completed items carry a download URL for the image.
type BulkItem struct {
	URL      string `json:"url"`
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl,omitempty"`
	Error    string `json:"error,omitempty"`
}

// BulkResult is the structured response of a bulk capture.
type BulkResult struct {
	Results []BulkItem `json:"results"`
}

// Bulk captures several pages in one call. A failed individual capture does
// not fail the call; it is reported in its BulkItem.
func (c *Client) Bulk(ctx context.Context, req *BulkRequest) (*BulkResult, error) {
	if err := c.prepare(ctx, req); err != nil {
		return nil, err
	}
	result, err := httpclient.Do[BulkResult](ctx, c.rest, &httpclient.Request{
		Method: nethttp.MethodPost,
		Path:   "/v1/screenshots/bulk",
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
