package snapmill

import (
	"context"
	nethttp "net/http"

	"github.com/snapmill/snapmill-go/httpclient"
)

// Layout positions the captures of a composition on a grid.
type Layout struct {
	Rows    int `json:"rows,omitempty" validate:"omitempty,min=1,max=3"`
	Columns int `json:"columns,omitempty" validate:"omitempty,min=1,max=3"`
	Spacing int `json:"spacing,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ComposeRequest renders several pages into a single stitched image.
type ComposeRequest struct {
	URLs     []string  `json:"urls" validate:"required,min=2,max=9,dive,url"`
	Format   string    `json:"format,omitempty" validate:"omitempty,oneof=png jpeg webp"`
	Layout   *Layout   `json:"layout,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// Compose captures the given pages and returns one combined image.
func (c *Client) Compose(ctx context.Context, req *ComposeRequest) ([]byte, error) {
	if err := c.prepare(ctx, req); err != nil {
		return nil, err
	}
	return httpclient.DoBinary(ctx, c.rest, &httpclient.Request{
		Method: nethttp.MethodPost,
		Path:   "/v1/compose",
		Body:   req,
		Binary: true,
	})
}
