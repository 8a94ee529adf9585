package snapmill

import (
	"context"
	nethttp "net/http"

	"github.com/snapmill/snapmill-go/httpclient"
)

// Viewport describes the browser window used for a capture.
type Viewport struct {
	Width             int     `json:"width" validate:"required,min=320,max=3840"`
	Height            int     `json:"height" validate:"required,min=240,max=2160"`
	DeviceScaleFactor float64 `json:"deviceScaleFactor,omitempty" validate:"omitempty,gte=1,lte=3"`
	Mobile            bool    `json:"mobile,omitempty"`
}

// ScreenshotRequest captures a single page.
type ScreenshotRequest struct {
	URL      string    `json:"url" validate:"required,url"`
	Format   string    `json:"format,omitempty" validate:"omitempty,oneof=png jpeg webp pdf"`
	Quality  int       `json:"quality,omitempty" validate:"omitempty,min=1,max=100"`
	FullPage bool      `json:"fullPage,omitempty"`
	DarkMode bool      `json:"darkMode,omitempty"`
	DelayMS  int       `json:"delayMs,omitempty" validate:"omitempty,gte=0,lte=10000"`
	Selector string    `json:"selector,omitempty"`
	Viewport *Viewport `json:"viewport,omitempty"`
}

// Screenshot captures a page and returns the rendered image bytes in the
// requested format, unmodified.
func (c *Client) Screenshot(ctx context.Context, req *ScreenshotRequest) ([]byte, error) {
	if err := c.prepare(ctx, req); err != nil {
		return nil, err
	}
	return httpclient.DoBinary(ctx, c.rest, &httpclient.Request{
		Method: nethttp.MethodPost,
		Path:   "/v1/screenshot",
		Body:   req,
		Binary: true,
	})
}
