package httpclient

import (
	nethttp "net/http"
)

// logRequest logs the outgoing attempt
func (c *Client) logRequest(httpReq *nethttp.Request, req *Request) {
	logEvent := c.log.Debug().
		Str("direction", "outbound").
		Str("method", httpReq.Method).
		Str("url", httpReq.URL.String())

	if req.Binary {
		logEvent = logEvent.Str("mode", "binary")
	}

	logEvent.Msg("API request")
}

// logResponse logs the incoming response
func (c *Client) logResponse(resp *Response) {
	logEvent := c.log.Debug().
		Str("direction", "inbound").
		Int("status", resp.StatusCode).
		Int("body_bytes", len(resp.Raw))

	logEvent.Msg("API response")
}
