// Package gateway is the HTTP client of the backend gateway. Every endpoint
// answers the uniform envelope {success, message, data}; failures become
// port.GatewayError values carrying the backend's message and status.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a gateway client. rt is the transport every request goes
// through; pass the auth Transport so outgoing calls carry the bearer token.
func NewClient(baseURL string, rt http.RoundTripper) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: rt},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doJSON performs one request and decodes the envelope's data into out when
// out is non-nil. There are no retries and no client-side timeout; the caller
// cancels through ctx if at all.
func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) error {
	const op = "gateway.doJSON"

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	var env envelope
	envErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if envErr == nil {
			msg = env.Message
		}
		return statusError(resp.StatusCode, msg)
	}
	if envErr != nil {
		return fmt.Errorf("%s: decode response: %w", op, envErr)
	}
	if !env.Success {
		// The backend answered 2xx but flagged failure; same taxonomy as an
		// HTTP error, message from the envelope.
		return statusError(resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: decode data: %w", op, err)
		}
	}
	return nil
}
