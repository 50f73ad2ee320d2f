package hubspot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/tidwall/gjson"
)

var apiKeyPattern = regexp.MustCompile(`([?&]` + APIKeyParam + `=)[^&]*`)

// Response is the raw outcome of a request.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON parses the body. Invalid JSON yields an empty result.
func (r *Response) JSON() gjson.Result {
	if r == nil || !gjson.ValidBytes(r.Body) {
		return gjson.Result{}
	}
	return gjson.ParseBytes(r.Body)
}

func (r *Response) parse(desc *RequestDescriptor) (gjson.Result, error) {
	body := bytes.TrimSpace(r.Body)
	if len(body) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &RequestError{
			Method:     desc.Method,
			URL:        RedactURL(desc.URL),
			StatusCode: r.StatusCode,
			Header:     r.Header,
			Body:       r.Body,
			Err:        ErrUnexpectedResponse,
		}
	}
	return gjson.ParseBytes(body), nil
}

// do sends desc and classifies the outcome. Exactly one log event is written
// per call that reaches the network.
func (c *Connection) do(ctx context.Context, desc *RequestDescriptor) (*Response, error) {
	var reader io.Reader
	if desc.Body != nil {
		reader = bytes.NewReader(desc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, desc.URL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range desc.Header {
		req.Header[key] = append([]string(nil), values...)
	}

	logURL := RedactURL(desc.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Info().
			Str("method", desc.Method).
			Str("url", logURL).
			Bytes("body", desc.Body).
			Err(err).
			Msg("hubspot request failed")
		return nil, &RequestError{Method: desc.Method, URL: logURL, Err: err}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)

	event := c.logger.Info().
		Str("method", desc.Method).
		Str("url", logURL).
		Bytes("body", desc.Body).
		Int("status", resp.StatusCode).
		Bytes("response", body)
	if readErr != nil {
		event = event.Err(readErr)
	}
	event.Msg("hubspot request")

	if readErr != nil {
		return nil, &RequestError{
			Method:     desc.Method,
			URL:        logURL,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       body,
			Err:        fmt.Errorf("failed to read response body: %w", readErr),
		}
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
	if err := classify(desc, out); err != nil {
		return nil, err
	}
	return out, nil
}

// classify maps a non-success response to AuthenticationError when the body
// carries the engagement/message/status triple and RequestError otherwise.
func classify(desc *RequestDescriptor, resp *Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if gjson.ValidBytes(resp.Body) {
		parsed := gjson.ParseBytes(resp.Body)
		if parsed.IsObject() {
			engagement := parsed.Get("engagement")
			message := parsed.Get("message")
			status := parsed.Get("status")
			if engagement.Exists() && message.Exists() && status.Exists() {
				return &AuthenticationError{
					StatusCode: resp.StatusCode,
					Status:     status.String(),
					Message:    message.String(),
					Engagement: engagement.Value(),
				}
			}
		}
	}

	return &RequestError{
		Method:     desc.Method,
		URL:        RedactURL(desc.URL),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}
}

// RedactURL replaces the value of the hapikey parameter in u.
func RedactURL(u string) string {
	return apiKeyPattern.ReplaceAllString(u, "${1}REDACTED")
}
