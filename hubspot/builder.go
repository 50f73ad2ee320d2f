package hubspot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// BuildOptions adjusts how a single request is assembled.
type BuildOptions struct {
	// BaseURL overrides the configured base URL for this request.
	BaseURL string
	// DisableAPIKeyAuth omits the hapikey parameter. An API key is still
	// required unless OAuth2 is enabled.
	DisableAPIKeyAuth bool
}

// RequestDescriptor is a fully built request, ready to hand to a transport.
type RequestDescriptor struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// BuildURL produces the absolute URL for template and params without sending anything.
func (c *Connection) BuildURL(template string, params Params, opts BuildOptions) (string, error) {
	u, _, err := c.buildURL(template, params, opts)
	return u, err
}

// BuildRequest produces the method, URL, headers and encoded body for a call.
// Building the same inputs twice yields identical descriptors.
func (c *Connection) BuildRequest(method, template string, params Params, body any, opts BuildOptions) (*RequestDescriptor, error) {
	u, plan, err := c.buildURL(template, params, opts)
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	header.Set("Accept", "application/json")
	if c.userAgent != "" {
		header.Set("User-Agent", c.userAgent)
	}
	plan.applyHeaders(header)

	payload, contentType, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	return &RequestDescriptor{
		Method: method,
		URL:    u,
		Header: header,
		Body:   payload,
	}, nil
}

func (c *Connection) buildURL(template string, params Params, opts BuildOptions) (string, authPlan, error) {
	plan, err := preflight(c.cfg, template, opts)
	if err != nil {
		return "", authPlan{}, err
	}

	path, remaining, err := ResolvePath(template, plan.params(params.Clone()))
	if err != nil {
		return "", authPlan{}, err
	}

	query, err := EncodeQuery(remaining)
	if err != nil {
		return "", authPlan{}, err
	}

	base := opts.BaseURL
	if base == "" {
		base = c.cfg.BaseURL
	}
	base = strings.TrimSuffix(base, "/")

	u := base + path
	if query != "" {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		u += sep + query
	}
	return u, plan, nil
}

// encodeBody returns the wire form of body and the matching content type.
func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return b, "application/json", nil
	case json.RawMessage:
		return b, "application/json", nil
	case string:
		return []byte(b), "application/json", nil
	case url.Values:
		return []byte(b.Encode()), "application/x-www-form-urlencoded", nil
	}

	data, err := jsonAPI.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode request body: %w", err)
	}
	return data, "application/json", nil
}
