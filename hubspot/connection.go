package hubspot

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const defaultTimeout = 30 * time.Second

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Connection issues authenticated requests against the API.
type Connection struct {
	cfg        Config
	httpClient Doer
	customDoer bool
	userAgent  string
	logger     zerolog.Logger
}

// Option configures a Connection.
type Option func(*Connection)

// WithHTTPClient replaces the transport used to send requests.
func WithHTTPClient(client Doer) Option {
	return func(c *Connection) {
		if client != nil {
			c.httpClient = client
			c.customDoer = true
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client. It has no effect
// when combined with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Connection) {
		if c.customDoer {
			return
		}
		if hc, ok := c.httpClient.(*http.Client); ok {
			clone := *hc
			clone.Timeout = timeout
			c.httpClient = &clone
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Connection) {
		c.userAgent = userAgent
	}
}

// NewConnection creates a connection for cfg. The configuration is not
// validated here; each request checks it before touching the network.
func NewConnection(cfg Config, opts ...Option) *Connection {
	cfg = cfg.WithDefaults()

	c := &Connection{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: "hubspot-go",
		logger:    cfg.logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Config returns the configuration the connection was built with.
func (c *Connection) Config() Config {
	return c.cfg
}

// Request carries the parameters and body of a write call.
type Request struct {
	Params Params
	Body   any
}

// GetJSON sends a GET and parses the JSON response.
func (c *Connection) GetJSON(ctx context.Context, template string, params Params) (gjson.Result, error) {
	desc, err := c.BuildRequest(http.MethodGet, template, params, nil, BuildOptions{})
	if err != nil {
		return gjson.Result{}, err
	}
	return c.doJSON(ctx, desc)
}

// PostJSON sends a POST and parses the JSON response.
func (c *Connection) PostJSON(ctx context.Context, template string, req Request) (gjson.Result, error) {
	desc, err := c.BuildRequest(http.MethodPost, template, req.Params, req.Body, BuildOptions{})
	if err != nil {
		return gjson.Result{}, err
	}
	return c.doJSON(ctx, desc)
}

// PostRaw sends a POST and returns the response without parsing the body.
func (c *Connection) PostRaw(ctx context.Context, template string, req Request) (*Response, error) {
	desc, err := c.BuildRequest(http.MethodPost, template, req.Params, req.Body, BuildOptions{})
	if err != nil {
		return nil, err
	}
	return c.do(ctx, desc)
}

// PutJSON sends a PUT and parses the JSON response.
func (c *Connection) PutJSON(ctx context.Context, template string, req Request) (gjson.Result, error) {
	desc, err := c.BuildRequest(http.MethodPut, template, req.Params, req.Body, BuildOptions{})
	if err != nil {
		return gjson.Result{}, err
	}
	return c.doJSON(ctx, desc)
}

// DeleteJSON sends a DELETE and returns the raw response.
func (c *Connection) DeleteJSON(ctx context.Context, template string, params Params) (*Response, error) {
	desc, err := c.BuildRequest(http.MethodDelete, template, params, nil, BuildOptions{})
	if err != nil {
		return nil, err
	}
	return c.do(ctx, desc)
}

// Send executes a prebuilt descriptor and returns the raw response.
func (c *Connection) Send(ctx context.Context, desc *RequestDescriptor) (*Response, error) {
	return c.do(ctx, desc)
}

func (c *Connection) doJSON(ctx context.Context, desc *RequestDescriptor) (gjson.Result, error) {
	resp, err := c.do(ctx, desc)
	if err != nil {
		return gjson.Result{}, err
	}
	return resp.parse(desc)
}
