package hubspot

import (
	"context"
	"net/http"
	"net/url"
)

// FormsConnection submits form data to the unauthenticated forms endpoint.
type FormsConnection struct {
	conn    *Connection
	baseURL string
}

// FormsOption configures a FormsConnection.
type FormsOption func(*FormsConnection)

// WithFormsBaseURL overrides the forms endpoint.
func WithFormsBaseURL(baseURL string) FormsOption {
	return func(f *FormsConnection) {
		if baseURL != "" {
			f.baseURL = baseURL
		}
	}
}

// NewFormsConnection creates a forms connection sharing conn's configuration,
// transport and logger.
func NewFormsConnection(conn *Connection, opts ...FormsOption) *FormsConnection {
	f := &FormsConnection{
		conn:    conn,
		baseURL: DefaultFormsBaseURL,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Submit posts form as application/x-www-form-urlencoded. The API key is
// never attached and no Authorization header is sent.
func (f *FormsConnection) Submit(ctx context.Context, template string, params Params, form url.Values) (*Response, error) {
	desc, err := f.BuildRequest(template, params, form)
	if err != nil {
		return nil, err
	}
	return f.conn.do(ctx, desc)
}

// BuildRequest builds the submission without sending it.
func (f *FormsConnection) BuildRequest(template string, params Params, form url.Values) (*RequestDescriptor, error) {
	if form == nil {
		form = url.Values{}
	}
	desc, err := f.conn.BuildRequest(http.MethodPost, template, params, form, BuildOptions{
		BaseURL:           f.baseURL,
		DisableAPIKeyAuth: true,
	})
	if err != nil {
		return nil, err
	}
	desc.Header.Del("Authorization")
	desc.Header.Set("Accept", "*/*")
	return desc, nil
}
