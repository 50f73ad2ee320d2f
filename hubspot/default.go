package hubspot

import (
	"context"
	"sync/atomic"

	"github.com/tidwall/gjson"
)

var defaultConn atomic.Pointer[Connection]

func init() {
	defaultConn.Store(NewConnection(Config{}))
}

// Configure installs a process-wide default connection built from cfg and
// returns it. Call it before issuing concurrent requests through the
// package-level helpers.
func Configure(cfg Config, opts ...Option) *Connection {
	conn := NewConnection(cfg, opts...)
	defaultConn.Store(conn)
	return conn
}

// Reset restores the default connection to an unconfigured state.
func Reset() {
	defaultConn.Store(NewConnection(Config{}))
}

// Default returns the process-wide connection.
func Default() *Connection {
	return defaultConn.Load()
}

// Get issues a GET through the default connection.
func Get(ctx context.Context, template string, params Params) (gjson.Result, error) {
	return Default().GetJSON(ctx, template, params)
}

// Post issues a POST through the default connection.
func Post(ctx context.Context, template string, req Request) (gjson.Result, error) {
	return Default().PostJSON(ctx, template, req)
}

// Put issues a PUT through the default connection.
func Put(ctx context.Context, template string, req Request) (gjson.Result, error) {
	return Default().PutJSON(ctx, template, req)
}

// Delete issues a DELETE through the default connection.
func Delete(ctx context.Context, template string, params Params) (*Response, error) {
	return Default().DeleteJSON(ctx, template, params)
}
