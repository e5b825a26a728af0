package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
)

// TypedResponse wraps a response with a decoded JSON body.
type TypedResponse[T any] struct {
	StatusCode int
	Headers    map[string]string
	Data       T
}

// DoJSON executes req and decodes a 2xx JSON body into T.
func DoJSON[T any](ctx context.Context, c *Client, req Request, opts ...RequestOption) (*TypedResponse[T], error) {
	for _, opt := range opts {
		opt(&req)
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	out := &TypedResponse[T]{StatusCode: resp.StatusCode, Headers: resp.Headers}
	if len(resp.Body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(resp.Body, &out.Data); err != nil {
		return nil, fmt.Errorf("httpclient: decode %s %s: %w", req.Method, req.Path, err)
	}
	return out, nil
}
