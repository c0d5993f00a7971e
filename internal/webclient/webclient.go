package webclient

import (
	"context"
	"errors"
)

// WebClient fetches a URL and returns the raw response. A non-2xx status is
// not an error at this layer; callers decide what a failure is.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)
	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*Response, error)
	Close() error
}

var ErrNilRequest = errors.New("request cannot be nil")
