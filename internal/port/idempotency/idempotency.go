package idempotency

import "context"

// Response is what a handler answered the first time a key was seen.
type Response struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// Store remembers responses by idempotency key.
type Store interface {
	// Check returns the stored response and whether the key exists.
	Check(ctx context.Context, key string) (Response, bool, error)
	// Save records the response; an existing key is left untouched.
	Save(ctx context.Context, key, operation string, resp Response) error
}
