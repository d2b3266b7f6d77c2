package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrUnauthorized = errors.New("unauthorized")

// Identity is the verified caller behind a credential.
type Identity struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
}

// Verifier turns a raw credential into a verified identity. Failures wrap
// ErrUnauthorized.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

type VerifierFunc func(ctx context.Context, credential string) (Identity, error)

func (f VerifierFunc) Verify(ctx context.Context, credential string) (Identity, error) {
	return f(ctx, credential)
}

// WithTimeout bounds v so a hung identity provider cannot stall a request.
func WithTimeout(v Verifier, d time.Duration) Verifier {
	type result struct {
		id  Identity
		err error
	}

	return VerifierFunc(func(ctx context.Context, credential string) (Identity, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		ch := make(chan result, 1)
		go func() {
			id, err := v.Verify(ctx, credential)
			ch <- result{id: id, err: err}
		}()

		select {
		case r := <-ch:
			return r.id, r.err
		case <-ctx.Done():
			return Identity{}, fmt.Errorf("%w: identity verification: %v", ErrUnauthorized, ctx.Err())
		}
	})
}
