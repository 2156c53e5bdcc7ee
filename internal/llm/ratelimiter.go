package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimitedProvider caps the request rate of a Provider with a token bucket
// holding up to rpm tokens, refilled continuously.
type RateLimitedProvider struct {
	provider Provider
	rpm      float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
	now    func() time.Time
}

// NewRateLimitedProvider allows at most rpm requests per minute through to
// provider. A non-positive rpm returns provider unchanged.
func NewRateLimitedProvider(provider Provider, rpm int) Provider {
	if rpm <= 0 {
		return provider
	}
	return &RateLimitedProvider{
		provider: provider,
		rpm:      float64(rpm),
		tokens:   float64(rpm),
		last:     time.Now(),
		now:      time.Now,
	}
}

func (r *RateLimitedProvider) Name() string { return r.provider.Name() }

func (r *RateLimitedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	for {
		wait := r.reserve()
		if wait == 0 {
			return r.provider.Complete(ctx, req)
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

// reserve takes a token and returns 0, or returns how long until one is due.
func (r *RateLimitedProvider) reserve() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.tokens += now.Sub(r.last).Minutes() * r.rpm
	if r.tokens > r.rpm {
		r.tokens = r.rpm
	}
	r.last = now

	if r.tokens >= 1 {
		r.tokens--
		return 0
	}
	return time.Duration((1 - r.tokens) / r.rpm * float64(time.Minute))
}
