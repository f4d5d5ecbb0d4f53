// internal/merchantprofile/provider.go
package merchantprofile

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/radeva/paypal-messages-go/internal/metrics"
	"github.com/radeva/paypal-messages-go/pkg/environment"
)

// Provider resolves the merchant profile hash for message requests, serving
// from the Store and refetching per the entry's TTLs.
type Provider struct {
	store     Store
	requester Requester
	metrics   *metrics.Metrics
	now       func() time.Time

	mu         sync.Mutex
	refreshing bool
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithRequester overrides the network requester. Used by tests.
func WithRequester(r Requester) ProviderOption {
	return func(p *Provider) { p.requester = r }
}

// WithClock overrides the time source. Used by TTL tests.
func WithClock(now func() time.Time) ProviderOption {
	return func(p *Provider) { p.now = now }
}

// NewProvider creates a Provider over the given store.
func NewProvider(store Store, opts ...ProviderOption) *Provider {
	p := &Provider{
		store:     store,
		requester: HTTPRequester{},
		metrics:   metrics.New(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Hash returns the merchant profile hash for the given integration, or
// ("", false) when none is available. A cache miss, a decode failure, or a
// hard-expired entry blocks on a network refetch; a soft-expired entry is
// served as-is while a single background refresh runs; a fresh entry is
// served directly. Disabled entries yield no hash but keep their TTLs, so
// the disable decision is itself cached.
func (p *Provider) Hash(ctx context.Context, env environment.Environment, clientID, merchantID string) (string, bool) {
	now := p.now()

	profile, ok := p.cached(ctx, now)
	if !ok {
		p.metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		profile, ok = p.refresh(ctx, env, clientID, merchantID)
		if !ok {
			return "", false
		}
		return p.serve(profile)
	}

	switch {
	case profile.HardExpired(now):
		p.metrics.ProfileCacheTotal.WithLabelValues("expired").Inc()
		profile, ok = p.refresh(ctx, env, clientID, merchantID)
		if !ok {
			return "", false
		}
	case profile.SoftExpired(now):
		p.metrics.ProfileCacheTotal.WithLabelValues("stale").Inc()
		p.refreshInBackground(env, clientID, merchantID)
	default:
		p.metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	}

	return p.serve(profile)
}

func (p *Provider) serve(profile Profile) (string, bool) {
	if profile.Disabled {
		return "", false
	}
	return profile.Hash, true
}

func (p *Provider) cached(ctx context.Context, now time.Time) (Profile, bool) {
	data, err := p.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotCached) {
			slog.Warn("merchant profile cache read failed", "error", err)
		}
		return Profile{}, false
	}

	profile, err := DecodeProfile(data, now)
	if err != nil {
		// A corrupt entry is treated as a miss and overwritten on refresh.
		slog.Warn("merchant profile cache entry undecodable", "error", err)
		return Profile{}, false
	}
	return profile, true
}

// refresh fetches, decodes and persists a fresh profile. A failed refresh
// leaves the cache untouched.
func (p *Provider) refresh(ctx context.Context, env environment.Environment, clientID, merchantID string) (Profile, bool) {
	data, err := p.requester.Fetch(ctx, env, clientID, merchantID)
	if err != nil {
		p.metrics.ProfileFetchTotal.WithLabelValues("error").Inc()
		slog.Warn("merchant profile fetch failed", "error", err)
		return Profile{}, false
	}

	profile, err := DecodeProfile(data, p.now())
	if err != nil {
		p.metrics.ProfileFetchTotal.WithLabelValues("error").Inc()
		slog.Warn("merchant profile response undecodable", "error", err)
		return Profile{}, false
	}
	p.metrics.ProfileFetchTotal.WithLabelValues("ok").Inc()

	encoded, err := EncodeProfile(profile)
	if err == nil {
		err = p.store.Set(ctx, encoded)
	}
	if err != nil {
		slog.Warn("merchant profile cache write failed", "error", err)
	}

	return profile, true
}

// refreshInBackground kicks a fire-and-forget refresh, collapsing concurrent
// requests into a single in-flight fetch.
func (p *Provider) refreshInBackground(env environment.Environment, clientID, merchantID string) {
	p.mu.Lock()
	if p.refreshing {
		p.mu.Unlock()
		return
	}
	p.refreshing = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.refreshing = false
			p.mu.Unlock()
		}()
		p.refresh(context.Background(), env, clientID, merchantID)
	}()
}
