// internal/analytics/logger.go
package analytics

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/radeva/paypal-messages-go/internal/metrics"
	"github.com/radeva/paypal-messages-go/pkg/environment"
)

const flushInterval = 5 * time.Second

var (
	registryMu sync.Mutex
	registry   = make(map[string]*Aggregate)

	senderMu      sync.RWMutex
	defaultSender Sender = HTTPSender{}
)

// SetSender overrides the envelope transport. Tests and offline demo hosts
// install a capture or noop sender here.
func SetSender(s Sender) {
	senderMu.Lock()
	defer senderMu.Unlock()
	defaultSender = s
}

func currentSender() Sender {
	senderMu.RLock()
	defer senderMu.RUnlock()
	return defaultSender
}

// Aggregate batches the components of one integration. Integrations are
// keyed by environment, client ID, merchant ID and partner attribution ID;
// every surface created with the same tuple shares one aggregate and one
// flush timer.
type Aggregate struct {
	environment          string
	clientID             string
	merchantID           string
	partnerAttributionID string

	env environment.Environment

	mu         sync.Mutex
	components []*ComponentLogger
	hash       string

	done   chan struct{}
	closed sync.Once
}

// ForIntegration returns the aggregate for the given integration tuple,
// creating it and starting its flush loop on first use. Empty merchant and
// partner IDs are keyed as the literal "nil" so they cannot collide with
// real identifiers.
func ForIntegration(env environment.Environment, clientID, merchantID, partnerAttributionID string) *Aggregate {
	key := strings.Join([]string{
		env.RawValue(),
		clientID,
		orNil(merchantID),
		orNil(partnerAttributionID),
	}, "_")

	registryMu.Lock()
	defer registryMu.Unlock()

	if agg, ok := registry[key]; ok {
		return agg
	}

	agg := &Aggregate{
		environment:          env.RawValue(),
		clientID:             clientID,
		merchantID:           merchantID,
		partnerAttributionID: partnerAttributionID,
		env:                  env,
		done:                 make(chan struct{}),
	}
	registry[key] = agg

	go agg.flushLoop()

	return agg
}

func orNil(s string) string {
	if s == "" {
		return "nil"
	}
	return s
}

func (a *Aggregate) addComponent(c *ComponentLogger) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.components = append(a.components, c)
}

// SetProfileHash records the merchant profile hash echoed on envelopes.
func (a *Aggregate) SetProfileHash(hash string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hash = hash
}

func (a *Aggregate) profileHash() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hash
}

func (a *Aggregate) flushLoop() {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Flush(context.Background())
		case <-a.done:
			return
		}
	}
}

// Flush serializes pending events into one CloudEvents envelope and posts it.
// Components without events are left out; when no component has events the
// flush is a no-op. Events are cleared only after the payload is built, so a
// failed send drops that batch rather than duplicating it.
func (a *Aggregate) Flush(ctx context.Context) {
	a.mu.Lock()
	var pending []*ComponentLogger
	for _, c := range a.components {
		if c.hasEvents() {
			pending = append(pending, c)
		}
	}
	a.mu.Unlock()

	if len(pending) == 0 {
		return
	}

	m := metrics.New()

	payload, err := encodeEnvelope(a, pending)
	if err != nil {
		m.EventFlushTotal.WithLabelValues("error").Inc()
		slog.Warn("telemetry envelope encode failed", "error", err)
		return
	}
	for _, c := range pending {
		c.clearEvents()
	}

	if err := currentSender().Send(ctx, a.env, payload); err != nil {
		m.EventFlushTotal.WithLabelValues("error").Inc()
		slog.Warn("telemetry envelope send failed", "error", err)
		return
	}
	m.EventFlushTotal.WithLabelValues("ok").Inc()
}

// Close stops the flush loop after one final flush.
func (a *Aggregate) Close() {
	a.closed.Do(func() {
		close(a.done)
		a.Flush(context.Background())
	})
}

// Reset closes every aggregate and clears the registry. Tests use this to
// isolate integration tuples from each other.
func Reset() {
	registryMu.Lock()
	aggs := make([]*Aggregate, 0, len(registry))
	for _, a := range registry {
		aggs = append(aggs, a)
	}
	registry = make(map[string]*Aggregate)
	registryMu.Unlock()

	for _, a := range aggs {
		a.Close()
	}
}
