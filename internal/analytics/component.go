// internal/analytics/component.go
package analytics

import (
	"crypto/rand"
	"encoding/json"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ComponentType distinguishes the two telemetry surfaces.
type ComponentType string

const (
	ComponentMessage ComponentType = "message"
	ComponentModal   ComponentType = "modal"
)

// ComponentLogger accumulates events for one rendered surface. Each surface
// gets a sortable ULID instance ID so upstream analysis can stitch a
// message and the modal it opened back together in order.
type ComponentLogger struct {
	mu         sync.Mutex
	typ        ComponentType
	instanceID string

	// Static integration attributes, updated on config changes.
	offerType    string
	amount       string
	placement    string
	buyerCountry string
	channel      string

	// Dynamic data merged from the web bridge (__shared__ payloads). Keys
	// here serialize at the top level of the component object.
	dynamic map[string]any

	events []Event
}

// NewComponentLogger creates a logger for a surface of the given type and
// registers it on the aggregate.
func NewComponentLogger(typ ComponentType, agg *Aggregate) *ComponentLogger {
	c := &ComponentLogger{
		typ:        typ,
		instanceID: ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		dynamic:    make(map[string]any),
	}
	if agg != nil {
		agg.addComponent(c)
	}
	return c
}

// InstanceID returns the component's ULID, sent along with message requests.
func (c *ComponentLogger) InstanceID() string {
	return c.instanceID
}

// SetIntegrationAttributes updates the static attributes echoed on every
// envelope this component appears in.
func (c *ComponentLogger) SetIntegrationAttributes(offerType, amount, placement, buyerCountry, channel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offerType = offerType
	c.amount = amount
	c.placement = placement
	c.buyerCountry = buyerCountry
	c.channel = channel
}

// MergeDynamic folds bridge-shared data into the component. Later values win.
func (c *ComponentLogger) MergeDynamic(data map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range data {
		c.dynamic[k] = v
	}
}

// AddEvent appends an event for the next flush.
func (c *ComponentLogger) AddEvent(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// hasEvents reports whether the component has anything to flush.
func (c *ComponentLogger) hasEvents() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events) > 0
}

// clearEvents drops events that made it into a flushed envelope.
func (c *ComponentLogger) clearEvents() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

// MarshalJSON flattens the dynamic data into the component object alongside
// the static attributes. Reserved keys always win over dynamic ones.
func (c *ComponentLogger) MarshalJSON() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]any, len(c.dynamic)+8)
	for k, v := range c.dynamic {
		out[k] = v
	}

	out["type"] = string(c.typ)
	out["instance_id"] = c.instanceID
	if c.offerType != "" {
		out["offer_type"] = c.offerType
	}
	if c.amount != "" {
		out["amount"] = c.amount
	}
	if c.placement != "" {
		out["page_type"] = c.placement
	}
	if c.buyerCountry != "" {
		out["buyer_country_code"] = c.buyerCountry
	}
	if c.channel != "" {
		out["presentment_channel"] = c.channel
	}
	out["component_events"] = c.events

	return json.Marshal(out)
}
