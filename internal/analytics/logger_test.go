package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/radeva/paypal-messages-go/pkg/environment"
)

type captureSender struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (s *captureSender) Send(ctx context.Context, env environment.Environment, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return nil
}

func (s *captureSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func (s *captureSender) last() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.payloads) == 0 {
		return nil
	}
	return s.payloads[len(s.payloads)-1]
}

func withCaptureSender(t *testing.T) *captureSender {
	t.Helper()
	s := &captureSender{}
	SetSender(s)
	t.Cleanup(func() {
		SetSender(HTTPSender{})
		Reset()
	})
	return s
}

func TestForIntegrationReusesAggregate(t *testing.T) {
	withCaptureSender(t)

	a := ForIntegration(environment.Sandbox(), "abc", "m1", "")
	b := ForIntegration(environment.Sandbox(), "abc", "m1", "")
	if a != b {
		t.Error("same integration tuple must share one aggregate")
	}

	c := ForIntegration(environment.Sandbox(), "abc", "", "")
	if a == c {
		t.Error("different merchant IDs must not share an aggregate")
	}

	d := ForIntegration(environment.Live(), "abc", "m1", "")
	if a == d {
		t.Error("different environments must not share an aggregate")
	}
}

func TestFlushSkipsWhenNoEvents(t *testing.T) {
	sender := withCaptureSender(t)

	agg := ForIntegration(environment.Sandbox(), "abc", "", "")
	NewComponentLogger(ComponentMessage, agg)

	agg.Flush(context.Background())
	if sender.count() != 0 {
		t.Errorf("flush with no events sent %d envelopes, want 0", sender.count())
	}
}

func TestFlushEnvelopeShape(t *testing.T) {
	sender := withCaptureSender(t)
	SetGlobals("dev-1", "sess-1", "host-app", "2.0")

	agg := ForIntegration(environment.Sandbox(), "abc", "m1", "p1")
	agg.SetProfileHash("HASH1")

	active := NewComponentLogger(ComponentMessage, agg)
	active.SetIntegrationAttributes("PAY_LATER_SHORT_TERM", "50", "product", "US", "NATIVE")
	active.MergeDynamic(map[string]any{"fdata": "xyz"})
	active.AddEvent(RenderEvent(12, 340))

	// No events on this one; it must not serialize.
	NewComponentLogger(ComponentModal, agg)

	agg.Flush(context.Background())
	if sender.count() != 1 {
		t.Fatalf("sent %d envelopes, want 1", sender.count())
	}

	var envlp struct {
		SpecVersion string `json:"specversion"`
		Type        string `json:"type"`
		Source      string `json:"source"`
		ID          string `json:"id"`
		Data        struct {
			Environment         string           `json:"environment"`
			ClientID            string           `json:"client_id"`
			MerchantProfileHash string           `json:"merchant_profile_hash"`
			DeviceID            string           `json:"device_id"`
			IntegrationType     string           `json:"integration_type"`
			Components          []map[string]any `json:"components"`
		} `json:"data"`
	}
	if err := json.Unmarshal(sender.last(), &envlp); err != nil {
		t.Fatalf("envelope undecodable: %v", err)
	}

	if envlp.SpecVersion != "1.0" {
		t.Errorf("specversion = %q", envlp.SpecVersion)
	}
	if envlp.Type != "com.paypal.credit.upstream-presentment.v1" {
		t.Errorf("type = %q", envlp.Type)
	}
	if envlp.Source != "urn:paypal:event-src:v1:go:messages" {
		t.Errorf("source = %q", envlp.Source)
	}
	if envlp.ID == "" {
		t.Error("envelope must carry a uuid")
	}
	if envlp.Data.Environment != "sandbox" || envlp.Data.ClientID != "abc" {
		t.Errorf("data identity = %q/%q", envlp.Data.Environment, envlp.Data.ClientID)
	}
	if envlp.Data.MerchantProfileHash != "HASH1" || envlp.Data.DeviceID != "dev-1" {
		t.Errorf("hash/device = %q/%q", envlp.Data.MerchantProfileHash, envlp.Data.DeviceID)
	}
	if envlp.Data.IntegrationType != "NATIVE_GO" {
		t.Errorf("integration_type = %q", envlp.Data.IntegrationType)
	}

	if len(envlp.Data.Components) != 1 {
		t.Fatalf("components = %d, want only the one with events", len(envlp.Data.Components))
	}
	comp := envlp.Data.Components[0]
	if comp["type"] != "message" || comp["offer_type"] != "PAY_LATER_SHORT_TERM" {
		t.Errorf("component statics = %v", comp)
	}
	if comp["fdata"] != "xyz" {
		t.Error("dynamic data must flatten into the component object")
	}
	if comp["instance_id"] == "" {
		t.Error("component must carry its instance id")
	}
	events, ok := comp["component_events"].([]any)
	if !ok || len(events) != 1 {
		t.Fatalf("component_events = %v", comp["component_events"])
	}
	ev := events[0].(map[string]any)
	if ev["event_type"] != "message_render" || ev["render_duration"] != float64(12) {
		t.Errorf("event = %v", ev)
	}
}

func TestFlushClearsEvents(t *testing.T) {
	sender := withCaptureSender(t)

	agg := ForIntegration(environment.Sandbox(), "abc", "", "")
	c := NewComponentLogger(ComponentMessage, agg)
	c.AddEvent(ClickEvent("Learn More", "message"))

	agg.Flush(context.Background())
	agg.Flush(context.Background())
	if sender.count() != 1 {
		t.Errorf("sent %d envelopes, want 1 (flushed events must clear)", sender.count())
	}
}

func TestCloseFlushesPending(t *testing.T) {
	sender := withCaptureSender(t)

	agg := ForIntegration(environment.Sandbox(), "abc", "", "")
	c := NewComponentLogger(ComponentMessage, agg)
	c.AddEvent(ErrorEvent("invalid_response", "status 500"))

	agg.Close()
	if sender.count() != 1 {
		t.Errorf("Close() sent %d envelopes, want 1", sender.count())
	}
	// Closing twice must not double-flush.
	agg.Close()
	if sender.count() != 1 {
		t.Errorf("second Close() sent more envelopes")
	}
}
