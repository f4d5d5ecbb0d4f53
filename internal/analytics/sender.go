// internal/analytics/sender.go
package analytics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/radeva/paypal-messages-go/internal/fetch"
	"github.com/radeva/paypal-messages-go/pkg/environment"
)

// Sender delivers a serialized envelope to the event log endpoint.
type Sender interface {
	Send(ctx context.Context, env environment.Environment, payload []byte) error
}

// HTTPSender posts envelopes to the upstream-messaging-events endpoint.
type HTTPSender struct{}

func (HTTPSender) Send(ctx context.Context, env environment.Environment, payload []byte) error {
	rawURL, err := env.URL(environment.EndpointLog, nil)
	if err != nil {
		return err
	}

	extra := map[string]string{"Content-Type": fetch.ContentTypeCloudEvents}
	_, resp, err := fetch.Do(ctx, env, http.MethodPost, rawURL, extra, payload)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("event log rejected envelope: status %d debug_id %q", resp.StatusCode, fetch.DebugID(resp))
	}
	return nil
}

// NoopSender discards envelopes. Useful for offline hosts and tests.
type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, env environment.Environment, payload []byte) error {
	return nil
}
