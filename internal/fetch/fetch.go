// internal/fetch/fetch.go
// Package fetch provides the shared HTTP primitive used by every request
// component in the SDK. It injects the standard SDK headers, traces each
// request, and surfaces the upstream debug identifier when present.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/radeva/paypal-messages-go/pkg/environment"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Standard headers sent on every SDK request.
const (
	headerAccept         = "Accept"
	headerAcceptLanguage = "Accept-Language"
	headerContentType    = "Content-Type"
	headerRequestedBy    = "X-Requested-By"

	requestedByValue = "native-checkout-sdk"

	// ContentTypeCloudEvents is the content type of telemetry envelopes.
	ContentTypeCloudEvents = "application/cloudevents+json"
)

// Do performs an HTTP request against the given environment with the
// standard SDK headers applied. The body may be nil for GET requests.
// Extra headers override the standard set on key collision. The response
// body is fully read and returned alongside the response metadata; callers
// decide what a non-200 status means for them.
func Do(ctx context.Context, env environment.Environment, method, rawURL string, extra map[string]string, body []byte) ([]byte, *http.Response, error) {
	tracer := otel.Tracer("paypal-messages")
	ctx, span := tracer.Start(ctx, "fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", rawURL),
	)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set(headerAcceptLanguage, "en_US")
	req.Header.Set(headerRequestedBy, requestedByValue)
	req.Header.Set(headerAccept, "application/json")
	if body != nil {
		req.Header.Set(headerContentType, "application/json")
	}
	for key, value := range extra {
		req.Header.Set(key, value)
	}

	resp, err := env.HTTPClient().Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, resp, err
	}

	return data, resp, nil
}

// DebugID extracts the upstream debug identifier from a response. The header
// casing differs between the REST and GQL edges, so the lookup is
// case-insensitive via the canonical form.
func DebugID(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	return resp.Header.Get("Paypal-Debug-Id")
}
