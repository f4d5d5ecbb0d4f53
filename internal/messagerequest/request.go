// internal/messagerequest/request.go
// Package messagerequest fetches message content from the credit-presentment
// message endpoint and decodes the response envelope.
package messagerequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/radeva/paypal-messages-go/internal/analytics"
	"github.com/radeva/paypal-messages-go/internal/fetch"
	"github.com/radeva/paypal-messages-go/internal/metrics"
	"github.com/radeva/paypal-messages-go/pkg/environment"
	"github.com/shopspring/decimal"
)

// ErrInvalidURL signals that the request URL could not be built from the
// given parameters.
var ErrInvalidURL = errors.New("invalid message request url")

// ResponseError carries the upstream status and debug ID of a failed or
// undecodable message response.
type ResponseError struct {
	Status  int
	DebugID string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("invalid message response: status %d debug_id %q", e.Status, e.DebugID)
}

// Parameters describes one message content request. Optional fields are
// empty strings or nil and are elided from the query.
type Parameters struct {
	Environment          environment.Environment
	ClientID             string
	MerchantID           string
	PartnerAttributionID string
	LogoType             string
	BuyerCountry         string
	Placement            string
	Amount               *decimal.Decimal
	OfferType            string
	MerchantProfileHash  string
	IgnoreCache          bool
	DevTouchpoint        bool
	StageTag             string
	InstanceID           string
}

// Requester fetches message content. The view model injects a fake in tests.
type Requester interface {
	Fetch(ctx context.Context, params Parameters) (*Response, error)
}

// HTTPRequester is the production Requester.
type HTTPRequester struct{}

func (HTTPRequester) Fetch(ctx context.Context, params Parameters) (*Response, error) {
	m := metrics.New()

	rawURL, err := makeURL(params)
	if err != nil {
		m.MessageFetchTotal.WithLabelValues("invalid_url").Inc()
		return nil, err
	}
	slog.Debug("fetching message content", "url", rawURL)

	start := time.Now()
	data, resp, err := fetch.Do(ctx, params.Environment, http.MethodGet, rawURL, nil, nil)
	duration := time.Since(start)
	if err != nil {
		m.MessageFetchTotal.WithLabelValues("error").Inc()
		return nil, &ResponseError{}
	}
	if resp.StatusCode != http.StatusOK {
		m.MessageFetchTotal.WithLabelValues("error").Inc()
		return nil, &ResponseError{Status: resp.StatusCode, DebugID: fetch.DebugID(resp)}
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		m.MessageFetchTotal.WithLabelValues("undecodable").Inc()
		slog.Warn("message response undecodable", "error", err, "debug_id", fetch.DebugID(resp))
		return nil, &ResponseError{Status: resp.StatusCode, DebugID: fetch.DebugID(resp)}
	}
	response.RequestDuration = duration

	m.MessageFetchTotal.WithLabelValues("ok").Inc()
	m.MessageFetchDuration.WithLabelValues("ok").Observe(duration.Seconds())

	return &response, nil
}

func makeURL(params Parameters) (string, error) {
	amount := ""
	if params.Amount != nil {
		amount = params.Amount.String()
	}

	query := map[string]string{
		"client_id":              params.ClientID,
		"merchant_id":            params.MerchantID,
		"partner_attribution_id": params.PartnerAttributionID,
		"logo_type":              params.LogoType,
		"buyer_country":          params.BuyerCountry,
		"placement":              params.Placement,
		"amount":                 amount,
		"offer":                  params.OfferType,
		"merchant_config":        params.MerchantProfileHash,
		"stage_tag":              params.StageTag,
		"ignore_cache":           strconv.FormatBool(params.IgnoreCache),
		"dev_touchpoint":         strconv.FormatBool(params.DevTouchpoint),
		"instance_id":            params.InstanceID,
		"integration_version":    analytics.IntegrationVersion(),
		"device_id":              analytics.DeviceID(),
		"session_id":             analytics.SessionID(),
	}

	rawURL, err := params.Environment.URL(environment.EndpointMessage, query)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return rawURL, nil
}
