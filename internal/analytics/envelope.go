// internal/analytics/envelope.go
package analytics

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CloudEvents 1.0 envelope constants for the upstream presentment stream.
const (
	envelopeSpecVersion = "1.0"
	envelopeType        = "com.paypal.credit.upstream-presentment.v1"
	envelopeSource      = "urn:paypal:event-src:v1:go:messages"
	envelopeSchema      = "ppaas:events.credit.FinancingPresentmentAsyncAPISpecification/v1/schema/json/credit_upstream_presentment_event.json"
)

type cloudEvent struct {
	SpecVersion     string       `json:"specversion"`
	ID              string       `json:"id"`
	Type            string       `json:"type"`
	Source          string       `json:"source"`
	DataContentType string       `json:"datacontenttype"`
	DataSchema      string       `json:"dataschema"`
	Time            string       `json:"time"`
	Data            envelopeData `json:"data"`
}

type envelopeData struct {
	Environment          string             `json:"environment"`
	ClientID             string             `json:"client_id"`
	MerchantID           string             `json:"merchant_id,omitempty"`
	PartnerAttributionID string             `json:"partner_attribution_id,omitempty"`
	MerchantProfileHash  string             `json:"merchant_profile_hash,omitempty"`
	DeviceID             string             `json:"device_id,omitempty"`
	SessionID            string             `json:"session_id,omitempty"`
	IntegrationName      string             `json:"integration_name,omitempty"`
	IntegrationVersion   string             `json:"integration_version,omitempty"`
	IntegrationType      string             `json:"integration_type"`
	LibVersion           string             `json:"lib_version"`
	Components           []*ComponentLogger `json:"components"`
}

// encodeEnvelope builds a CloudEvents envelope for the given components.
// Only components holding events are included; the caller guarantees at
// least one does.
func encodeEnvelope(a *Aggregate, components []*ComponentLogger) ([]byte, error) {
	env := cloudEvent{
		SpecVersion:     envelopeSpecVersion,
		ID:              uuid.NewString(),
		Type:            envelopeType,
		Source:          envelopeSource,
		DataContentType: "application/json",
		DataSchema:      envelopeSchema,
		Time:            time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Data: envelopeData{
			Environment:          a.environment,
			ClientID:             a.clientID,
			MerchantID:           a.merchantID,
			PartnerAttributionID: a.partnerAttributionID,
			MerchantProfileHash:  a.profileHash(),
			DeviceID:             DeviceID(),
			SessionID:            SessionID(),
			IntegrationName:      IntegrationName(),
			IntegrationVersion:   IntegrationVersion(),
			IntegrationType:      IntegrationType,
			LibVersion:           LibVersion,
			Components:           components,
		},
	}
	return json.Marshal(env)
}
