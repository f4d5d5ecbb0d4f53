// messages/config.go
package messages

import (
	"github.com/radeva/paypal-messages-go/internal/analytics"
	"github.com/radeva/paypal-messages-go/pkg/environment"
	"github.com/shopspring/decimal"
)

// Style holds the presentation options of a message. Style changes never
// trigger a content refetch, only a re-render.
type Style struct {
	LogoType      LogoType
	Color         Color
	TextAlignment TextAlignment
}

// Config is a full snapshot of a message's data and style options. Zero
// values mean "unset" and are elided from requests; Amount is a pointer so
// an absent amount is distinguishable from zero.
type Config struct {
	ClientID             string
	MerchantID           string
	PartnerAttributionID string
	Environment          environment.Environment

	Amount       *decimal.Decimal
	Currency     string
	Placement    Placement
	OfferType    OfferType
	BuyerCountry string
	Channel      string

	// Dev options.
	IgnoreCache   bool
	DevTouchpoint bool
	StageTag      string

	Style Style
}

// SetGlobalAnalytics records the host integration's identity once per
// process. It is attached to every content request and telemetry envelope.
func SetGlobalAnalytics(integrationName, integrationVersion, deviceID, sessionID string) {
	analytics.SetGlobals(deviceID, sessionID, integrationName, integrationVersion)
}
