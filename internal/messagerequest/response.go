// internal/messagerequest/response.go
package messagerequest

import (
	"encoding/json"
	"fmt"
	"time"
)

// OfferType is the offer classification the service resolved for the
// request. GENERIC means no specific financing product matched.
type OfferType string

const (
	OfferGeneric           OfferType = "GENERIC"
	OfferPayLaterShortTerm OfferType = "PAY_LATER_SHORT_TERM"
	OfferPayLaterLongTerm  OfferType = "PAY_LATER_LONG_TERM"
	OfferPayLaterPayIn1    OfferType = "PAY_LATER_PAY_IN_1"
	OfferCreditNoInterest  OfferType = "PAYPAL_CREDIT_NO_INTEREST"
)

// ProductGroup is the product family the resolved offer belongs to. It
// drives logo asset selection.
type ProductGroup string

const (
	ProductGroupPayLater ProductGroup = "PAY_LATER"
	ProductGroupCredit   ProductGroup = "PAYPAL_CREDIT"
)

// CloseButtonHints are the modal close button dimensions and colors the
// service wants the host to render.
type CloseButtonHints struct {
	Width           int
	Height          int
	AvailableWidth  int
	AvailableHeight int
	Color           string
	ColorType       string
}

// Response is a decoded message content payload.
type Response struct {
	OfferType    OfferType
	ProductGroup ProductGroup

	DefaultMainContent string
	DefaultDisclaimer  string
	GenericMainContent string
	GenericDisclaimer  string

	LogoPlaceholder string

	CloseButton CloseButtonHints

	// TrackingData holds the meta fields named by the response's
	// tracking_keys list, echoed back verbatim on telemetry events.
	TrackingData map[string]any

	// RequestDuration is the wall-clock time of the fetch, set by the
	// requester rather than decoded.
	RequestDuration time.Duration
}

type wireContent struct {
	Main       string `json:"main"`
	Disclaimer string `json:"disclaimer"`
}

type wireResponse struct {
	Meta struct {
		OfferType          OfferType    `json:"offer_type"`
		CreditProductGroup ProductGroup `json:"credit_product_group"`
		Variables          struct {
			InlineLogoPlaceholder string `json:"inline_logo_placeholder"`
		} `json:"variables"`
		ModalCloseButton struct {
			Width           int    `json:"width"`
			Height          int    `json:"height"`
			AvailableWidth  int    `json:"available_width"`
			AvailableHeight int    `json:"available_height"`
			Color           string `json:"color"`
			ColorType       string `json:"color_type"`
		} `json:"modal_close_button"`
		TrackingKeys []string `json:"tracking_keys"`
	} `json:"meta"`
	Content struct {
		Default wireContent `json:"default"`
		Generic wireContent `json:"generic"`
	} `json:"content"`
}

// UnmarshalJSON decodes the nested meta/content envelope. The meta container
// is decoded twice: once into the typed wire struct and once into a raw map
// so the tracking_keys list can pluck arbitrary meta fields into
// TrackingData.
func (r *Response) UnmarshalJSON(data []byte) error {
	var wire wireResponse
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var raw struct {
		Meta map[string]any `json:"meta"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tracking := make(map[string]any, len(wire.Meta.TrackingKeys))
	for _, key := range wire.Meta.TrackingKeys {
		value, ok := raw.Meta[key]
		if !ok {
			return fmt.Errorf("tracking key %q missing from meta", key)
		}
		tracking[key] = value
	}

	*r = Response{
		OfferType:          wire.Meta.OfferType,
		ProductGroup:       wire.Meta.CreditProductGroup,
		DefaultMainContent: wire.Content.Default.Main,
		DefaultDisclaimer:  wire.Content.Default.Disclaimer,
		GenericMainContent: wire.Content.Generic.Main,
		GenericDisclaimer:  wire.Content.Generic.Disclaimer,
		LogoPlaceholder:    wire.Meta.Variables.InlineLogoPlaceholder,
		CloseButton: CloseButtonHints{
			Width:           wire.Meta.ModalCloseButton.Width,
			Height:          wire.Meta.ModalCloseButton.Height,
			AvailableWidth:  wire.Meta.ModalCloseButton.AvailableWidth,
			AvailableHeight: wire.Meta.ModalCloseButton.AvailableHeight,
			Color:           wire.Meta.ModalCloseButton.Color,
			ColorType:       wire.Meta.ModalCloseButton.ColorType,
		},
		TrackingData: tracking,
	}
	return nil
}
