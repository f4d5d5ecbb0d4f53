// messages/params.go
package messages

import (
	"strings"

	"github.com/radeva/paypal-messages-go/internal/messagerequest"
)

// Palette hex values used by the render parameter builder.
const (
	colorGrey700 = "#2B2E2E"
	colorBlue600 = "#0070BA"
	colorWhite   = "#FFFFFF"
	colorBlack   = "#000000"
)

// RenderParameters is everything a host needs to draw the message: the text,
// its colors, the logo asset token and the accessibility label. It is nil
// until a fetch succeeds.
type RenderParameters struct {
	Message      string
	MessageColor string

	// DisplayLeadingLogo is true when the content carries no inline logo
	// placeholder and the logo should lead the text instead.
	DisplayLeadingLogo bool
	LogoPlaceholder    string
	// LogoAsset names the bundled logo image, e.g. "inline_standard".
	// Empty for LogoNone.
	LogoAsset   string
	ProductName string

	LinkDescription    string
	LinkColor          string
	LinkUnderlineColor string

	Alignment TextAlignment

	AccessibilityLabel string
}

// buildRenderParameters derives render parameters from a response and the
// current style. Pure; safe to call from any goroutine.
func buildRenderParameters(resp *messagerequest.Response, style Style) *RenderParameters {
	message := resp.DefaultMainContent
	link := resp.DefaultDisclaimer
	isCredit := resp.ProductGroup == messagerequest.ProductGroupCredit

	productName := "PayPal"
	if isCredit || resp.OfferType == messagerequest.OfferCreditNoInterest {
		productName = "PayPal Credit"
	}

	label := message
	if resp.LogoPlaceholder != "" {
		label = strings.ReplaceAll(label, resp.LogoPlaceholder, productName)
	}
	label = strings.ReplaceAll(label, "/mo", " per month")
	if !strings.Contains(label, "PayPal") {
		label = productName + " - " + label
	}
	label = label + " " + link

	return &RenderParameters{
		Message:            message,
		MessageColor:       labelColor(style.Color),
		DisplayLeadingLogo: !strings.Contains(message, resp.LogoPlaceholder),
		LogoPlaceholder:    resp.LogoPlaceholder,
		LogoAsset:          logoAsset(style.LogoType, style.Color, resp.ProductGroup),
		ProductName:        productName,
		LinkDescription:    link,
		LinkColor:          linkColor(style.Color),
		LinkUnderlineColor: linkColor(style.Color),
		Alignment:          style.TextAlignment,
		AccessibilityLabel: label,
	}
}

// logoAsset resolves the bundled image token for the given style and product
// group. Pay Later offers use the plain assets, credit offers the _credit
// variants.
func logoAsset(logoType LogoType, color Color, group messagerequest.ProductGroup) string {
	if logoType == LogoNone {
		return ""
	}

	variant := ""
	switch color {
	case ColorWhite:
		variant = "white"
	case ColorMonochrome:
		variant = "monochrome"
	case ColorGrayscale:
		variant = "grayscale"
	default:
		variant = "standard"
	}

	asset := string(logoType) + "_" + variant
	if group == messagerequest.ProductGroupCredit {
		asset += "_credit"
	}
	return asset
}

func labelColor(color Color) string {
	switch color {
	case ColorWhite:
		return colorWhite
	case ColorMonochrome:
		return colorBlack
	default:
		return colorGrey700
	}
}

func linkColor(color Color) string {
	if color == ColorBlack {
		return colorBlue600
	}
	return labelColor(color)
}
