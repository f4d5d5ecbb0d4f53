package messages

import (
	"testing"

	"github.com/radeva/paypal-messages-go/internal/messagerequest"
)

func TestBuildRenderParametersInlineLogo(t *testing.T) {
	resp := sampleResponse()
	params := buildRenderParameters(resp, Style{
		LogoType:      LogoInline,
		Color:         ColorBlack,
		TextAlignment: AlignLeft,
	})

	if params.Message != resp.DefaultMainContent {
		t.Errorf("Message = %q", params.Message)
	}
	if params.DisplayLeadingLogo {
		t.Error("content with an inline placeholder must not lead with the logo")
	}
	if params.LogoAsset != "inline_standard" {
		t.Errorf("LogoAsset = %q", params.LogoAsset)
	}
	if params.ProductName != "PayPal" {
		t.Errorf("ProductName = %q", params.ProductName)
	}
	if params.MessageColor != colorGrey700 || params.LinkColor != colorBlue600 {
		t.Errorf("colors = %q / %q", params.MessageColor, params.LinkColor)
	}
	if params.Alignment != AlignLeft {
		t.Errorf("Alignment = %q", params.Alignment)
	}
}

func TestBuildRenderParametersLeadingLogo(t *testing.T) {
	resp := sampleResponse()
	resp.DefaultMainContent = "As low as $25/mo"

	params := buildRenderParameters(resp, Style{LogoType: LogoPrimary, Color: ColorWhite})
	if !params.DisplayLeadingLogo {
		t.Error("content without the placeholder must lead with the logo")
	}
	if params.LogoAsset != "primary_white" {
		t.Errorf("LogoAsset = %q", params.LogoAsset)
	}
	if params.MessageColor != colorWhite || params.LinkColor != colorWhite {
		t.Errorf("colors = %q / %q", params.MessageColor, params.LinkColor)
	}
}

func TestBuildRenderParametersCreditVariant(t *testing.T) {
	resp := sampleResponse()
	resp.ProductGroup = messagerequest.ProductGroupCredit
	resp.OfferType = messagerequest.OfferCreditNoInterest

	params := buildRenderParameters(resp, Style{LogoType: LogoAlternative, Color: ColorGrayscale})
	if params.LogoAsset != "alternative_grayscale_credit" {
		t.Errorf("LogoAsset = %q", params.LogoAsset)
	}
	if params.ProductName != "PayPal Credit" {
		t.Errorf("ProductName = %q", params.ProductName)
	}
}

func TestBuildRenderParametersNoLogo(t *testing.T) {
	params := buildRenderParameters(sampleResponse(), Style{LogoType: LogoNone, Color: ColorMonochrome})
	if params.LogoAsset != "" {
		t.Errorf("LogoAsset = %q, want empty for LogoNone", params.LogoAsset)
	}
	if params.MessageColor != colorBlack {
		t.Errorf("MessageColor = %q", params.MessageColor)
	}
}

func TestAccessibilityLabelSanitization(t *testing.T) {
	resp := sampleResponse()
	resp.DefaultMainContent = "As low as $25/mo with %paypal_logo%"
	resp.DefaultDisclaimer = "Learn more"

	params := buildRenderParameters(resp, Style{LogoType: LogoInline, Color: ColorBlack})
	want := "As low as $25 per month with PayPal Learn more"
	if params.AccessibilityLabel != want {
		t.Errorf("AccessibilityLabel = %q, want %q", params.AccessibilityLabel, want)
	}
}

func TestAccessibilityLabelPrefixesProductName(t *testing.T) {
	resp := sampleResponse()
	resp.DefaultMainContent = "As low as $25/mo"
	resp.DefaultDisclaimer = "Learn more"

	params := buildRenderParameters(resp, Style{LogoType: LogoPrimary, Color: ColorBlack})
	want := "PayPal - As low as $25 per month Learn more"
	if params.AccessibilityLabel != want {
		t.Errorf("AccessibilityLabel = %q, want %q", params.AccessibilityLabel, want)
	}

	resp.ProductGroup = messagerequest.ProductGroupCredit
	params = buildRenderParameters(resp, Style{LogoType: LogoPrimary, Color: ColorBlack})
	want = "PayPal Credit - As low as $25 per month Learn more"
	if params.AccessibilityLabel != want {
		t.Errorf("AccessibilityLabel = %q, want %q", params.AccessibilityLabel, want)
	}
}
