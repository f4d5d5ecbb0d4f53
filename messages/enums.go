// messages/enums.go
package messages

// LogoType selects how the PayPal logo renders inside the message.
type LogoType string

const (
	// LogoInline positions the logo inline within the message text.
	LogoInline LogoType = "inline"
	// LogoPrimary shows both the monogram and the wordmark.
	LogoPrimary LogoType = "primary"
	// LogoAlternative shows just the monogram.
	LogoAlternative LogoType = "alternative"
	// LogoNone renders "PayPal" as bold text inline with the message.
	LogoNone LogoType = "none"
)

// Color is the text and logo color option for a message.
type Color string

const (
	// ColorBlack is black text with a color logo.
	ColorBlack Color = "black"
	// ColorWhite is white text with a white logo.
	ColorWhite Color = "white"
	// ColorMonochrome is black text with a black logo.
	ColorMonochrome Color = "monochrome"
	// ColorGrayscale is black text with a desaturated logo.
	ColorGrayscale Color = "grayscale"
)

// TextAlignment is the text alignment option for a message.
type TextAlignment string

const (
	AlignLeft   TextAlignment = "left"
	AlignCenter TextAlignment = "center"
	AlignRight  TextAlignment = "right"
)

// OfferType preselects the financing product a message advertises. Leave it
// empty to let the service pick.
type OfferType string

const (
	OfferPayLaterShortTerm OfferType = "PAY_LATER_SHORT_TERM"
	OfferPayLaterLongTerm  OfferType = "PAY_LATER_LONG_TERM"
	OfferPayLaterPayIn1    OfferType = "PAY_LATER_PAY_IN_1"
	OfferCreditNoInterest  OfferType = "PAYPAL_CREDIT_NO_INTEREST"
)

// Placement is the message location within the host application.
type Placement string

const (
	PlacementHome     Placement = "home"
	PlacementCategory Placement = "category"
	PlacementProduct  Placement = "product"
	PlacementCart     Placement = "cart"
	PlacementPayment  Placement = "payment"
)
