// messages/modal.go
package messages

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/radeva/paypal-messages-go/internal/analytics"
	"github.com/radeva/paypal-messages-go/internal/bridge"
	"github.com/radeva/paypal-messages-go/internal/metrics"
	"github.com/radeva/paypal-messages-go/pkg/environment"
	"github.com/shopspring/decimal"
)

// Modal mutations settle slightly slower than message mutations because a
// props push crosses the scripting bridge.
const modalDebounceInterval = 10 * time.Millisecond

// WebSurface is the embedded web view the modal drives. Hosts adapt their
// platform web view to this interface and relay its navigation and script
// callbacks into the Modal's Handle methods.
type WebSurface interface {
	// Load starts navigation to the given URL.
	Load(ctx context.Context, url string) error
	// Evaluate runs a script in the page context.
	Evaluate(ctx context.Context, script string) error
	// Loading reports whether the initial navigation is still in flight.
	Loading() bool
}

// noopSurface backs messages whose host never installed a web surface.
type noopSurface struct{}

func (noopSurface) Load(context.Context, string) error     { return nil }
func (noopSurface) Evaluate(context.Context, string) error { return nil }
func (noopSurface) Loading() bool                          { return false }

// CloseButtonConfig describes the modal close button the host renders. The
// service may override it per offer via the message response.
type CloseButtonConfig struct {
	Width           int
	Height          int
	AvailableWidth  int
	AvailableHeight int
	Color           string
	ColorType       string
}

func defaultCloseButton() CloseButtonConfig {
	return CloseButtonConfig{
		Width:           26,
		Height:          26,
		AvailableWidth:  60,
		AvailableHeight: 60,
		Color:           "#001435",
		ColorType:       "dark",
	}
}

// ModalConfig is a full snapshot of the modal's options.
type ModalConfig struct {
	ClientID             string
	MerchantID           string
	PartnerAttributionID string
	Environment          environment.Environment

	Amount       *decimal.Decimal
	Currency     string
	BuyerCountry string
	OfferType    OfferType
	Placement    Placement
	Channel      string

	// IntegrationIdentifier marks a standalone modal not attached to a
	// message.
	IntegrationIdentifier string

	IgnoreCache   bool
	DevTouchpoint bool
	StageTag      string

	CloseButton CloseButtonConfig
}

// Modal is the detail modal view model. It owns the web surface, pushes
// debounced property updates into the page, and dispatches page events to
// the host's delegates.
type Modal struct {
	mu sync.Mutex

	cfg     ModalConfig
	surface WebSurface

	timer     *time.Timer
	loaded    bool
	presented bool
	pending   func(error)

	stateDelegate ModalStateDelegate
	eventDelegate ModalEventDelegate

	logger *analytics.ComponentLogger
}

// NewModal creates a standalone modal over the given web surface. Modals
// attached to a message are created internally by ShowModal instead.
func NewModal(config ModalConfig, surface WebSurface, state ModalStateDelegate, event ModalEventDelegate) *Modal {
	agg := analytics.ForIntegration(
		config.Environment, config.ClientID, config.MerchantID, config.PartnerAttributionID)
	return newModal(config, surface, state, event, agg)
}

func newModal(config ModalConfig, surface WebSurface, state ModalStateDelegate, event ModalEventDelegate, agg *analytics.Aggregate) *Modal {
	if config.CloseButton == (CloseButtonConfig{}) {
		config.CloseButton = defaultCloseButton()
	}
	if surface == nil {
		surface = noopSurface{}
	}
	return &Modal{
		cfg:           config,
		surface:       surface,
		stateDelegate: state,
		eventDelegate: event,
		logger:        analytics.NewComponentLogger(analytics.ComponentModal, agg),
	}
}

// Config returns a snapshot of the current modal configuration.
func (m *Modal) Config() ModalConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// SetConfig replaces the modal's options. Changes are debounced into a
// single props push to the page; an unchanged config is a no-op.
func (m *Modal) SetConfig(config ModalConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if modalConfigsEqual(m.cfg, config) {
		return
	}
	m.cfg = config
	m.queuePropsUpdateLocked()
}

func modalConfigsEqual(a, b ModalConfig) bool {
	if !amountsEqual(a.Amount, b.Amount) {
		return false
	}
	a.Amount, b.Amount = nil, nil
	return a == b
}

// queuePropsUpdateLocked schedules a props push. Updates arriving before the
// page finished its initial load are dropped; the load itself carries the
// current configuration in its URL.
func (m *Modal) queuePropsUpdateLocked() {
	if m.surface.Loading() {
		return
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(modalDebounceInterval, m.pushProps)
}

func (m *Modal) pushProps() {
	m.mu.Lock()
	props := m.propsLocked()
	m.mu.Unlock()

	payload, err := json.Marshal(props)
	if err != nil {
		slog.Warn("modal props encode failed", "error", err)
		return
	}

	slog.Debug("pushing modal props", "props", string(payload))
	if err := m.surface.Evaluate(context.Background(), bridge.UpdatePropsScript(payload)); err != nil {
		slog.Warn("modal props push failed", "error", err)
	}
}

// modalProps is the updateProps payload. Key casing follows the page's
// contract: identity fields are snake_case, the rest camelCase.
type modalProps struct {
	ClientID             string   `json:"client_id"`
	MerchantID           string   `json:"merchant_id,omitempty"`
	PartnerAttributionID string   `json:"partner_attribution_id,omitempty"`
	Amount               *float64 `json:"amount,omitempty"`
	Currency             string   `json:"currency,omitempty"`
	BuyerCountry         string   `json:"buyerCountry,omitempty"`
	OfferType            string   `json:"offer,omitempty"`
	Channel              string   `json:"channel,omitempty"`
	Placement            string   `json:"placement,omitempty"`
	IgnoreCache          bool     `json:"ignoreCache,omitempty"`
	DevTouchpoint        bool     `json:"devTouchpoint,omitempty"`
	StageTag             string   `json:"stageTag,omitempty"`
}

func (m *Modal) propsLocked() modalProps {
	var amount *float64
	if m.cfg.Amount != nil {
		f := m.cfg.Amount.InexactFloat64()
		amount = &f
	}
	return modalProps{
		ClientID:             m.cfg.ClientID,
		MerchantID:           m.cfg.MerchantID,
		PartnerAttributionID: m.cfg.PartnerAttributionID,
		Amount:               amount,
		Currency:             m.cfg.Currency,
		BuyerCountry:         m.cfg.BuyerCountry,
		OfferType:            string(m.cfg.OfferType),
		Channel:              m.cfg.Channel,
		Placement:            string(m.cfg.Placement),
		IgnoreCache:          m.cfg.IgnoreCache,
		DevTouchpoint:        m.cfg.DevTouchpoint,
		StageTag:             m.cfg.StageTag,
	}
}

// LoadModal starts loading the lander into the web surface. done, which may
// be nil, fires once when the load resolves. A second LoadModal before the
// first resolves overwrites the pending completion; only the newest caller
// is notified.
func (m *Modal) LoadModal(ctx context.Context, done func(error)) {
	m.mu.Lock()
	m.pending = done
	cfg := m.cfg
	m.mu.Unlock()

	rawURL, err := landerURL(cfg)
	if err != nil {
		m.completePending(&MessageError{Kind: KindInvalidURL})
		return
	}

	if m.stateDelegate != nil {
		m.stateDelegate.OnLoading(m)
	}

	slog.Debug("loading modal lander", "url", rawURL)
	if err := m.surface.Load(ctx, rawURL); err != nil {
		metrics.New().ModalLoadTotal.WithLabelValues("error").Inc()
		m.failLoad(&MessageError{Kind: KindInvalidResponse})
	}
}

func landerURL(cfg ModalConfig) (string, error) {
	amount := ""
	if cfg.Amount != nil {
		amount = cfg.Amount.String()
	}
	return cfg.Environment.URL(environment.EndpointModal, map[string]string{
		"env":                    cfg.Environment.RawValue(),
		"client_id":              cfg.ClientID,
		"merchant_id":            cfg.MerchantID,
		"partner_attribution_id": cfg.PartnerAttributionID,
		"amount":                 amount,
		"currency":               cfg.Currency,
		"buyer_country":          cfg.BuyerCountry,
		"offer":                  string(cfg.OfferType),
		"channel":                cfg.Channel,
		"placement":              string(cfg.Placement),
		"integration_type":       analytics.IntegrationType,
		"integration_identifier": cfg.IntegrationIdentifier,
		"ignore_cache":           formatBool(cfg.IgnoreCache),
		"dev_touchpoint":         formatBool(cfg.DevTouchpoint),
		"stage_tag":              cfg.StageTag,
		"integration_version":    analytics.IntegrationVersion(),
		"device_id":              analytics.DeviceID(),
		"session_id":             analytics.SessionID(),
		"features":               "native-modal",
	})
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// HandleNavigationResponse is called by the host with the status of the
// lander's navigation response. It returns false when the navigation must
// be cancelled; the pending load completion fails with the upstream debug
// ID.
func (m *Modal) HandleNavigationResponse(status int, debugID string) bool {
	if status == 200 {
		return true
	}
	metrics.New().ModalLoadTotal.WithLabelValues("error").Inc()
	m.failLoad(&MessageError{Kind: KindInvalidResponse, DebugID: debugID})
	return false
}

// HandleNavigationFinished is called by the host when the lander finished
// loading. It resolves the pending load completion.
func (m *Modal) HandleNavigationFinished() {
	m.mu.Lock()
	m.loaded = true
	m.mu.Unlock()

	metrics.New().ModalLoadTotal.WithLabelValues("ok").Inc()
	if m.stateDelegate != nil {
		m.stateDelegate.OnSuccess(m)
	}
	m.completePending(nil)
}

func (m *Modal) failLoad(err *MessageError) {
	if m.stateDelegate != nil {
		m.stateDelegate.OnError(m, err)
	}
	m.completePending(err)
}

func (m *Modal) completePending(err error) {
	m.mu.Lock()
	done := m.pending
	m.pending = nil
	m.mu.Unlock()

	if done != nil {
		done(err)
	}
}

// Show presents the modal. Showing an already-presented modal is a no-op
// with a warning. The first Show kicks the lander load when it has not been
// started by LoadModal already.
func (m *Modal) Show(ctx context.Context) {
	m.mu.Lock()
	if m.presented {
		m.mu.Unlock()
		slog.Warn("modal is already presenting")
		return
	}
	m.presented = true
	needsLoad := !m.loaded && m.pending == nil
	m.mu.Unlock()

	if m.eventDelegate != nil {
		m.eventDelegate.OnShow(m)
	}
	if needsLoad {
		m.LoadModal(ctx, nil)
	}
}

// Hide dismisses the modal. The surface and its loaded page are kept so the
// next Show is instant.
func (m *Modal) Hide() {
	m.mu.Lock()
	if !m.presented {
		m.mu.Unlock()
		return
	}
	m.presented = false
	m.mu.Unlock()

	if m.eventDelegate != nil {
		m.eventDelegate.OnClose(m)
	}
}

// HandleScriptMessage is called by the host with the raw JSON body of a
// script message posted by the lander. Invalid payloads are dropped with a
// log; valid events are recorded as telemetry and, for the calculator and
// link taps, dispatched to the event delegate.
func (m *Modal) HandleScriptMessage(data []byte) {
	msg, err := bridge.Decode(data)
	if err != nil {
		slog.Error("unable to parse modal event body", "error", err)
		return
	}
	if len(msg.Args) == 0 {
		return
	}

	if shared := bridge.ExtractShared(msg); shared != nil {
		m.logger.MergeDynamic(shared)
	}
	m.logger.AddEvent(analytics.DynamicEvent(msg.Args[0]))

	switch msg.Name {
	case "onCalculate":
		if amount, ok := msg.Args[0]["amount"].(float64); ok && m.eventDelegate != nil {
			m.eventDelegate.OnCalculate(m, ModalCalculateData{Value: amount})
		}
	case "onClick":
		linkName, nameOK := msg.Args[0]["link_name"].(string)
		linkSrc, srcOK := msg.Args[0]["link_src"].(string)
		if nameOK && srcOK && m.eventDelegate != nil {
			m.eventDelegate.OnClick(m, ModalClickData{LinkName: linkName, LinkSrc: linkSrc})
		}
	}
}
