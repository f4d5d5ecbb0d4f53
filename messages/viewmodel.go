// messages/viewmodel.go
// Package messages is the public SDK surface: a property-driven message view
// model that fetches promotional financing content, a modal view model
// synchronized with an embedded web surface, and the render parameters hosts
// draw from.
package messages

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/radeva/paypal-messages-go/internal/analytics"
	"github.com/radeva/paypal-messages-go/internal/merchantprofile"
	"github.com/radeva/paypal-messages-go/internal/messagerequest"
	"github.com/radeva/paypal-messages-go/pkg/environment"
	"github.com/shopspring/decimal"
)

// Mutations landing within this window coalesce into a single refetch.
const messageDebounceInterval = time.Millisecond

// profileProvider resolves the merchant profile hash attached to content
// requests.
type profileProvider interface {
	Hash(ctx context.Context, env environment.Environment, clientID, merchantID string) (string, bool)
}

// Message is the message view model. Every data mutation is debounced into a
// coalesced content refetch; style mutations only trigger a re-render. All
// methods are safe for concurrent use.
type Message struct {
	mu sync.Mutex

	env                  environment.Environment
	clientID             string
	merchantID           string
	partnerAttributionID string
	amount               *decimal.Decimal
	currency             string
	placement            Placement
	offerType            OfferType
	buyerCountry         string
	channel              string
	logoType             LogoType
	color                Color
	alignment            TextAlignment
	ignoreCache          bool
	devTouchpoint        bool
	stageTag             string

	pendingFetch bool
	timer        *time.Timer
	// fetchSeq tags each issued fetch; completions carrying an older tag
	// are discarded so a slow early response can never clobber the result
	// of a later one.
	fetchSeq    uint64
	renderStart time.Time
	response    *messagerequest.Response
	interactive bool
	modal       *Modal

	requester      messagerequest.Requester
	profiles       profileProvider
	surfaceFactory func() WebSurface

	stateDelegate  ViewStateDelegate
	eventDelegate  ViewEventDelegate
	renderDelegate RenderDelegate

	aggregate *analytics.Aggregate
	logger    *analytics.ComponentLogger
}

// Option configures a Message.
type Option func(*Message)

// WithRequester overrides the content requester. Used by tests.
func WithRequester(r messagerequest.Requester) Option {
	return func(m *Message) { m.requester = r }
}

// WithProfileProvider overrides the merchant profile provider. The default
// caches in process memory; hosts with durable storage pass a provider over
// a file or redis store.
func WithProfileProvider(p profileProvider) Option {
	return func(m *Message) { m.profiles = p }
}

// WithStateDelegate installs the lifecycle callback receiver.
func WithStateDelegate(d ViewStateDelegate) Option {
	return func(m *Message) { m.stateDelegate = d }
}

// WithEventDelegate installs the interaction callback receiver.
func WithEventDelegate(d ViewEventDelegate) Option {
	return func(m *Message) { m.eventDelegate = d }
}

// WithRenderDelegate installs the redraw callback receiver.
func WithRenderDelegate(d RenderDelegate) Option {
	return func(m *Message) { m.renderDelegate = d }
}

// WithWebSurface installs the factory producing the web surface backing the
// modal. Without it the modal runs against a no-op surface.
func WithWebSurface(factory func() WebSurface) Option {
	return func(m *Message) { m.surfaceFactory = factory }
}

// NewMessage creates a message view model and schedules its first content
// fetch.
func NewMessage(config Config, opts ...Option) *Message {
	m := &Message{
		env:                  config.Environment,
		clientID:             config.ClientID,
		merchantID:           config.MerchantID,
		partnerAttributionID: config.PartnerAttributionID,
		amount:               config.Amount,
		currency:             config.Currency,
		placement:            config.Placement,
		offerType:            config.OfferType,
		buyerCountry:         config.BuyerCountry,
		channel:              config.Channel,
		logoType:             config.Style.LogoType,
		color:                config.Style.Color,
		alignment:            config.Style.TextAlignment,
		ignoreCache:          config.IgnoreCache,
		devTouchpoint:        config.DevTouchpoint,
		stageTag:             config.StageTag,

		requester:      messagerequest.HTTPRequester{},
		profiles:       merchantprofile.NewProvider(merchantprofile.NewMemoryStore()),
		surfaceFactory: func() WebSurface { return noopSurface{} },
	}
	for _, opt := range opts {
		opt(m)
	}

	m.aggregate = analytics.ForIntegration(m.env, m.clientID, m.merchantID, m.partnerAttributionID)
	m.logger = analytics.NewComponentLogger(analytics.ComponentMessage, m.aggregate)

	m.mu.Lock()
	m.syncLoggerAttributesLocked()
	m.queueUpdateLocked(true)
	m.mu.Unlock()

	return m
}

// Close stops the debounce timer. Pending telemetry stays on the shared
// aggregate and flushes on its own schedule.
func (m *Message) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
	}
}

// SetEnvironment changes the target environment and refetches.
func (m *Message) SetEnvironment(env environment.Environment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.env == env {
		return
	}
	m.env = env
	m.queueUpdateLocked(true)
}

// SetClientID changes the client ID and refetches.
func (m *Message) SetClientID(v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clientID == v {
		return
	}
	m.clientID = v
	m.queueUpdateLocked(true)
}

// SetMerchantID changes the merchant ID and refetches.
func (m *Message) SetMerchantID(v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.merchantID == v {
		return
	}
	m.merchantID = v
	m.queueUpdateLocked(true)
}

// SetPartnerAttributionID changes the partner attribution ID and refetches.
func (m *Message) SetPartnerAttributionID(v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.partnerAttributionID == v {
		return
	}
	m.partnerAttributionID = v
	m.queueUpdateLocked(true)
}

// SetAmount changes the transaction amount and refetches. Pass nil to clear.
func (m *Message) SetAmount(v *decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if amountsEqual(m.amount, v) {
		return
	}
	m.amount = v
	m.queueUpdateLocked(true)
}

// SetPlacement changes the placement and refetches.
func (m *Message) SetPlacement(v Placement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.placement == v {
		return
	}
	m.placement = v
	m.queueUpdateLocked(true)
}

// SetOfferType changes the preselected offer and refetches.
func (m *Message) SetOfferType(v OfferType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.offerType == v {
		return
	}
	m.offerType = v
	m.queueUpdateLocked(true)
}

// SetBuyerCountry changes the buyer country and refetches.
func (m *Message) SetBuyerCountry(v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buyerCountry == v {
		return
	}
	m.buyerCountry = v
	m.queueUpdateLocked(true)
}

// SetLogoType changes the logo style and refetches; the endpoint shapes
// content around the logo placement.
func (m *Message) SetLogoType(v LogoType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.logoType == v {
		return
	}
	m.logoType = v
	m.queueUpdateLocked(true)
}

// SetColor changes the text color. Re-render only, no refetch.
func (m *Message) SetColor(v Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.color == v {
		return
	}
	m.color = v
	m.queueUpdateLocked(false)
}

// SetTextAlignment changes the text alignment. Re-render only, no refetch.
func (m *Message) SetTextAlignment(v TextAlignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.alignment == v {
		return
	}
	m.alignment = v
	m.queueUpdateLocked(false)
}

// SetIgnoreCache toggles upstream cache bypass and refetches.
func (m *Message) SetIgnoreCache(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ignoreCache == v {
		return
	}
	m.ignoreCache = v
	m.queueUpdateLocked(true)
}

// SetDevTouchpoint toggles development content and refetches.
func (m *Message) SetDevTouchpoint(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.devTouchpoint == v {
		return
	}
	m.devTouchpoint = v
	m.queueUpdateLocked(true)
}

// SetStageTag changes the stage bundle tag and refetches.
func (m *Message) SetStageTag(v string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stageTag == v {
		return
	}
	m.stageTag = v
	m.queueUpdateLocked(true)
}

// SetConfig replaces the whole configuration. Unlike the per-field setters
// this always refetches, even when nothing changed.
func (m *Message) SetConfig(config Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.env = config.Environment
	m.clientID = config.ClientID
	m.merchantID = config.MerchantID
	m.partnerAttributionID = config.PartnerAttributionID
	m.amount = config.Amount
	m.currency = config.Currency
	m.placement = config.Placement
	m.offerType = config.OfferType
	m.buyerCountry = config.BuyerCountry
	m.channel = config.Channel
	m.logoType = config.Style.LogoType
	m.color = config.Style.Color
	m.alignment = config.Style.TextAlignment
	m.ignoreCache = config.IgnoreCache
	m.devTouchpoint = config.DevTouchpoint
	m.stageTag = config.StageTag

	m.queueUpdateLocked(true)
}

// Config returns a snapshot of the current configuration.
func (m *Message) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Config{
		ClientID:             m.clientID,
		MerchantID:           m.merchantID,
		PartnerAttributionID: m.partnerAttributionID,
		Environment:          m.env,
		Amount:               m.amount,
		Currency:             m.currency,
		Placement:            m.placement,
		OfferType:            m.offerType,
		BuyerCountry:         m.buyerCountry,
		Channel:              m.channel,
		IgnoreCache:          m.ignoreCache,
		DevTouchpoint:        m.devTouchpoint,
		StageTag:             m.stageTag,
		Style: Style{
			LogoType:      m.logoType,
			Color:         m.color,
			TextAlignment: m.alignment,
		},
	}
}

// IsInteractive reports whether the message currently has content and may
// open the modal.
func (m *Message) IsInteractive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interactive
}

// RenderParameters derives the draw instructions from the last successful
// response and the current style. Nil until a fetch succeeds.
func (m *Message) RenderParameters() *RenderParameters {
	m.mu.Lock()
	resp := m.response
	style := Style{LogoType: m.logoType, Color: m.color, TextAlignment: m.alignment}
	m.mu.Unlock()

	if resp == nil {
		return nil
	}
	return buildRenderParameters(resp, style)
}

// queueUpdateLocked starts or retriggers the debounce window. The caller
// holds the mutex.
func (m *Message) queueUpdateLocked(requiresFetch bool) {
	m.renderStart = time.Now()
	if requiresFetch {
		m.pendingFetch = true
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(messageDebounceInterval, m.debounceFired)
}

// debounceFired runs once per settled mutation burst. Field values are read
// here, at fire time, so the request reflects the final state of the burst.
func (m *Message) debounceFired() {
	m.mu.Lock()
	pending := m.pendingFetch
	m.pendingFetch = false
	if !pending {
		m.mu.Unlock()
		m.refresh()
		return
	}

	m.fetchSeq++
	seq := m.fetchSeq
	env := m.env
	clientID := m.clientID
	merchantID := m.merchantID
	params := m.requestParametersLocked()
	m.mu.Unlock()

	if m.stateDelegate != nil {
		m.stateDelegate.OnLoading(m)
	}

	go m.fetchContent(seq, env, clientID, merchantID, params)
}

func (m *Message) requestParametersLocked() messagerequest.Parameters {
	return messagerequest.Parameters{
		Environment:          m.env,
		ClientID:             m.clientID,
		MerchantID:           m.merchantID,
		PartnerAttributionID: m.partnerAttributionID,
		LogoType:             string(m.logoType),
		BuyerCountry:         m.buyerCountry,
		Placement:            string(m.placement),
		Amount:               m.amount,
		OfferType:            string(m.offerType),
		IgnoreCache:          m.ignoreCache,
		DevTouchpoint:        m.devTouchpoint,
		StageTag:             m.stageTag,
		InstanceID:           m.logger.InstanceID(),
	}
}

func (m *Message) fetchContent(seq uint64, env environment.Environment, clientID, merchantID string, params messagerequest.Parameters) {
	ctx := context.Background()

	if hash, ok := m.profiles.Hash(ctx, env, clientID, merchantID); ok {
		params.MerchantProfileHash = hash
		m.aggregate.SetProfileHash(hash)
	}

	resp, err := m.requester.Fetch(ctx, params)

	m.mu.Lock()
	if seq != m.fetchSeq {
		m.mu.Unlock()
		slog.Debug("discarding superseded message response", "seq", seq)
		return
	}

	if err != nil {
		m.response = nil
		m.interactive = false
		m.mu.Unlock()

		msgErr := mapRequestError(err)
		m.logger.AddEvent(analytics.ErrorEvent(msgErr.name(), msgErr.Error()))
		if m.stateDelegate != nil {
			m.stateDelegate.OnError(m, msgErr)
		}
		m.refresh()
		return
	}

	m.response = resp
	m.interactive = true
	renderDuration := time.Since(m.renderStart)
	m.syncLoggerAttributesLocked()
	modal := m.modal
	var modalConfig ModalConfig
	if modal != nil {
		modalConfig = m.modalConfigLocked()
	}
	m.mu.Unlock()

	m.logger.MergeDynamic(resp.TrackingData)
	m.logger.AddEvent(analytics.RenderEvent(
		renderDuration.Milliseconds(),
		resp.RequestDuration.Milliseconds(),
	))

	if m.stateDelegate != nil {
		m.stateDelegate.OnSuccess(m)
	}
	m.refresh()

	if modal != nil {
		modal.SetConfig(modalConfig)
	}
}

func (m *Message) refresh() {
	if m.renderDelegate != nil {
		m.renderDelegate.RefreshContent(m)
	}
}

func (m *Message) syncLoggerAttributesLocked() {
	amount := ""
	if m.amount != nil {
		amount = m.amount.String()
	}
	m.logger.SetIntegrationAttributes(
		string(m.offerType), amount, string(m.placement), m.buyerCountry, m.channel)
}

// ShowModal opens the detail modal. A no-op while the message has no
// content. The modal is constructed lazily on first open and reused after.
func (m *Message) ShowModal(ctx context.Context) {
	m.mu.Lock()
	if !m.interactive {
		m.mu.Unlock()
		return
	}

	linkName := "Learn More"
	if m.response != nil && m.response.DefaultDisclaimer != "" {
		linkName = m.response.DefaultDisclaimer
	}

	if m.modal == nil {
		m.modal = newModal(
			m.modalConfigLocked(),
			m.surfaceFactory(),
			nil,
			&modalRelay{message: m},
			m.aggregate,
		)
	}
	modal := m.modal
	m.mu.Unlock()

	if m.eventDelegate != nil {
		m.eventDelegate.OnClick(m)
	}
	m.logger.AddEvent(analytics.ClickEvent(linkName, "learn_more"))

	modal.Show(ctx)
}

// modalConfigLocked projects the message configuration onto the modal,
// folding in the response's offer resolution and close button hints.
func (m *Message) modalConfigLocked() ModalConfig {
	cfg := ModalConfig{
		ClientID:             m.clientID,
		MerchantID:           m.merchantID,
		PartnerAttributionID: m.partnerAttributionID,
		Environment:          m.env,
		Amount:               m.amount,
		Currency:             m.currency,
		BuyerCountry:         m.buyerCountry,
		OfferType:            m.offerType,
		Placement:            m.placement,
		Channel:              m.channel,
		IgnoreCache:          m.ignoreCache,
		DevTouchpoint:        m.devTouchpoint,
		StageTag:             m.stageTag,
		CloseButton:          defaultCloseButton(),
	}
	if m.response != nil {
		cfg.OfferType = OfferType(m.response.OfferType)
		cb := m.response.CloseButton
		cfg.CloseButton = CloseButtonConfig{
			Width:           cb.Width,
			Height:          cb.Height,
			AvailableWidth:  cb.AvailableWidth,
			AvailableHeight: cb.AvailableHeight,
			Color:           cb.Color,
			ColorType:       cb.ColorType,
		}
	}
	return cfg
}

// modalRelay forwards modal events back to the message so "Apply Now" taps
// inside the modal surface on the message's event delegate.
type modalRelay struct {
	message *Message
}

func (r *modalRelay) OnClick(_ *Modal, data ModalClickData) {
	if strings.Contains(data.LinkName, "Apply Now") && r.message.eventDelegate != nil {
		r.message.eventDelegate.OnApply(r.message)
	}
}

func (r *modalRelay) OnCalculate(*Modal, ModalCalculateData) {}
func (r *modalRelay) OnShow(*Modal)                          {}
func (r *modalRelay) OnClose(*Modal)                         {}

func amountsEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
