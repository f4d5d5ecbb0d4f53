// messages/delegates.go
package messages

// ViewStateDelegate receives message lifecycle callbacks. All callbacks are
// invoked without internal locks held, so implementations may call back into
// the message.
type ViewStateDelegate interface {
	// OnLoading fires when a content fetch starts.
	OnLoading(m *Message)
	// OnSuccess fires when fresh content has been applied.
	OnSuccess(m *Message)
	// OnError fires when a fetch fails. The message keeps no content
	// afterwards.
	OnError(m *Message, err error)
}

// ViewEventDelegate receives user interaction callbacks.
type ViewEventDelegate interface {
	// OnClick fires when the message is tapped to open the modal.
	OnClick(m *Message)
	// OnApply fires when the buyer taps an "Apply Now" link inside the
	// modal opened from this message.
	OnApply(m *Message)
}

// RenderDelegate is asked to redraw the message whenever its content or
// style changes.
type RenderDelegate interface {
	RefreshContent(m *Message)
}

// ModalStateDelegate receives modal lifecycle callbacks.
type ModalStateDelegate interface {
	OnLoading(m *Modal)
	OnSuccess(m *Modal)
	OnError(m *Modal, err error)
}

// ModalClickData describes a link tapped inside the modal.
type ModalClickData struct {
	LinkName string
	LinkSrc  string
}

// ModalCalculateData carries the amount entered into the modal calculator.
type ModalCalculateData struct {
	Value float64
}

// ModalEventDelegate receives modal interaction callbacks.
type ModalEventDelegate interface {
	OnClick(m *Modal, data ModalClickData)
	OnCalculate(m *Modal, data ModalCalculateData)
	OnShow(m *Modal)
	OnClose(m *Modal)
}
