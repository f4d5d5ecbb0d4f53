// internal/analytics/event.go
package analytics

// Event is a single telemetry record on a component. Events are opaque maps
// because the modal relays arbitrary fields from the web bridge; the typed
// constructors below cover the events the SDK emits itself.
type Event map[string]any

// RenderEvent records a successful message render with its timings in
// milliseconds.
func RenderEvent(renderDurationMS, requestDurationMS int64) Event {
	return Event{
		"event_type":       "message_render",
		"render_duration":  renderDurationMS,
		"request_duration": requestDurationMS,
	}
}

// ClickEvent records a tap on the message or a link inside the modal.
func ClickEvent(linkName, linkSrc string) Event {
	return Event{
		"event_type":            "message_click",
		"page_view_link_name":   linkName,
		"page_view_link_source": linkSrc,
	}
}

// ErrorEvent records a failed fetch or load.
func ErrorEvent(name, description string) Event {
	return Event{
		"event_type":        "message_error",
		"error_name":        name,
		"error_description": description,
	}
}

// DynamicEvent wraps a bridge payload verbatim. The web side supplies its own
// event_type.
func DynamicEvent(data map[string]any) Event {
	e := make(Event, len(data))
	for k, v := range data {
		e[k] = v
	}
	return e
}
