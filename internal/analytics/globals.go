// internal/analytics/globals.go
// Package analytics batches per-surface telemetry into CloudEvents envelopes
// and flushes them to the upstream-messaging-events endpoint on a timer.
package analytics

import "sync"

// Build identity stamped on every envelope.
const (
	LibVersion      = "0.1.0"
	IntegrationType = "NATIVE_GO"
)

var (
	globalsMu          sync.RWMutex
	deviceID           string
	sessionID          string
	integrationName    string
	integrationVersion string
)

// SetGlobals records the host-level identifiers attached to every request and
// envelope. Hosts call this once at startup.
func SetGlobals(device, session, name, version string) {
	globalsMu.Lock()
	defer globalsMu.Unlock()
	deviceID = device
	sessionID = session
	integrationName = name
	integrationVersion = version
}

// DeviceID returns the host device identifier.
func DeviceID() string {
	globalsMu.RLock()
	defer globalsMu.RUnlock()
	return deviceID
}

// SessionID returns the host session identifier.
func SessionID() string {
	globalsMu.RLock()
	defer globalsMu.RUnlock()
	return sessionID
}

// IntegrationName returns the host integration name.
func IntegrationName() string {
	globalsMu.RLock()
	defer globalsMu.RUnlock()
	return integrationName
}

// IntegrationVersion returns the host integration version.
func IntegrationVersion() string {
	globalsMu.RLock()
	defer globalsMu.RUnlock()
	return integrationVersion
}
