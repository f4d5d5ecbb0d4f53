// pkg/environment/environment.go
// Package environment maps a logical execution environment to the concrete
// base URLs of the credit-presentment endpoints. The message, modal and
// merchant-profile endpoints live on the consumer host while the event log
// endpoint lives on the API host.
package environment

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// kind enumerates the supported execution environments.
type kind int

const (
	kindLive kind = iota
	kindSandbox
	kindStage
	kindLocal
)

// Environment identifies the execution environment a message surface talks
// to. The zero value is the live environment. Stage and local environments
// carry their host and port respectively.
type Environment struct {
	kind      kind
	stageHost string
	localPort string
}

// Live returns the production environment.
func Live() Environment { return Environment{kind: kindLive} }

// Sandbox returns the sandbox environment.
func Sandbox() Environment { return Environment{kind: kindSandbox} }

// Stage returns a staging environment rooted at the given host
// (e.g. "msmaster.qa.paypal.com").
func Stage(host string) Environment {
	return Environment{kind: kindStage, stageHost: host}
}

// Local returns a developer environment served from localhost on the given
// port. An empty port defaults to 8443.
func Local(port string) Environment {
	if port == "" {
		port = "8443"
	}
	return Environment{kind: kindLocal, localPort: port}
}

// RawValue returns the wire name of the environment as understood by the
// upstream services ("production", "sandbox", "stage", "local").
func (e Environment) RawValue() string {
	switch e.kind {
	case kindSandbox:
		return "sandbox"
	case kindStage:
		return "stage"
	case kindLocal:
		return "local"
	default:
		return "production"
	}
}

// IsProduction reports whether the environment talks to production-grade
// hosts. Sandbox counts as production for transport purposes.
func (e Environment) IsProduction() bool {
	return e.kind == kindLive || e.kind == kindSandbox
}

// Endpoint identifies one of the upstream services the SDK talks to.
type Endpoint int

const (
	// EndpointMessage serves message content.
	EndpointMessage Endpoint = iota
	// EndpointModal serves the modal lander loaded into the web surface.
	EndpointModal
	// EndpointMerchantProfile serves the merchant profile hash.
	EndpointMerchantProfile
	// EndpointLog receives telemetry envelopes.
	EndpointLog
)

func (p Endpoint) path() string {
	switch p {
	case EndpointModal:
		return "/credit-presentment/lander/modal"
	case EndpointMerchantProfile:
		return "/credit-presentment/merchant-profile"
	case EndpointLog:
		return "/v1/credit/upstream-messaging-events"
	default:
		return "/credit-presentment/native/message"
	}
}

func (e Environment) baseHost() string {
	switch e.kind {
	case kindLocal:
		return "localhost.paypal.com:" + e.localPort
	case kindStage:
		return "www." + e.stageHost
	case kindSandbox:
		return "www.sandbox.paypal.com"
	default:
		return "www.paypal.com"
	}
}

// The event log endpoint lives on the api subdomain except in local mode.
func (e Environment) logHost() string {
	switch e.kind {
	case kindStage:
		return "api." + e.stageHost
	case kindSandbox:
		return "api.sandbox.paypal.com"
	case kindLive:
		return "api.paypal.com"
	default:
		return e.baseHost()
	}
}

// URL builds the full URL for an endpoint with the given query parameters.
// Parameters whose value is empty or the literal "false" (case-insensitive)
// are omitted entirely; the upstream treats absence as the default.
func (e Environment) URL(endpoint Endpoint, query map[string]string) (string, error) {
	host := e.baseHost()
	if endpoint == EndpointLog {
		host = e.logHost()
	}
	if strings.Contains(host, " ") || host == "www." {
		return "", fmt.Errorf("invalid environment host %q", host)
	}

	u := url.URL{
		Scheme: "https",
		Host:   host,
		Path:   endpoint.path(),
	}

	q := u.Query()
	for key, value := range query {
		if value == "" || strings.EqualFold(value, "false") {
			continue
		}
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

var (
	productionClient = &http.Client{Timeout: 30 * time.Second}

	// Stage and local hosts terminate TLS with self-signed certificates, so
	// the development transport skips verification. Never used for live or
	// sandbox traffic.
	developmentClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
)

// HTTPClient returns the shared HTTP client appropriate for the environment.
func (e Environment) HTTPClient() *http.Client {
	if e.IsProduction() {
		return productionClient
	}
	return developmentClient
}
