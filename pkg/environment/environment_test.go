package environment

import (
	"strings"
	"testing"
)

func TestRawValues(t *testing.T) {
	cases := []struct {
		env  Environment
		want string
	}{
		{Live(), "production"},
		{Sandbox(), "sandbox"},
		{Stage("msmaster.qa.paypal.com"), "stage"},
		{Local(""), "local"},
	}
	for _, c := range cases {
		if got := c.env.RawValue(); got != c.want {
			t.Errorf("RawValue() = %q, want %q", got, c.want)
		}
	}
}

func TestMessageURLHosts(t *testing.T) {
	u, err := Sandbox().URL(EndpointMessage, map[string]string{"client_id": "abc"})
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	want := "https://www.sandbox.paypal.com/credit-presentment/native/message?client_id=abc"
	if u != want {
		t.Errorf("URL() = %q, want %q", u, want)
	}

	u, err = Live().URL(EndpointModal, nil)
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	if u != "https://www.paypal.com/credit-presentment/lander/modal" {
		t.Errorf("URL() = %q", u)
	}
}

func TestLogURLUsesAPIHost(t *testing.T) {
	u, err := Live().URL(EndpointLog, nil)
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	if !strings.HasPrefix(u, "https://api.paypal.com/") {
		t.Errorf("log URL = %q, want api host", u)
	}

	// Local mode has no api subdomain; the log endpoint shares the base host.
	u, err = Local("8443").URL(EndpointLog, nil)
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	if !strings.HasPrefix(u, "https://localhost.paypal.com:8443/") {
		t.Errorf("local log URL = %q", u)
	}
}

func TestURLOmitsEmptyAndFalseParams(t *testing.T) {
	u, err := Sandbox().URL(EndpointMessage, map[string]string{
		"client_id":    "abc",
		"merchant_id":  "",
		"ignore_cache": "false",
		"amount":       "0",
		"dev":          "FALSE",
	})
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	if strings.Contains(u, "merchant_id") || strings.Contains(u, "ignore_cache") || strings.Contains(u, "dev=") {
		t.Errorf("URL kept elided params: %q", u)
	}
	if !strings.Contains(u, "amount=0") {
		t.Errorf("URL dropped a non-elidable param: %q", u)
	}
}

func TestInvalidStageHost(t *testing.T) {
	if _, err := Stage("").URL(EndpointMessage, nil); err == nil {
		t.Fatal("expected error for empty stage host")
	}
	if _, err := Stage("bad host").URL(EndpointMessage, nil); err == nil {
		t.Fatal("expected error for malformed stage host")
	}
}

func TestHTTPClientSelection(t *testing.T) {
	if Live().HTTPClient() != productionClient {
		t.Error("live should use the production client")
	}
	if Sandbox().HTTPClient() != productionClient {
		t.Error("sandbox should use the production client")
	}
	if Stage("x.qa.paypal.com").HTTPClient() != developmentClient {
		t.Error("stage should use the development client")
	}
}
