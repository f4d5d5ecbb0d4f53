package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/radeva/paypal-messages-go/pkg/environment"
)

func TestDoSetsStandardHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// The stage client tolerates the httptest self-signed certificate.
	env := environment.Stage("test.qa.paypal.com")

	data, resp, err := Do(context.Background(), env, http.MethodGet, srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if string(data) != `{}` {
		t.Errorf("body = %q", data)
	}

	if got.Get("Accept-Language") != "en_US" {
		t.Errorf("Accept-Language = %q", got.Get("Accept-Language"))
	}
	if got.Get("X-Requested-By") != "native-checkout-sdk" {
		t.Errorf("X-Requested-By = %q", got.Get("X-Requested-By"))
	}
	if got.Get("Accept") != "application/json" {
		t.Errorf("Accept = %q", got.Get("Accept"))
	}
}

func TestDoExtraHeadersOverride(t *testing.T) {
	var got http.Header
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	extra := map[string]string{"Content-Type": ContentTypeCloudEvents}
	_, _, err := Do(context.Background(), environment.Stage("test.qa.paypal.com"), http.MethodPost, srv.URL, extra, []byte(`{}`))
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got.Get("Content-Type") != ContentTypeCloudEvents {
		t.Errorf("Content-Type = %q", got.Get("Content-Type"))
	}
}

func TestDebugID(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("paypal-debug-id", "abc123")
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, resp, err := Do(context.Background(), environment.Stage("test.qa.paypal.com"), http.MethodGet, srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if id := DebugID(resp); id != "abc123" {
		t.Errorf("DebugID() = %q, want %q", id, "abc123")
	}
	if DebugID(nil) != "" {
		t.Error("DebugID(nil) should be empty")
	}
}
