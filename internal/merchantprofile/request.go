// internal/merchantprofile/request.go
package merchantprofile

import (
	"context"
	"fmt"
	"net/http"

	"github.com/radeva/paypal-messages-go/internal/fetch"
	"github.com/radeva/paypal-messages-go/pkg/environment"
)

// Requester fetches a fresh profile blob from the merchant-profile endpoint.
type Requester interface {
	Fetch(ctx context.Context, env environment.Environment, clientID, merchantID string) ([]byte, error)
}

// HTTPRequester is the production Requester.
type HTTPRequester struct{}

func (HTTPRequester) Fetch(ctx context.Context, env environment.Environment, clientID, merchantID string) ([]byte, error) {
	rawURL, err := env.URL(environment.EndpointMerchantProfile, map[string]string{
		"client_id":   clientID,
		"merchant_id": merchantID,
	})
	if err != nil {
		return nil, err
	}

	data, resp, err := fetch.Do(ctx, env, http.MethodGet, rawURL, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("merchant profile fetch failed: status %d debug_id %q", resp.StatusCode, fetch.DebugID(resp))
	}
	return data, nil
}
