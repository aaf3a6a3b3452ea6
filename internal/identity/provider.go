package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Provider exposes the one thing the auto-link resolver needs from the
// hosted identity service: the caller's verified email. An empty string
// with a nil error means the identity has no verified email; errors are
// reserved for provider/transport failures.
type Provider interface {
	VerifiedEmail(ctx context.Context, externalUserID string) (string, error)
}

// HTTPProvider talks to the hosted identity service's REST API.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type emailResponse struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

// VerifiedEmail fetches the primary email for an external identity.
// 404 and unverified emails both map to "" with no error; those are
// resolution outcomes, not failures.
func (p *HTTPProvider) VerifiedEmail(ctx context.Context, externalUserID string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/users/%s/email", p.baseURL, url.PathEscape(externalUserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", nil
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var body emailResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode identity response: %w", err)
	}
	if !body.Verified {
		return "", nil
	}
	return body.Email, nil
}
