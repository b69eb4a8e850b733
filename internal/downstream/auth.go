package downstream

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

const collaboratorAuth = "auth"

// AuthClient talks to the auth service's two probe endpoints.
type AuthClient struct {
	BaseURL string
	http    *Client
}

func NewAuthClient(baseURL string, c *Client) *AuthClient {
	return &AuthClient{BaseURL: strings.TrimRight(baseURL, "/"), http: c}
}

// PublicInfo calls the unauthenticated probe and returns its body as text.
// A JSON string body is unquoted.
func (c *AuthClient) PublicInfo(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/auth/public", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(ctx, req, Call{
		Collaborator: collaboratorAuth,
		Operation:    "public",
		Timeout:      c.http.config.ProbeTimeout,
	})
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: Truncate(resp.Body)}
	}

	var s string
	if err := json.Unmarshal(resp.Body, &s); err == nil {
		return s, nil
	}
	return strings.TrimSpace(string(resp.Body)), nil
}

// ValidateCredential calls the protected probe with the credential
// unmodified. Any 2xx answer means the credential is currently valid; the
// body is ignored. 401/403 answers match ErrUnauthorized.
func (c *AuthClient) ValidateCredential(ctx context.Context, credential string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/auth/protected", nil)
	if err != nil {
		return err
	}
	if credential != "" {
		req.Header.Set("Authorization", credential)
	}

	resp, err := c.http.Do(ctx, req, Call{
		Collaborator: collaboratorAuth,
		Operation:    "protected",
		Timeout:      c.http.config.ProbeTimeout,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &StatusError{StatusCode: resp.StatusCode, Body: Truncate(resp.Body)}
	}
	return nil
}
