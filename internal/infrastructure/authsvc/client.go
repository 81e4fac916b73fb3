// Package authsvc is the HTTP client for a remote credential-verification
// service. Wired as the login verifier when AUTH_MODE=remote; deployments
// without the service use the local bcrypt verifier instead.
package authsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/seshu362/kristalball-backend/internal/application/auth"
	"github.com/seshu362/kristalball-backend/internal/domain"
)

var _ auth.CredentialVerifier = (*Client)(nil)

// Client verifies credentials against the remote auth service.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient builds the verifier for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    resty.New().SetTimeout(timeout),
	}
}

type verifyRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Verify implements auth.CredentialVerifier. A 401/403 from the service maps
// to ErrInvalidCredentials; anything else non-200 is a transport error.
func (c *Client) Verify(ctx context.Context, username, password string) (*auth.Profile, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(verifyRequest{Username: username, Password: password}).
		Post(c.baseURL + "/api/verify")
	if err != nil {
		return nil, fmt.Errorf("authsvc: verify request: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		var out verifyResponse
		if err := json.Unmarshal(resp.Body(), &out); err != nil {
			return nil, fmt.Errorf("authsvc: decode response: %w", err)
		}
		return &auth.Profile{UserID: out.UserID, FullName: out.FullName, Role: out.Role}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, domain.ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("authsvc: verify status: %d", resp.StatusCode())
	}
}
