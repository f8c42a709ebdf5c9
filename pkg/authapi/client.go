package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal client for the keyfold service. It covers the public
// auth endpoints plus the token-protected routes, and is what the e2e tests
// drive the service with.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account and returns the issued token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := c.postJSON(ctx, "/api/v1/auth/register", req, http.StatusCreated, &resp)
	return resp, err
}

// Authenticate exchanges credentials for a token.
func (c *Client) Authenticate(ctx context.Context, req AuthenticateRequest) (AuthResponse, error) {
	var resp AuthResponse
	err := c.postJSON(ctx, "/api/v1/auth/authenticate", req, http.StatusOK, &resp)
	return resp, err
}

// Me returns the profile of the token's owner.
func (c *Client) Me(ctx context.Context, token string) (UserResponse, error) {
	var resp UserResponse
	err := c.getJSON(ctx, "/api/v1/users/me", token, &resp)
	return resp, err
}

// Hello calls the protected demo endpoint and returns its plain-text body.
func (c *Client) Hello(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/v1/demo/hello", nil)
	if err != nil {
		return "", err
	}
	setBearer(req, token)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", responseError(res.StatusCode, body)
	}
	return string(body), nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, wantStatus int, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != wantStatus {
		return responseError(res.StatusCode, raw)
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}
	setBearer(req, token)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return responseError(res.StatusCode, raw)
	}
	return json.Unmarshal(raw, out)
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// responseError decodes an error body into an APIError when possible and
// falls back to a generic error carrying the status code.
func responseError(status int, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = status
		return &apiErr
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Code != "" {
		return &APIError{
			StatusCode:  status,
			Code:        valErr.Code,
			Description: valErr.Message,
		}
	}

	return fmt.Errorf("authapi: unexpected status %d", status)
}
