package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User of the auth backend.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client of a GoTrue-style auth backend: password grant for sign in,
// token introspection for resolving the current user.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient ...
func NewClient(
	baseURL string,
	apiKey string,
	timeout time.Duration,
) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// SignIn exchanges credentials for an access token.
func (c *Client) SignIn(ctx context.Context, email, password string) (token string, user User, err error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		err = fmt.Errorf("auth backend: %s", err)
		return
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode == http.StatusBadRequest || res.StatusCode == http.StatusUnauthorized:
		err = ErrInvalidCredentials
		return
	default:
		err = fmt.Errorf("auth backend: unexpected status %d", res.StatusCode)
		return
	}

	var payload signInResponse
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		err = fmt.Errorf("auth backend: decode response: %s", err)
		return
	}
	return payload.AccessToken, payload.User, nil
}

// User resolves the user behind an access token.
func (c *Client) User(ctx context.Context, token string) (user User, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.client.Do(req)
	if err != nil {
		err = fmt.Errorf("auth backend: %s", err)
		return
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusOK:
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		err = ErrUnauthorized
		return
	default:
		err = fmt.Errorf("auth backend: unexpected status %d", res.StatusCode)
		return
	}

	if err = json.NewDecoder(res.Body).Decode(&user); err != nil {
		err = fmt.Errorf("auth backend: decode response: %s", err)
	}
	return
}
