// Package api is the HTTP client for the authd server. It mirrors the wire
// contract: JSON bodies in, JSON bodies out, with the server's reason string
// surfaced in errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")
)

// ReasonError carries the status code and reason string returned by the
// server for a failed request.
type ReasonError struct {
	Status int
	Reason string
}

func (e *ReasonError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Reason)
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsPublic bool   `json:"isPublic"`
	Phone    string `json:"phone,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Profile is the server's echo of a created account.
type Profile struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	IsPublic bool   `json:"isPublic"`
	Phone    string `json:"phone"`
	Image    string `json:"image"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Ping checks server liveness.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Register creates a new account and returns the echoed profile.
func (c *Client) Register(ctx context.Context, r RegisterRequest) (*Profile, error) {
	var out struct {
		Profile Profile `json:"profile"`
	}
	if err := c.postJSON(ctx, "/auth/register", r, "", http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// SignIn exchanges credentials for a bearer token.
func (c *Client) SignIn(ctx context.Context, login, password string) (string, error) {
	body := map[string]string{"login": login, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.postJSON(ctx, "/auth/sign-in", body, "", http.StatusOK, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// SignOut invalidates every session of the token's account.
func (c *Client) SignOut(ctx context.Context, token string) error {
	var out struct {
		Status string `json:"status"`
	}
	return c.postJSON(ctx, "/auth/sign-out", struct{}{}, token, http.StatusOK, &out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, token string, wantStatus int, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var e struct {
			Reason string `json:"reason"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &ReasonError{Status: resp.StatusCode, Reason: e.Reason}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
