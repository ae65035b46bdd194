package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/auth"
)

// ErrUnauthenticated is returned when the server rejects the credential.
var ErrUnauthenticated = errors.New("unauthenticated")

// API is the slice of the server the session store needs.
type API interface {
	Login(ctx context.Context, email, password string, remember bool) (auth.LoginResponse, error)
	Me(ctx context.Context, cred Credential) (auth.SessionResponse, error)
	Logout(ctx context.Context, cred Credential) error
}

// Client talks to the administration backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthenticated
	}
	if !env.Success {
		if env.Error != nil {
			return fmt.Errorf("server error %s: %s", env.Error.Code, env.Error.Message)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
	}
	return nil
}

// Login implements API.
func (c *Client) Login(ctx context.Context, email, password string, remember bool) (auth.LoginResponse, error) {
	req := auth.LoginRequest{Email: email, Password: password, Remember: remember}

	var out auth.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &out); err != nil {
		return auth.LoginResponse{}, err
	}
	return out, nil
}

// Me implements API.
func (c *Client) Me(ctx context.Context, cred Credential) (auth.SessionResponse, error) {
	var out auth.SessionResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", cred.Token, nil, &out); err != nil {
		return auth.SessionResponse{}, err
	}
	return out, nil
}

// Logout implements API.
func (c *Client) Logout(ctx context.Context, cred Credential) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", cred.Token, nil, nil)
}
