// Package client is the Go API client for the wardrobe service. It mirrors
// what the browser client does: it keeps the access token in persistent
// storage, attaches it to every request through a transport interceptor,
// and maintains an advisory "am I logged in" flag. The flag only reflects
// whether a token is present locally; the server-side verifier remains the
// authority on whether that token is actually honored.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrUnauthorized is returned when the server rejects the call with 401,
// whatever the underlying cause. The client also drops its advisory
// authenticated flag when this happens.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries a non-2xx response's status and error message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// User is the account summary returned by register and login.
type User struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Item mirrors the server's clothing item representation.
type Item struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	Brand     string    `json:"brand,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemInput is the payload for creating or updating an item.
type ItemInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Brand    string `json:"brand,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Client talks to the wardrobe API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	mu     sync.Mutex
	token  string
	authed bool
}

// New builds a Client against baseURL. The persisted token, if any, is
// loaded immediately so Authenticated() is meaningful from the start, the
// way the web client inspects local storage at boot.
func New(baseURL string, store TokenStore) (*Client, error) {
	if store == nil {
		store = DefaultTokenStore()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
	}
	c.http = &http.Client{
		Timeout:   15 * time.Second,
		Transport: &authTransport{client: c, base: http.DefaultTransport},
	}
	token, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	c.token = token
	c.authed = token != ""
	return c, nil
}

// authTransport injects the Authorization header into every outgoing
// request, the transport-level equivalent of the browser client's request
// interceptor.
type authTransport struct {
	client *Client
	base   http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.client.currentToken(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}

// Authenticated reports the advisory client-side auth state: true only
// after a token has been confirmed present locally. It says nothing about
// whether the server still accepts that token.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authed
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Register creates an account. It does not log the new user in; call
// Login afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/v1/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, &out)
	return out, err
}

// Login exchanges credentials for an access token. The token is persisted
// first and the authenticated flag flipped only once persistence
// succeeded, so the flag never claims a session the store does not hold.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out struct {
		User  User `json:"user"`
		Token struct {
			Token   string    `json:"token"`
			Expires time.Time `json:"expires"`
		} `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/v1/auth/login",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return User{}, err
	}
	if out.Token.Token == "" {
		return User{}, errors.New("login succeeded but no token returned")
	}
	if err := c.store.Save(out.Token.Token); err != nil {
		return User{}, fmt.Errorf("save token: %w", err)
	}
	c.mu.Lock()
	c.token = out.Token.Token
	c.authed = true
	c.mu.Unlock()
	return out.User, nil
}

// Logout clears the stored token. Tokens are self-contained, so there is
// nothing to revoke server-side; discarding the artifact ends the session.
func (c *Client) Logout() error {
	c.mu.Lock()
	c.token = ""
	c.authed = false
	c.mu.Unlock()
	return c.store.Clear()
}

// Me returns the user id the server resolves from the current token.
func (c *Client) Me(ctx context.Context) (uint64, error) {
	var out struct {
		UserID uint64 `json:"user_id"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/me", nil, &out)
	return out.UserID, err
}

// CreateItem adds a clothing item to the caller's wardrobe.
func (c *Client) CreateItem(ctx context.Context, in ItemInput) (Item, error) {
	var out Item
	err := c.do(ctx, http.MethodPost, "/v1/items", in, &out)
	return out, err
}

// ListItems returns the caller's items; category may be empty for all.
func (c *Client) ListItems(ctx context.Context, category string) ([]Item, error) {
	path := "/v1/items"
	if category != "" {
		path += "?category=" + category
	}
	var out struct {
		Items []Item `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out.Items, err
}

// GetItem fetches a single owned item.
func (c *Client) GetItem(ctx context.Context, id uint64) (Item, error) {
	var out Item
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/items/%d", id), nil, &out)
	return out, err
}

// UpdateItem rewrites an owned item.
func (c *Client) UpdateItem(ctx context.Context, id uint64, in ItemInput) (Item, error) {
	var out Item
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/items/%d", id), in, &out)
	return out, err
}

// DeleteItem removes an owned item.
func (c *Client) DeleteItem(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/items/%d", id), nil, nil)
}

// do runs one JSON round trip. A 401 flips the advisory flag off and maps
// to ErrUnauthorized; other non-2xx statuses surface as *APIError with the
// server's message.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.mu.Lock()
		c.authed = false
		c.mu.Unlock()
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
