package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal wardrobe server: one hardcoded account, one token.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Name, Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "name": in.Name, "email": in.Email})
	})
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Email != "alice@x.com" || in.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"id": 7, "name": "Alice", "email": in.Email},
			"token": map[string]any{"token": "tok-abc", "expires": "2030-01-01T00:00:00Z"},
		})
	})
	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-abc" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}
			next(w, r)
		}
	}
	mux.HandleFunc("GET /v1/me", authed(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": 7})
	}))
	mux.HandleFunc("GET /v1/items", authed(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{
			{"id": 1, "name": "Blue Oxford", "category": "SHIRT", "color": "blue"},
		}})
	}))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginFlow(t *testing.T) {
	srv := fakeAPI(t)
	store := NewMemoryTokenStore()
	c, err := New(srv.URL, store)
	require.NoError(t, err)
	assert.False(t, c.Authenticated(), "fresh client must not claim a session")

	// Wrong password first: generic failure, state untouched.
	_, err = c.Login(context.Background(), "alice@x.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.Authenticated())
	if tok, _ := store.Load(); tok != "" {
		t.Errorf("failed login must not persist a token, got %q", tok)
	}

	u, err := c.Login(context.Background(), "alice@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), u.ID)
	assert.True(t, c.Authenticated())
	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)

	// The transport attaches the token on later calls.
	uid, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)

	items, err := c.ListItems(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Blue Oxford", items[0].Name)
}

func TestClient_BootWithPersistedToken(t *testing.T) {
	srv := fakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-abc"))

	// A new client sees the persisted token at construction, just like the
	// web client inspecting local storage at startup.
	c, err := New(srv.URL, store)
	require.NoError(t, err)
	assert.True(t, c.Authenticated())

	uid, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)
}

func TestClient_StaleTokenDropsAdvisoryFlag(t *testing.T) {
	srv := fakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-stale"))

	c, err := New(srv.URL, store)
	require.NoError(t, err)
	assert.True(t, c.Authenticated(), "advisory flag trusts the local token at boot")

	// The server is authoritative and rejects the stale token; the flag
	// follows.
	_, err = c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, c.Authenticated())
}

func TestClient_Logout(t *testing.T) {
	srv := fakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("tok-abc"))
	c, err := New(srv.URL, store)
	require.NoError(t, err)
	require.True(t, c.Authenticated())

	require.NoError(t, c.Logout())
	assert.False(t, c.Authenticated())
	tok, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	// And the session really is gone for later calls.
	_, err = c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_RegisterDoesNotLogIn(t *testing.T) {
	srv := fakeAPI(t)
	c, err := New(srv.URL, NewMemoryTokenStore())
	require.NoError(t, err)

	u, err := c.Register(context.Background(), "Alice", "alice@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.False(t, c.Authenticated(), "registration must not create a session")
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	store := &FileTokenStore{Path: t.TempDir() + "/nested/token"}

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok, "missing file reads as no token")

	require.NoError(t, store.Save("tok-abc"))
	tok, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)

	require.NoError(t, store.Clear())
	tok, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
