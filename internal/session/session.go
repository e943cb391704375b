// Package session provides the Valkey-backed admin session flag. A session
// is a Valkey hash holding a single "is_admin" field, addressed by a
// browser-session cookie: the cookie carries no Max-Age, so the flag is
// forgotten when the browsing session ends. The server-side TTL only bounds
// how long an abandoned session lingers in Valkey.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "db3d_session"

	// DefaultTTL is how long an idle session lives in Valkey.
	DefaultTTL = 12 * time.Hour

	// FieldIsAdmin is the hash field that carries the elevated flag.
	FieldIsAdmin = "is_admin"

	// keyPrefix namespaces session keys in Valkey to avoid collisions.
	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Data is the session payload.
type Data struct {
	IsAdmin bool
}

// Store manages session lifecycle in Valkey.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore creates a session store backed by the given Valkey client.
// secure marks the cookie HTTPS-only.
func NewStore(client *redis.Client, ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
		secure: secure,
	}
}

// Create stores a new session and sets the session cookie on the response.
// Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	key := keyPrefix + id
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, FieldIsAdmin, flagValue(data.IsAdmin))
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return id, nil
}

// Get retrieves session data for the request's cookie. Returns nil if no
// valid session exists. Reading a session extends its TTL.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil // No cookie = no session (not an error)
	}

	key := keyPrefix + cookie.Value
	flag, err := s.client.HGet(ctx, key, FieldIsAdmin).Result()
	if err == redis.Nil {
		return nil, nil // Session expired or doesn't exist
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	s.client.Expire(ctx, key, s.ttl)

	return &Data{IsAdmin: flag == "true"}, nil
}

// Destroy removes the session from Valkey and clears the cookie.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	// Expire the cookie regardless of what Valkey says.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		MaxAge:   -1,
	})

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil // No cookie, nothing to destroy
	}

	if err := s.client.Del(ctx, keyPrefix+cookie.Value).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

// flagValue encodes the elevated flag. Absent means normal.
func flagValue(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
