package introspect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"sow-breeding-records/internal/ports/auth"
)

var (
	ErrTokenEmpty = errors.New("token is empty")
	ErrMissingSub = errors.New("introspection response missing sub")
)

const (
	DefaultCacheTTL = 30 * time.Second
	maxCached       = 1024
)

type cachedToken struct {
	claims auth.Claims
	until  time.Time
}

// Verifier implementa auth.AuthVerifier sobre el endpoint de introspección.
// Los tokens activos se recuerdan hasta CacheTTL o hasta su exp, lo que llegue antes;
// los inactivos nunca se guardan.
type Verifier struct {
	client *Client
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]cachedToken // clave: sha256 del token
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{
		client: client,
		ttl:    DefaultCacheTTL,
		now:    time.Now,
		cache:  map[string]cachedToken{},
	}
}

// WithCacheTTL cambia la vida de la caché; <= 0 la desactiva.
func (v *Verifier) WithCacheTTL(ttl time.Duration) *Verifier {
	v.ttl = ttl
	return v
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || !v.client.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	key := tokenKey(token)
	now := v.now()
	if claims, ok := v.cached(key, now); ok {
		return claims, nil
	}

	res, err := v.client.Introspect(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("verify token: %w", err)
	}
	// active=true con exp vencido: el proveedor va por detrás del reloj.
	if !res.ExpiresAt.IsZero() && !now.Before(res.ExpiresAt) {
		return auth.Claims{}, fmt.Errorf("verify token: %w", ErrUnauthorized)
	}
	if res.Claims.UserID == "" {
		return auth.Claims{}, ErrMissingSub
	}

	v.remember(key, res, now)
	return res.Claims, nil
}

func (v *Verifier) cached(key string, now time.Time) (auth.Claims, bool) {
	if v.ttl <= 0 {
		return auth.Claims{}, false
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.cache[key]
	if !ok {
		return auth.Claims{}, false
	}
	if !now.Before(entry.until) {
		delete(v.cache, key)
		return auth.Claims{}, false
	}
	return entry.claims, true
}

func (v *Verifier) remember(key string, res Introspection, now time.Time) {
	if v.ttl <= 0 {
		return
	}
	until := now.Add(v.ttl)
	if !res.ExpiresAt.IsZero() && res.ExpiresAt.Before(until) {
		until = res.ExpiresAt
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.cache) >= maxCached {
		for k, e := range v.cache {
			if !now.Before(e.until) {
				delete(v.cache, k)
			}
		}
		if len(v.cache) >= maxCached {
			v.cache = map[string]cachedToken{}
		}
	}
	v.cache[key] = cachedToken{claims: res.Claims, until: until}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
