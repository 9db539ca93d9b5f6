package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type localUser struct {
	user User
	hash []byte
}

// LocalProvider authenticates against bcrypt hashes held in memory. It is
// meant for development and tests.
type LocalProvider struct {
	mu     sync.RWMutex
	users  map[string]localUser
	secret []byte
	ttl    time.Duration
}

func NewLocalProvider(secret []byte, ttl time.Duration) *LocalProvider {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &LocalProvider{users: make(map[string]localUser), secret: secret, ttl: ttl}
}

// ParseLocalUsers reads "email:role:bcrypt-hash" entries separated by ";".
func ParseLocalUsers(p *LocalProvider, spec string) error {
	for _, entry := range strings.Split(spec, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return fmt.Errorf("auth: LOCAL_USERS entry %q: want email:role:hash", entry)
		}
		role := ParseRole(parts[1])
		if role == "" {
			return fmt.Errorf("auth: LOCAL_USERS entry %q: unknown role %q", parts[0], parts[1])
		}
		p.AddHashed(parts[0], role, []byte(parts[2]))
	}
	return nil
}

// AddHashed registers a user with an existing bcrypt hash.
func (p *LocalProvider) AddHashed(email string, role Role, hash []byte) {
	email = normalizeEmail(email)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[email] = localUser{
		user: User{ID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String(), Email: email, Role: role},
		hash: hash,
	}
}

// Add hashes password and registers the user.
func (p *LocalProvider) Add(email string, role Role, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.AddHashed(email, role, hash)
	return nil
}

func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (Tokens, error) {
	p.mu.RLock()
	lu, ok := p.users[normalizeEmail(email)]
	p.mu.RUnlock()
	if !ok {
		// same bcrypt cost as a wrong password
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3SVBFOBFqYCEWgM0FCKx7ZS"), []byte(password))
		return Tokens{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(lu.hash, []byte(password)); err != nil {
		return Tokens{}, ErrInvalidCredentials
	}

	idToken, err := SignIDToken(lu.user, time.Now().Add(p.ttl), p.secret)
	if err != nil {
		return Tokens{}, fmt.Errorf("auth: sign id token: %w", err)
	}
	return Tokens{
		AccessToken: uuid.NewString(),
		IDToken:     idToken,
		ExpiresIn:   int32(p.ttl / time.Second),
	}, nil
}

func (p *LocalProvider) SignOut(context.Context, string) error { return nil }

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
