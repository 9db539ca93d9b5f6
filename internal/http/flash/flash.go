// Package flash signs one-shot notification cookies.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"medisupply.com/portal/pkg/view"
)

var ErrInvalid = errors.New("invalid flash cookie")

const defaultTTL = 2 * time.Minute

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
	TTL        time.Duration
}

func NewCodec(secret []byte, cookieName string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: cookieName, Secure: secure, TTL: defaultTTL}
}

// Encode returns base64(json).base64(hmac).
func (c *Codec) Encode(f view.Flash) (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	return payload + "." + sign(c.Secret, payload), nil
}

func (c *Codec) Decode(v string) (*view.Flash, error) {
	payload, sig, ok := strings.Cut(v, ".")
	if !ok || strings.Contains(sig, ".") {
		return nil, ErrInvalid
	}
	if !hmac.Equal([]byte(sign(c.Secret, payload)), []byte(sig)) {
		return nil, ErrInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalid
	}
	var f view.Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, ErrInvalid
	}
	if strings.TrimSpace(f.Key) == "" || len(f.Args)%2 != 0 {
		return nil, ErrInvalid
	}
	return &f, nil
}

// CookieMaxAge is long enough to survive one redirect.
func (c *Codec) CookieMaxAge() int {
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return int(ttl.Seconds())
}

func sign(secret []byte, payload string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
