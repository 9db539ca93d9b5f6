package auth

import (
	"context"
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrChallengeRequired  = errors.New("auth: additional challenge required")
)

// Tokens are the credentials returned by a successful sign-in.
type Tokens struct {
	AccessToken string
	IDToken     string
	ExpiresIn   int32
}

// Provider authenticates users against an identity service.
type Provider interface {
	Authenticate(ctx context.Context, email, password string) (Tokens, error)
	SignOut(ctx context.Context, accessToken string) error
}
