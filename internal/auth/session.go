package auth

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("auth: session not found")

// Session is a signed-in portal session.
type Session struct {
	ID          string    `gorm:"primaryKey;type:char(36)"`
	UserID      string    `gorm:"type:varchar(64);not null;index:ix_sessions_user_id"`
	Email       string    `gorm:"type:varchar(255);not null"`
	Name        string    `gorm:"type:varchar(255);not null;default:''"`
	Role        string    `gorm:"type:varchar(16);not null"`
	AccessToken string    `gorm:"type:text;not null"`
	IDToken     string    `gorm:"type:text;not null"`
	ExpiresAt   time.Time `gorm:"type:datetime(3);not null;index:ix_sessions_expires_at"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null"`
}

func (Session) TableName() string { return "sessions" }

func (s Session) User() User {
	return User{ID: s.UserID, Email: s.Email, Name: s.Name, Role: ParseRole(s.Role)}
}

func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }

// Store persists sessions.
type Store interface {
	Create(ctx context.Context, s *Session) error
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string, now time.Time) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
