package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// GormStore keeps sessions in the MySQL sessions table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (g *GormStore) Create(ctx context.Context, s *Session) error {
	return g.db.WithContext(ctx).Create(s).Error
}

func (g *GormStore) Get(ctx context.Context, id string, now time.Time) (*Session, error) {
	var s Session
	err := g.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, now).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Delete(&Session{}, "id = ?", id).Error
}

func (g *GormStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := g.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}
