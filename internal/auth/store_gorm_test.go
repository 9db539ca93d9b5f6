package auth

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDiscardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewGormStore(gdb), mock
}

func TestGormStoreCreate(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `sessions`")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.Create(context.Background(), &Session{ID: "s1", UserID: "u1", Role: "admin", ExpiresAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGet(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "user_id", "email", "role", "access_token", "id_token", "expires_at"}).
		AddRow("s1", "u1", "ana@x.co", "vendor", "acc", "idt", now.Add(time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `sessions` WHERE id = ? AND expires_at > ?")).
		WillReturnRows(rows)

	sess, err := store.Get(context.Background(), "s1", now)
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, sess.User().Role)
	assert.Equal(t, "acc", sess.AccessToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetMissing(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `sessions`")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Get(context.Background(), "nope", time.Now())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGormStoreDeleteExpired(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `sessions` WHERE expires_at <= ?")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreDelete(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `sessions` WHERE id = ?")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
