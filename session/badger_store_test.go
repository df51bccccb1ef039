package session

import (
	"context"
	"testing"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemoryBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBadgerStore(t *testing.T) {
	ctx := context.Background()
	db := openInMemoryBadger(t)
	store := NewBadgerStore(db)

	sess := &Session{
		ID:            "6f1c2a40-0000-4000-8000-000000000001",
		User:          map[string]any{"address": wallet, "role": "retailer"},
		Role:          RoleRetailer,
		WalletAddress: wallet,
		LoginTime:     time.Date(2024, 1, 22, 9, 0, 0, 0, time.UTC),
	}

	t.Run("should write every field in one unit", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sess))

		err := db.View(func(txn *badger.Txn) error {
			for _, field := range sessionFields {
				if _, err := txn.Get(sessionKey(sess.ID, field)); err != nil {
					return err
				}
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("should load what was saved", func(t *testing.T) {
		got, err := store.Load(ctx, sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess.Role, got.Role)
		assert.Equal(t, sess.WalletAddress, got.WalletAddress)
		assert.Equal(t, sess.LoginTime, got.LoginTime)
		assert.Equal(t, "retailer", got.User["role"])
	})

	t.Run("should clear every field", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx, sess.ID))

		_, err := store.Load(ctx, sess.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		err = db.View(func(txn *badger.Txn) error {
			for _, field := range sessionFields {
				_, err := txn.Get(sessionKey(sess.ID, field))
				assert.ErrorIs(t, err, badger.ErrKeyNotFound)
			}
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("should treat a missing role as logged out", func(t *testing.T) {
		err := db.Update(func(txn *badger.Txn) error {
			return txn.Set(sessionKey("partial", fieldUser), []byte(`{}`))
		})
		require.NoError(t, err)

		_, err = store.Load(ctx, "partial")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("should honor a cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, store.Save(cancelled, sess), context.Canceled)
	})

	t.Run("should back the session service", func(t *testing.T) {
		svc := NewService(store, cmtlog.NewNopLogger())
		created, err := svc.Login(ctx, nil, "consumer", wallet)
		require.NoError(t, err)

		restored, err := NewService(store, cmtlog.NewNopLogger()).Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, RoleConsumer, restored.Role)
	})
}
