package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	fieldUser          = "user"
	fieldRole          = "role"
	fieldWalletAddress = "walletAddress"
	fieldLoginTime     = "loginTime"
)

var sessionFields = []string{fieldUser, fieldRole, fieldWalletAddress, fieldLoginTime}

// BadgerStore persists each session as four keys written and cleared in one transaction
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func sessionKey(id, field string) []byte {
	return []byte(fmt.Sprintf("session:%s:%s", id, field))
}

func (b *BadgerStore) Save(ctx context.Context, s *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	userJSON, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	loginTime, err := s.LoginTime.MarshalText()
	if err != nil {
		return fmt.Errorf("encoding login time: %w", err)
	}

	values := map[string][]byte{
		fieldUser:          userJSON,
		fieldRole:          []byte(s.Role),
		fieldWalletAddress: []byte(s.WalletAddress),
		fieldLoginTime:     loginTime,
	}

	return b.db.Update(func(txn *badger.Txn) error {
		for _, field := range sessionFields {
			if err := txn.Set(sessionKey(s.ID, field), values[field]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *BadgerStore) Load(ctx context.Context, id string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values := make(map[string][]byte, len(sessionFields))
	err := b.db.View(func(txn *badger.Txn) error {
		for _, field := range sessionFields {
			item, err := txn.Get(sessionKey(id, field))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			values[field] = value
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	// user and role must both be present for a session to count as authenticated
	if values[fieldUser] == nil || len(values[fieldRole]) == 0 {
		return nil, ErrNotFound
	}

	sess := &Session{
		ID:            id,
		Role:          Role(values[fieldRole]),
		WalletAddress: string(values[fieldWalletAddress]),
	}
	if err := json.Unmarshal(values[fieldUser], &sess.User); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	if raw := values[fieldLoginTime]; raw != nil {
		var t time.Time
		if err := t.UnmarshalText(raw); err == nil {
			sess.LoginTime = t
		}
	}
	return sess, nil
}

func (b *BadgerStore) Clear(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.db.Update(func(txn *badger.Txn) error {
		for _, field := range sessionFields {
			if err := txn.Delete(sessionKey(id, field)); err != nil {
				return err
			}
		}
		return nil
	})
}
