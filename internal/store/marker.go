package store

import (
	"context"
	"fmt"

	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
	"github.com/oyaguma3/prepaid-acct-server/pkg/valkey"
)

// stopMarkerValue はStop済みマーカーの値
const stopMarkerValue = "stop"

// stopMarkerStore はStopMarkerStoreインターフェースの実装。
type stopMarkerStore struct {
	vc  *ValkeyClient
}

// NewStopMarkerStore は新しいStopMarkerStoreを生成する。
func NewStopMarkerStore(vc *ValkeyClient) StopMarkerStore {
	return &stopMarkerStore{vc: vc}
}

// IsStopped は指定されたAcct-Session-IDがStop済みかどうかを返す。
func (m *stopMarkerStore) IsStopped(ctx context.Context, acctSessionID string) (bool, error) {
	key := KeyPrefixAcctSeen + acctSessionID
	val, err := m.vc.Client().Get(ctx, key).Result()
	if err != nil {
		if valkey.IsKeyNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrValkeyUnavailable, apperr.NewValkeyError("GET", key, err))
	}
	return val == stopMarkerValue, nil
}

// MarkStopped は指定されたAcct-Session-IDをStop済みとして記録する。
func (m *stopMarkerStore) MarkStopped(ctx context.Context, acctSessionID string) error {
	key := KeyPrefixAcctSeen + acctSessionID
	if err := m.vc.Client().Set(ctx, key, stopMarkerValue, config.DuplicateDetectTTL).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrValkeyUnavailable, apperr.NewValkeyError("SET", key, err))
	}
	return nil
}

// Clear はStop済みマーカーを削除する。
func (m *stopMarkerStore) Clear(ctx context.Context, acctSessionID string) error {
	key := KeyPrefixAcctSeen + acctSessionID
	if err := m.vc.Client().Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrValkeyUnavailable, apperr.NewValkeyError("DEL", key, err))
	}
	return nil
}
