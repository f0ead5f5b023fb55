package store

import (
	"context"
	"fmt"

	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
	"github.com/oyaguma3/prepaid-acct-server/pkg/valkey"
)

type clientStore struct {
	vc *ValkeyClient
}

// NewClientStore は新しいClientStoreを生成する。
func NewClientStore(vc *ValkeyClient) ClientStore {
	return &clientStore{vc: vc}
}

// GetClientSecret はNASのIPアドレスに対応するShared Secretを返す。
// RADIUS受信とDisconnect-Request送信の両方が参照する。未登録の場合は空文字列とnilを返す。
func (s *clientStore) GetClientSecret(ctx context.Context, ip string) (string, error) {
	key := ClientKey(ip)
	secret, err := s.vc.Client().HGet(ctx, key, clientFieldSecret).Result()
	switch {
	case err == nil:
		return secret, nil
	case valkey.IsKeyNotFound(err):
		return "", nil
	default:
		return "", fmt.Errorf("%w: %w", ErrValkeyUnavailable, apperr.NewValkeyError("HGET", key, err))
	}
}
