package store

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_store.go -package=mocks

import (
	"context"

	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
)

// ClientStore はRADIUSクライアントデータへのアクセスを定義する
type ClientStore interface {
	// GetClientSecret は指定されたIPのShared Secretを取得する
	// 未登録の場合は空文字列とnilを返す
	GetClientSecret(ctx context.Context, ip string) (string, error)
}

// StopMarkerStore はStop済みセッションのマーカー操作を定義する
type StopMarkerStore interface {
	// IsStopped はStop済みとしてマークされているかを返す
	IsStopped(ctx context.Context, acctSessionID string) (bool, error)
	// MarkStopped はStop済みとしてマークする
	MarkStopped(ctx context.Context, acctSessionID string) error
	// Clear はマーカーを削除する
	Clear(ctx context.Context, acctSessionID string) error
}

// Mutator は読み込んだ最新状態に変更を適用し、書き込む状態を返す。
// stateは未登録の場合nil。nilを返した場合は書き込みを行わない。
// バージョン競合時は再読込した状態で再度呼び出されるため、外部への副作用を持たせない。
type Mutator func(state *session.State) (*session.State, error)

// StateStore は加入者状態の楽観ロック付き読み書きを定義する
type StateStore interface {
	// Read は加入者状態を取得する。未登録の場合はnil, nilを返す
	Read(ctx context.Context, userName string) (*session.State, error)
	// WriteWithRetry はバージョンを更新して状態を書き込む
	WriteWithRetry(ctx context.Context, userName string, state *session.State) error
	// Update は読み込み・変更・書き込みを競合解消まで繰り返す
	Update(ctx context.Context, userName string, mutate Mutator) (*session.State, error)
	// GroupBalances はグループ状態に格納されたBalanceの複製を返す
	GroupBalances(ctx context.Context, groupID string) ([]balance.Balance, error)
}
