package settle

import (
	"context"

	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
)

// GroupSource はグループが保有するBalanceの取得を定義する
type GroupSource interface {
	// GroupBalances はグループ状態に格納されたBalanceの複製を返す
	// グループ状態が未登録の場合はnil, nilを返す
	GroupBalances(ctx context.Context, groupID string) ([]balance.Balance, error)
}

// GroupSourceFunc は関数をGroupSourceとして扱うためのアダプタ
type GroupSourceFunc func(ctx context.Context, groupID string) ([]balance.Balance, error)

// GroupBalances はf(ctx, groupID)を呼び出す
func (f GroupSourceFunc) GroupBalances(ctx context.Context, groupID string) ([]balance.Balance, error) {
	return f(ctx, groupID)
}
