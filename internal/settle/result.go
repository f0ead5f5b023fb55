package settle

import "github.com/oyaguma3/prepaid-acct-server/internal/balance"

// Result は1回の精算結果を表す。
type Result struct {
	Success          bool
	Err              string           // Success=false の場合の理由
	NewQuota         int64            // 課金後の残量
	BucketID         string           // 選択されたバケット
	PreviousBucketID string           // 精算前にセッションが使用していたバケット
	Balance          *balance.Balance // 課金後のBalanceの複製。課金対象が見つからない場合はnil
	Delta            int64            // 今回の課金量
	Disconnect       bool
}

// Switched はバケット切替が発生したかどうかを返す。
func (r *Result) Switched() bool {
	return r.Success && r.BucketID != r.PreviousBucketID
}

// ChargedBucketID は実際に課金したバケットIDを返す。
func (r *Result) ChargedBucketID() string {
	if r.Balance == nil {
		return ""
	}
	return r.Balance.BucketID
}

// ChargedGroup は課金したBalanceがuserName以外の所有（グループ継承）かどうかを返す。
func (r *Result) ChargedGroup(userName string) bool {
	return r.Balance != nil && !r.Balance.IsOwnedBy(userName)
}
