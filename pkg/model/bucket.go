// Package model は永続化層・外部連携と共有するデータモデルを提供する。
package model

import "time"

// バケット状態
const (
	BucketStatusActive   = "ACTIVE"
	BucketStatusInactive = "INACTIVE"
)

// Bucket はバケットテーブルの1レコードを表す。
// 加入者の初回アクセス時にリポジトリから読み込まれ、Balanceに変換される。
type Bucket struct {
	BucketID               string     `json:"bucket_id"`                          // バケットID
	ServiceID              string     `json:"service_id"`                         // サービスID
	Rule                   string     `json:"rule"`                               // 課金ルール
	Priority               int64      `json:"priority"`                           // 優先度（小さいほど優先）
	InitialBalance         int64      `json:"initial_balance"`                    // 初期割当量（octets）
	CurrentBalance         int64      `json:"current_balance"`                    // 残量（octets）
	Usage                  int64      `json:"usage"`                              // 使用量（octets）
	Status                 string     `json:"status"`                             // ACTIVE / INACTIVE
	ServiceStartDate       time.Time  `json:"service_start_date"`                 // サービス開始日時
	ExpiryDate             *time.Time `json:"expiry_date,omitempty"`              // サービス失効日時
	PlanID                 string     `json:"plan_id"`                            // プランID
	TimeWindow             string     `json:"time_window"`                        // 利用可能時間帯
	ConsumptionLimit       *int64     `json:"consumption_limit,omitempty"`        // 期間内消費上限（octets）
	ConsumptionLimitWindow *int64     `json:"consumption_limit_window,omitempty"` // 消費上限の集計期間（時間）
	BucketUser             string     `json:"bucket_user"`                        // バケット所有者（グループの場合はグループID）
	SessionTimeout         *int64     `json:"session_timeout,omitempty"`          // セッションタイムアウト（秒）
}

// IsGroupBucket は指定ユーザー以外が所有するバケットかどうかを返す。
func (b *Bucket) IsGroupBucket(userName string) bool {
	return b.BucketUser != "" && b.BucketUser != userName
}

// TotalCurrentBalance はバケット群の残量合計を返す。
func TotalCurrentBalance(buckets []Bucket) int64 {
	var total int64
	for i := range buckets {
		total += buckets[i].CurrentBalance
	}
	return total
}
