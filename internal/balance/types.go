// Package balance は課金対象バケット（Balance）の選択と残量計算を行う。
package balance

import (
	"strings"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

// UsageRecord は1回の課金で消費したバイト数の記録。
type UsageRecord struct {
	At    time.Time `json:"at"`
	Bytes int64     `json:"bytes"`
}

// Balance は加入者またはグループが保有する課金バケット。
type Balance struct {
	BucketID               string        `json:"bucket_id"`
	ServiceID              string        `json:"service_id"`
	OwnerUsername          string        `json:"owner_username"`
	Priority               int64         `json:"priority"`
	Quota                  int64         `json:"quota"`
	InitialBalance         int64         `json:"initial_balance"`
	ServiceStart           time.Time     `json:"service_start"`
	ServiceExpiry          *time.Time    `json:"service_expiry,omitempty"`
	Status                 string        `json:"status"`
	TimeWindow             string        `json:"time_window"`
	ConsumptionLimit       *int64        `json:"consumption_limit,omitempty"`
	ConsumptionLimitWindow int64         `json:"consumption_limit_window,omitempty"`
	PlanID                 string        `json:"plan_id,omitempty"`
	Rule                   string        `json:"rule,omitempty"`
	UsageHistory           []UsageRecord `json:"usage_history,omitempty"`
}

// FromBucket はバケットレコードからBalanceを生成する。
func FromBucket(b *model.Bucket) Balance {
	bal := Balance{
		BucketID:         b.BucketID,
		ServiceID:        b.ServiceID,
		OwnerUsername:    b.BucketUser,
		Priority:         b.Priority,
		Quota:            max(b.CurrentBalance, 0),
		InitialBalance:   b.InitialBalance,
		ServiceStart:     b.ServiceStartDate,
		Status:           b.Status,
		TimeWindow:       b.TimeWindow,
		ConsumptionLimit: b.ConsumptionLimit,
		PlanID:           b.PlanID,
		Rule:             b.Rule,
	}
	if b.ExpiryDate != nil {
		expiry := *b.ExpiryDate
		bal.ServiceExpiry = &expiry
	}
	if b.ConsumptionLimitWindow != nil {
		bal.ConsumptionLimitWindow = *b.ConsumptionLimitWindow
	}
	return bal
}

// IsActive はサービス状態がACTIVEかどうかを返す。
func (b *Balance) IsActive() bool {
	return strings.EqualFold(b.Status, model.BucketStatusActive)
}

// IsOwnedBy は指定ユーザーが所有するBalanceかどうかを返す。
// 所有者が空の場合は加入者自身のものとみなす。
func (b *Balance) IsOwnedBy(userName string) bool {
	return b.OwnerUsername == "" || b.OwnerUsername == userName
}

// Used は初期割当量からの消費量を返す。
func (b *Balance) Used() int64 {
	return b.InitialBalance - b.Quota
}

// Charge はdeltaバイトを消費し、新しい残量を返す。
// 残量は0未満にならない。delta > 0 の場合は利用履歴に追記し、historyLimit件を超えた古い記録を削除する。
func (b *Balance) Charge(delta int64, now time.Time, historyLimit int) int64 {
	if delta < 0 {
		delta = 0
	}
	b.Quota = max(b.Quota-delta, 0)
	if delta > 0 {
		b.UsageHistory = append(b.UsageHistory, UsageRecord{At: now, Bytes: delta})
		if historyLimit > 0 && len(b.UsageHistory) > historyLimit {
			b.UsageHistory = append([]UsageRecord(nil), b.UsageHistory[len(b.UsageHistory)-historyLimit:]...)
		}
	}
	return b.Quota
}

// Clone はスライス・ポインタを含めて複製したBalanceを返す。
func (b Balance) Clone() Balance {
	c := b
	if b.ServiceExpiry != nil {
		expiry := *b.ServiceExpiry
		c.ServiceExpiry = &expiry
	}
	if b.ConsumptionLimit != nil {
		limit := *b.ConsumptionLimit
		c.ConsumptionLimit = &limit
	}
	if b.UsageHistory != nil {
		c.UsageHistory = append([]UsageRecord(nil), b.UsageHistory...)
	}
	return c
}

// TotalQuota はBalance群の残量合計を返す。
func TotalQuota(balances []Balance) int64 {
	var total int64
	for i := range balances {
		total += balances[i].Quota
	}
	return total
}

// IndexOf は指定バケットIDのBalanceの位置を返す。存在しない場合は-1。
func IndexOf(balances []Balance, bucketID string) int {
	for i := range balances {
		if balances[i].BucketID == bucketID {
			return i
		}
	}
	return -1
}
