package balance

import (
	"fmt"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/timewindow"
)

// Select は次に課金すべきBalanceを選択し、balances内の要素へのポインタを返す。
//
// preferredIDに一致するBalanceが存在する場合は適格性に関わらずそれを返す。
// それ以外は適格なBalanceのうち優先度の数値が最小のものを選び、
// 同順位の場合は失効日時が早いもの（失効日時なしより失効日時ありを優先）を選ぶ。
// 適格なBalanceが無い場合はnilを返す。時間帯文字列が不正な場合はエラーを返す。
func Select(balances []Balance, preferredID string, now time.Time) (*Balance, error) {
	if preferredID != "" {
		if i := IndexOf(balances, preferredID); i >= 0 {
			return &balances[i], nil
		}
	}

	var best *Balance
	for i := range balances {
		b := &balances[i]
		ok, err := Eligible(b, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if best == nil || b.Priority < best.Priority {
			best = b
			continue
		}
		if b.Priority == best.Priority && b.ServiceExpiry != nil &&
			(best.ServiceExpiry == nil || b.ServiceExpiry.Before(*best.ServiceExpiry)) {
			best = b
		}
	}
	return best, nil
}

// Eligible はBalanceが課金対象として適格かどうかを返す。
func Eligible(b *Balance, now time.Time) (bool, error) {
	if b.Quota <= 0 || !b.IsActive() || b.ServiceStart.After(now) {
		return false, nil
	}

	w, err := timewindow.Parse(b.TimeWindow)
	if err != nil {
		return false, fmt.Errorf("bucket %s: %w", b.BucketID, err)
	}
	if !w.Contains(now) {
		return false, nil
	}

	if b.ConsumptionLimit != nil {
		hours := b.ConsumptionLimitWindow
		if hours <= 0 {
			hours = config.DefaultConsumptionWindowHours
		}
		if ConsumptionInWindow(b, hours, now) > *b.ConsumptionLimit {
			return false, nil
		}
	}
	return true, nil
}
