package balance

import "time"

// ConsumptionInWindow は now から windowHours 時間前以降（下限を含む）の消費バイト数合計を返す。
func ConsumptionInWindow(b *Balance, windowHours int64, now time.Time) int64 {
	if b == nil || len(b.UsageHistory) == 0 {
		return 0
	}
	lower := now.Add(-time.Duration(windowHours) * time.Hour)
	var total int64
	for _, rec := range b.UsageHistory {
		if !rec.At.Before(lower) {
			total += rec.Bytes
		}
	}
	return total
}
