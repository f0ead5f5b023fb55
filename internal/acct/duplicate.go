package acct

import (
	"context"

	"github.com/oyaguma3/prepaid-acct-server/internal/store"
)

// duplicateDetector はDuplicateDetectorインターフェースの実装。
type duplicateDetector struct {
	markers store.StopMarkerStore
}

// NewDuplicateDetector は新しいDuplicateDetectorを生成する。
func NewDuplicateDetector(ms store.StopMarkerStore) DuplicateDetector {
	return &duplicateDetector{markers: ms}
}

// CheckStart はStop後のStartを検出する。
// 順序異常だが新規セッションとして扱うため、マーカーを削除してから SequenceError を返す。
func (d *duplicateDetector) CheckStart(ctx context.Context, acctSessionID string) error {
	stopped, err := d.markers.IsStopped(ctx, acctSessionID)
	if err != nil {
		return err
	}
	if !stopped {
		return nil
	}
	if err := d.markers.Clear(ctx, acctSessionID); err != nil {
		return err
	}
	return &SequenceError{Reason: "start_after_stop"}
}

// IsStopped はStop済みかチェックする。
func (d *duplicateDetector) IsStopped(ctx context.Context, acctSessionID string) (bool, error) {
	return d.markers.IsStopped(ctx, acctSessionID)
}

// MarkStopped はStopとしてマークする。
func (d *duplicateDetector) MarkStopped(ctx context.Context, acctSessionID string) error {
	return d.markers.MarkStopped(ctx, acctSessionID)
}
