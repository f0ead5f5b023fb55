package acct

import "errors"

var (
	// ErrUnknownAction は未知の報告種別の場合のエラー
	ErrUnknownAction = errors.New("unknown accounting action")
	// ErrInvalidRequest は必須項目が欠けた報告の場合のエラー
	ErrInvalidRequest = errors.New("invalid accounting request")

	// errNeedsBootstrap はキャッシュに加入者状態が無いことを示す（内部用）
	errNeedsBootstrap = errors.New("subscriber state not cached")
)

// SequenceError は順序異常エラー
type SequenceError struct {
	Reason string
}

func (e *SequenceError) Error() string {
	return "sequence error: " + e.Reason
}
