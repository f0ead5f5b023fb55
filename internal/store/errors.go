package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValkeyUnavailable はValkeyへの接続が利用不可能な場合のエラー
	ErrValkeyUnavailable = errors.New("valkey unavailable")

	// ErrCorruptState は格納済みの状態をデコードできない場合のエラー
	ErrCorruptState = errors.New("corrupt subscriber state")

	// ErrVersionConflict は書き込み時にストア上のバージョンが読み込み時と異なる場合のエラー
	ErrVersionConflict = errors.New("version conflict")

	// ErrConcurrentModification は再試行上限に達しても書き込みを完了できなかった場合のエラー
	ErrConcurrentModification = errors.New("concurrent modification could not be resolved")
)

// VersionConflictError はバージョン不一致の詳細を保持する。
type VersionConflictError struct {
	Key      string
	Expected int64
	Stored   int64
}

// Error はerrorインターフェースを実装する。
func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict: key=%s, expected=%d, stored=%d", e.Key, e.Expected, e.Stored)
}

// Is はErrVersionConflictとの比較を可能にする。
func (e *VersionConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}
