// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// 課金判定関連エラー
var (
	// ErrNoBuckets は加入者にサービスバケットが存在しない場合のエラー
	ErrNoBuckets = errors.New("No service buckets found")
	// ErrQuotaZero は全バケットの残量合計が0以下の場合のエラー
	ErrQuotaZero = errors.New("Data quota is zero")
	// ErrNoEligibleBalance は課金可能なバケットが存在しない場合のエラー
	ErrNoEligibleBalance = errors.New("No eligible balance")
	// ErrQuotaExhausted は課金後の残量が0以下になった場合のエラー
	ErrQuotaExhausted = errors.New("Quota exhausted")
	// ErrBucketSwitch は課金対象バケットが切り替わった場合のエラー
	ErrBucketSwitch = errors.New("Bucket switched")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrValkeyCommand はValkeyコマンドエラー
	ErrValkeyCommand = errors.New("valkey command error")
	// ErrDatabase はデータベースエラー
	ErrDatabase = errors.New("database error")
)

// DisconnectReason はエラーから切断理由メッセージを返す。
// 課金判定関連エラー以外は汎用メッセージを返す。
func DisconnectReason(err error) string {
	for _, known := range []error{ErrNoBuckets, ErrQuotaZero, ErrNoEligibleBalance, ErrQuotaExhausted, ErrBucketSwitch} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "Session terminated"
}
