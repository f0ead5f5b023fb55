package repository

import "errors"

var (
	// ErrDatabaseUnavailable はバケットDBへの問い合わせに失敗した場合のエラー
	ErrDatabaseUnavailable = errors.New("bucket database unavailable")

	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = errors.New("circuit breaker is open")
)
