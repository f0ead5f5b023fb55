// Package breaker は外部依存呼び出し用のCircuit Breakerを生成する。
package breaker

import (
	"errors"
	"log/slog"

	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/sony/gobreaker"
)

// New は共通設定のCircuitBreakerを生成する。
// 連続失敗がCBFailureThreshold回に達するとOpenに遷移する。
func New(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(Settings(name))
}

// Settings は共通のgobreaker.Settingsを返す。
func Settings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				slog.Warn("circuit breaker opened",
					"event_id", "CB_OPEN",
					"cb_name", name,
					"from", from.String(),
				)
			case gobreaker.StateHalfOpen:
				slog.Info("circuit breaker half-open",
					"event_id", "CB_HALF_OPEN",
					"cb_name", name,
				)
			case gobreaker.StateClosed:
				slog.Info("circuit breaker closed",
					"event_id", "CB_CLOSE",
					"cb_name", name,
				)
			}
		},
	}
}

// IsOpen はCircuit Breakerが要求を拒否したことを示すエラーかどうかを返す。
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
