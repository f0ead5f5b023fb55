// Package retry は有限回の再試行と指数バックオフを提供する。
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// Backoff は指数バックオフの設定。
type Backoff struct {
	Initial    time.Duration
	Multiplier float64
	Jitter     float64
	Max        time.Duration
}

// NextDelay はattempt回目（0始まり）の待機時間を返す。
// rngは[0,1)の乱数で、Jitterが0の場合は使用しない。
func (b Backoff) NextDelay(attempt int, rng float64) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := float64(b.Initial)
	if base <= 0 {
		base = float64(100 * time.Millisecond)
	}
	multiplier := b.Multiplier
	if multiplier <= 1 {
		multiplier = 2
	}
	delay := base * math.Pow(multiplier, float64(attempt))
	if b.Jitter > 0 {
		j := min(b.Jitter, 1)
		delay = delay * (1 + (rng*2-1)*j)
	}
	if b.Max > 0 && delay > float64(b.Max) {
		delay = float64(b.Max)
	}
	return time.Duration(delay)
}

// Sleep はdだけ待機する。ctxが先に終了した場合はctx.Err()を返す。
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do はfnを最大attempts回実行する。
// fnがnilを返すか、retryableがfalseを返すエラーの場合は即座に終了する。
// retryableがnilの場合は全エラーを再試行対象とする。
func Do(ctx context.Context, attempts int, b Backoff, retryable func(error) bool, fn func(ctx context.Context, attempt int) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx, attempt); err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt == attempts-1 {
			break
		}
		if sleepErr := Sleep(ctx, b.NextDelay(attempt, rand.Float64())); sleepErr != nil {
			return err
		}
	}
	return err
}
