package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/retry"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
	"github.com/oyaguma3/prepaid-acct-server/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// stateStore はStateStoreインターフェースの実装。
type stateStore struct {
	vc  *ValkeyClient
	ttl time.Duration
	now func() time.Time

	readAttempts  int
	readTimeout   time.Duration
	readBackoff   retry.Backoff
	writeAttempts int
	writeBackoff  retry.Backoff
}

// NewStateStore は新しいStateStoreを生成する。
func NewStateStore(vc *ValkeyClient) StateStore {
	return &stateStore{
		vc:            vc,
		ttl:           config.SubscriberStateTTL,
		now:           time.Now,
		readAttempts:  config.StateReadAttempts,
		readTimeout:   config.StateReadTimeout,
		readBackoff:   retry.Backoff{Initial: config.StateReadMinBackoff, Multiplier: 2, Max: config.StateReadMaxBackoff},
		writeAttempts: config.StateWriteAttempts,
		writeBackoff:  retry.Backoff{Initial: config.StateWriteMinBackoff, Multiplier: 2, Jitter: 0.2, Max: config.StateWriteMaxBackoff},
	}
}

// Read は加入者状態を取得する。
func (s *stateStore) Read(ctx context.Context, userName string) (*session.State, error) {
	key := UserKey(userName)
	ctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	var st *session.State
	err := retry.Do(ctx, s.readAttempts, s.readBackoff, isTransient, func(ctx context.Context, attempt int) error {
		data, err := s.vc.Client().Get(ctx, key).Bytes()
		if valkey.IsKeyNotFound(err) {
			st = nil
			return nil
		}
		if err != nil {
			slog.Warn("state read failed",
				"event_id", "VALKEY_CONN_ERR",
				"key", key,
				"retry_count", attempt,
				"error", err.Error(),
			)
			return fmt.Errorf("%w: %w", ErrValkeyUnavailable, apperr.NewValkeyError("GET", key, err))
		}
		decoded, err := decodeState(data)
		if err != nil {
			return fmt.Errorf("%w: key=%s: %v", ErrCorruptState, key, err)
		}
		st = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// WriteWithRetry はバージョンと最終更新日時を更新して状態を書き込む。
//
// 書き込みはストア上のバージョンが state.BaseVersion() と一致する場合のみ行う。
// 一時的な障害（接続エラー、WATCH中の変更検出）は最大writeAttempts回まで再試行し、
// 試行ごとにバージョンを再度インクリメントする。
// ストア上のバージョンが異なる場合は ErrVersionConflict を返す（状態の再読込が必要）。
func (s *stateStore) WriteWithRetry(ctx context.Context, userName string, st *session.State) error {
	key := UserKey(userName)
	m := newWriteMachine(s.writeAttempts, st.BaseVersion())

	for m.next() {
		var (
			data    []byte
			version int64
			err     error
		)
		st.WithLock(func() {
			st.Version++
			st.LastModified = s.now()
			version = st.Version
			data, err = json.Marshal(st)
		})
		if err != nil {
			return fmt.Errorf("encode state: %w", err)
		}

		err = s.compareAndSet(ctx, key, m.expected, data)
		if err == nil {
			st.MarkPersisted(version)
			return nil
		}

		var conflict *VersionConflictError
		if errors.As(err, &conflict) {
			m.observe(conflict.Stored, err)
			return err
		}
		if !isTransient(err) {
			return err
		}

		m.observe(m.lastSeen, err)
		slog.Warn("state write retry",
			"event_id", "VALKEY_WRITE_RETRY",
			"key", key,
			"retry_count", m.attempt,
			"error", err.Error(),
		)
		if !m.exhausted() {
			if sleepErr := retry.Sleep(ctx, s.writeBackoff.NextDelay(m.attempt-1, m.rng())); sleepErr != nil {
				return fmt.Errorf("%w: %w", ErrConcurrentModification, sleepErr)
			}
		}
	}

	return fmt.Errorf("%w: key=%s attempts=%d: %w", ErrConcurrentModification, key, m.attempt, m.lastErr)
}

// Update は状態の読み込み・変更・書き込みを行う。
// バージョン競合時は最新状態を再読込してmutateを再実行する。
func (s *stateStore) Update(ctx context.Context, userName string, mutate Mutator) (*session.State, error) {
	var lastErr error
	for cycle := 0; cycle < s.writeAttempts; cycle++ {
		current, err := s.Read(ctx, userName)
		if err != nil {
			return nil, err
		}

		next, err := mutate(current)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}

		err = s.WriteWithRetry(ctx, userName, next)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, err
		}

		lastErr = err
		slog.Warn("optimistic lock conflict",
			"event_id", "VERSION_CONFLICT",
			"key", UserKey(userName),
			"retry_count", cycle+1,
			"error", err.Error(),
		)
		if sleepErr := retry.Sleep(ctx, s.writeBackoff.NextDelay(cycle, 0.5)); sleepErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrConcurrentModification, sleepErr)
		}
	}
	return nil, fmt.Errorf("%w: key=%s: %w", ErrConcurrentModification, UserKey(userName), lastErr)
}

// GroupBalances はグループ状態に格納されたBalanceの複製を返す。
func (s *stateStore) GroupBalances(ctx context.Context, groupID string) ([]balance.Balance, error) {
	st, err := s.Read(ctx, groupID)
	if err != nil || st == nil {
		return nil, err
	}
	var out []balance.Balance
	st.WithLock(func() {
		out = make([]balance.Balance, 0, len(st.Balances))
		for _, b := range st.Balances {
			out = append(out, b.Clone())
		}
	})
	return out, nil
}

// compareAndSet はストア上のバージョンがexpectedと一致する場合のみdataを書き込む。
func (s *stateStore) compareAndSet(ctx context.Context, key string, expected int64, data []byte) error {
	err := s.vc.Client().Watch(ctx, func(tx *redis.Tx) error {
		stored, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if stored != expected {
			return &VersionConflictError{Key: key, Expected: expected, Stored: stored}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrVersionConflict), errors.Is(err, ErrCorruptState), errors.Is(err, ErrValkeyUnavailable):
		return err
	case valkey.IsTxFailed(err):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrValkeyUnavailable, apperr.NewValkeyError("WATCH", key, err))
	}
}

// storedVersion はストア上の状態のバージョンを返す。未登録の場合は0。
func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if valkey.IsKeyNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrValkeyUnavailable, apperr.NewValkeyError("GET", key, err))
	}
	var head struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0, fmt.Errorf("%w: key=%s: %v", ErrCorruptState, key, err)
	}
	return head.Version, nil
}

func decodeState(data []byte) (*session.State, error) {
	st := &session.State{}
	if err := json.Unmarshal(data, st); err != nil {
		return nil, err
	}
	if st.Sessions == nil {
		st.Sessions = []*session.Session{}
	}
	st.MarkPersisted(st.Version)
	return st, nil
}

// isTransient は再試行で解消し得るエラーかどうかを返す。
func isTransient(err error) bool {
	return errors.Is(err, ErrValkeyUnavailable) || valkey.IsTxFailed(err)
}
