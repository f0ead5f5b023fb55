// Package repository はバケットDB（PostgreSQL）からのバケット読み込みを提供する。
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oyaguma3/prepaid-acct-server/internal/breaker"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/retry"
	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
	"github.com/sony/gobreaker"
)

// Querier はバケット問い合わせに必要なDB操作。*pgxpool.Poolが実装する。
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository はバケットDBからバケットを読み込む。
type Repository struct {
	db       Querier
	cb       *gobreaker.CircuitBreaker
	timeout  time.Duration
	attempts int
	backoff  retry.Backoff
}

// New は新しいRepositoryを生成する。
func New(db Querier) *Repository {
	return &Repository{
		db:       db,
		cb:       breaker.New(config.CBNameBucketDB),
		timeout:  config.BucketQueryTimeout,
		attempts: config.BucketQueryAttempts,
		backoff:  retry.Backoff{Initial: config.BucketQueryDelay, Multiplier: 2},
	}
}

// NewPool はバケットDBへの接続プールを生成し、疎通を確認する。
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DBConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}

// LoadBuckets は加入者userNameのバケット（グループ所有分を含む）を返す。
// 一時的な障害は再試行し、Circuit BreakerがOpenの場合は ErrCircuitOpen を返す。
func (r *Repository) LoadBuckets(ctx context.Context, userName string) ([]model.Bucket, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	var buckets []model.Bucket
	err := retry.Do(ctx, r.attempts, r.backoff, isRetryable, func(ctx context.Context, attempt int) error {
		result, err := r.cb.Execute(func() (any, error) {
			return r.query(ctx, userName)
		})
		if err != nil {
			if breaker.IsOpen(err) {
				return ErrCircuitOpen
			}
			slog.Warn("bucket query failed",
				"event_id", "DB_QUERY_ERR",
				"retry_count", attempt,
				"error", err.Error(),
			)
			return err
		}
		buckets = result.([]model.Bucket)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("buckets loaded",
		"bucket_count", len(buckets),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return buckets, nil
}

func (r *Repository) query(ctx context.Context, userName string) ([]model.Bucket, error) {
	rows, err := r.db.Query(ctx, queryBuckets, userName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, apperr.NewDatabaseError("query", err))
	}
	defer rows.Close()

	var buckets []model.Bucket
	for rows.Next() {
		b, ok, err := scanBucket(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, apperr.NewDatabaseError("scan", err))
		}
		if ok {
			buckets = append(buckets, b)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, apperr.NewDatabaseError("rows", err))
	}
	return buckets, nil
}

func isRetryable(err error) bool {
	return !errors.Is(err, ErrCircuitOpen)
}
