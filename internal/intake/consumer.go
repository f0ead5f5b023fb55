// Package intake はValkey Streamからアカウンティング報告を受信する。
package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/prepaid-acct-server/internal/acct"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/retry"
	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
	"github.com/oyaguma3/prepaid-acct-server/pkg/valkey"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// payloadField はStreamエントリのJSON格納フィールド名
const payloadField = "payload"

// ErrInvalidPayload はエントリのpayloadを報告としてデコードできない場合のエラー
var ErrInvalidPayload = errors.New("invalid intake payload")

// Consumer はコンシューマグループでStreamを読み取り、課金処理へ渡す。
type Consumer struct {
	client      *redis.Client
	processor   acct.AccountingProcessor
	stream      string
	group       string
	name        string
	block       time.Duration
	count       int64
	concurrency int // 並行して処理する加入者数の上限
	backoff     retry.Backoff
	now         func() time.Time
}

// NewConsumer は新しいConsumerを生成する。
// INTAKE_CONSUMERが未設定の場合はコンシューマ名を自動生成する。
func NewConsumer(client *redis.Client, processor acct.AccountingProcessor, cfg *config.Config) *Consumer {
	name := cfg.IntakeConsumer
	if name == "" {
		name = "acct-" + uuid.New().String()[:8]
	}
	return &Consumer{
		client:      client,
		processor:   processor,
		stream:      cfg.IntakeStream,
		group:       cfg.IntakeGroup,
		name:        name,
		block:       config.IntakeBlockDuration,
		count:       config.IntakeBatchSize,
		concurrency: config.IntakeConcurrency,
		backoff: retry.Backoff{
			Initial: config.ValkeyMinRetryDelay,
			Jitter:  0.2,
			Max:     config.ValkeyMaxRetryDelay,
		},
		now: time.Now,
	}
}

// Run はctxが終了するまでStreamを読み取り続ける。
// ctxの終了による停止ではnilを返す。
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	slog.Info("Stream受信開始",
		"stream", c.stream,
		"group", c.group,
		"consumer", c.name,
	)

	failures := 0
	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := c.poll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Warn("Stream読み取り失敗",
				"event_id", "VALKEY_CONN_ERR",
				"stream", c.stream,
				"retry_count", failures,
				"error", err,
			)
			if retry.Sleep(ctx, c.backoff.NextDelay(failures, rand.Float64())) != nil {
				return nil
			}
			failures++
			continue
		}
		failures = 0
	}
}

// ensureGroup はコンシューマグループを作成する。既存の場合は何もしない。
func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w",
			apperr.NewValkeyError("XGROUP CREATE", c.stream, err))
	}
	return nil
}

// poll は1バッチ分のエントリを読み取って処理し、処理件数を返す。
func (c *Consumer) poll(ctx context.Context) (int, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.group,
		Consumer: c.name,
		Streams:  []string{c.stream, ">"},
		Count:    c.count,
		Block:    c.block,
	}).Result()
	if err != nil {
		if valkey.IsKeyNotFound(err) {
			return 0, nil // タイムアウト
		}
		return 0, apperr.NewValkeyError("XREADGROUP", c.stream, err)
	}

	// 1. デコードし、加入者ごとに受信順で振り分け
	var (
		n      int
		users  []string
		byUser = make(map[string][]entry)
	)
	for _, s := range streams {
		for _, msg := range s.Messages {
			n++
			req, err := c.decode(msg)
			if err != nil {
				slog.Warn("Streamエントリのデコード失敗",
					"event_id", "INTAKE_DECODE_ERR",
					"stream", c.stream,
					"message_id", msg.ID,
					"error", err,
				)
				c.ack(ctx, msg.ID)
				continue
			}
			if _, ok := byUser[req.UserName]; !ok {
				users = append(users, req.UserName)
			}
			byUser[req.UserName] = append(byUser[req.UserName], entry{id: msg.ID, req: req})
		}
	}

	// 2. 加入者間は並行、同一加入者内は受信順に処理
	g := new(errgroup.Group)
	g.SetLimit(max(c.concurrency, 1))
	for _, user := range users {
		entries := byUser[user]
		g.Go(func() error {
			for _, e := range entries {
				c.handle(ctx, e)
			}
			return nil
		})
	}
	_ = g.Wait()
	return n, nil
}

// entry はデコード済みのStreamエントリ。
type entry struct {
	id  string
	req *model.AccountingRequest
}

// handle は1エントリを処理し、結果に関わらずACKする。
func (c *Consumer) handle(ctx context.Context, e entry) {
	if err := c.processor.Process(ctx, e.req); err != nil {
		slog.Error("処理エラー",
			"event_id", "SYS_ERR",
			"trace_id", e.req.TraceID,
			"message_id", e.id,
			"acct_session_id", e.req.SessionID,
			"error", err.Error(),
		)
	}
	c.ack(ctx, e.id)
}

// ack はエントリをACKする。
func (c *Consumer) ack(ctx context.Context, id string) {
	if err := c.client.XAck(ctx, c.stream, c.group, id).Err(); err != nil {
		slog.Warn("StreamエントリのACK失敗",
			"event_id", "VALKEY_CONN_ERR",
			"stream", c.stream,
			"message_id", id,
			"error", err,
		)
	}
}

// decode はエントリのpayloadを報告に変換し、欠けている識別子を補う。
func (c *Consumer) decode(msg redis.XMessage) (*model.AccountingRequest, error) {
	raw, ok := msg.Values[payloadField].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s field", ErrInvalidPayload, payloadField)
	}
	var req model.AccountingRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if req.EventID == "" {
		req.EventID = uuid.New().String()
	}
	if req.TraceID == "" {
		req.TraceID = req.EventID
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = c.now()
	}
	return &req, nil
}
