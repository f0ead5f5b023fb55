package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

// payloadField はStreamエントリのJSON格納フィールド名
const payloadField = "payload"

// StreamProducer はValkey Streamへイベントを追加するProducer実装。
type StreamProducer struct {
	client *redis.Client
	maxLen int64
}

// NewStreamProducer は新しいStreamProducerを生成する。
func NewStreamProducer(client *redis.Client) *StreamProducer {
	return &StreamProducer{client: client, maxLen: config.StreamMaxLen}
}

// PublishDBWrite はstream:db-writeへ更新指示を追加する。
func (p *StreamProducer) PublishDBWrite(ctx context.Context, req *DBWriteRequest) error {
	return p.add(ctx, StreamDBWrite, req)
}

// PublishCDR はstream:cdrへCDRを追加する。
func (p *StreamProducer) PublishCDR(ctx context.Context, cdr *CDREvent) error {
	return p.add(ctx, StreamCDR, cdr)
}

// PublishDisconnect はstream:coaへ切断指示を追加する。
func (p *StreamProducer) PublishDisconnect(ctx context.Context, ev *DisconnectEvent) error {
	return p.add(ctx, StreamCoA, ev)
}

// SendDisconnect はPublishDisconnectと同じ。DisconnectSenderとして使用する。
func (p *StreamProducer) SendDisconnect(ctx context.Context, ev *DisconnectEvent) error {
	return p.PublishDisconnect(ctx, ev)
}

func (p *StreamProducer) add(ctx context.Context, stream string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPublishFailed, stream, err)
	}
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{payloadField: string(data)},
	}).Err()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, apperr.NewValkeyError("XADD", stream, err))
	}
	return nil
}
