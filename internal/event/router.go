package event

import (
	"context"
	"errors"
)

// Tee はProducerに加えて、CDRを追加の転送先にも送信する。
type Tee struct {
	Producer
	sinks []CDRSink
}

// NewTee は新しいTeeを生成する。
func NewTee(p Producer, sinks ...CDRSink) *Tee {
	return &Tee{Producer: p, sinks: sinks}
}

// PublishCDR は内包するProducerと全転送先へCDRを送信する。
// 一部の送信先が失敗しても残りへの送信は継続する。
func (t *Tee) PublishCDR(ctx context.Context, cdr *CDREvent) error {
	errs := []error{t.Producer.PublishCDR(ctx, cdr)}
	for _, s := range t.sinks {
		errs = append(errs, s.ForwardCDR(ctx, cdr))
	}
	return errors.Join(errs...)
}

// Router は切断指示のみ別の送信先へ振り分けるProducer。
type Router struct {
	Producer
	disconnect DisconnectSender
}

// NewRouter は新しいRouterを生成する。
func NewRouter(p Producer, disconnect DisconnectSender) *Router {
	return &Router{Producer: p, disconnect: disconnect}
}

// PublishDisconnect は切断指示をDisconnectSenderへ送信する。
func (r *Router) PublishDisconnect(ctx context.Context, ev *DisconnectEvent) error {
	return r.disconnect.SendDisconnect(ctx, ev)
}

// SendDisconnect はPublishDisconnectと同じ。DisconnectSenderとして使用する。
func (r *Router) SendDisconnect(ctx context.Context, ev *DisconnectEvent) error {
	return r.PublishDisconnect(ctx, ev)
}
