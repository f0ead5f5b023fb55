package event

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_event.go -package=mocks

import "context"

// Producer は課金処理から発行されるイベントの送信を定義する
type Producer interface {
	// PublishDBWrite はバケットDBへの更新指示を送信する
	PublishDBWrite(ctx context.Context, req *DBWriteRequest) error
	// PublishCDR はCDRを送信する
	PublishCDR(ctx context.Context, cdr *CDREvent) error
	// PublishDisconnect は切断指示を送信する
	PublishDisconnect(ctx context.Context, ev *DisconnectEvent) error
}

// DisconnectSender は切断指示の送信先を定義する
type DisconnectSender interface {
	// SendDisconnect は切断指示を1件送信する
	SendDisconnect(ctx context.Context, ev *DisconnectEvent) error
}

// CDRSink はCDRの追加転送先を定義する
type CDRSink interface {
	// ForwardCDR はCDRを転送する
	ForwardCDR(ctx context.Context, cdr *CDREvent) error
}
