package acct

//go:generate mockgen -source=interfaces.go -destination=../mocks/mock_acct.go -package=mocks

import (
	"context"

	"github.com/oyaguma3/prepaid-acct-server/internal/fanout"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

// AccountingProcessor はAccounting処理のインターフェース
type AccountingProcessor interface {
	// Process は報告種別に応じて処理を振り分ける
	Process(ctx context.Context, req *model.AccountingRequest) error
	// ProcessStart はAcct-Start処理を行う
	ProcessStart(ctx context.Context, req *model.AccountingRequest) error
	// ProcessInterim はAcct-Interim処理を行う
	ProcessInterim(ctx context.Context, req *model.AccountingRequest) error
	// ProcessStop はAcct-Stop処理を行う
	ProcessStop(ctx context.Context, req *model.AccountingRequest) error
}

// BucketLoader はバケットDBからの読み込みを定義する
type BucketLoader interface {
	// LoadBuckets は加入者と所属グループのバケットを取得する
	LoadBuckets(ctx context.Context, userName string) ([]model.Bucket, error)
}

// DisconnectFanOut は加入者セッションへの切断指示の一斉送信を定義する
type DisconnectFanOut interface {
	// DisconnectAll はexcludedID以外の全セッションへ切断指示を送信する
	DisconnectAll(ctx context.Context, sessions []session.Session, excludedID, userName, reason string) (fanout.Outcome, error)
}

// DuplicateDetector は順序異常検出のインターフェース
type DuplicateDetector interface {
	// CheckStart はStop済みセッションへのStartを検出する。
	// 検出時はマーカーを削除して *SequenceError を返す
	CheckStart(ctx context.Context, acctSessionID string) error
	// IsStopped はStop済みかチェックする
	IsStopped(ctx context.Context, acctSessionID string) (bool, error)
	// MarkStopped はStopとしてマークする
	MarkStopped(ctx context.Context, acctSessionID string) error
}
