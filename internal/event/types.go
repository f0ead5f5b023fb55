// Package event は課金処理から発行される外部イベント（DB更新・切断指示・CDR）を扱う。
package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
)

// イベント種別
const (
	EventTypeUpdate            = "UPDATE_EVENT"
	EventTypeCoA               = "COA"
	EventTypeAccountingStart   = "ACCOUNTING_START"
	EventTypeAccountingInterim = "ACCOUNTING_INTERIM"
	EventTypeAccountingStop    = "ACCOUNTING_STOP"
)

// 出力先Stream
const (
	StreamDBWrite = "stream:db-write"
	StreamCoA     = "stream:coa"
	StreamCDR     = "stream:cdr"
)

// DB更新対象
const (
	TableBucket       = "BUCKET_TABLE"
	ColCurrentBalance = "CURRENT_BALANCE"
	ColUsage          = "USAGE"
	ColUpdatedAt      = "UPDATED_AT"
	ColServiceID      = "SERVICE_ID"
	ColBucketID       = "BUCKET_ID"
)

// ActionDisconnect は切断指示のアクション
const ActionDisconnect = "DISCONNECT"

// DBWriteRequest はバケットDBへの更新指示。
type DBWriteRequest struct {
	EventID       string         `json:"eventId"`
	EventType     string         `json:"eventType"`
	TableName     string         `json:"tableName"`
	Columns       map[string]any `json:"columnValues"`
	Where         map[string]any `json:"whereConditions"`
	CorrelationID string         `json:"correlationId"`
	UserName      string         `json:"userName"`
	SessionID     string         `json:"sessionId"`
	Timestamp     time.Time      `json:"timestamp"`
}

// NewBalanceUpdate はBalanceの残量をバケットDBへ反映する更新指示を生成する。
func NewBalanceUpdate(userName, sessionID, correlationID string, b *balance.Balance, now time.Time) *DBWriteRequest {
	return &DBWriteRequest{
		EventID:   uuid.New().String(),
		EventType: EventTypeUpdate,
		TableName: TableBucket,
		Columns: map[string]any{
			ColCurrentBalance: b.Quota,
			ColUsage:          b.Used(),
			ColUpdatedAt:      now.UTC().Format(time.RFC3339),
		},
		Where: map[string]any{
			ColServiceID: b.ServiceID,
			ColBucketID:  b.BucketID,
		},
		CorrelationID: correlationID,
		UserName:      userName,
		SessionID:     sessionID,
		Timestamp:     now,
	}
}

// DisconnectEvent はセッションの切断指示。
type DisconnectEvent struct {
	EventID    string            `json:"eventId"`
	EventType  string            `json:"eventType"`
	SessionID  string            `json:"sessionId"`
	Action     string            `json:"action"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes"`
	UserName   string            `json:"userName"`
	NasIP      string            `json:"nasIp"`
	FramedIP   string            `json:"framedIp"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewDisconnectEvent はセッションsessの切断指示を生成する。
func NewDisconnectEvent(userName string, sess session.Session, message string, now time.Time) *DisconnectEvent {
	return &DisconnectEvent{
		EventID:   uuid.New().String(),
		EventType: EventTypeCoA,
		SessionID: sess.SessionID,
		Action:    ActionDisconnect,
		Message:   message,
		Attributes: map[string]string{
			"username":  userName,
			"sessionId": sess.SessionID,
			"nasIP":     sess.NasIP,
			"framedIP":  sess.FramedIP,
		},
		UserName:  userName,
		NasIP:     sess.NasIP,
		FramedIP:  sess.FramedIP,
		Timestamp: now,
	}
}
