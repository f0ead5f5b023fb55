package logging

import "log/slog"

// ログフィールド名の定数
const (
	FieldTraceID       = "trace_id"
	FieldEventID       = "event_id"
	FieldError         = "error"
	FieldSrcIP         = "src_ip"
	FieldUserName      = "user_name"
	FieldAcctSessionID = "acct_session_id"
	FieldBucketID      = "bucket_id"
	FieldRetryCount    = "retry_count"
	FieldLatencyMs     = "latency_ms"
)

// WithTraceID はトレースIDのslog.Attrを返す。
func WithTraceID(traceID string) slog.Attr {
	return slog.String(FieldTraceID, traceID)
}

// WithEventID はイベントIDのslog.Attrを返す。
func WithEventID(eventID string) slog.Attr {
	return slog.String(FieldEventID, eventID)
}

// WithError はエラーのslog.Attrを返す。
func WithError(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// WithRetryCount はリトライ回数のslog.Attrを返す。
func WithRetryCount(count int) slog.Attr {
	return slog.Int(FieldRetryCount, count)
}

// CommonFields はマスキング設定を保持するログフィールド生成器。
type CommonFields struct {
	masker *Masker
}

// NewCommonFields は新しいCommonFieldsを生成する。
func NewCommonFields(masker *Masker) *CommonFields {
	if masker == nil {
		masker = NewMasker(false)
	}
	return &CommonFields{masker: masker}
}

// WithUserName はマスキングされたユーザー名のslog.Attrを返す。
func (cf *CommonFields) WithUserName(userName string) slog.Attr {
	return slog.String(FieldUserName, cf.masker.UserName(userName))
}

// AcctLogFields はアカウンティングログ用の共通フィールドを返す。
func (cf *CommonFields) AcctLogFields(traceID, eventID, userName, acctSessionID string) []any {
	return []any{
		WithTraceID(traceID),
		WithEventID(eventID),
		cf.WithUserName(userName),
		slog.String(FieldAcctSessionID, acctSessionID),
	}
}
