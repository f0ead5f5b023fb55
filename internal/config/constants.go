package config

import "time"

// Valkey接続設定
const (
	ValkeyConnectTimeout = 3 * time.Second
	ValkeyCommandTimeout = 2 * time.Second
	ValkeyPoolSize       = 10
	ValkeyMaxRetries     = 3
	ValkeyMinRetryDelay  = 100 * time.Millisecond
	ValkeyMaxRetryDelay  = 1 * time.Second
)

// 加入者状態キャッシュ
const (
	SubscriberStateTTL = 1000 * time.Hour

	StateReadAttempts   = 3
	StateReadTimeout    = 5 * time.Second
	StateReadMinBackoff = 100 * time.Millisecond
	StateReadMaxBackoff = 1 * time.Second

	StateWriteAttempts   = 5
	StateWriteMinBackoff = 50 * time.Millisecond
	StateWriteMaxBackoff = 500 * time.Millisecond
)

// 利用履歴
const (
	UsageHistoryLimit             = 256
	DefaultConsumptionWindowHours = 24
)

// 切断指示の一斉送信
const (
	DisconnectRetries       = 2
	DisconnectMinBackoff    = 100 * time.Millisecond
	DisconnectMaxBackoff    = 2 * time.Second
	DisconnectFanOutTimeout = 45 * time.Second
	DisconnectConcurrency   = 8
	CoATimeout              = 3 * time.Second
)

// イベント発行
const (
	CDRSendTimeout      = 5 * time.Second
	DBWriteRetries      = 2
	DBWriteMinBackoff   = 100 * time.Millisecond
	DBWriteMaxBackoff   = 1 * time.Second
	StreamMaxLen        = 100000
	CDRHTTPTimeout      = 3 * time.Second
	IntakeBlockDuration = 2 * time.Second
	IntakeBatchSize     = 16
	IntakeConcurrency   = 8
)

// バケットDB
const (
	BucketQueryTimeout  = 10 * time.Second
	BucketQueryAttempts = 3
	BucketQueryDelay    = 200 * time.Millisecond
	DBConnectTimeout    = 5 * time.Second
)

// Circuit Breaker設定
const (
	CBNameBucketDB     = "bucket-db"
	CBNameCDRForwarder = "cdr-forwarder"
	CBMaxRequests      = 3
	CBInterval         = 60 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// 重複検出TTL
const (
	DuplicateDetectTTL = 24 * time.Hour
)

// サーバーシャットダウン設定
const (
	ShutdownTimeout = 5 * time.Second
)
