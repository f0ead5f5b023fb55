package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// 切断指示の送信方式
const (
	DisconnectModeStream = "stream" // Valkey Streamへ切断イベントを発行
	DisconnectModeRadius = "radius" // NASへDisconnect-Requestを直接送信
)

// Config はアプリケーション設定を保持する
type Config struct {
	// Valkey接続設定
	RedisHost string `envconfig:"REDIS_HOST" required:"true"`
	RedisPort string `envconfig:"REDIS_PORT" required:"true"`
	RedisPass string `envconfig:"REDIS_PASS" required:"true"`

	// バケットDB接続設定
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// RADIUS設定
	RadiusSecret string `envconfig:"RADIUS_SECRET"`
	ListenAddr   string `envconfig:"LISTEN_ADDR" default:":1813"`

	// 課金判定設定
	NoGroupID string `envconfig:"NO_GROUP_ID" default:"1"`

	// 切断指示設定
	DisconnectMode string `envconfig:"DISCONNECT_MODE" default:"stream"`
	CoAPort        int    `envconfig:"COA_PORT" default:"3799"`

	// Stream受信設定
	StreamIntakeEnabled bool   `envconfig:"STREAM_INTAKE_ENABLED" default:"false"`
	IntakeStream        string `envconfig:"INTAKE_STREAM" default:"stream:acct-request"`
	IntakeGroup         string `envconfig:"INTAKE_GROUP" default:"prepaid-acct"`
	IntakeConsumer      string `envconfig:"INTAKE_CONSUMER"`

	// CDR転送設定（未設定時はStreamのみ）
	CDRHTTPURL string `envconfig:"CDR_HTTP_URL"`

	// ログ設定
	LogMaskUserName bool `envconfig:"LOG_MASK_USERNAME" default:"true"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// validate は値の組み合わせを検証する
func (c *Config) validate() error {
	switch c.DisconnectMode {
	case DisconnectModeStream, DisconnectModeRadius:
	default:
		return fmt.Errorf("invalid DISCONNECT_MODE: %q", c.DisconnectMode)
	}
	if c.CoAPort <= 0 || c.CoAPort > 65535 {
		return fmt.Errorf("invalid COA_PORT: %d", c.CoAPort)
	}
	return nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// IsNoGroup はグループIDが「グループなし」を表すかどうかを返す
func (c *Config) IsNoGroup(groupID string) bool {
	return groupID == "" || groupID == c.NoGroupID
}
