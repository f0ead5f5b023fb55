package radius

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/event"
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
	"layeh.com/radius/rfc2866"
)

// attrTypeErrorCause はError-Cause属性（RFC 5176）
const attrTypeErrorCause = 101

// 切断要求エラー
var (
	ErrDisconnectNAK  = errors.New("disconnect request rejected")
	ErrNoNASAddress   = errors.New("NAS address unknown")
	ErrNoClientSecret = errors.New("no shared secret for NAS")
	ErrUnexpectedCode = errors.New("unexpected response code")
)

// SecretLookup はNASのShared Secret検索を定義する
type SecretLookup interface {
	GetClientSecret(ctx context.Context, ip string) (string, error)
}

// DisconnectClient はNASへDisconnect-Request（RFC 5176）を送信する。
// event.DisconnectSenderの実装。
type DisconnectClient struct {
	secrets  SecretLookup
	fallback []byte
	port     int
	timeout  time.Duration
	client   *radius.Client
}

// NewDisconnectClient は新しいDisconnectClientを生成する。
func NewDisconnectClient(secrets SecretLookup, fallbackSecret string, port int) *DisconnectClient {
	return &DisconnectClient{
		secrets:  secrets,
		fallback: []byte(fallbackSecret),
		port:     port,
		timeout:  config.CoATimeout,
		client: &radius.Client{
			Retry:           time.Second,
			MaxPacketErrors: 10,
		},
	}
}

// SendDisconnect は切断指示をDisconnect-Requestとして送信する。
// Disconnect-ACKで成功、Disconnect-NAKはErrDisconnectNAKを返す。
func (c *DisconnectClient) SendDisconnect(ctx context.Context, ev *event.DisconnectEvent) error {
	if ev.NasIP == "" {
		return fmt.Errorf("%w: session=%s", ErrNoNASAddress, ev.SessionID)
	}

	secret, err := c.secretFor(ctx, ev.NasIP)
	if err != nil {
		return err
	}

	// 1. Disconnect-Request構築
	packet := radius.New(radius.CodeDisconnectRequest, secret)
	if ev.UserName != "" {
		if err := rfc2865.UserName_SetString(packet, ev.UserName); err != nil {
			return err
		}
	}
	if err := rfc2866.AcctSessionID_SetString(packet, ev.SessionID); err != nil {
		return err
	}
	if ip := net.ParseIP(ev.NasIP).To4(); ip != nil {
		_ = rfc2865.NASIPAddress_Set(packet, ip)
	}
	if ip := net.ParseIP(ev.FramedIP).To4(); ip != nil {
		_ = rfc2865.FramedIPAddress_Set(packet, ip)
	}

	// 2. 送信・応答待ち
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	addr := net.JoinHostPort(ev.NasIP, strconv.Itoa(c.port))
	resp, err := c.client.Exchange(ctx, packet, addr)
	if err != nil {
		return fmt.Errorf("disconnect exchange with %s: %w", addr, err)
	}

	// 3. 応答判定
	switch resp.Code {
	case radius.CodeDisconnectACK:
		return nil
	case radius.CodeDisconnectNAK:
		if cause := resp.Get(radius.Type(attrTypeErrorCause)); len(cause) >= 4 {
			return fmt.Errorf("%w: error-cause=%d", ErrDisconnectNAK, binary.BigEndian.Uint32(cause))
		}
		return ErrDisconnectNAK
	default:
		return fmt.Errorf("%w: %v", ErrUnexpectedCode, resp.Code)
	}
}

// secretFor はNASのShared Secretを解決する。
// 未登録・検索失敗時はフォールバックSecretを使う。
func (c *DisconnectClient) secretFor(ctx context.Context, nasIP string) ([]byte, error) {
	secret, err := c.secrets.GetClientSecret(ctx, nasIP)
	if err != nil {
		slog.Warn("Valkeyクライアント検索エラー",
			"event_id", "RADIUS_SECRET_ERR",
			"nas_ip", nasIP,
			"error", err,
		)
	}
	if err == nil && secret != "" {
		return []byte(secret), nil
	}
	if len(c.fallback) > 0 {
		return c.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoClientSecret, nasIP)
}
