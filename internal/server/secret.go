package server

import (
	"context"
	"log/slog"
	"net"

	radiuspkg "github.com/oyaguma3/prepaid-acct-server/internal/radius"
)

// DynamicSecretSource はValkeyのNAS登録情報からShared Secretを解決する。
// layeh.com/radius.SecretSourceインターフェースの実装。
type DynamicSecretSource struct {
	secrets  radiuspkg.SecretLookup
	fallback []byte
}

// NewSecretSource は新しいDynamicSecretSourceを生成する。
// fallbackSecretが空の場合、未登録NASからのパケットは破棄される。
func NewSecretSource(secrets radiuspkg.SecretLookup, fallbackSecret string) *DynamicSecretSource {
	s := &DynamicSecretSource{secrets: secrets}
	if fallbackSecret != "" {
		s.fallback = []byte(fallbackSecret)
	}
	return s
}

// RADIUSSecret はリモートアドレスに対応するRADIUS Secretを返す。
// nilを返した場合、PacketServerはパケットを破棄する。
func (s *DynamicSecretSource) RADIUSSecret(ctx context.Context, remoteAddr net.Addr) ([]byte, error) {
	ip := extractIP(remoteAddr)
	if ip == "" {
		return s.fallback, nil
	}

	secret, err := s.secrets.GetClientSecret(ctx, ip)
	switch {
	case err != nil:
		slog.Warn("Valkeyクライアント検索エラー",
			"event_id", "RADIUS_SECRET_ERR",
			"src_ip", ip,
			"error", err,
		)
	case secret != "":
		return []byte(secret), nil
	}

	if s.fallback == nil {
		slog.Warn("RADIUS Secret不明",
			"event_id", "RADIUS_NO_SECRET",
			"src_ip", ip,
		)
	}
	return s.fallback, nil
}

// extractIP はnet.AddrからIPアドレス文字列を抽出する
func extractIP(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	if udpAddr, ok := addr.(*net.UDPAddr); ok {
		return udpAddr.IP.String()
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		return ""
	}
	return host
}
