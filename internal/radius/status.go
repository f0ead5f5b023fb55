package radius

import (
	"crypto/hmac"
	"crypto/md5"
	"log/slog"

	"layeh.com/radius"
	"layeh.com/radius/rfc2869"
)

const messageAuthenticatorLen = 16

// HandleStatusServer はStatus-Server(Code=12)を処理し、Accounting-Response(Code=5)を返す。
// RFC 5997のヘルスチェック応答。Message-Authenticator検証失敗時はnilを返す（応答なし）。
func HandleStatusServer(request *radius.Packet, secret []byte, srcIP, traceID string) *radius.Packet {
	// 1. Message-Authenticator検証
	if !verifyMessageAuthenticator(request, secret) {
		slog.Warn("Status-Server: Message-Authenticator検証失敗",
			"event_id", "RADIUS_AUTH_ERR",
			"trace_id", traceID,
			"src_ip", srcIP,
		)
		return nil
	}

	// 2. Proxy-Stateを引き継いだAccounting-Responseを作成
	resp := BuildAccountingResponse(request, proxyStates(request))

	// 3. Message-Authenticatorは要求側のAuthenticatorで計算する
	signMessageAuthenticator(resp, secret, request.Authenticator)

	slog.Debug("Status-Server: 応答送信",
		"event_id", "PKT_RECV",
		"trace_id", traceID,
		"src_ip", srcIP,
	)
	return resp
}

// verifyMessageAuthenticator はMessage-Authenticator属性をHMAC-MD5で検証する。
func verifyMessageAuthenticator(packet *radius.Packet, secret []byte) bool {
	got, err := rfc2869.MessageAuthenticator_Lookup(packet)
	if err != nil || len(got) != messageAuthenticatorLen {
		return false
	}
	got = append([]byte(nil), got...)

	expected, ok := messageAuthenticator(packet, secret)
	_ = rfc2869.MessageAuthenticator_Set(packet, got)
	if !ok {
		return false
	}
	return hmac.Equal(expected, got)
}

// signMessageAuthenticator は応答パケットにMessage-Authenticator属性を設定する。
func signMessageAuthenticator(packet *radius.Packet, secret []byte, requestAuth [16]byte) {
	saved := packet.Authenticator
	packet.Authenticator = requestAuth
	mac, ok := messageAuthenticator(packet, secret)
	packet.Authenticator = saved
	if ok {
		_ = rfc2869.MessageAuthenticator_Set(packet, mac)
	}
}

// messageAuthenticator は属性値をゼロにした状態のパケットのHMAC-MD5を返す。
// 呼び出し後、パケットのMessage-Authenticatorはゼロ値のまま残る。
func messageAuthenticator(packet *radius.Packet, secret []byte) ([]byte, bool) {
	_ = rfc2869.MessageAuthenticator_Set(packet, make([]byte, messageAuthenticatorLen))
	data, err := packet.MarshalBinary()
	if err != nil {
		return nil, false
	}
	mac := hmac.New(md5.New, secret)
	mac.Write(data)
	return mac.Sum(nil), true
}
