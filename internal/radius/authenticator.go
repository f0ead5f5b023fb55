package radius

import (
	"crypto/md5"
	"crypto/subtle"

	"layeh.com/radius"
)

// VerifyRequestAuthenticator はRequest Authenticatorを検証する。
// Accounting-Request（RFC 2866）およびDisconnect/CoA-Request（RFC 5176）が対象で、
// それ以外のCodeはfalseを返す。
// 検証式: Authenticator = MD5(Code + ID + Length + 16 zero octets + Attributes + Secret)
func VerifyRequestAuthenticator(packet *radius.Packet, secret []byte) bool {
	switch packet.Code {
	case radius.CodeAccountingRequest, radius.CodeDisconnectRequest, radius.CodeCoARequest:
	default:
		return false
	}

	data, err := packet.MarshalBinary()
	if err != nil || len(data) < 20 {
		return false
	}

	got := make([]byte, 16)
	copy(got, data[4:20])
	clear(data[4:20])

	h := md5.New()
	h.Write(data)
	h.Write(secret)

	return subtle.ConstantTimeCompare(got, h.Sum(nil)) == 1
}
