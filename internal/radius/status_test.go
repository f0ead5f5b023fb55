package radius

import (
	"crypto/hmac"
	"crypto/md5"
	"testing"

	radiuspkg "layeh.com/radius"
	"layeh.com/radius/rfc2869"
)

// newStatusServerRequest はテスト用のStatus-Serverリクエストを作成する
func newStatusServerRequest(t *testing.T, secret []byte, withMA bool) *radiuspkg.Packet {
	t.Helper()
	packet := radiuspkg.New(radiuspkg.CodeStatusServer, secret)
	packet.Add(radiuspkg.Type(AttrTypeProxyState), []byte("proxy1"))
	if !withMA {
		return packet
	}

	_ = rfc2869.MessageAuthenticator_Set(packet, make([]byte, 16))
	data, err := packet.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	mac := hmac.New(md5.New, secret)
	mac.Write(data)
	_ = rfc2869.MessageAuthenticator_Set(packet, mac.Sum(nil))
	return packet
}

func TestHandleStatusServer(t *testing.T) {
	secret := []byte("testing123")
	request := newStatusServerRequest(t, secret, true)

	resp := HandleStatusServer(request, secret, "192.168.1.1", "trace-001")
	if resp == nil {
		t.Fatal("HandleStatusServer should return a response for valid MA")
	}
	if resp.Code != radiuspkg.CodeAccountingResponse {
		t.Errorf("Code = %v, want %v", resp.Code, radiuspkg.CodeAccountingResponse)
	}
	if states := proxyStates(resp); len(states) != 1 || string(states[0]) != "proxy1" {
		t.Errorf("ProxyStates = %q, want [proxy1]", states)
	}

	// 応答のMessage-AuthenticatorはRequest Authenticatorで計算される
	ma, err := rfc2869.MessageAuthenticator_Lookup(resp)
	if err != nil || len(ma) != 16 {
		t.Fatalf("response Message-Authenticator = %x, err = %v", ma, err)
	}
	got := append([]byte(nil), ma...)
	if !verifyMessageAuthenticator(resp, secret) {
		t.Error("response Message-Authenticator should verify with request authenticator")
	}
	// 検証後も属性値は元に戻っている
	restored, _ := rfc2869.MessageAuthenticator_Lookup(resp)
	if !hmac.Equal(restored, got) {
		t.Error("Message-Authenticator should be restored after verification")
	}
}

func TestHandleStatusServer_Rejected(t *testing.T) {
	secret := []byte("testing123")

	tests := []struct {
		name    string
		request func() *radiuspkg.Packet
		secret  []byte
	}{
		{
			name:    "missing MA",
			request: func() *radiuspkg.Packet { return newStatusServerRequest(t, secret, false) },
			secret:  secret,
		},
		{
			name: "tampered MA",
			request: func() *radiuspkg.Packet {
				p := newStatusServerRequest(t, secret, true)
				ma, _ := rfc2869.MessageAuthenticator_Lookup(p)
				ma = append([]byte(nil), ma...)
				ma[0] ^= 0xFF
				_ = rfc2869.MessageAuthenticator_Set(p, ma)
				return p
			},
			secret: secret,
		},
		{
			name:    "wrong secret",
			request: func() *radiuspkg.Packet { return newStatusServerRequest(t, secret, true) },
			secret:  []byte("wrong"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if resp := HandleStatusServer(tt.request(), tt.secret, "192.168.1.1", "trace-001"); resp != nil {
				t.Error("HandleStatusServer should return nil")
			}
		})
	}
}
