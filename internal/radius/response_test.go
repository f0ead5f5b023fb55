package radius

import (
	"bytes"
	"crypto/md5"
	"testing"

	radiuspkg "layeh.com/radius"
)

func TestBuildAccountingResponse(t *testing.T) {
	secret := []byte("testing123")
	request := signedPacket(t, radiuspkg.CodeAccountingRequest, secret)
	request.Identifier = 42

	resp := BuildAccountingResponse(request, [][]byte{[]byte("proxy1"), []byte("proxy2")})

	if resp.Code != radiuspkg.CodeAccountingResponse {
		t.Errorf("Code = %d, want %d", resp.Code, radiuspkg.CodeAccountingResponse)
	}
	if resp.Identifier != 42 {
		t.Errorf("Identifier = %d, want 42", resp.Identifier)
	}

	// Proxy-Stateは受信順にエコーバックされる
	echoed := proxyStates(resp)
	if len(echoed) != 2 || string(echoed[0]) != "proxy1" || string(echoed[1]) != "proxy2" {
		t.Fatalf("ProxyStates = %q, want [proxy1 proxy2]", echoed)
	}

	// Encode()前のAuthenticatorはRequest Authenticatorと一致する
	if resp.Authenticator != request.Authenticator {
		t.Error("Authenticator before Encode() must equal the Request Authenticator")
	}

	encoded, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// RFC 2866: MD5(Code+ID+Length+RequestAuth+Attrs+Secret)
	got := append([]byte(nil), encoded[4:20]...)
	copy(encoded[4:20], request.Authenticator[:])
	h := md5.New()
	h.Write(encoded)
	h.Write(secret)
	if !bytes.Equal(got, h.Sum(nil)) {
		t.Error("Response Authenticator mismatch")
	}
}

func TestBuildAccountingResponse_NoProxyState(t *testing.T) {
	request := signedPacket(t, radiuspkg.CodeAccountingRequest, []byte("testing123"))

	resp := BuildAccountingResponse(request, nil)
	if len(resp.Attributes) != 0 {
		t.Errorf("Attributes = %d, want 0", len(resp.Attributes))
	}
}
