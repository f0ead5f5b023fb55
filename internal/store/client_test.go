package store

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
)

func newTestConfig(addr string) *config.Config {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	return &config.Config{
		RedisHost:      host,
		RedisPort:      port,
		RedisPass:      "",
		DatabaseURL:    "postgres://localhost/test",
		NoGroupID:      "1",
		DisconnectMode: config.DisconnectModeStream,
		CoAPort:        3799,
	}
}

func newTestValkeyClient(t *testing.T, mr *miniredis.Miniredis) *ValkeyClient {
	t.Helper()
	vc, err := NewValkeyClient(newTestConfig(mr.Addr()))
	if err != nil {
		t.Fatalf("NewValkeyClient failed: %v", err)
	}
	t.Cleanup(func() { vc.Close() })
	return vc
}

func TestNewValkeyClient(t *testing.T) {
	mr := miniredis.RunT(t)
	vc := newTestValkeyClient(t, mr)

	if vc.Client() == nil {
		t.Fatal("Client() returned nil")
	}
}

func TestNewValkeyClientConnectionError(t *testing.T) {
	cfg := newTestConfig("127.0.0.1:59999")
	_, err := NewValkeyClient(cfg)
	if err == nil {
		t.Fatal("expected error for invalid address, got nil")
	}
}

func TestGetClientSecret(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.HSet("client:192.168.1.1", "secret", "testing123")

	cs := NewClientStore(newTestValkeyClient(t, mr))

	secret, err := cs.GetClientSecret(context.Background(), "192.168.1.1")
	if err != nil {
		t.Fatalf("GetClientSecret failed: %v", err)
	}
	if secret != "testing123" {
		t.Errorf("GetClientSecret = %q, want %q", secret, "testing123")
	}
}

func TestGetClientSecretNotFound(t *testing.T) {
	mr := miniredis.RunT(t)
	cs := NewClientStore(newTestValkeyClient(t, mr))

	secret, err := cs.GetClientSecret(context.Background(), "10.0.0.99")
	if err != nil {
		t.Fatalf("GetClientSecret returned error for missing key: %v", err)
	}
	if secret != "" {
		t.Errorf("GetClientSecret = %q, want empty string", secret)
	}
}

func TestGetClientSecretValkeyError(t *testing.T) {
	mr := miniredis.RunT(t)
	cs := NewClientStore(newTestValkeyClient(t, mr))

	mr.SetError("ERR simulated failure")

	_, err := cs.GetClientSecret(context.Background(), "192.168.1.1")
	if err == nil {
		t.Fatal("expected error when Valkey fails, got nil")
	}
	if !errors.Is(err, ErrValkeyUnavailable) {
		t.Errorf("expected ErrValkeyUnavailable, got: %v", err)
	}
}
