package event

import (
	"testing"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
)

func TestNewBalanceUpdate(t *testing.T) {
	b := &balance.Balance{BucketID: "b1", ServiceID: "svc-1", InitialBalance: 1000, Quota: 750}
	req := NewBalanceUpdate("alice", "acct-1", "trace-1", b, testNow)

	if req.EventType != EventTypeUpdate || req.TableName != TableBucket {
		t.Errorf("EventType/TableName = %q/%q", req.EventType, req.TableName)
	}
	if req.Columns[ColCurrentBalance] != int64(750) {
		t.Errorf("CURRENT_BALANCE = %v, want 750", req.Columns[ColCurrentBalance])
	}
	if req.Columns[ColUsage] != int64(250) {
		t.Errorf("USAGE = %v, want 250", req.Columns[ColUsage])
	}
	if req.Columns[ColUpdatedAt] != testNow.Format(time.RFC3339) {
		t.Errorf("UPDATED_AT = %v", req.Columns[ColUpdatedAt])
	}
	if req.Where[ColServiceID] != "svc-1" || req.Where[ColBucketID] != "b1" {
		t.Errorf("Where = %v", req.Where)
	}
	if req.CorrelationID != "trace-1" || req.UserName != "alice" || req.SessionID != "acct-1" {
		t.Errorf("ids = %q/%q/%q", req.CorrelationID, req.UserName, req.SessionID)
	}
}

func TestNewDisconnectEvent(t *testing.T) {
	sess := session.Session{SessionID: "acct-1", NasIP: "10.0.0.1", FramedIP: "100.64.0.10"}
	ev := NewDisconnectEvent("alice", sess, "Data quota is zero", testNow)

	if ev.EventType != EventTypeCoA || ev.Action != ActionDisconnect {
		t.Errorf("EventType/Action = %q/%q", ev.EventType, ev.Action)
	}
	want := map[string]string{
		"username":  "alice",
		"sessionId": "acct-1",
		"nasIP":     "10.0.0.1",
		"framedIP":  "100.64.0.10",
	}
	for k, v := range want {
		if ev.Attributes[k] != v {
			t.Errorf("Attributes[%q] = %q, want %q", k, ev.Attributes[k], v)
		}
	}
	if ev.Message != "Data quota is zero" {
		t.Errorf("Message = %q", ev.Message)
	}
}
