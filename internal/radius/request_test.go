package radius

import (
	"errors"
	"testing"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

func TestAccountingAttributes_Action(t *testing.T) {
	tests := []struct {
		statusType uint32
		want       model.AccountingAction
		wantErr    error
	}{
		{AcctStatusTypeStart, model.ActionStart, nil},
		{AcctStatusTypeInterim, model.ActionInterim, nil},
		{AcctStatusTypeStop, model.ActionStop, nil},
		{7, "", ErrUnknownStatusType},
	}

	for _, tt := range tests {
		attrs := &AccountingAttributes{AcctStatusType: tt.statusType}
		got, err := attrs.Action()
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Action(%d) error = %v, want %v", tt.statusType, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Action(%d) = %q, want %q", tt.statusType, got, tt.want)
		}
	}
}

func TestAccountingAttributes_ToRequest(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	attrs := &AccountingAttributes{
		AcctStatusType:  AcctStatusTypeInterim,
		AcctSessionID:   "sess-123",
		UserName:        "alice@example.com",
		NasIdentifier:   "bng-01",
		NasPortID:       "eth0",
		FramedIPAddress: "10.0.0.1",
		InputOctets:     100,
		OutputOctets:    200,
		InputGigawords:  1,
		SessionTime:     60,
	}

	req, err := attrs.ToRequest("192.168.1.1", "trace-1", now)
	if err != nil {
		t.Fatalf("ToRequest failed: %v", err)
	}
	if req.EventID == "" {
		t.Error("EventID should be generated")
	}
	if req.Action != model.ActionInterim {
		t.Errorf("Action = %q, want %q", req.Action, model.ActionInterim)
	}
	// NAS-IP-Address未設定時は送信元IPを使用
	if req.NasIP != "192.168.1.1" {
		t.Errorf("NasIP = %q, want %q", req.NasIP, "192.168.1.1")
	}
	if req.TraceID != "trace-1" || req.SrcIP != "192.168.1.1" || !req.Timestamp.Equal(now) {
		t.Errorf("request metadata = %+v", req)
	}
	if got, want := req.TotalUsage(), int64(1<<32+300); got != want {
		t.Errorf("TotalUsage = %d, want %d", got, want)
	}
}

func TestAccountingAttributes_ToRequestUnknownType(t *testing.T) {
	attrs := &AccountingAttributes{AcctStatusType: 8, AcctSessionID: "sess-1", UserName: "alice"}
	if _, err := attrs.ToRequest("192.168.1.1", "trace-1", time.Now()); !errors.Is(err, ErrUnknownStatusType) {
		t.Errorf("ToRequest error = %v, want %v", err, ErrUnknownStatusType)
	}
}
