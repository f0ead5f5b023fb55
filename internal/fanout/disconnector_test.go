package fanout

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/event"
	"github.com/oyaguma3/prepaid-acct-server/internal/retry"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
)

// fakeSender は送信ごとにfnを呼び出すDisconnectSender
type fakeSender struct {
	mu    sync.Mutex
	calls map[string]int
	fn    func(ctx context.Context, ev *event.DisconnectEvent, call int) error
}

func newFakeSender(fn func(ctx context.Context, ev *event.DisconnectEvent, call int) error) *fakeSender {
	return &fakeSender{calls: map[string]int{}, fn: fn}
}

func (f *fakeSender) SendDisconnect(ctx context.Context, ev *event.DisconnectEvent) error {
	f.mu.Lock()
	f.calls[ev.SessionID]++
	call := f.calls[ev.SessionID]
	f.mu.Unlock()
	if f.fn == nil {
		return nil
	}
	return f.fn(ctx, ev, call)
}

func (f *fakeSender) sessionIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.calls))
	for id := range f.calls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func newTestDisconnector(sender event.DisconnectSender) *Disconnector {
	d := NewDisconnector(sender, nil)
	d.backoff = retry.Backoff{Initial: time.Millisecond, Max: 2 * time.Millisecond}
	return d
}

func testSessions(ids ...string) []session.Session {
	out := make([]session.Session, 0, len(ids))
	for _, id := range ids {
		out = append(out, session.Session{SessionID: id, NasIP: "10.0.0.1", FramedIP: "100.64.0." + id})
	}
	return out
}

func TestDisconnectAllExcludesSession(t *testing.T) {
	sender := newFakeSender(nil)
	d := newTestDisconnector(sender)

	out, err := d.DisconnectAll(context.Background(), testSessions("1", "2", "3"), "2", "alice", "Quota exhausted")
	if err != nil {
		t.Fatalf("DisconnectAll() error = %v", err)
	}
	if out.Sent != 2 || out.Failed != 0 {
		t.Errorf("Outcome = %+v, want Sent 2 Failed 0", out)
	}
	got := sender.sessionIDs()
	if len(got) != 2 || got[0] != "1" || got[1] != "3" {
		t.Errorf("sent to %v, want [1 3]", got)
	}
}

func TestDisconnectAllEventContents(t *testing.T) {
	var (
		mu  sync.Mutex
		got *event.DisconnectEvent
	)
	sender := newFakeSender(func(_ context.Context, ev *event.DisconnectEvent, _ int) error {
		mu.Lock()
		got = ev
		mu.Unlock()
		return nil
	})

	if _, err := newTestDisconnector(sender).DisconnectAll(context.Background(), testSessions("7"), "", "alice", "No eligible balance"); err != nil {
		t.Fatalf("DisconnectAll() error = %v", err)
	}
	if got == nil {
		t.Fatal("no event sent")
	}
	if got.UserName != "alice" || got.SessionID != "7" || got.Message != "No eligible balance" {
		t.Errorf("event = %+v", got)
	}
	if got.NasIP != "10.0.0.1" || got.FramedIP != "100.64.0.7" {
		t.Errorf("NasIP/FramedIP = %q/%q", got.NasIP, got.FramedIP)
	}
}

func TestDisconnectAllRetriesTransientFailure(t *testing.T) {
	sender := newFakeSender(func(_ context.Context, _ *event.DisconnectEvent, call int) error {
		if call < 3 {
			return errors.New("broker unavailable")
		}
		return nil
	})

	out, err := newTestDisconnector(sender).DisconnectAll(context.Background(), testSessions("1"), "", "alice", "x")
	if err != nil {
		t.Fatalf("DisconnectAll() error = %v", err)
	}
	if out.Sent != 1 {
		t.Errorf("Outcome = %+v, want Sent 1", out)
	}
	if sender.calls["1"] != 3 {
		t.Errorf("attempts = %d, want 3", sender.calls["1"])
	}
}

func TestDisconnectAllBestEffort(t *testing.T) {
	sender := newFakeSender(func(_ context.Context, ev *event.DisconnectEvent, _ int) error {
		if ev.SessionID == "bad" {
			return errors.New("nas unreachable")
		}
		return nil
	})

	out, err := newTestDisconnector(sender).DisconnectAll(context.Background(), testSessions("bad", "good"), "", "alice", "x")
	if err != nil {
		t.Fatalf("DisconnectAll() error = %v", err)
	}
	if out.Sent != 1 || out.Failed != 1 {
		t.Errorf("Outcome = %+v, want Sent 1 Failed 1", out)
	}
	// 初回 + 再試行2回
	if sender.calls["bad"] != 3 {
		t.Errorf("attempts for bad = %d, want 3", sender.calls["bad"])
	}
}

func TestDisconnectAllDeadline(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	sender := newFakeSender(func(ctx context.Context, _ *event.DisconnectEvent, _ int) error {
		select {
		case <-release:
		case <-time.After(time.Second):
		}
		return nil
	})
	d := newTestDisconnector(sender)
	d.deadline = 20 * time.Millisecond

	_, err := d.DisconnectAll(context.Background(), testSessions("1"), "", "alice", "x")
	if !errors.Is(err, ErrFanOutTimeout) {
		t.Errorf("DisconnectAll() error = %v, want ErrFanOutTimeout", err)
	}
}

func TestDisconnectAllNoTargets(t *testing.T) {
	sender := newFakeSender(nil)
	out, err := newTestDisconnector(sender).DisconnectAll(context.Background(), testSessions("1"), "1", "alice", "x")
	if err != nil || out != (Outcome{}) {
		t.Errorf("DisconnectAll() = %+v, %v; want zero outcome", out, err)
	}
	if len(sender.sessionIDs()) != 0 {
		t.Error("no send expected")
	}
}
