package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
)

func newTestState() *State {
	return NewState("alice", "", []balance.Balance{{BucketID: "b1", Quota: 100}})
}

func TestAddFindRemoveSession(t *testing.T) {
	st := newTestState()

	if !st.AddSession(Session{SessionID: "s1", NasIP: "10.0.0.1"}) {
		t.Fatal("AddSession(s1) = false, want true")
	}
	if st.AddSession(Session{SessionID: "s1"}) {
		t.Error("AddSession(s1) duplicate = true, want false")
	}

	got, ok := st.FindSession("s1")
	if !ok {
		t.Fatal("FindSession(s1) not found")
	}
	if got.NasIP != "10.0.0.1" {
		t.Errorf("NasIP = %q, want %q", got.NasIP, "10.0.0.1")
	}

	// 複製を変更しても状態に影響しない
	got.NasIP = "changed"
	again, _ := st.FindSession("s1")
	if again.NasIP != "10.0.0.1" {
		t.Error("FindSession should return a copy")
	}

	if !st.RemoveSession("s1") {
		t.Error("RemoveSession(s1) = false, want true")
	}
	if st.RemoveSession("s1") {
		t.Error("RemoveSession(s1) again = true, want false")
	}
	if st.SessionCount() != 0 {
		t.Errorf("SessionCount() = %d, want 0", st.SessionCount())
	}
}

func TestClearSessionsReturnsSnapshot(t *testing.T) {
	st := newTestState()
	st.AddSession(Session{SessionID: "s1"})
	st.AddSession(Session{SessionID: "s2"})

	snap := st.ClearSessions()
	if len(snap) != 2 {
		t.Fatalf("len(snapshot) = %d, want 2", len(snap))
	}
	if st.SessionCount() != 0 {
		t.Errorf("SessionCount() = %d, want 0", st.SessionCount())
	}
	if snap[0].SessionID != "s1" || snap[1].SessionID != "s2" {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestSessionLockedMutation(t *testing.T) {
	st := newTestState()
	st.AddSession(Session{SessionID: "s1"})

	st.WithLock(func() {
		sess := st.SessionLocked("s1")
		if sess == nil {
			t.Fatal("SessionLocked(s1) = nil")
		}
		sess.SessionTime = 60
		if st.SessionLocked("missing") != nil {
			t.Error("SessionLocked(missing) should be nil")
		}
	})

	got, _ := st.FindSession("s1")
	if got.SessionTime != 60 {
		t.Errorf("SessionTime = %d, want 60", got.SessionTime)
	}
}

func TestConcurrentSnapshotAndMutation(t *testing.T) {
	st := newTestState()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			id := "s" + string(rune('A'+i%26))
			st.AddSession(Session{SessionID: id})
			st.RemoveSession(id)
		}(i)
		go func() {
			defer wg.Done()
			for _, s := range st.SnapshotSessions() {
				_ = s.SessionID
			}
		}()
	}
	wg.Wait()
}

func TestBaseVersion(t *testing.T) {
	st := newTestState()
	if st.BaseVersion() != 0 {
		t.Errorf("BaseVersion() = %d, want 0", st.BaseVersion())
	}
	st.MarkPersisted(7)
	if st.BaseVersion() != 7 {
		t.Errorf("BaseVersion() = %d, want 7", st.BaseVersion())
	}
}

func TestStateJSON(t *testing.T) {
	st := newTestState()
	st.GroupID = "group-7"
	st.Version = 3
	st.LastModified = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	st.AddSession(Session{SessionID: "s1", SessionTime: 30, PreviousUsage: 1024})
	st.MarkPersisted(3)

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var decoded State
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if decoded.UserName != "alice" || decoded.GroupID != "group-7" || decoded.Version != 3 {
		t.Errorf("decoded = %+v", &decoded)
	}
	if decoded.BaseVersion() != 0 {
		t.Error("baseVersion should not be serialized")
	}
	if len(decoded.Sessions) != 1 || decoded.Sessions[0].PreviousUsage != 1024 {
		t.Errorf("Sessions = %+v", decoded.Sessions)
	}
}

func TestEndedSessions(t *testing.T) {
	st := newTestState()
	st.AddSession(Session{SessionID: "s1", PreviousUsage: 600, SessionTime: 60})
	st.AddSession(Session{SessionID: "s2"})
	st.ClearSessions()

	ended, ok := st.EndedSession("s1")
	if !ok {
		t.Fatal("EndedSession(s1) not found")
	}
	if ended.PreviousUsage != 600 || ended.SessionTime != 60 {
		t.Errorf("ended = %+v, want usage 600, time 60", ended)
	}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !st.ReviveSession("s1", now) {
		t.Fatal("ReviveSession(s1) = false, want true")
	}
	got, ok := st.FindSession("s1")
	if !ok || got.PreviousUsage != 600 || !got.UpdatedAt.Equal(now) {
		t.Errorf("revived = %+v, want usage 600 updated at %v", got, now)
	}
	if _, ok := st.EndedSession("s1"); ok {
		t.Error("revived session should leave the ended records")
	}
	if st.ReviveSession("s3", now) {
		t.Error("ReviveSession(s3) = true, want false")
	}
}

func TestEndedSessionsBounded(t *testing.T) {
	st := newTestState()
	for i := 0; i < endedSessionLimit+5; i++ {
		st.AddSession(Session{SessionID: fmt.Sprintf("s%d", i)})
		st.ClearSessions()
	}
	if len(st.Ended) != endedSessionLimit {
		t.Errorf("Ended = %d, want %d", len(st.Ended), endedSessionLimit)
	}
	if _, ok := st.EndedSession("s0"); ok {
		t.Error("oldest record should be dropped")
	}
}

func TestPendingCharges(t *testing.T) {
	st := newTestState()
	st.AddPendingCharge(PendingCharge{ChargeID: "c1", GroupID: "g", BucketID: "b", Delta: 10})
	st.AddPendingCharge(PendingCharge{ChargeID: "c2", GroupID: "g", BucketID: "b", Delta: 20})

	if n := len(st.SnapshotPendingCharges()); n != 2 {
		t.Fatalf("pending = %d, want 2", n)
	}
	if !st.RemovePendingCharges([]string{"c1"}) {
		t.Error("RemovePendingCharges(c1) = false, want true")
	}
	if st.RemovePendingCharges([]string{"c1"}) {
		t.Error("second RemovePendingCharges(c1) = true, want false")
	}
	left := st.SnapshotPendingCharges()
	if len(left) != 1 || left[0].ChargeID != "c2" {
		t.Errorf("pending = %+v, want c2 only", left)
	}
}

func TestMarkChargeApplied(t *testing.T) {
	st := newTestState()
	if !st.MarkChargeApplied("c1") {
		t.Fatal("first MarkChargeApplied = false, want true")
	}
	if st.MarkChargeApplied("c1") {
		t.Error("second MarkChargeApplied = true, want false")
	}
	for i := 0; i < appliedChargeLimit; i++ {
		st.MarkChargeApplied(fmt.Sprintf("x%d", i))
	}
	if len(st.AppliedCharges) != appliedChargeLimit {
		t.Errorf("AppliedCharges = %d, want %d", len(st.AppliedCharges), appliedChargeLimit)
	}
}
