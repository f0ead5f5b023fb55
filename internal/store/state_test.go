package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/retry"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
)

// setupStateStore はバックオフを短縮したStateStoreを生成する
func setupStateStore(t *testing.T) (*miniredis.Miniredis, *stateStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewStateStore(newTestValkeyClient(t, mr)).(*stateStore)
	s.readBackoff = retry.Backoff{Initial: time.Millisecond, Max: 2 * time.Millisecond}
	s.writeBackoff = retry.Backoff{Initial: time.Millisecond, Max: 2 * time.Millisecond}
	return mr, s
}

func putState(t *testing.T, mr *miniredis.Miniredis, st *session.State) {
	t.Helper()
	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if err := mr.Set(UserKey(st.UserName), string(data)); err != nil {
		t.Fatalf("miniredis Set failed: %v", err)
	}
}

func TestReadMissing(t *testing.T) {
	_, s := setupStateStore(t)

	st, err := s.Read(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if st != nil {
		t.Errorf("Read = %+v, want nil", st)
	}
}

func TestWriteAndRead(t *testing.T) {
	mr, s := setupStateStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	st := session.NewState("alice", "", []balance.Balance{{BucketID: "b1", Quota: 1000}})
	st.AddSession(session.Session{SessionID: "s1"})

	if err := s.WriteWithRetry(ctx, "alice", st); err != nil {
		t.Fatalf("WriteWithRetry failed: %v", err)
	}
	if st.Version != 1 {
		t.Errorf("Version = %d, want 1", st.Version)
	}
	if st.BaseVersion() != 1 {
		t.Errorf("BaseVersion = %d, want 1", st.BaseVersion())
	}
	if !st.LastModified.Equal(fixed) {
		t.Errorf("LastModified = %v, want %v", st.LastModified, fixed)
	}

	ttl := mr.TTL("user:alice")
	if ttl != config.SubscriberStateTTL {
		t.Errorf("TTL = %v, want %v", ttl, config.SubscriberStateTTL)
	}

	got, err := s.Read(ctx, "alice")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got == nil {
		t.Fatal("Read returned nil")
	}
	if got.Version != 1 || got.BaseVersion() != 1 {
		t.Errorf("Version/BaseVersion = %d/%d, want 1/1", got.Version, got.BaseVersion())
	}
	if len(got.Balances) != 1 || got.Balances[0].Quota != 1000 {
		t.Errorf("Balances = %+v", got.Balances)
	}
	if _, ok := got.FindSession("s1"); !ok {
		t.Error("session s1 not persisted")
	}

	// 2回目の書き込み
	if err := s.WriteWithRetry(ctx, "alice", got); err != nil {
		t.Fatalf("second WriteWithRetry failed: %v", err)
	}
	if got.Version != 2 {
		t.Errorf("Version = %d, want 2", got.Version)
	}
}

func TestWriteVersionConflict(t *testing.T) {
	mr, s := setupStateStore(t)
	ctx := context.Background()

	stored := session.NewState("alice", "", nil)
	stored.Version = 5
	putState(t, mr, stored)

	// ストア上のバージョンを読まずに作成した状態（BaseVersion=0）
	stale := session.NewState("alice", "", nil)
	err := s.WriteWithRetry(ctx, "alice", stale)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("WriteWithRetry error = %v, want ErrVersionConflict", err)
	}
	var vce *VersionConflictError
	if !errors.As(err, &vce) {
		t.Fatalf("error should be *VersionConflictError: %v", err)
	}
	if vce.Expected != 0 || vce.Stored != 5 {
		t.Errorf("conflict = %+v, want expected 0 stored 5", vce)
	}
}

func TestWriteWithRetryExhaustion(t *testing.T) {
	mr, s := setupStateStore(t)
	ctx := context.Background()

	st := session.NewState("alice", "", nil)
	mr.SetError("ERR simulated failure")

	err := s.WriteWithRetry(ctx, "alice", st)
	if !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("WriteWithRetry error = %v, want ErrConcurrentModification", err)
	}
	if !errors.Is(err, ErrValkeyUnavailable) {
		t.Errorf("error should wrap ErrValkeyUnavailable: %v", err)
	}
	// 試行ごとにバージョンがインクリメントされる
	if st.Version != int64(config.StateWriteAttempts) {
		t.Errorf("Version = %d, want %d", st.Version, config.StateWriteAttempts)
	}
	if st.BaseVersion() != 0 {
		t.Errorf("BaseVersion = %d, want 0 (never persisted)", st.BaseVersion())
	}
}

func TestReadFailure(t *testing.T) {
	mr, s := setupStateStore(t)
	mr.SetError("ERR simulated failure")

	_, err := s.Read(context.Background(), "alice")
	if !errors.Is(err, ErrValkeyUnavailable) {
		t.Errorf("Read error = %v, want ErrValkeyUnavailable", err)
	}
}

func TestReadCorrupt(t *testing.T) {
	mr, s := setupStateStore(t)
	mr.Set("user:alice", "{not json")

	_, err := s.Read(context.Background(), "alice")
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("Read error = %v, want ErrCorruptState", err)
	}
}

func TestUpdateCreatesState(t *testing.T) {
	_, s := setupStateStore(t)
	ctx := context.Background()

	got, err := s.Update(ctx, "alice", func(st *session.State) (*session.State, error) {
		if st != nil {
			t.Errorf("state = %+v, want nil", st)
		}
		return session.NewState("alice", "", []balance.Balance{{BucketID: "b1", Quota: 10}}), nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got == nil || got.Version != 1 {
		t.Fatalf("Update result = %+v, want version 1", got)
	}
}

func TestUpdateSkipWrite(t *testing.T) {
	mr, s := setupStateStore(t)

	got, err := s.Update(context.Background(), "alice", func(*session.State) (*session.State, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got != nil {
		t.Errorf("Update result = %+v, want nil", got)
	}
	if mr.Exists("user:alice") {
		t.Error("no write should occur when mutate returns nil")
	}
}

func TestUpdateMutatorError(t *testing.T) {
	_, s := setupStateStore(t)
	want := errors.New("abort")

	_, err := s.Update(context.Background(), "alice", func(*session.State) (*session.State, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Errorf("Update error = %v, want %v", err, want)
	}
}

func TestUpdateRetriesOnConflict(t *testing.T) {
	mr, s := setupStateStore(t)
	ctx := context.Background()

	initial := session.NewState("alice", "", []balance.Balance{{BucketID: "b1", Quota: 1000}})
	if err := s.WriteWithRetry(ctx, "alice", initial); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	calls := 0
	got, err := s.Update(ctx, "alice", func(st *session.State) (*session.State, error) {
		calls++
		if calls == 1 {
			// 読み込み後に別プロセスが更新した状況を再現
			other := session.NewState("alice", "", []balance.Balance{{BucketID: "b1", Quota: 900}})
			other.Version = st.Version + 1
			putState(t, mr, other)
		}
		st.WithLock(func() { st.Balances[0].Quota -= 100 })
		return st, nil
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("mutate calls = %d, want 2", calls)
	}
	// 2回目は最新状態（900）から減算される
	if got.Balances[0].Quota != 800 {
		t.Errorf("Quota = %d, want 800", got.Balances[0].Quota)
	}
	if got.Version != 3 {
		t.Errorf("Version = %d, want 3", got.Version)
	}
}

func TestUpdateConcurrentWritersNoLostUpdate(t *testing.T) {
	_, s := setupStateStore(t)
	s.writeAttempts = 50
	ctx := context.Background()

	if err := s.WriteWithRetry(ctx, "alice", session.NewState("alice", "", []balance.Balance{{BucketID: "b1", Quota: 1000}})); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	const writers = 4
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, "alice", func(st *session.State) (*session.State, error) {
				st.WithLock(func() { st.Balances[0].Quota -= 10 })
				return st, nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	got, err := s.Read(ctx, "alice")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Balances[0].Quota != 1000-10*writers {
		t.Errorf("Quota = %d, want %d", got.Balances[0].Quota, 1000-10*writers)
	}
}

func TestGroupBalances(t *testing.T) {
	mr, s := setupStateStore(t)
	ctx := context.Background()

	none, err := s.GroupBalances(ctx, "group-7")
	if err != nil || none != nil {
		t.Fatalf("GroupBalances(missing) = %v, %v; want nil, nil", none, err)
	}

	group := session.NewState("group-7", "", []balance.Balance{{BucketID: "g1", OwnerUsername: "group-7", Quota: 500}})
	putState(t, mr, group)

	got, err := s.GroupBalances(ctx, "group-7")
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}
	if len(got) != 1 || got[0].BucketID != "g1" || got[0].Quota != 500 {
		t.Errorf("GroupBalances = %+v", got)
	}
}

func TestWriteMachine(t *testing.T) {
	m := newWriteMachine(3, 4)
	attempts := 0
	for m.next() {
		attempts++
		m.observe(int64(4+attempts), errors.New("fail"))
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if !m.exhausted() {
		t.Error("exhausted() = false, want true")
	}
	if m.lastSeen != 7 {
		t.Errorf("lastSeen = %d, want 7", m.lastSeen)
	}
	if m.expected != 4 {
		t.Errorf("expected = %d, want 4", m.expected)
	}

	zero := newWriteMachine(0, 0)
	if !zero.next() || zero.next() {
		t.Error("machine with maxAttempts<1 should allow exactly one attempt")
	}
}
