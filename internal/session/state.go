package session

import (
	"slices"
	"time"
)

// WithLock は状態の排他区間でfnを実行する。
// fn内ではロックを取得するメソッドを呼び出さず、*Lockedメソッドを使用する。
func (s *State) WithLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// SessionLocked は指定IDのセッションを返す。WithLock内から呼び出す。
func (s *State) SessionLocked(sessionID string) *Session {
	for _, sess := range s.Sessions {
		if sess.SessionID == sessionID {
			return sess
		}
	}
	return nil
}

// FindSession は指定IDのセッションの複製を返す。
func (s *State) FindSession(sessionID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess := s.SessionLocked(sessionID); sess != nil {
		return *sess, true
	}
	return Session{}, false
}

// AddSession はセッションを追加する。同じIDが既に存在する場合はfalseを返す。
func (s *State) AddSession(sess Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SessionLocked(sess.SessionID) != nil {
		return false
	}
	s.Sessions = append(s.Sessions, &sess)
	return true
}

// RemoveSession は指定IDのセッションを削除する。
func (s *State) RemoveSession(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sess := range s.Sessions {
		if sess.SessionID == sessionID {
			s.Sessions = append(s.Sessions[:i], s.Sessions[i+1:]...)
			return true
		}
	}
	return false
}

// SnapshotSessions はセッション一覧の複製を返す。
func (s *State) SnapshotSessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ClearSessions は全セッションを削除し、削除前のスナップショットを返す。
// 削除したセッションは終了記録として保持する。
func (s *State) ClearSessions() []Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshotLocked()
	s.Sessions = []*Session{}
	for _, sess := range snap {
		s.recordEndedLocked(sess)
	}
	return snap
}

// EndedSession は切断処理で削除したセッションの終了記録を返す。
func (s *State) EndedSession(sessionID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.endedIndexLocked(sessionID); i >= 0 {
		return s.Ended[i], true
	}
	return Session{}, false
}

// ReviveSession は終了記録のセッションを累計値を引き継いで再登録する。
func (s *State) ReviveSession(sessionID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.endedIndexLocked(sessionID)
	if i < 0 || s.SessionLocked(sessionID) != nil {
		return false
	}
	sess := s.Ended[i]
	sess.UpdatedAt = now
	s.Ended = append(s.Ended[:i], s.Ended[i+1:]...)
	s.Sessions = append(s.Sessions, &sess)
	return true
}

func (s *State) recordEndedLocked(sess Session) {
	if i := s.endedIndexLocked(sess.SessionID); i >= 0 {
		s.Ended = append(s.Ended[:i], s.Ended[i+1:]...)
	}
	s.Ended = append(s.Ended, sess)
	if over := len(s.Ended) - endedSessionLimit; over > 0 {
		s.Ended = s.Ended[over:]
	}
}

func (s *State) endedIndexLocked(sessionID string) int {
	for i := range s.Ended {
		if s.Ended[i].SessionID == sessionID {
			return i
		}
	}
	return -1
}

// AddPendingCharge はグループ状態へ未反映の課金を記録する。
func (s *State) AddPendingCharge(pc PendingCharge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PendingCharges = append(s.PendingCharges, pc)
}

// SnapshotPendingCharges は未反映の課金の複製を返す。
func (s *State) SnapshotPendingCharges() []PendingCharge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PendingCharge, 0, len(s.PendingCharges))
	for _, pc := range s.PendingCharges {
		pc.Snapshot = pc.Snapshot.Clone()
		out = append(out, pc)
	}
	return out
}

// RemovePendingCharges は指定IDの未反映課金を削除する。削除した場合はtrueを返す。
func (s *State) RemovePendingCharges(chargeIDs []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.PendingCharges[:0]
	for _, pc := range s.PendingCharges {
		if !slices.Contains(chargeIDs, pc.ChargeID) {
			kept = append(kept, pc)
		}
	}
	removed := len(kept) != len(s.PendingCharges)
	s.PendingCharges = kept
	return removed
}

// MarkChargeApplied は課金IDを反映済みとして記録する。
// 既に反映済みの場合はfalseを返す。
func (s *State) MarkChargeApplied(chargeID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.AppliedCharges, chargeID) {
		return false
	}
	s.AppliedCharges = append(s.AppliedCharges, chargeID)
	if over := len(s.AppliedCharges) - appliedChargeLimit; over > 0 {
		s.AppliedCharges = s.AppliedCharges[over:]
	}
	return true
}

// SessionCount はセッション数を返す。
func (s *State) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sessions)
}

// BaseVersion は直前に読み込んだ時点のストア上のバージョンを返す。
func (s *State) BaseVersion() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseVersion
}

// MarkPersisted はストア上のバージョンを記録する。読み込み・書き込み成功時にストアが呼び出す。
func (s *State) MarkPersisted(version int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseVersion = version
}

func (s *State) snapshotLocked() []Session {
	snap := make([]Session, 0, len(s.Sessions))
	for _, sess := range s.Sessions {
		snap = append(snap, *sess)
	}
	return snap
}
