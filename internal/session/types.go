// Package session は加入者状態（SubscriberState）とセッションを表す。
package session

import (
	"sync"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
)

// Session は加入者の1接続を表す。
type Session struct {
	SessionID     string    `json:"session_id"`
	StartTime     time.Time `json:"start_time"`
	UpdatedAt     time.Time `json:"updated_at"`
	BucketID      string    `json:"bucket_id,omitempty"` // 最後に課金したバケット
	SessionTime   int64     `json:"session_time"`        // 前回受理したAcct-Session-Time（秒）
	PreviousUsage int64     `json:"previous_usage"`      // 前回受理時点の累計使用量（octets）
	FramedIP      string    `json:"framed_ip,omitempty"`
	NasIP         string    `json:"nas_ip,omitempty"`
	NasPortID     string    `json:"nas_port_id,omitempty"`
	NasIdentifier string    `json:"nas_identifier,omitempty"`
}

// PendingCharge はグループ状態へ未反映のグループ所有Balanceへの課金。
// 加入者状態の確定と同時に記録し、グループ状態への反映後に削除する。
type PendingCharge struct {
	ChargeID string          `json:"charge_id"`
	GroupID  string          `json:"group_id"`
	BucketID string          `json:"bucket_id"`
	Delta    int64           `json:"delta"`
	Snapshot balance.Balance `json:"snapshot"` // 精算時点の課金後Balance。グループ状態に無い場合に登録する
}

// 終了記録・反映済み課金IDの保持上限
const (
	endedSessionLimit  = 64
	appliedChargeLimit = 256
)

// State は加入者単位でキャッシュに格納される状態。
// Valkeyキー: user:{UserName}
//
// Balances・Sessionsの読み取りから変更までの一連の操作は
// WithLock もしくはロックを取得するメソッド経由で行う。
type State struct {
	mu sync.Mutex

	UserName     string            `json:"user_name"`
	GroupID      string            `json:"group_id,omitempty"`
	Balances     []balance.Balance `json:"balances"`
	Sessions     []*Session        `json:"sessions"`
	Version      int64             `json:"version"`
	LastModified time.Time         `json:"last_modified"`

	// Ended は切断処理で削除したセッションの終了時点の記録（再送された報告の判定用）
	Ended []Session `json:"ended_sessions,omitempty"`
	// PendingCharges はグループ状態へ未反映の課金（加入者状態のみ）
	PendingCharges []PendingCharge `json:"pending_charges,omitempty"`
	// AppliedCharges は反映済みの課金ID（グループ状態のみ）
	AppliedCharges []string `json:"applied_charges,omitempty"`

	// baseVersion は直前に読み込んだ（または書き込んだ）時点のストア上のバージョン
	baseVersion int64
}

// NewState は新しい加入者状態を生成する。
func NewState(userName, groupID string, balances []balance.Balance) *State {
	return &State{
		UserName: userName,
		GroupID:  groupID,
		Balances: balances,
		Sessions: []*Session{},
	}
}
