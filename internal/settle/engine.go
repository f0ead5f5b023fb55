// Package settle は使用量報告に対する残量精算（課金）を行う。
package settle

import (
	"context"
	"fmt"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
)

// Engine は精算処理を行う。
type Engine struct {
	groups       GroupSource
	isNoGroup    func(groupID string) bool
	historyLimit int
	now          func() time.Time
}

// NewEngine は新しいEngineを生成する。
func NewEngine(groups GroupSource, cfg *config.Config) *Engine {
	return &Engine{
		groups:       groups,
		isNoGroup:    cfg.IsNoGroup,
		historyLimit: config.UsageHistoryLimit,
		now:          time.Now,
	}
}

// Settle はセッションsessionIDの累計使用量usageとセッション時間sessionTimeを精算する。
//
// 加入者自身のBalanceとグループのBalanceから課金対象を選択し、前回報告からの差分を課金する。
// 課金対象が無い場合は状態を変更せず Success=false の結果を返す。
// グループ所有のBalanceへの課金は加入者状態には書き戻さない（Result.Balanceを
// 呼び出し元がグループ状態へ反映する）。
func (e *Engine) Settle(ctx context.Context, st *session.State, sessionID string, usage, sessionTime int64, preferredID string) (*Result, error) {
	// 1. グループBalanceの取得（ロック外）
	var groupID string
	st.WithLock(func() { groupID = st.GroupID })

	var group []balance.Balance
	if !e.isNoGroup(groupID) {
		var err error
		group, err = e.groups.GroupBalances(ctx, groupID)
		if err != nil {
			return nil, fmt.Errorf("load group balances: %w", err)
		}
	}

	now := e.now()
	var (
		res *Result
		err error
	)
	st.WithLock(func() {
		res, err = e.settleLocked(st, group, sessionID, usage, sessionTime, preferredID, now)
	})
	return res, err
}

func (e *Engine) settleLocked(st *session.State, group []balance.Balance, sessionID string, usage, sessionTime int64, preferredID string, now time.Time) (*Result, error) {
	sess := st.SessionLocked(sessionID)
	if sess == nil {
		return nil, fmt.Errorf("%w: %s", session.ErrSessionNotFound, sessionID)
	}

	// 2. 加入者とグループのBalanceを結合して課金対象を選択
	combined := make([]balance.Balance, 0, len(st.Balances)+len(group))
	for _, b := range st.Balances {
		combined = append(combined, b.Clone())
	}
	for _, b := range group {
		if balance.IndexOf(combined, b.BucketID) >= 0 {
			continue
		}
		combined = append(combined, b.Clone())
	}

	selected, err := balance.Select(combined, preferredID, now)
	if err != nil {
		return nil, err
	}

	// 3. 選択できない場合は状態を変更しない
	if selected == nil {
		return &Result{Success: false, Err: apperr.ErrNoEligibleBalance.Error()}, nil
	}

	// 4. 前回のバケット
	prevID := sess.BucketID
	if prevID == "" {
		prevID = selected.BucketID
	}

	// 5. 差分（負の場合は0）
	delta := max(usage-sess.PreviousUsage, 0)

	// 6-7. 切替時は前回のバケット、それ以外は選択したバケットに課金
	var charged *balance.Balance
	if selected.BucketID != prevID {
		if i := balance.IndexOf(combined, prevID); i >= 0 {
			charged = &combined[i]
		}
	} else {
		charged = selected
		sess.BucketID = selected.BucketID
	}

	var newQuota int64
	if charged != nil {
		newQuota = charged.Charge(delta, now, e.historyLimit)
	}

	// 8. セッションの累計値を更新
	sess.PreviousUsage = usage
	sess.SessionTime = sessionTime
	sess.UpdatedAt = now

	// 10. 加入者所有のBalanceのみ書き戻し、グループ所有のBalanceは除外する
	if charged != nil && charged.IsOwnedBy(st.UserName) {
		if i := balance.IndexOf(st.Balances, charged.BucketID); i >= 0 {
			st.Balances[i] = charged.Clone()
		}
	}
	own := st.Balances[:0]
	for _, b := range st.Balances {
		if b.IsOwnedBy(st.UserName) {
			own = append(own, b)
		}
	}
	st.Balances = own

	// 9. 残量枯渇または切替で切断
	res := &Result{
		Success:          true,
		NewQuota:         newQuota,
		BucketID:         selected.BucketID,
		PreviousBucketID: prevID,
		Delta:            delta,
		Disconnect:       newQuota <= 0 || selected.BucketID != prevID,
	}
	if charged != nil {
		c := charged.Clone()
		res.Balance = &c
	}
	return res, nil
}
