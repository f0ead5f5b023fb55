// Package acct はアカウンティング報告に基づくセッション管理と課金処理を行う。
package acct

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oyaguma3/prepaid-acct-server/internal/balance"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/event"
	"github.com/oyaguma3/prepaid-acct-server/internal/retry"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
	"github.com/oyaguma3/prepaid-acct-server/internal/settle"
	"github.com/oyaguma3/prepaid-acct-server/internal/store"
	"github.com/oyaguma3/prepaid-acct-server/pkg/apperr"
	"github.com/oyaguma3/prepaid-acct-server/pkg/logging"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

// Processor はAccounting処理のメインロジック。
type Processor struct {
	states    store.StateStore
	detector  DuplicateDetector
	buckets   BucketLoader
	engine    *settle.Engine
	fanout    DisconnectFanOut
	producer  event.Producer
	fields    *logging.CommonFields
	isNoGroup func(groupID string) bool

	historyLimit    int
	dbWriteAttempts int
	dbWriteBackoff  retry.Backoff
	cdrTimeout      time.Duration
	now             func() time.Time

	cdrWG sync.WaitGroup
}

// NewProcessor は新しいProcessorを生成する。
func NewProcessor(
	cfg *config.Config,
	states store.StateStore,
	detector DuplicateDetector,
	buckets BucketLoader,
	fanout DisconnectFanOut,
	producer event.Producer,
	masker *logging.Masker,
) *Processor {
	return &Processor{
		states:       states,
		detector:     detector,
		buckets:      buckets,
		engine:       settle.NewEngine(states, cfg),
		fanout:       fanout,
		producer:     producer,
		fields:       logging.NewCommonFields(masker),
		isNoGroup:    cfg.IsNoGroup,
		historyLimit: config.UsageHistoryLimit,

		dbWriteAttempts: 1 + config.DBWriteRetries,
		dbWriteBackoff: retry.Backoff{
			Initial:    config.DBWriteMinBackoff,
			Multiplier: 2,
			Jitter:     0.1,
			Max:        config.DBWriteMaxBackoff,
		},
		cdrTimeout: config.CDRSendTimeout,
		now:        time.Now,
	}
}

// Process は報告種別に応じて処理を振り分ける。
func (p *Processor) Process(ctx context.Context, req *model.AccountingRequest) error {
	if req.SessionID == "" || req.UserName == "" {
		return fmt.Errorf("%w: session_id and username are required", ErrInvalidRequest)
	}
	switch req.Action {
	case model.ActionStart:
		return p.ProcessStart(ctx, req)
	case model.ActionInterim:
		return p.ProcessInterim(ctx, req)
	case model.ActionStop:
		return p.ProcessStop(ctx, req)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

// Wait は送信中のCDRの完了を待つ。シャットダウン時に呼び出す。
func (p *Processor) Wait() {
	p.cdrWG.Wait()
}

// seed はバケットDBから構築した加入者状態の初期値。
type seed struct {
	groupID string
	own     []balance.Balance
}

// newState はseedから加入者状態を生成する。Updateの再試行ごとに複製する。
func (s *seed) newState(userName string) *session.State {
	own := make([]balance.Balance, 0, len(s.own))
	for _, b := range s.own {
		own = append(own, b.Clone())
	}
	return session.NewState(userName, s.groupID, own)
}

// updateOrBootstrap は加入者状態をmutateで更新する。
// キャッシュに状態が無い場合はバケットDBから初期状態を構築して再実行する。
func (p *Processor) updateOrBootstrap(ctx context.Context, req *model.AccountingRequest, mutate store.Mutator) (*session.State, error) {
	var sd *seed
	for {
		st, err := p.states.Update(ctx, req.UserName, func(cur *session.State) (*session.State, error) {
			if cur == nil {
				if sd == nil {
					return nil, errNeedsBootstrap
				}
				cur = sd.newState(req.UserName)
			}
			return mutate(cur)
		})
		if sd != nil || !errors.Is(err, errNeedsBootstrap) {
			return st, err
		}

		sd, err = p.bootstrap(ctx, req)
		if err != nil {
			return nil, err
		}
	}
}

// bootstrap はバケットDBから加入者とグループのBalanceを読み込む。
// グループ所有のBalanceはグループ状態へ登録し、加入者状態には含めない。
func (p *Processor) bootstrap(ctx context.Context, req *model.AccountingRequest) (*seed, error) {
	// 1. バケット読み込み
	buckets, err := p.buckets.LoadBuckets(ctx, req.UserName)
	if err != nil {
		return nil, fmt.Errorf("load buckets: %w", err)
	}

	// 2. バケットなし・残量0は受付不可
	if len(buckets) == 0 {
		return nil, apperr.ErrNoBuckets
	}
	if model.TotalCurrentBalance(buckets) <= 0 {
		return nil, apperr.ErrQuotaZero
	}

	// 3. 所有者ごとに振り分け
	sd := &seed{}
	groups := make(map[string][]balance.Balance)
	var groupOrder []string
	for i := range buckets {
		b := &buckets[i]
		bal := balance.FromBucket(b)
		if b.IsGroupBucket(req.UserName) && !p.isNoGroup(b.BucketUser) {
			if _, ok := groups[b.BucketUser]; !ok {
				groupOrder = append(groupOrder, b.BucketUser)
			}
			groups[b.BucketUser] = append(groups[b.BucketUser], bal)
			continue
		}
		bal.OwnerUsername = req.UserName
		sd.own = append(sd.own, bal)
	}

	// 4. グループ状態の登録
	for _, groupID := range groupOrder {
		if err := p.seedGroup(ctx, groupID, groups[groupID]); err != nil {
			return nil, err
		}
	}
	if len(groupOrder) > 0 {
		sd.groupID = groupOrder[0]
	}
	if len(groupOrder) > 1 {
		slog.Warn("multiple groups found for subscriber",
			"event_id", "BUCKET_GROUP_CONFLICT",
			"trace_id", req.TraceID,
			p.fields.WithUserName(req.UserName),
			"group_id", sd.groupID,
			"groups", groupOrder,
		)
	}

	slog.Debug("subscriber state bootstrapped",
		"event_id", "ACCT_BOOTSTRAP",
		"trace_id", req.TraceID,
		"own_buckets", len(sd.own),
		"group_id", sd.groupID,
	)
	return sd, nil
}

// seedGroup はグループ状態を作成し、未登録のBalanceを追加する。
func (p *Processor) seedGroup(ctx context.Context, groupID string, bals []balance.Balance) error {
	_, err := p.states.Update(ctx, groupID, func(cur *session.State) (*session.State, error) {
		if cur == nil {
			cur = session.NewState(groupID, "", nil)
		}
		added := false
		cur.WithLock(func() {
			for _, b := range bals {
				if balance.IndexOf(cur.Balances, b.BucketID) >= 0 {
					continue
				}
				cur.Balances = append(cur.Balances, b.Clone())
				added = true
			}
		})
		if !added {
			return nil, nil
		}
		return cur, nil
	})
	if err != nil {
		return fmt.Errorf("seed group %s: %w", groupID, err)
	}
	return nil
}

// queueGroupCharge はグループ所有のBalanceへの課金を未反映の課金として加入者状態に記録する。
// 加入者状態の確定と同じ書き込みで記録する。
func (p *Processor) queueGroupCharge(st *session.State, userName string, res *settle.Result) {
	if res == nil || !res.Success || !res.ChargedGroup(userName) || res.Delta == 0 {
		return
	}
	st.AddPendingCharge(session.PendingCharge{
		ChargeID: uuid.NewString(),
		GroupID:  res.Balance.OwnerUsername,
		BucketID: res.Balance.BucketID,
		Delta:    res.Delta,
		Snapshot: res.Balance.Clone(),
	})
}

// groupCharge はグループ状態へ反映した課金。
// chargedは反映後のBalance。以前の処理で反映済みだった場合はnil。
type groupCharge struct {
	session.PendingCharge
	charged *balance.Balance
}

// settlePending は加入者状態に残っている未反映の課金をグループ状態へ反映する。
// 反映できなかった課金は加入者状態に残し、次回の報告で再度反映する。
func (p *Processor) settlePending(ctx context.Context, userName string) ([]groupCharge, error) {
	st, err := p.states.Read(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("read pending charges: %w", err)
	}
	if st == nil {
		return nil, nil
	}
	pending := st.SnapshotPendingCharges()
	if len(pending) == 0 {
		return nil, nil
	}

	var (
		applied []groupCharge
		done    []string
		errs    []error
	)
	for _, pc := range pending {
		charged, err := p.chargeGroup(ctx, pc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		done = append(done, pc.ChargeID)
		applied = append(applied, groupCharge{PendingCharge: pc, charged: charged})
	}

	if len(done) > 0 {
		_, err := p.states.Update(ctx, userName, func(cur *session.State) (*session.State, error) {
			if cur == nil || !cur.RemovePendingCharges(done) {
				return nil, nil
			}
			return cur, nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("clear pending charges: %w", err))
		}
	}
	return applied, errors.Join(errs...)
}

// chargeGroup は未反映の課金を最新のグループ状態に反映し、反映後のBalanceを返す。
// 同じ課金IDが反映済みの場合は何もせずnilを返す。
func (p *Processor) chargeGroup(ctx context.Context, pc session.PendingCharge) (*balance.Balance, error) {
	var charged *balance.Balance

	_, err := p.states.Update(ctx, pc.GroupID, func(cur *session.State) (*session.State, error) {
		charged = nil
		if cur == nil {
			cur = session.NewState(pc.GroupID, "", nil)
		}
		if !cur.MarkChargeApplied(pc.ChargeID) {
			return nil, nil
		}
		now := p.now()
		cur.WithLock(func() {
			var b balance.Balance
			if i := balance.IndexOf(cur.Balances, pc.BucketID); i >= 0 {
				cur.Balances[i].Charge(pc.Delta, now, p.historyLimit)
				b = cur.Balances[i].Clone()
			} else {
				b = pc.Snapshot.Clone()
				cur.Balances = append(cur.Balances, b.Clone())
			}
			charged = &b
		})
		return cur, nil
	})
	if err != nil {
		return nil, fmt.Errorf("charge group %s: %w", pc.GroupID, err)
	}
	return charged, nil
}

// chargedBalances はバケットDBへ反映するBalanceを返す。
func chargedBalances(userName string, res *settle.Result, groups []groupCharge) []*balance.Balance {
	var out []*balance.Balance
	if res != nil && res.Success && res.Balance != nil && !res.ChargedGroup(userName) {
		out = append(out, res.Balance)
	}
	for _, gc := range groups {
		if gc.charged != nil {
			out = append(out, gc.charged)
		}
	}
	return out
}

// groupExhausted は今回課金したグループ所有のBalanceが反映後に枯渇したかを返す。
// 精算時点のグループ状態は古い可能性があるため、反映後の残量で判定する。
func groupExhausted(res *settle.Result, groups []groupCharge) bool {
	if res == nil || !res.Success {
		return false
	}
	for _, gc := range groups {
		if gc.charged != nil && gc.BucketID == res.ChargedBucketID() && gc.charged.Quota <= 0 {
			return true
		}
	}
	return false
}

// clearSessions は加入者の全セッションを削除し、削除したセッションを返す。
func (p *Processor) clearSessions(ctx context.Context, userName string) ([]session.Session, error) {
	var affected []session.Session
	_, err := p.states.Update(ctx, userName, func(st *session.State) (*session.State, error) {
		affected = nil
		if st == nil || st.SessionCount() == 0 {
			return nil, nil
		}
		affected = st.ClearSessions()
		return st, nil
	})
	if err != nil {
		return nil, fmt.Errorf("clear sessions: %w", err)
	}
	return affected, nil
}

// persistBalances は課金後の残量をBalanceごとにバケットDB更新指示として発行する。
func (p *Processor) persistBalances(ctx context.Context, req *model.AccountingRequest, bals []*balance.Balance) error {
	var errs []error
	for _, b := range bals {
		errs = append(errs, p.persistBalance(ctx, req, b))
	}
	return errors.Join(errs...)
}

// persistBalance は課金後の残量をバケットDB更新指示として発行する。
func (p *Processor) persistBalance(ctx context.Context, req *model.AccountingRequest, b *balance.Balance) error {
	if b == nil {
		return nil
	}
	msg := event.NewBalanceUpdate(req.UserName, req.SessionID, req.EventID, b, p.now())
	err := retry.Do(ctx, p.dbWriteAttempts, p.dbWriteBackoff, nil, func(ctx context.Context, attempt int) error {
		return p.producer.PublishDBWrite(ctx, msg)
	})
	if err != nil {
		slog.Error("bucket update publish failed",
			append(p.fields.AcctLogFields(req.TraceID, "DB_WRITE_ERR", req.UserName, req.SessionID),
				logging.FieldBucketID, b.BucketID,
				logging.WithError(err),
			)...,
		)
		return fmt.Errorf("publish bucket update: %w", err)
	}
	return nil
}

// disconnect は切断指示を一斉送信する。
func (p *Processor) disconnect(ctx context.Context, req *model.AccountingRequest, sessions []session.Session, excludedID, reason string) error {
	out, err := p.fanout.DisconnectAll(ctx, sessions, excludedID, req.UserName, reason)
	slog.Info("disconnect handled",
		append(p.fields.AcctLogFields(req.TraceID, "ACCT_DISCONNECT", req.UserName, req.SessionID),
			"reason", reason,
			"sent", out.Sent,
			"failed", out.Failed,
		)...,
	)
	if err != nil {
		return fmt.Errorf("disconnect sessions: %w", err)
	}
	return nil
}

// reject は受付不可の加入者に対し、報告されたセッションの切断を指示する。
func (p *Processor) reject(ctx context.Context, req *model.AccountingRequest, cause error) error {
	slog.Warn("subscriber has no usable quota",
		append(p.fields.AcctLogFields(req.TraceID, "ACCT_REJECTED", req.UserName, req.SessionID),
			"reason", cause.Error(),
		)...,
	)
	return p.disconnect(ctx, req, []session.Session{sessionFromRequest(req, p.now())}, "", apperr.DisconnectReason(cause))
}

// isRejection はバケットDBの内容により受付不可となったエラーかを返す。
func isRejection(err error) bool {
	return errors.Is(err, apperr.ErrNoBuckets) || errors.Is(err, apperr.ErrQuotaZero)
}

// sessionFromRequest は報告内容から新しいセッションを生成する。
func sessionFromRequest(req *model.AccountingRequest, now time.Time) session.Session {
	return session.Session{
		SessionID:     req.SessionID,
		StartTime:     now,
		UpdatedAt:     now,
		FramedIP:      req.FramedIP,
		NasIP:         req.NasIP,
		NasPortID:     req.NasPortID,
		NasIdentifier: req.NasIdentifier,
	}
}

// disconnectReason は精算結果から切断理由を返す。
func disconnectReason(res *settle.Result) string {
	switch {
	case !res.Success:
		return apperr.ErrNoEligibleBalance.Error()
	case res.Switched():
		return apperr.ErrBucketSwitch.Error()
	default:
		return apperr.ErrQuotaExhausted.Error()
	}
}

// disconnectEventID は精算結果に対応するログのevent_idを返す。
func disconnectEventID(res *settle.Result) string {
	switch {
	case !res.Success:
		return "NO_ELIGIBLE_BALANCE"
	case res.Switched():
		return "BUCKET_SWITCH"
	default:
		return "QUOTA_EXHAUSTED"
	}
}
