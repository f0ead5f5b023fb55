package acct

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oyaguma3/prepaid-acct-server/internal/event"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
	"github.com/oyaguma3/prepaid-acct-server/internal/settle"
	"github.com/oyaguma3/prepaid-acct-server/pkg/logging"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

// ProcessStop はAcct-Stop処理を行う。
func (p *Processor) ProcessStop(ctx context.Context, req *model.AccountingRequest) error {
	// 1. Stop済みとしてマーク（以降のInterimを破棄する）
	if err := p.detector.MarkStopped(ctx, req.SessionID); err != nil {
		slog.Error("stop marker write failed",
			append(p.fields.AcctLogFields(req.TraceID, "VALKEY_CONN_ERR", req.UserName, req.SessionID),
				logging.WithError(err),
			)...,
		)
	}

	// 2. 最終精算とセッション削除
	var (
		found    bool
		res      *settle.Result
		stopped  session.Session
		affected []session.Session
	)
	_, err := p.states.Update(ctx, req.UserName, func(st *session.State) (*session.State, error) {
		found, res, affected = false, nil, nil
		if st == nil {
			return nil, nil
		}
		sess, ok := st.FindSession(req.SessionID)
		if !ok {
			return nil, nil
		}
		found = true

		r, err := p.engine.Settle(ctx, st, req.SessionID, req.TotalUsage(), req.SessionTime, sess.BucketID)
		if err != nil {
			return nil, err
		}
		res = r
		stopped, _ = st.FindSession(req.SessionID)
		st.RemoveSession(req.SessionID)
		p.queueGroupCharge(st, req.UserName, r)
		if r.Success && r.Disconnect {
			affected = st.ClearSessions()
		}
		return st, nil
	})
	if err != nil {
		return err
	}

	// 3. グループ所有のBalanceへの課金（未反映分を含む）
	groups, groupErr := p.settlePending(ctx, req.UserName)

	// 4. 加入者状態・セッションが無い場合は終了済みとして扱う
	if !found {
		slog.Info("accounting stop for unknown session",
			append(p.fields.AcctLogFields(req.TraceID, "ACCT_STOP", req.UserName, req.SessionID),
				"reason", "session_not_found",
			)...,
		)
		return groupErr
	}

	// 5. 最終残量をバケットDBへ反映
	errs := []error{groupErr}
	errs = append(errs, p.persistBalances(ctx, req, chargedBalances(req.UserName, res, groups)))

	// 6. 残量枯渇・切替時は他セッションへ切断指示
	disconnect := res.Success && res.Disconnect
	if !disconnect && groupExhausted(res, groups) {
		cleared, err := p.clearSessions(ctx, req.UserName)
		if err != nil {
			errs = append(errs, err)
		}
		affected = cleared
		disconnect = len(cleared) > 0
	}
	if disconnect {
		errs = append(errs, p.disconnect(ctx, req, affected, req.SessionID, disconnectReason(res)))
	}

	slog.Info("accounting stop",
		append(p.fields.AcctLogFields(req.TraceID, "ACCT_STOP", req.UserName, req.SessionID),
			logging.FieldBucketID, res.BucketID,
			"delta", res.Delta,
			"new_quota", res.NewQuota,
			"session_time", req.SessionTime,
			"settled", res.Success,
		)...,
	)

	// 7. CDR送信（非同期）
	p.emitCDR(ctx, event.CDRStop, req, stopped)
	return errors.Join(errs...)
}
