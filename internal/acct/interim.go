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

// ProcessInterim はAcct-Interim処理を行う。
func (p *Processor) ProcessInterim(ctx context.Context, req *model.AccountingRequest) error {
	// 1. Stop済みセッションのInterimは破棄
	stopped, err := p.detector.IsStopped(ctx, req.SessionID)
	if err != nil {
		slog.Error("stop marker check failed",
			append(p.fields.AcctLogFields(req.TraceID, "VALKEY_CONN_ERR", req.UserName, req.SessionID),
				logging.WithError(err),
			)...,
		)
	} else if stopped {
		slog.Warn("interim after stop",
			append(p.fields.AcctLogFields(req.TraceID, "ACCT_SEQUENCE_ERR", req.UserName, req.SessionID),
				logging.FieldSrcIP, req.SrcIP,
				"reason", "interim_after_stop",
			)...,
		)
		return nil
	}

	// 2. セッション検索・作成、精算
	var (
		stale    bool
		created  bool
		revived  bool
		res      *settle.Result
		current  session.Session
		affected []session.Session
	)
	_, err = p.updateOrBootstrap(ctx, req, func(st *session.State) (*session.State, error) {
		stale, created, revived, res, affected = false, false, false, nil, nil

		sess, ok := st.FindSession(req.SessionID)
		if !ok {
			sess, ok = st.EndedSession(req.SessionID)
			if ok && req.SessionTime > sess.SessionTime {
				// 切断後も報告が続くセッションは終了時点の累計から課金を再開する
				st.ReviveSession(req.SessionID, p.now())
				revived = true
			}
		}
		switch {
		case ok && req.SessionTime <= sess.SessionTime:
			// 経過時間が進んでいない報告は再送・順序逆転として破棄する
			stale = true
			current = sess
			return nil, nil
		case !ok:
			st.AddSession(sessionFromRequest(req, p.now()))
			created = true
		}

		r, err := p.engine.Settle(ctx, st, req.SessionID, req.TotalUsage(), req.SessionTime, "")
		if err != nil {
			return nil, err
		}
		res = r
		current, _ = st.FindSession(req.SessionID)
		p.queueGroupCharge(st, req.UserName, r)
		if !r.Success || r.Disconnect {
			affected = st.ClearSessions()
		}
		return st, nil
	})
	if err != nil {
		if isRejection(err) {
			return p.reject(ctx, req, err)
		}
		return err
	}

	if stale {
		slog.Debug("stale interim discarded",
			append(p.fields.AcctLogFields(req.TraceID, "ACCT_STALE_INTERIM", req.UserName, req.SessionID),
				"session_time", req.SessionTime,
				"stored_session_time", current.SessionTime,
			)...,
		)
		// 前回の処理で反映できなかったグループ課金を反映する
		_, err := p.settlePending(ctx, req.UserName)
		return err
	}
	switch {
	case created:
		slog.Warn("interim without start",
			append(p.fields.AcctLogFields(req.TraceID, "ACCT_SEQUENCE_ERR", req.UserName, req.SessionID),
				"reason", "no_start_received",
			)...,
		)
	case revived:
		slog.Warn("interim after disconnect",
			append(p.fields.AcctLogFields(req.TraceID, "ACCT_SEQUENCE_ERR", req.UserName, req.SessionID),
				"reason", "interim_after_disconnect",
			)...,
		)
	}

	// 3. グループ所有のBalanceへの課金（未反映分を含む）
	groups, groupErr := p.settlePending(ctx, req.UserName)
	charged := chargedBalances(req.UserName, res, groups)

	// 4. 切断判定。グループ所有のBalanceは反映後の残量で判定する
	disconnect := !res.Success || res.Disconnect
	if !disconnect && groupExhausted(res, groups) {
		affected, err = p.clearSessions(ctx, req.UserName)
		if err != nil {
			return errors.Join(groupErr, err)
		}
		disconnect = true
	}

	// 5. 切断が必要な場合は全セッションへ切断指示
	if disconnect {
		reason := disconnectReason(res)
		slog.Warn("session disconnect required",
			append(p.fields.AcctLogFields(req.TraceID, disconnectEventID(res), req.UserName, req.SessionID),
				logging.FieldBucketID, res.BucketID,
				"previous_bucket_id", res.PreviousBucketID,
				"new_quota", res.NewQuota,
				"reason", reason,
			)...,
		)
		return errors.Join(
			groupErr,
			p.persistBalances(ctx, req, charged),
			p.disconnect(ctx, req, affected, "", reason),
		)
	}

	slog.Info("accounting interim",
		append(p.fields.AcctLogFields(req.TraceID, "ACCT_INTERIM", req.UserName, req.SessionID),
			logging.FieldBucketID, res.BucketID,
			"delta", res.Delta,
			"new_quota", res.NewQuota,
			"session_time", req.SessionTime,
		)...,
	)

	// 6. CDR送信（非同期）
	p.emitCDR(ctx, event.CDRInterim, req, current)
	return groupErr
}
