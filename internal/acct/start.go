package acct

import (
	"context"
	"errors"
	"log/slog"

	"github.com/oyaguma3/prepaid-acct-server/internal/event"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
	"github.com/oyaguma3/prepaid-acct-server/pkg/logging"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

// ProcessStart はAcct-Start処理を行う。
func (p *Processor) ProcessStart(ctx context.Context, req *model.AccountingRequest) error {
	// 1. 順序異常検出
	if err := p.detector.CheckStart(ctx, req.SessionID); err != nil {
		var seqErr *SequenceError
		if errors.As(err, &seqErr) {
			slog.Warn("sequence error",
				append(p.fields.AcctLogFields(req.TraceID, "ACCT_SEQUENCE_ERR", req.UserName, req.SessionID),
					logging.FieldSrcIP, req.SrcIP,
					"reason", seqErr.Reason,
				)...,
			)
		} else {
			slog.Error("stop marker check failed",
				append(p.fields.AcctLogFields(req.TraceID, "VALKEY_CONN_ERR", req.UserName, req.SessionID),
					logging.WithError(err),
				)...,
			)
		}
	}

	// 2. セッション登録（状態が無ければバケットDBから構築）
	var (
		duplicate bool
		started   session.Session
	)
	_, err := p.updateOrBootstrap(ctx, req, func(st *session.State) (*session.State, error) {
		duplicate = false
		started = sessionFromRequest(req, p.now())
		// 切断処理で削除したセッションのStartは再送として扱う
		if _, ended := st.EndedSession(req.SessionID); ended || !st.AddSession(started) {
			duplicate = true
			return nil, nil
		}
		return st, nil
	})
	if err != nil {
		if isRejection(err) {
			return p.reject(ctx, req, err)
		}
		return err
	}

	// 3. 重複Startは状態を変更しない
	if duplicate {
		slog.Warn("duplicate accounting start",
			append(p.fields.AcctLogFields(req.TraceID, "ACCT_DUPLICATE_START", req.UserName, req.SessionID),
				logging.FieldSrcIP, req.SrcIP,
			)...,
		)
		return nil
	}

	slog.Info("accounting start",
		append(p.fields.AcctLogFields(req.TraceID, "ACCT_START", req.UserName, req.SessionID),
			logging.FieldSrcIP, req.SrcIP,
			"nas_ip", req.NasIP,
			"framed_ip", req.FramedIP,
		)...,
	)

	// 4. CDR送信（非同期）
	p.emitCDR(ctx, event.CDRStart, req, started)
	return nil
}
