package acct

import (
	"context"
	"log/slog"

	"github.com/oyaguma3/prepaid-acct-server/internal/event"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
	"github.com/oyaguma3/prepaid-acct-server/pkg/logging"
	"github.com/oyaguma3/prepaid-acct-server/pkg/model"
)

// emitCDR はCDRを非同期に送信する。失敗はログ出力のみで呼び出し元には返さない。
func (p *Processor) emitCDR(ctx context.Context, kind event.CDRKind, req *model.AccountingRequest, sess session.Session) {
	cdr := event.BuildCDR(kind, usageReport(req), sess, p.now())

	p.cdrWG.Add(1)
	go func() {
		defer p.cdrWG.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cdrTimeout)
		defer cancel()

		if err := p.producer.PublishCDR(ctx, cdr); err != nil {
			slog.Error("cdr send failed",
				append(p.fields.AcctLogFields(req.TraceID, "CDR_SEND_ERR", req.UserName, req.SessionID),
					"cdr_id", cdr.EventID,
					logging.WithError(err),
				)...,
			)
		}
	}()
}

// usageReport は報告内容をCDR生成用に変換する。
func usageReport(req *model.AccountingRequest) *event.UsageReport {
	return &event.UsageReport{
		UserName:        req.UserName,
		SessionID:       req.SessionID,
		NasIP:           req.NasIP,
		NasPortID:       req.NasPortID,
		NasIdentifier:   req.NasIdentifier,
		FramedIP:        req.FramedIP,
		SessionTime:     req.SessionTime,
		InputOctets:     req.InputOctets,
		OutputOctets:    req.OutputOctets,
		InputGigawords:  req.InputGigawords,
		OutputGigawords: req.OutputGigawords,
	}
}
