// Package fanout は加入者の複数セッションへの切断指示の一斉送信を行う。
package fanout

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/oyaguma3/prepaid-acct-server/internal/event"
	"github.com/oyaguma3/prepaid-acct-server/internal/retry"
	"github.com/oyaguma3/prepaid-acct-server/internal/session"
	"github.com/oyaguma3/prepaid-acct-server/pkg/logging"
	"golang.org/x/sync/errgroup"
)

// Outcome は一斉送信の結果。
type Outcome struct {
	Sent   int
	Failed int
}

// Disconnector は切断指示の一斉送信を行う。
type Disconnector struct {
	sender      event.DisconnectSender
	masker      *logging.Masker
	attempts    int
	backoff     retry.Backoff
	deadline    time.Duration
	concurrency int
	now         func() time.Time
}

// NewDisconnector は新しいDisconnectorを生成する。
func NewDisconnector(sender event.DisconnectSender, masker *logging.Masker) *Disconnector {
	if masker == nil {
		masker = logging.NewMasker(false)
	}
	return &Disconnector{
		sender:   sender,
		masker:   masker,
		attempts: 1 + config.DisconnectRetries,
		backoff: retry.Backoff{
			Initial:    config.DisconnectMinBackoff,
			Multiplier: 2,
			Jitter:     0.1,
			Max:        config.DisconnectMaxBackoff,
		},
		deadline:    config.DisconnectFanOutTimeout,
		concurrency: config.DisconnectConcurrency,
		now:         time.Now,
	}
}

// DisconnectAll はexcludedID以外の全セッションへ切断指示を送信する。
//
// 各送信は一時的な失敗に対して再試行し、最終的に失敗した送信はログ出力のみで
// 他セッションへの送信は継続する。全体が期限内に完了しない場合は ErrFanOutTimeout を返す。
func (d *Disconnector) DisconnectAll(ctx context.Context, sessions []session.Session, excludedID, userName, reason string) (Outcome, error) {
	targets := make([]session.Session, 0, len(sessions))
	for _, s := range sessions {
		if excludedID != "" && s.SessionID == excludedID {
			continue
		}
		targets = append(targets, s)
	}
	if len(targets) == 0 {
		return Outcome{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.deadline)
	defer cancel()

	var sent, failed atomic.Int64
	done := make(chan struct{})

	go func() {
		defer close(done)
		var g errgroup.Group
		g.SetLimit(d.concurrency)
		for _, s := range targets {
			s := s
			g.Go(func() error {
				if d.sendOne(ctx, s, userName, reason) {
					sent.Add(1)
				} else {
					failed.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-done:
		return Outcome{Sent: int(sent.Load()), Failed: int(failed.Load())}, nil
	case <-ctx.Done():
		out := Outcome{Sent: int(sent.Load()), Failed: int(failed.Load())}
		slog.Error("disconnect fan-out timed out",
			"event_id", "FANOUT_TIMEOUT",
			logging.FieldUserName, d.masker.UserName(userName),
			"targets", len(targets),
			"sent", out.Sent,
			"failed", out.Failed,
		)
		return out, fmt.Errorf("%w: %w", ErrFanOutTimeout, ctx.Err())
	}
}

// sendOne は1セッションへの切断指示を再試行付きで送信する。
func (d *Disconnector) sendOne(ctx context.Context, s session.Session, userName, reason string) bool {
	ev := event.NewDisconnectEvent(userName, s, reason, d.now())

	err := retry.Do(ctx, d.attempts, d.backoff, nil, func(ctx context.Context, attempt int) error {
		err := d.sender.SendDisconnect(ctx, ev)
		if err != nil && attempt < d.attempts-1 {
			slog.Warn("disconnect send retry",
				"event_id", "DISCONNECT_RETRY",
				logging.FieldAcctSessionID, s.SessionID,
				logging.FieldRetryCount, attempt+1,
				logging.FieldError, err.Error(),
			)
		}
		return err
	})
	if err != nil {
		slog.Error("disconnect send failed",
			"event_id", "DISCONNECT_FAILED",
			logging.FieldUserName, d.masker.UserName(userName),
			logging.FieldAcctSessionID, s.SessionID,
			"nas_ip", s.NasIP,
			logging.FieldError, err.Error(),
		)
		return false
	}

	slog.Info("disconnect sent",
		"event_id", "DISCONNECT_SENT",
		logging.FieldUserName, d.masker.UserName(userName),
		logging.FieldAcctSessionID, s.SessionID,
		"nas_ip", s.NasIP,
		"reason", reason,
	)
	return true
}
