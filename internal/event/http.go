package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/prepaid-acct-server/internal/breaker"
	"github.com/oyaguma3/prepaid-acct-server/internal/config"
	"github.com/sony/gobreaker"
)

// HTTPヘッダー
const (
	HeaderContentType = "Content-Type"
	HeaderEventID     = "X-Event-ID"
	ContentTypeJSON   = "application/json"
)

// HTTPForwarder はCDRをHTTPでPOST転送するCDRSink実装。
type HTTPForwarder struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	url        string
}

// NewHTTPForwarder は新しいHTTPForwarderを生成する。
func NewHTTPForwarder(url string) *HTTPForwarder {
	return &HTTPForwarder{
		httpClient: resty.New().SetTimeout(config.CDRHTTPTimeout),
		cb:         breaker.New(config.CBNameCDRForwarder),
		url:        strings.TrimRight(url, "/"),
	}
}

// ForwardCDR はCDRをPOSTする。
// 5xx応答と接続エラーはCircuit Breakerの失敗として計上する。
func (f *HTTPForwarder) ForwardCDR(ctx context.Context, cdr *CDREvent) error {
	start := time.Now()

	result, err := f.cb.Execute(func() (any, error) {
		resp, err := f.httpClient.R().
			SetContext(ctx).
			SetHeader(HeaderContentType, ContentTypeJSON).
			SetHeader(HeaderEventID, cdr.EventID).
			SetBody(cdr).
			Post(f.url)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
		}

		status := resp.StatusCode()
		if status >= 300 {
			fwdErr := newForwardError(status, resp.Header().Get(HeaderContentType), resp.Body())
			if status >= 500 {
				return nil, fwdErr
			}
			// CB失敗判定対象外
			return fwdErr, nil
		}

		slog.Debug("cdr forwarded",
			"event_id", "CDR_FORWARD",
			"cdr_event_id", cdr.EventID,
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil
	})
	if err != nil {
		if breaker.IsOpen(err) {
			return ErrCircuitOpen
		}
		return err
	}
	if fwdErr, ok := result.(*ForwardError); ok {
		return fwdErr
	}
	return nil
}
