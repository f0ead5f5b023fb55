package event

import (
	"errors"
	"fmt"

	"github.com/oyaguma3/prepaid-acct-server/pkg/httputil"
)

var (
	// ErrPublishFailed はイベントの発行に失敗した場合のエラー
	ErrPublishFailed = errors.New("event publish failed")

	// ErrCircuitOpen はCircuit BreakerがOpen状態の場合のエラー
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ForwardError はCDR転送先がエラー応答を返した場合のエラー。
// 転送先がapplication/problem+jsonを返した場合はProblemに格納する。
type ForwardError struct {
	StatusCode int
	Body       string
	Problem    *httputil.ProblemDetail
}

// Error はerrorインターフェースを実装する。
func (e *ForwardError) Error() string {
	if e.Problem != nil {
		return fmt.Sprintf("cdr forward failed: status=%d problem=%s", e.StatusCode, e.Problem)
	}
	return fmt.Sprintf("cdr forward failed: status=%d body=%s", e.StatusCode, e.Body)
}

func newForwardError(status int, contentType string, body []byte) *ForwardError {
	return &ForwardError{
		StatusCode: status,
		Body:       string(body),
		Problem:    httputil.ParseProblem(contentType, body),
	}
}
