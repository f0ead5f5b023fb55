package fanout

import "errors"

// ErrFanOutTimeout は切断指示の一斉送信が期限内に完了しなかった場合のエラー
var ErrFanOutTimeout = errors.New("disconnect fan-out deadline exceeded")
