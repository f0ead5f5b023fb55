package session

import "errors"

// ErrSessionNotFound は加入者状態に指定のセッションが登録されていない場合のエラー
var ErrSessionNotFound = errors.New("session not found in subscriber state")
