package apperr

import "fmt"

// ValidationError はバリデーションエラーを表す。
// 不正なバケット設定値など、リトライしても解消しないデータ品質の問題に使用する。
type ValidationError struct {
	Field   string // エラーが発生したフィールド名
	Message string // エラーメッセージ
	Cause   error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field=%s, message=%s", e.Field, e.Message)
}

// Unwrap は根本原因を返す。
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, message string, cause error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// DatabaseError はバケットDBへの操作エラーを表す。
// Stageは失敗した段階（query, scan, rows）を示す。
type DatabaseError struct {
	Stage string
	Cause error
}

// Error はerrorインターフェースを実装する。
func (e *DatabaseError) Error() string {
	if e.Cause == nil {
		return "database error: stage=" + e.Stage
	}
	return fmt.Sprintf("database error: stage=%s, cause=%v", e.Stage, e.Cause)
}

// Unwrap は根本原因を返す。
func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// NewDatabaseError はDatabaseErrorを生成する。
func NewDatabaseError(stage string, cause error) *DatabaseError {
	return &DatabaseError{Stage: stage, Cause: cause}
}

// ValkeyError はValkeyとの操作エラーを表す。
type ValkeyError struct {
	Operation string // 操作名（GET, SET, WATCH等）
	Key       string // 操作対象のキー
	Cause     error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *ValkeyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("valkey error: operation=%s, key=%s, cause=%v",
			e.Operation, e.Key, e.Cause)
	}
	return fmt.Sprintf("valkey error: operation=%s, key=%s", e.Operation, e.Key)
}

// Unwrap は根本原因を返す。
func (e *ValkeyError) Unwrap() error {
	return e.Cause
}

// NewValkeyError はValkeyErrorを生成する。
func NewValkeyError(operation, key string, cause error) *ValkeyError {
	return &ValkeyError{
		Operation: operation,
		Key:       key,
		Cause:     cause,
	}
}
