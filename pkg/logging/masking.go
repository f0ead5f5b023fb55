// Package logging はログ関連のユーティリティを提供する。
package logging

import "strings"

// MaskUserName はユーザー名をマスキングする。
// ローカル部は先頭3文字 + マスク + 末尾1文字、@以降のレルムはそのまま残す。
// 例: subscriber01@example.net → sub********1@example.net
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskUserName(userName string, enabled bool) string {
	if !enabled {
		return userName
	}
	local, realm, found := strings.Cut(userName, "@")
	masked := MaskPartial(local, 3, 1, '*')
	if found {
		return masked + "@" + realm
	}
	return masked
}

// MaskPartial は文字列の一部をマスキングする。
// keepPrefix: 先頭から保持する文字数
// keepSuffix: 末尾から保持する文字数
// maskChar: マスキングに使用する文字
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	length := len(runes)

	// 文字列が短すぎる場合はそのまま返す
	if length <= keepPrefix+keepSuffix {
		return s
	}

	result := make([]rune, length)
	copy(result, runes[:keepPrefix])
	for i := keepPrefix; i < length-keepSuffix; i++ {
		result[i] = maskChar
	}
	copy(result[length-keepSuffix:], runes[length-keepSuffix:])

	return string(result)
}

// Masker はマスキング設定を保持する構造体。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// UserName はユーザー名をマスキングする。
func (m *Masker) UserName(userName string) string {
	return MaskUserName(userName, m.enabled)
}

// IsEnabled はマスキングが有効かどうかを返す。
func (m *Masker) IsEnabled() bool {
	return m.enabled
}
