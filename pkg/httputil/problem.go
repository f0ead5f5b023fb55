// Package httputil はHTTP連携先とのやり取りに関するユーティリティを提供する。
package httputil

import (
	"encoding/json"
	"mime"
)

// ContentType はRFC 7807で定義されたContent-Typeヘッダー値。
const ContentType = "application/problem+json"

// ProblemDetail はRFC 7807準拠のエラーレスポンス構造体。
type ProblemDetail struct {
	Type   string `json:"type"`             // エラータイプのURI
	Title  string `json:"title"`            // エラータイトル
	Status int    `json:"status"`           // HTTPステータスコード
	Detail string `json:"detail,omitempty"` // 詳細説明
}

// String はログ出力用の要約を返す。
func (p *ProblemDetail) String() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Title + ": " + p.Detail
}

// ParseProblem はエラー応答のボディをProblemDetailとして解釈する。
// Content-Typeがapplication/problem+jsonでない場合やデコードできない場合はnilを返す。
func ParseProblem(contentType string, body []byte) *ProblemDetail {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != ContentType {
		return nil
	}
	var p ProblemDetail
	if err := json.Unmarshal(body, &p); err != nil {
		return nil
	}
	if p.Type == "" {
		p.Type = "about:blank"
	}
	return &p
}
