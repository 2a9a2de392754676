// Package render は取得したレスポンスのボディを端末向けのテキストに変換する.
package render

import (
	"fmt"
	"strings"
)

// ErrUnrenderable は描画できないコンテンツタイプのエラー
type ErrUnrenderable struct {
	ContentType string
}

func (e *ErrUnrenderable) Error() string {
	if e.ContentType == "" {
		return "cannot render response without a content type"
	}
	return fmt.Sprintf("cannot render content type %q", e.ContentType)
}

// Render は content-type ヘッダーに応じて描画方法を選ぶ
func Render(headers map[string]string, body []byte) (string, error) {
	contentType := strings.ToLower(headers["content-type"])
	switch {
	case strings.Contains(contentType, "application/json"):
		return JSON(body), nil
	case strings.Contains(contentType, "text/html"):
		return HTML(body)
	}
	return "", &ErrUnrenderable{ContentType: normalizeContentType(headers["content-type"])}
}

func normalizeContentType(value string) string {
	parts := strings.Split(value, ";")
	return strings.TrimSpace(parts[0])
}
