package wire

import (
	"bytes"
	"time"

	"go2web/internal/domain"
)

const (
	DefaultUserAgent = "go2web/0.1"
	acceptHeader     = "application/json, text/html"
	crlf             = "\r\n"
)

// NewRequest は ParsedURL から GET リクエストを組み立てる.
func NewRequest(u domain.ParsedURL, userAgent string) domain.Request {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	return domain.Request{
		Method:    "GET",
		Path:      path,
		Host:      u.Authority(),
		UserAgent: userAgent,
		Accept:    acceptHeader,
		CreatedAt: time.Now(),
	}
}

// BuildRequest はリクエスト行とヘッダーブロックをバイト列にする.
// Connection: close は固定で、レスポンスの終端は接続のクローズで判断する.
func BuildRequest(req domain.Request) []byte {
	path := req.Path
	if path == "" {
		path = "/"
	}

	var buf bytes.Buffer
	buf.WriteString("GET " + path + " HTTP/1.1" + crlf)
	buf.WriteString("Host: " + req.Host + crlf)
	buf.WriteString("User-Agent: " + req.UserAgent + crlf)
	buf.WriteString("Accept: " + req.Accept + crlf)
	buf.WriteString("Connection: close" + crlf)
	buf.WriteString(crlf)
	return buf.Bytes()
}
