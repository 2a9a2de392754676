package wire

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"go2web/internal/domain"
)

var headerTerminator = []byte("\r\n\r\n")

// ParseResponse は受信した生バイト列をステータス・ヘッダー・ボディに分割する.
//
// 空行が無い場合は全体をヘッダー部として扱いボディは空になる.
// ステータス行が解釈できない場合、strict でなければ 200 とみなす.
func ParseResponse(raw []byte, strict bool) (*domain.Response, error) {
	head, body := raw, []byte{}
	if idx := bytes.Index(raw, headerTerminator); idx != -1 {
		head = raw[:idx]
		body = raw[idx+len(headerTerminator):]
	}

	lines := strings.Split(string(head), crlf)

	status, ok := parseStatusLine(lines[0])
	if !ok {
		if strict {
			return nil, &domain.ErrMalformedResponse{StatusLine: lines[0]}
		}
		status = http.StatusOK
	}

	headers := make(map[string]string, len(lines)-1)
	for _, line := range lines[1:] {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		headers[strings.ToLower(key)] = value
	}

	return &domain.Response{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
		Raw:        raw,
	}, nil
}

func parseStatusLine(line string) (int, bool) {
	fields := strings.Split(line, " ")
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return 0, false
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil || code < 100 || code > 999 {
		return 0, false
	}
	return code, true
}

// IsTruncated は content-length より短いボディを持つレスポンスかを返す.
// ヘッダーが無い、または数値でない場合は判定しない.
func IsTruncated(resp *domain.Response) bool {
	value, ok := resp.Header("content-length")
	if !ok {
		return false
	}
	length, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || length < 0 {
		return false
	}
	return len(resp.Body) < length
}
