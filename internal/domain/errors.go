package domain

import "fmt"

// ErrInvalidURL はURLの解析エラー.
type ErrInvalidURL struct {
	URL    string
	Reason string
}

func (e *ErrInvalidURL) Error() string {
	return fmt.Sprintf("invalid url %q: %s", e.URL, e.Reason)
}

// ErrNotAllowed はアクセス拒否エラー. URL はブロックされたホップのURL.
type ErrNotAllowed struct {
	URL  string
	Host string
}

func (e *ErrNotAllowed) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("access to host %s is blocked", e.Host)
	}
	return fmt.Sprintf("%s: access to host %s is blocked", e.URL, e.Host)
}

// ErrConnectionFailed は接続失敗エラー.
// Stage は dial / tls / send / receive のいずれか.
// URL はトランスポート層では空で、フェッチ側で失敗したホップのURLが入る.
type ErrConnectionFailed struct {
	URL   string
	Host  string
	Stage string
	Err   error
}

func (e *ErrConnectionFailed) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("connection to host %s failed during %s: %v", e.Host, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: connection to host %s failed during %s: %v", e.URL, e.Host, e.Stage, e.Err)
}

func (e *ErrConnectionFailed) Unwrap() error {
	return e.Err
}

// ErrTooManyRedirects はリダイレクト上限超過エラー. URL は最初に要求したURL.
type ErrTooManyRedirects struct {
	URL  string
	Hops int
}

func (e *ErrTooManyRedirects) Error() string {
	return fmt.Sprintf("too many redirects (%d) while fetching %s", e.Hops, e.URL)
}

// ErrMalformedResponse はステータス行を解釈できないレスポンス.
type ErrMalformedResponse struct {
	URL        string
	StatusLine string
}

func (e *ErrMalformedResponse) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("malformed status line %q", e.StatusLine)
	}
	return fmt.Sprintf("%s: malformed status line %q", e.URL, e.StatusLine)
}
