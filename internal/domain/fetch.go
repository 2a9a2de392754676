package domain

import (
	"context"
	"strconv"
	"strings"
	"time"
)

const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"

	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443
)

// ParsedURL は解決済みのURLを表す. 値型として扱い、生成後は変更しない.
type ParsedURL struct {
	Scheme string
	Host   string
	Port   int
	Path   string
}

// UseTLS はTLSで接続すべきかを返す.
func (u ParsedURL) UseTLS() bool {
	return u.Scheme == SchemeHTTPS
}

// DefaultPort はスキームが既定ポートで接続しているかを返す.
func (u ParsedURL) DefaultPort() bool {
	return (u.Scheme == SchemeHTTP && u.Port == DefaultHTTPPort) ||
		(u.Scheme == SchemeHTTPS && u.Port == DefaultHTTPSPort)
}

// Authority は host[:port] を返す. 既定ポートは省略する.
func (u ParsedURL) Authority() string {
	host := u.Host
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if u.DefaultPort() {
		return host
	}
	return host + ":" + strconv.Itoa(u.Port)
}

// String はキャッシュキーやログに使う正規化済みURLを返す.
func (u ParsedURL) String() string {
	path := u.Path
	if path == "" {
		path = "/"
	}
	return u.Scheme + "://" + u.Authority() + path
}

// Request は送信するHTTP/1.1 GETリクエストを表す.
type Request struct {
	ID        string
	Method    string
	Path      string
	Host      string
	UserAgent string
	Accept    string
	CreatedAt time.Time
}

// Response はパース済みのレスポンスを表す.
type Response struct {
	URL        string
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Raw        []byte
	FromCache  bool
}

// Header はキーを小文字化してヘッダーを取得する.
func (r *Response) Header(key string) (string, bool) {
	if r == nil || r.Headers == nil {
		return "", false
	}
	v, ok := r.Headers[strings.ToLower(key)]
	return v, ok
}

// Connection は1回のリクエストで使い捨てる接続.
type Connection interface {
	SendAll(data []byte) error
	ReceiveAll() ([]byte, error)
	Close() error
}

// Dialer はTCP(必要に応じてTLS)接続を確立する.
type Dialer interface {
	Connect(ctx context.Context, host string, port int, useTLS bool) (Connection, error)
}
