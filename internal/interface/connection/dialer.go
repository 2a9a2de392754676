package connection

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"strconv"
	"time"

	"go2web/internal/domain"
)

const (
	receiveChunkSize   = 4096
	defaultDialTimeout = 10 * time.Second
)

// Manager は1リクエスト1接続の方針で接続を確立する. プールは持たない.
type Manager struct {
	dialTimeout time.Duration
	readTimeout time.Duration
	tlsConfig   *tls.Config
}

var _ domain.Dialer = (*Manager)(nil)

// NewManager は新しいManagerインスタンスを作成.
// readTimeout が 0 の場合、受信はサーバーが接続を閉じるまでブロックする.
func NewManager(dialTimeout, readTimeout time.Duration) *Manager {
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}
	return &Manager{
		dialTimeout: dialTimeout,
		readTimeout: readTimeout,
	}
}

// WithTLSConfig はTLS設定を差し替える. ServerName は接続ごとに上書きされる.
func (m *Manager) WithTLSConfig(cfg *tls.Config) *Manager {
	m.tlsConfig = cfg
	return m
}

// Connect はTCP接続を確立し、useTLS ならハンドシェイクまで行う.
// 証明書はシステムのトラストストアで host に対して検証される.
func (m *Manager) Connect(
	ctx context.Context, host string, port int, useTLS bool,
) (domain.Connection, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	dialer := &net.Dialer{Timeout: m.dialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &domain.ErrConnectionFailed{Host: addr, Stage: "dial", Err: err}
	}

	if useTLS {
		cfg := m.clientTLSConfig(host)
		tlsConn := tls.Client(conn, cfg)

		hsCtx, cancel := context.WithTimeout(ctx, m.dialTimeout)
		defer cancel()
		if err := tlsConn.HandshakeContext(hsCtx); err != nil {
			conn.Close()
			return nil, &domain.ErrConnectionFailed{Host: addr, Stage: "tls", Err: err}
		}
		conn = tlsConn
	}

	c := &Conn{
		conn:        conn,
		addr:        addr,
		readTimeout: m.readTimeout,
	}
	// キャンセルされたら接続を閉じてブロック中の読み込みを解除
	c.stop = context.AfterFunc(ctx, func() { conn.Close() })

	return c, nil
}

func (m *Manager) clientTLSConfig(host string) *tls.Config {
	if m.tlsConfig != nil {
		cfg := m.tlsConfig.Clone()
		cfg.ServerName = host
		return cfg
	}
	return &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
}

// Conn は確立済みの接続.
type Conn struct {
	conn        net.Conn
	addr        string
	readTimeout time.Duration
	stop        func() bool
}

var _ domain.Connection = (*Conn)(nil)

// SendAll はデータをすべて書き込む.
func (c *Conn) SendAll(data []byte) error {
	for len(data) > 0 {
		n, err := c.conn.Write(data)
		if err != nil {
			return &domain.ErrConnectionFailed{Host: c.addr, Stage: "send", Err: err}
		}
		data = data[n:]
	}
	return nil
}

// ReceiveAll は相手が接続を閉じるまで固定長チャンクで読み続ける.
// Connection: close 前提の終端判定で、Content-Length やチャンク転送は見ない.
func (c *Conn) ReceiveAll() ([]byte, error) {
	var data []byte
	buf := make([]byte, receiveChunkSize)
	for {
		if c.readTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(c.readTimeout))
		}
		n, err := c.conn.Read(buf)
		data = append(data, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return data, nil
			}
			return data, &domain.ErrConnectionFailed{Host: c.addr, Stage: "receive", Err: err}
		}
	}
}

// Close は接続を解放する. 複数回呼んでも安全.
func (c *Conn) Close() error {
	if c.stop != nil {
		c.stop()
	}
	err := c.conn.Close()
	if isConnectionClosed(err) {
		return nil
	}
	return err
}

// isConnectionClosed は接続が既に閉じられているかを判断
func isConnectionClosed(err error) bool {
	return err == nil || errors.Is(err, net.ErrClosed)
}
