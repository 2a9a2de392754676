package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"go2web/internal/domain"
	"go2web/internal/interface/wire"
)

// FetchConfig はフェッチの動作設定
type FetchConfig struct {
	UserAgent    string
	MaxRedirects int
	// StrictStatus が true の場合、解釈できないステータス行をエラーにする.
	// false なら 200 とみなす.
	StrictStatus bool
}

// FetchUseCase はURLを取得する唯一の入口を実装
type FetchUseCase struct {
	dialer        domain.Dialer
	cache         domain.CacheManager
	accessControl domain.AccessController
	metrics       domain.MetricsCollector
	logger        domain.Logger
	config        FetchConfig
}

// NewFetchUseCase は新しいFetchUseCaseインスタンスを作成
func NewFetchUseCase(
	dialer domain.Dialer,
	cache domain.CacheManager,
	accessControl domain.AccessController,
	metrics domain.MetricsCollector,
	logger domain.Logger,
	config FetchConfig,
) *FetchUseCase {
	if config.UserAgent == "" {
		config.UserAgent = wire.DefaultUserAgent
	}
	if config.MaxRedirects <= 0 {
		config.MaxRedirects = DefaultMaxRedirects
	}
	return &FetchUseCase{
		dialer:        dialer,
		cache:         cache,
		accessControl: accessControl,
		metrics:       metrics,
		logger:        logger,
		config:        config,
	}
}

// Fetch はURLを取得し、リダイレクトを追って最終的なレスポンスを返す.
// 各ホップはキャッシュを先に確認し、ネットワークから取得した場合は
// そのURLをキーに生のバイト列を保存する. 自動リトライは行わない.
func (uc *FetchUseCase) Fetch(ctx context.Context, rawURL string) (*domain.Response, error) {
	id := xid.New().String()
	uc.metrics.RecordFetch()

	target, err := wire.ParseURL(rawURL)
	if err != nil {
		uc.fail(id, rawURL, err)
		return nil, err
	}

	chain := NewRedirectChain(rawURL, target, uc.config.MaxRedirects)
	for {
		resp, err := uc.fetchOnce(ctx, id, chain.Current)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("%s: %w", rawURL, ctxErr)
			}
			uc.fail(id, rawURL, err)
			return nil, err
		}

		next, redirect, err := chain.Next(resp)
		if err != nil {
			uc.fail(id, rawURL, err)
			return nil, err
		}
		if !redirect {
			uc.logger.Info("Fetch complete", map[string]interface{}{
				"id":         id,
				"url":        resp.URL,
				"status":     resp.StatusCode,
				"hops":       chain.Hops,
				"from_cache": resp.FromCache,
				"bytes":      len(resp.Raw),
			})
			return resp, nil
		}

		uc.metrics.RecordRedirect()
		uc.logger.Debug("Following redirect", map[string]interface{}{
			"id":     id,
			"from":   resp.URL,
			"to":     next.String(),
			"status": resp.StatusCode,
			"hop":    chain.Hops,
		})
	}
}

// fetchOnce は1ホップ分を取得する. 接続は必ずこの中で閉じる.
func (uc *FetchUseCase) fetchOnce(
	ctx context.Context, id string, u domain.ParsedURL,
) (*domain.Response, error) {
	key := u.String()

	if data, ok := uc.cache.Lookup(key); ok {
		resp, err := wire.ParseResponse(data, uc.config.StrictStatus)
		if err == nil && wire.IsTruncated(resp) {
			err = errors.New("cached body is shorter than content-length")
		}
		if err == nil {
			uc.metrics.RecordCacheHit()
			uc.logger.Debug("Cache hit", map[string]interface{}{"id": id, "url": key})
			resp.URL = key
			resp.FromCache = true
			return resp, nil
		}
		uc.logger.Error("Ignoring unreadable cache entry", err, map[string]interface{}{"id": id, "url": key})
		if err := uc.cache.Delete(key); err != nil {
			uc.logger.Debug("Failed to delete cache entry", map[string]interface{}{"id": id, "error": err.Error()})
		}
	}
	uc.metrics.RecordCacheMiss()

	allowed, err := uc.accessControl.IsAllowed(u.Host)
	if err != nil {
		return nil, fmt.Errorf("%s: access control check failed: %w", key, err)
	}
	if !allowed {
		return nil, &domain.ErrNotAllowed{URL: key, Host: u.Host}
	}

	raw, err := uc.roundTrip(ctx, id, u)
	if err != nil {
		var connErr *domain.ErrConnectionFailed
		if errors.As(err, &connErr) && connErr.URL == "" {
			connErr.URL = key
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	resp, err := wire.ParseResponse(raw, uc.config.StrictStatus)
	if err != nil {
		var malformed *domain.ErrMalformedResponse
		if errors.As(err, &malformed) {
			malformed.URL = key
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	resp.URL = key

	// キャッシュの読み出し時と同じ基準で、途中で切れたレスポンスは保存しない
	if wire.IsTruncated(resp) {
		uc.logger.Info("Not caching truncated response", map[string]interface{}{
			"id":    id,
			"url":   key,
			"bytes": len(resp.Body),
		})
		return resp, nil
	}
	if err := uc.cache.Store(key, raw); err != nil {
		uc.logger.Error("Failed to store cache entry", err, map[string]interface{}{"id": id, "url": key})
	}
	return resp, nil
}

func (uc *FetchUseCase) roundTrip(ctx context.Context, id string, u domain.ParsedURL) ([]byte, error) {
	conn, err := uc.dialer.Connect(ctx, u.Host, u.Port, u.UseTLS())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			uc.logger.Debug("Error closing connection", map[string]interface{}{"id": id, "error": err.Error()})
		}
	}()

	req := wire.NewRequest(u, uc.config.UserAgent)
	req.ID = id

	uc.metrics.RecordRequest()
	uc.logger.Debug("Sending request", map[string]interface{}{
		"id":   id,
		"host": req.Host,
		"path": req.Path,
		"tls":  u.UseTLS(),
	})
	if err := conn.SendAll(wire.BuildRequest(req)); err != nil {
		return nil, err
	}

	raw, err := conn.ReceiveAll()
	uc.metrics.AddBytesReceived(int64(len(raw)))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, &domain.ErrConnectionFailed{
			Host:  u.Authority(),
			Stage: "receive",
			Err:   errors.New("server closed the connection without a response"),
		}
	}
	return raw, nil
}

func (uc *FetchUseCase) fail(id, rawURL string, err error) {
	uc.metrics.RecordError()
	uc.logger.Error("Fetch failed", err, map[string]interface{}{"id": id, "url": rawURL})
}
