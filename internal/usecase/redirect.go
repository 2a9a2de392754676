package usecase

import (
	"net/http"

	"go2web/internal/domain"
	"go2web/internal/interface/wire"
)

// DefaultMaxRedirects はリダイレクトを追う最大回数
const DefaultMaxRedirects = 5

// RedirectChain は1回のフェッチ中のリダイレクト状態を保持する.
type RedirectChain struct {
	OriginalURL string
	Current     domain.ParsedURL
	Hops        int
	Limit       int
}

// NewRedirectChain は新しいRedirectChainを作成
func NewRedirectChain(originalURL string, start domain.ParsedURL, limit int) *RedirectChain {
	if limit <= 0 {
		limit = DefaultMaxRedirects
	}
	return &RedirectChain{
		OriginalURL: originalURL,
		Current:     start,
		Limit:       limit,
	}
}

// Next はレスポンスを見て次に取りに行くURLを決める.
// リダイレクトでなければ redirect は false.
func (c *RedirectChain) Next(resp *domain.Response) (domain.ParsedURL, bool, error) {
	if !isRedirect(resp.StatusCode) {
		return domain.ParsedURL{}, false, nil
	}
	location, ok := resp.Header("location")
	if !ok || location == "" {
		return domain.ParsedURL{}, false, nil
	}

	next, err := wire.Resolve(c.Current, location)
	if err != nil {
		return domain.ParsedURL{}, false, err
	}

	c.Hops++
	if c.Hops > c.Limit {
		return domain.ParsedURL{}, false, &domain.ErrTooManyRedirects{URL: c.OriginalURL, Hops: c.Hops}
	}

	c.Current = next
	return next, true, nil
}

func isRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	}
	return false
}
