// Package search は外部のWeb検索APIを呼び出す. 手書きのHTTPエンジンは通さない.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result は正規化された検索結果
type Result struct {
	Title       string
	URL         string
	Description string
}

// Response は正規化された検索レスポンス
type Response struct {
	Query    string
	Provider string
	Results  []Result
}

// Provider は検索バックエンドごとの実装
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, count int) (*Response, error)
}

// Search は設定されたプロバイダで検索し、失敗したら
// DefaultFallbackOrder の残りのプロバイダを順に試す.
func Search(ctx context.Context, query string, cfg *Config) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("missing query")
	}
	cfg = cfg.WithDefaults()

	providers := map[string]Provider{}
	if p := newBraveProvider(cfg); p != nil {
		providers[p.Name()] = p
	}
	if p := newDDGProvider(cfg); p != nil {
		providers[p.Name()] = p
	}

	var lastErr error
	for _, name := range buildOrder(cfg) {
		provider := providers[name]
		if provider == nil {
			continue
		}
		resp, err := provider.Search(ctx, query, cfg.Count)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", name, err)
			continue
		}
		if len(resp.Results) > cfg.Count {
			resp.Results = resp.Results[:cfg.Count]
		}
		return resp, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.New("no search providers available")
}

func buildOrder(cfg *Config) []string {
	order := make([]string, 0, len(DefaultFallbackOrder)+1)
	if p := strings.TrimSpace(cfg.Provider); p != "" && p != "auto" {
		order = append(order, p)
	}
	for _, name := range DefaultFallbackOrder {
		if name != cfg.Provider {
			order = append(order, name)
		}
	}
	return order
}

func getJSON(ctx context.Context, url string, headers map[string]string, timeoutSecs int) ([]byte, error) {
	client := &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
