package handler

import (
	"context"
	"fmt"
	"io"

	"go2web/internal/domain"
	"go2web/internal/interface/search"
)

// SearchHandler は --search の処理を行う.
// 検索自体はHTTPエンジンを通さず、結果を開く場合のみFetchHandlerを使う.
type SearchHandler struct {
	config *search.Config
	fetch  *FetchHandler
	logger domain.Logger
	out    io.Writer
}

// NewSearchHandler は新しいSearchHandlerインスタンスを作成
func NewSearchHandler(
	config *search.Config, fetch *FetchHandler, logger domain.Logger, out io.Writer,
) *SearchHandler {
	return &SearchHandler{
		config: config,
		fetch:  fetch,
		logger: logger,
		out:    out,
	}
}

// HandleSearch は検索結果を番号付きで出力する. open が 1 以上なら
// その番号の結果を取得して表示する.
func (h *SearchHandler) HandleSearch(ctx context.Context, query string, open int) error {
	resp, err := search.Search(ctx, query, h.config)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	h.logger.Info("Search complete", map[string]interface{}{
		"query":    resp.Query,
		"provider": resp.Provider,
		"results":  len(resp.Results),
	})

	if open > 0 {
		if open > len(resp.Results) {
			return fmt.Errorf("result %d does not exist (got %d results)", open, len(resp.Results))
		}
		return h.fetch.HandleURL(ctx, resp.Results[open-1].URL)
	}

	if len(resp.Results) == 0 {
		_, err := fmt.Fprintf(h.out, "No results for %q\n", resp.Query)
		return err
	}

	fmt.Fprintf(h.out, "Results for %q (%s):\n\n", resp.Query, resp.Provider)
	for i, result := range resp.Results {
		fmt.Fprintf(h.out, "%2d. %s\n    %s\n", i+1, result.Title, result.URL)
		if result.Description != "" {
			fmt.Fprintf(h.out, "    %s\n", result.Description)
		}
		fmt.Fprintln(h.out)
	}
	_, err = fmt.Fprintln(h.out, "Use --open N to fetch a result.")
	return err
}
