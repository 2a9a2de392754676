package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go2web/internal/domain"
	"go2web/internal/interface/render"
)

// Fetcher はURLを取得するユースケース
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*domain.Response, error)
}

// FetchHandler は --url の処理を行い、取得した内容を端末向けに出力
type FetchHandler struct {
	fetcher Fetcher
	logger  domain.Logger
	out     io.Writer
}

// NewFetchHandler は新しいFetchHandlerインスタンスを作成
func NewFetchHandler(fetcher Fetcher, logger domain.Logger, out io.Writer) *FetchHandler {
	return &FetchHandler{
		fetcher: fetcher,
		logger:  logger,
		out:     out,
	}
}

// HandleURL はURLを取得してレンダリング結果を出力する.
// 4xx/5xx もそのまま描画し、ステータスだけ先頭に表示する.
func (h *FetchHandler) HandleURL(ctx context.Context, rawURL string) error {
	resp, err := h.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}

	text, err := render.Render(resp.Headers, resp.Body)
	if err != nil {
		var unrenderable *render.ErrUnrenderable
		if errors.As(err, &unrenderable) {
			h.logger.Info("Unrenderable response", map[string]interface{}{
				"url":          resp.URL,
				"status":       resp.StatusCode,
				"content_type": unrenderable.ContentType,
				"bytes":        len(resp.Body),
			})
		}
		return err
	}

	if resp.StatusCode >= 400 {
		fmt.Fprintf(h.out, "HTTP %d\n\n", resp.StatusCode)
	}
	_, err = fmt.Fprintln(h.out, strings.TrimRight(text, "\n"))
	return err
}
