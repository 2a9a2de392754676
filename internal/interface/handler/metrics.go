package handler

import (
	"encoding/json"
	"fmt"
	"io"

	"go2web/internal/domain"
	"go2web/internal/usecase"
)

const (
	StatsFormatPrometheus = "prometheus"
	StatsFormatJSON       = "json"
)

// MetricsHandler は統計とキャッシュ管理のコマンドを処理
type MetricsHandler struct {
	metricsUseCase *usecase.MetricsUseCase
	cache          domain.CacheManager
	logger         domain.Logger
	out            io.Writer
}

// NewMetricsHandler は新しいMetricsHandlerインスタンスを作成
func NewMetricsHandler(
	metricsUseCase *usecase.MetricsUseCase,
	cache domain.CacheManager,
	logger domain.Logger,
	out io.Writer,
) *MetricsHandler {
	return &MetricsHandler{
		metricsUseCase: metricsUseCase,
		cache:          cache,
		logger:         logger,
		out:            out,
	}
}

// HandleStats は統計をPrometheus形式またはJSONで出力
func (h *MetricsHandler) HandleStats(format string) error {
	switch format {
	case "", StatsFormatPrometheus:
		_, err := io.WriteString(h.out, h.metricsUseCase.GetPrometheusMetrics())
		return err
	case StatsFormatJSON:
		encoder := json.NewEncoder(h.out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(h.metricsUseCase.GetMetricsSnapshot()); err != nil {
			h.logger.Error("Failed to encode metrics", err, nil)
			return err
		}
		return nil
	}
	return fmt.Errorf("unknown stats format %q", format)
}

// HandleClearCache はキャッシュを全て削除
func (h *MetricsHandler) HandleClearCache() error {
	if err := h.cache.Clear(); err != nil {
		h.logger.Error("Failed to clear cache", err, nil)
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	h.logger.Info("Cache cleared", nil)
	_, err := fmt.Fprintln(h.out, "Cache cleared.")
	return err
}
