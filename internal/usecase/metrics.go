package usecase

import (
	"fmt"

	"go2web/internal/domain"
)

// MetricsUseCase はフェッチ統計の参照と保存を実装
type MetricsUseCase struct {
	metrics domain.MetricsCollector
	logger  domain.Logger
}

// NewMetricsUseCase は新しいMetricsUseCaseインスタンスを作成
func NewMetricsUseCase(
	metrics domain.MetricsCollector, logger domain.Logger,
) *MetricsUseCase {
	return &MetricsUseCase{
		metrics: metrics,
		logger:  logger,
	}
}

// Flush は現在のメトリクスを保存
func (uc *MetricsUseCase) Flush() error {
	// メトリクスの保存処理をリポジトリに委譲
	saver, ok := uc.metrics.(interface{ Save() error })
	if !ok {
		return nil
	}
	if err := saver.Save(); err != nil {
		uc.logger.Error("Failed to save metrics", err, nil)
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	return nil
}

// GetMetricsSnapshot は現在のメトリクスのスナップショットを取得
func (uc *MetricsUseCase) GetMetricsSnapshot() *domain.MetricsSnapshot {
	return uc.metrics.GetSnapshot()
}

// GetPrometheusMetrics はPrometheus形式のメトリクスを取得
func (uc *MetricsUseCase) GetPrometheusMetrics() string {
	return uc.GetMetricsSnapshot().ToPrometheusFormat()
}
