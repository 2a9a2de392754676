// internal/interface/repository/access/repository.go
package access

import (
	"fmt"
	"strings"
	"sync"

	"go2web/internal/domain"
)

// Repository はフェッチ先ホストのブロックリスト実装
type Repository struct {
	mu             sync.RWMutex
	configFile     string
	blockedDomains map[string]bool
	logger         domain.Logger
}

var _ domain.AccessController = (*Repository)(nil)

// New は新しいRepositoryインスタンスを作成.
// configFile が空の場合は何もブロックしない.
func New(configFile string, logger domain.Logger) (*Repository, error) {
	r := &Repository{
		configFile:     configFile,
		blockedDomains: make(map[string]bool),
		logger:         logger,
	}

	if err := r.Reload(); err != nil {
		return nil, err
	}

	return r, nil
}

// IsAllowed は指定されたホストへのアクセスが許可されているか確認
func (r *Repository) IsAllowed(host string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if r.blockedDomains[host] {
		r.logger.Info("Blocked domain access attempt", map[string]interface{}{"host": host})
		return false, nil
	}

	// ワイルドカードドメインのチェック
	parts := strings.Split(host, ".")
	for i := 0; i < len(parts)-1; i++ {
		wildcard := "*." + strings.Join(parts[i+1:], ".")
		if r.blockedDomains[wildcard] {
			r.logger.Info("Blocked wildcard domain access attempt", map[string]interface{}{
				"host":    host,
				"pattern": wildcard,
			})
			return false, nil
		}
	}

	return true, nil
}

// Reload は設定を再読み込み
func (r *Repository) Reload() error {
	if r.configFile == "" {
		return nil
	}

	config, err := loadConfigFile(r.configFile)
	if err != nil {
		return fmt.Errorf("failed to load blocklist %s: %w", r.configFile, err)
	}
	domains := config.prepare()

	r.mu.Lock()
	r.blockedDomains = domains
	r.mu.Unlock()

	r.logger.Debug("Loaded blocklist", map[string]interface{}{
		"file":    r.configFile,
		"domains": len(domains),
	})
	return nil
}
