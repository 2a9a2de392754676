package domain

import "time"

// CacheManager はレスポンスキャッシュのインターフェース.
// キーはリクエストしたURLそのもので、ファイル名への変換は実装側で行う.
type CacheManager interface {
	Lookup(url string) ([]byte, bool)
	Store(url string, data []byte) error
	Delete(url string) error
	Clear() error
}

// CacheEntry はキャッシュのエントリを表す.
type CacheEntry struct {
	Key       string
	Data      []byte
	CreatedAt time.Time
}
