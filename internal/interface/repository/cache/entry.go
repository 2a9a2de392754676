package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint はURL文字列からキャッシュファイル名を決める.
// 同じURLは常に同じ値になる.
func Fingerprint(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
