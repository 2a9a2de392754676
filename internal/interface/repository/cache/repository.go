package cache

import (
	"errors"
	"os"
	"path/filepath"

	"go2web/internal/domain"
)

const fileSuffix = ".cache"

// Repository はディスク上のレスポンスキャッシュ実装.
// 1URLにつき1ファイルで、中身は受信したバイト列そのまま.
// プロセス間のロックは行わず、最後に書いたものが勝つ.
type Repository struct {
	baseDir string
}

// Verify interface implementation
var _ domain.CacheManager = (*Repository)(nil)

// New は新しいRepositoryインスタンスを作成.
// ディレクトリは最初の書き込み時に作成される.
func New(baseDir string) *Repository {
	return &Repository{baseDir: baseDir}
}

// Dir はキャッシュディレクトリを返す
func (r *Repository) Dir() string {
	return r.baseDir
}

// Lookup はキャッシュからデータを取得.
// 読めないファイルや空のファイルはミス扱い.
func (r *Repository) Lookup(url string) ([]byte, bool) {
	entry, err := r.readEntry(url)
	if err != nil {
		return nil, false
	}
	return entry.Data, true
}

// Store はキャッシュにデータを保存. 既存のエントリは無条件に上書きする.
func (r *Repository) Store(url string, data []byte) error {
	if err := os.MkdirAll(r.baseDir, 0755); err != nil {
		return err
	}
	return r.writeFile(Fingerprint(url), data)
}

// Delete はキャッシュからエントリを削除
func (r *Repository) Delete(url string) error {
	err := os.Remove(r.getFilePath(Fingerprint(url)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Clear は全てのキャッシュファイルを削除
func (r *Repository) Clear() error {
	files, err := filepath.Glob(filepath.Join(r.baseDir, "*"+fileSuffix))
	if err != nil {
		return err
	}

	var errs []error
	for _, f := range files {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Repository) readEntry(url string) (*domain.CacheEntry, error) {
	key := Fingerprint(url)
	path := r.getFilePath(key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// 中身の妥当性はフェッチ側がパースして判断する
	if len(data) == 0 {
		return nil, errors.New("empty cache entry")
	}

	return &domain.CacheEntry{
		Key:       key,
		Data:      data,
		CreatedAt: info.ModTime(),
	}, nil
}

func (r *Repository) getFilePath(key string) string {
	return filepath.Join(r.baseDir, key+fileSuffix)
}

// writeFile は一時ファイルに書いてからリネームする
func (r *Repository) writeFile(key string, data []byte) error {
	tmp, err := os.CreateTemp(r.baseDir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, r.getFilePath(key)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
