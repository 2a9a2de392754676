package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"go2web/internal/domain"
)

// Repository はロガーのリポジトリ実装.
type Repository struct {
	log    *logrus.Logger
	closer io.Closer
}

// Verify interface implementation.
var _ domain.Logger = (*Repository)(nil)

// New はローテーション付きのファイルに書き込むRepositoryを作成.
func New(directory, filename string, config *RotationConfig, level logrus.Level) (
	*Repository, error,
) {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, err
	}

	if config == nil {
		config = DefaultRotationConfig()
	}

	writer := newRotatingWriter(directory, filename, config)
	r := NewWithWriter(writer, level)
	r.closer = writer
	return r, nil
}

// NewWithWriter は任意の io.Writer に書き込むRepositoryを作成.
func NewWithWriter(w io.Writer, level logrus.Level) *Repository {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&Formatter{})
	log.SetLevel(level)
	return &Repository{log: log}
}

// Info はINFOレベルのログを記録.
func (r *Repository) Info(msg string, fields map[string]interface{}) {
	r.log.WithFields(fields).Info(msg)
}

// Error はERRORレベルのログを記録.
func (r *Repository) Error(
	msg string, err error, fields map[string]interface{},
) {
	entry := r.log.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}

// Debug はDEBUGレベルのログを記録.
func (r *Repository) Debug(msg string, fields map[string]interface{}) {
	r.log.WithFields(fields).Debug(msg)
}

// Close はロガーのリソースを解放.
func (r *Repository) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
