package logger

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006/01/02 15:04:05.000"

// Formatter はログエントリを1行のテキストに変換する logrus.Formatter.
//
//	[2006/01/02 15:04:05.000] INFO message fields={"k":"v"} error=...
type Formatter struct{}

var _ logrus.Formatter = (*Formatter)(nil)

// Format はログエントリを文字列に変換.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	timestamp := entry.Time.Format(timestampFormat)

	// 基本的なログフォーマット
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s", timestamp, strings.ToUpper(entry.Level.String()), entry.Message)

	fields := make(map[string]interface{}, len(entry.Data))
	var errText string
	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			if err, ok := v.(error); ok {
				errText = err.Error()
			} else {
				errText = fmt.Sprint(v)
			}
			continue
		}
		fields[k] = v
	}

	// フィールドの追加（存在する場合）
	if len(fields) > 0 {
		if data, err := json.Marshal(fields); err == nil {
			fmt.Fprintf(&b, " fields=%s", data)
		}
	}

	// エラーの追加（存在する場合）
	if errText != "" {
		fmt.Fprintf(&b, " error=%s", errText)
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}
