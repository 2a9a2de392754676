package config

import (
	"github.com/spf13/pflag"
)

// CliArgs は実行する処理を選ぶコマンドライン引数
type CliArgs struct {
	URL        string
	Search     string
	Open       int
	ClearCache bool
	Stats      bool
	StatsFmt   string
	ConfigFile string
	EnvFile    string
	Debug      bool
	Help       bool
}

// NewFlagSet はコマンドラインフラグを定義する.
// --cache-dir などの設定系フラグは Load で viper 経由で読み出す.
func NewFlagSet(name string) (*pflag.FlagSet, *CliArgs) {
	args := &CliArgs{}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	fs.StringVarP(&args.URL, "url", "u", "", "Fetch content from a URL")
	fs.StringVarP(&args.Search, "search", "s", "", "Search the web for a query")
	fs.IntVar(&args.Open, "open", 0, "With --search, fetch and show result number N")
	fs.BoolVar(&args.ClearCache, "clear-cache", false, "Remove all cached responses")
	fs.BoolVar(&args.Stats, "stats", false, "Print fetch statistics")
	fs.StringVar(&args.StatsFmt, "stats-format", "prometheus", "Statistics format: prometheus or json")
	fs.StringVar(&args.ConfigFile, "config", "", "Path to the config file")
	fs.StringVar(&args.EnvFile, "env-file", ".env", "Path to a dotenv file with credentials")
	fs.BoolVarP(&args.Debug, "debug", "d", false, "Enable debug logging")
	fs.BoolVarP(&args.Help, "help", "h", false, "Show this help")

	fs.String("cache-dir", defaultCacheDir, "Cache directory")
	fs.String("log-dir", defaultLogDir, "Log directory")
	fs.String("user-agent", defaultUserAgent, "User-Agent header value")
	fs.Int("max-redirects", defaultMaxRedirects, "Maximum number of redirects to follow")
	fs.Bool("strict-status", false, "Fail on responses with a malformed status line")

	return fs, args
}

// flagKeys は設定系フラグと設定キーの対応
var flagKeys = map[string]string{
	"cache-dir":     "cache_dir",
	"log-dir":       "log_dir",
	"user-agent":    "user_agent",
	"max-redirects": "max_redirects",
	"strict-status": "strict_status",
	"debug":         "debug",
}
