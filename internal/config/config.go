package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"go2web/internal/interface/search"
)

const (
	envPrefix           = "GO2WEB"
	defaultCacheDir     = "cache"
	defaultLogDir       = "logs"
	defaultUserAgent    = "go2web/0.1"
	defaultMaxRedirects = 5
)

// Config はアプリケーション全体の設定
type Config struct {
	CacheDir      string        `mapstructure:"cache_dir"`
	LogDir        string        `mapstructure:"log_dir"`
	StatsFile     string        `mapstructure:"stats_file"`
	BlocklistFile string        `mapstructure:"blocklist_file"`
	UserAgent     string        `mapstructure:"user_agent"`
	MaxRedirects  int           `mapstructure:"max_redirects"`
	DialTimeout   time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout   time.Duration `mapstructure:"read_timeout"`
	StrictStatus  bool          `mapstructure:"strict_status"`
	Debug         bool          `mapstructure:"debug"`

	Search search.Config `mapstructure:"search"`
}

// Load は設定を読み込む. 優先度の低い順に、デフォルト値、設定ファイル、
// .env ファイル、環境変数、コマンドラインフラグ.
func Load(fs *pflag.FlagSet, args *CliArgs) (*Config, error) {
	v := viper.New()

	v.SetDefault("cache_dir", defaultCacheDir)
	v.SetDefault("log_dir", defaultLogDir)
	v.SetDefault("stats_file", "")
	v.SetDefault("blocklist_file", "")
	v.SetDefault("user_agent", defaultUserAgent)
	v.SetDefault("max_redirects", defaultMaxRedirects)
	v.SetDefault("dial_timeout", "10s")
	v.SetDefault("read_timeout", "0s")
	v.SetDefault("strict_status", false)
	v.SetDefault("debug", false)
	v.SetDefault("search.provider", "auto")
	v.SetDefault("search.count", search.DefaultSearchCount)
	v.SetDefault("search.timeout_seconds", search.DefaultTimeoutSecs)
	v.SetDefault("search.brave_api_key", "")
	v.SetDefault("search.brave_base_url", "")
	v.SetDefault("search.ddg_base_url", "")

	if err := readConfigFile(v, args.ConfigFile); err != nil {
		return nil, err
	}
	if err := loadEnvFile(args.EnvFile); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("search.brave_api_key", envPrefix+"_SEARCH_BRAVE_API_KEY", "BRAVE_API_KEY"); err != nil {
		return nil, err
	}

	for name, key := range flagKeys {
		if flag := fs.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.StatsFile == "" {
		cfg.StatsFile = filepath.Join(cfg.LogDir, "stats.json")
	}

	// 設定値の検証
	if strings.TrimSpace(cfg.CacheDir) == "" {
		return nil, errors.New("cache_dir is required")
	}
	if cfg.MaxRedirects < 1 {
		return nil, fmt.Errorf("max_redirects must be at least 1, got %d", cfg.MaxRedirects)
	}
	if cfg.DialTimeout < 0 || cfg.ReadTimeout < 0 {
		return nil, errors.New("timeouts must not be negative")
	}

	return &cfg, nil
}

// readConfigFile は指定された設定ファイルを読む. 指定が無ければ
// カレントディレクトリかユーザー設定ディレクトリの go2web.yaml を探す.
func readConfigFile(v *viper.Viper, file string) error {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	v.SetConfigName("go2web")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "go2web"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// loadEnvFile は .env ファイルの変数のうち未設定のものを環境変数に設定する.
// ファイルが無い場合はエラーにしない.
func loadEnvFile(file string) error {
	if file == "" {
		return nil
	}
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	ev := viper.New()
	ev.SetConfigFile(file)
	ev.SetConfigType("env")
	if err := ev.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading env file %s: %w", file, err)
	}

	for key, value := range ev.AllSettings() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}
