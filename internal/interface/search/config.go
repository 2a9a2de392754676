package search

import "strings"

const (
	ProviderDuckDuckGo = "ddg"
	ProviderBrave      = "brave"
	DefaultSearchCount = 10
	MaxSearchCount     = 20
	DefaultTimeoutSecs = 15
)

var DefaultFallbackOrder = []string{
	ProviderBrave,
	ProviderDuckDuckGo,
}

// Config は検索プロバイダの選択と認証情報
type Config struct {
	Provider    string `mapstructure:"provider"`
	Count       int    `mapstructure:"count"`
	TimeoutSecs int    `mapstructure:"timeout_seconds"`

	BraveAPIKey  string `mapstructure:"brave_api_key"`
	BraveBaseURL string `mapstructure:"brave_base_url"`
	DDGBaseURL   string `mapstructure:"ddg_base_url"`
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.Provider) == "" {
		c.Provider = "auto"
	}
	if c.Count <= 0 {
		c.Count = DefaultSearchCount
	}
	if c.Count > MaxSearchCount {
		c.Count = MaxSearchCount
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	if c.BraveBaseURL == "" {
		c.BraveBaseURL = "https://api.search.brave.com/res/v1/web/search"
	}
	if c.DDGBaseURL == "" {
		c.DDGBaseURL = "https://api.duckduckgo.com/"
	}
	return c
}
