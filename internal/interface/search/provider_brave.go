package search

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

type braveProvider struct {
	apiKey      string
	baseURL     string
	timeoutSecs int
}

func newBraveProvider(cfg *Config) Provider {
	if strings.TrimSpace(cfg.BraveAPIKey) == "" {
		return nil
	}
	return &braveProvider{
		apiKey:      cfg.BraveAPIKey,
		baseURL:     cfg.BraveBaseURL,
		timeoutSecs: cfg.TimeoutSecs,
	}
}

func (p *braveProvider) Name() string {
	return ProviderBrave
}

func (p *braveProvider) Search(ctx context.Context, query string, count int) (*Response, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(count))

	data, err := getJSON(ctx, p.baseURL+"?"+params.Encode(), map[string]string{
		"X-Subscription-Token": p.apiKey,
	}, p.timeoutSecs)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON in search response")
	}

	resp := &Response{Query: query, Provider: ProviderBrave}
	gjson.GetBytes(data, "web.results").ForEach(func(_, item gjson.Result) bool {
		resp.Results = append(resp.Results, Result{
			Title:       strings.TrimSpace(item.Get("title").String()),
			URL:         item.Get("url").String(),
			Description: strings.TrimSpace(stripTags(item.Get("description").String())),
		})
		return true
	})
	return resp, nil
}

// Brave は説明文の一致箇所を <strong> で囲んで返す
func stripTags(s string) string {
	s = strings.ReplaceAll(s, "<strong>", "")
	return strings.ReplaceAll(s, "</strong>", "")
}
