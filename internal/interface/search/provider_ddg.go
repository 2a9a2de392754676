package search

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// ddgProvider は DuckDuckGo の Instant Answer API を使う. APIキーは不要.
type ddgProvider struct {
	baseURL     string
	timeoutSecs int
}

func newDDGProvider(cfg *Config) Provider {
	return &ddgProvider{baseURL: cfg.DDGBaseURL, timeoutSecs: cfg.TimeoutSecs}
}

func (p *ddgProvider) Name() string {
	return ProviderDuckDuckGo
}

func (p *ddgProvider) Search(ctx context.Context, query string, _ int) (*Response, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	data, err := getJSON(ctx, p.baseURL+"?"+params.Encode(), nil, p.timeoutSecs)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON in search response")
	}

	resp := &Response{Query: query, Provider: ProviderDuckDuckGo}
	doc := gjson.ParseBytes(data)
	if abstractURL := doc.Get("AbstractURL").String(); abstractURL != "" {
		resp.Results = append(resp.Results, Result{
			Title:       doc.Get("Heading").String(),
			URL:         abstractURL,
			Description: doc.Get("AbstractText").String(),
		})
	}

	var appendTopic func(topic gjson.Result)
	appendTopic = func(topic gjson.Result) {
		if text := topic.Get("Text").String(); text != "" {
			title, snippet := splitTopicText(text)
			resp.Results = append(resp.Results, Result{
				Title:       title,
				URL:         topic.Get("FirstURL").String(),
				Description: snippet,
			})
		}
		topic.Get("Topics").ForEach(func(_, child gjson.Result) bool {
			appendTopic(child)
			return true
		})
	}
	doc.Get("RelatedTopics").ForEach(func(_, topic gjson.Result) bool {
		appendTopic(topic)
		return true
	})

	return resp, nil
}

func splitTopicText(text string) (title string, snippet string) {
	parts := strings.SplitN(text, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return strings.TrimSpace(text), ""
}
