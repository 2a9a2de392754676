package handler

import (
	"context"
	"errors"
	"fmt"

	"go2web/internal/domain"
	"go2web/internal/interface/render"
)

// Describe はエラーを利用者向けの1行メッセージに変換する
func Describe(err error) string {
	var (
		invalidURL   *domain.ErrInvalidURL
		notAllowed   *domain.ErrNotAllowed
		connFailed   *domain.ErrConnectionFailed
		tooMany      *domain.ErrTooManyRedirects
		malformed    *domain.ErrMalformedResponse
		unrenderable *render.ErrUnrenderable
	)

	switch {
	case errors.Is(err, context.Canceled):
		return "interrupted"
	case errors.As(err, &invalidURL):
		return fmt.Sprintf("invalid URL %q: %s", invalidURL.URL, invalidURL.Reason)
	case errors.As(err, &notAllowed):
		return fmt.Sprintf("access to %s is blocked by the blocklist%s", notAllowed.Host, whileFetching(notAllowed.URL))
	case errors.As(err, &connFailed):
		return fmt.Sprintf("could not %s %s%s: %v",
			connectionVerb(connFailed.Stage), connFailed.Host, whileFetching(connFailed.URL), connFailed.Err)
	case errors.As(err, &tooMany):
		return fmt.Sprintf("too many redirects (more than %d) while fetching %s", tooMany.Hops-1, tooMany.URL)
	case errors.As(err, &malformed):
		return fmt.Sprintf("server sent a malformed status line%s: %q", whileFetching(malformed.URL), malformed.StatusLine)
	case errors.As(err, &unrenderable):
		return unrenderable.Error()
	}
	return err.Error()
}

func connectionVerb(stage string) string {
	switch stage {
	case "dial":
		return "connect to"
	case "tls":
		return "establish TLS with"
	case "send":
		return "send request to"
	case "receive":
		return "read response from"
	}
	return "reach"
}

func whileFetching(url string) string {
	if url == "" {
		return ""
	}
	return " while fetching " + url
}
