// Package wire はHTTP/1.1の手書きのシリアライズとパースを提供する.
package wire

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/idna"

	"go2web/internal/domain"
)

// ParseURL は入力文字列を ParsedURL に解決する.
// ホストが無い場合や http/https 以外のスキームは ErrInvalidURL になる.
func ParseURL(raw string) (domain.ParsedURL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return domain.ParsedURL{}, &domain.ErrInvalidURL{URL: raw, Reason: err.Error()}
	}

	hostname := u.Hostname()
	if hostname == "" {
		return domain.ParsedURL{}, &domain.ErrInvalidURL{URL: raw, Reason: "missing host"}
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != domain.SchemeHTTP && scheme != domain.SchemeHTTPS {
		return domain.ParsedURL{}, &domain.ErrInvalidURL{URL: raw, Reason: "unsupported scheme " + strconv.Quote(u.Scheme)}
	}

	host, err := normalizeHost(hostname)
	if err != nil {
		return domain.ParsedURL{}, &domain.ErrInvalidURL{URL: raw, Reason: err.Error()}
	}

	port := domain.DefaultHTTPPort
	if scheme == domain.SchemeHTTPS {
		port = domain.DefaultHTTPSPort
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || port < 1 || port > 65535 {
			return domain.ParsedURL{}, &domain.ErrInvalidURL{URL: raw, Reason: "invalid port " + strconv.Quote(p)}
		}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" || u.ForceQuery {
		path += "?" + u.RawQuery
	}

	return domain.ParsedURL{
		Scheme: scheme,
		Host:   host,
		Port:   port,
		Path:   path,
	}, nil
}

// Resolve はLocationヘッダーの値を現在のURLを基準に解決する.
func Resolve(base domain.ParsedURL, location string) (domain.ParsedURL, error) {
	location = strings.TrimSpace(location)
	ref, err := url.Parse(location)
	if err != nil {
		return domain.ParsedURL{}, &domain.ErrInvalidURL{URL: location, Reason: err.Error()}
	}

	baseURL, err := url.Parse(base.String())
	if err != nil {
		return domain.ParsedURL{}, &domain.ErrInvalidURL{URL: base.String(), Reason: err.Error()}
	}

	return ParseURL(baseURL.ResolveReference(ref).String())
}

func normalizeHost(hostname string) (string, error) {
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.String(), nil
	}
	return idna.Lookup.ToASCII(strings.ToLower(hostname))
}
