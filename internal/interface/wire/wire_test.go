package wire

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/google/go-cmp/cmp"

	"go2web/internal/domain"
)

func TestParseURL(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want domain.ParsedURL
	}{
		{
			"Plain HTTP",
			"http://example.com",
			domain.ParsedURL{Scheme: "http", Host: "example.com", Port: 80, Path: "/"},
		},
		{
			"HTTPS default port",
			"https://example.com/docs/index.html",
			domain.ParsedURL{Scheme: "https", Host: "example.com", Port: 443, Path: "/docs/index.html"},
		},
		{
			"Explicit port and query",
			"http://Example.COM:8080/search?q=go#top",
			domain.ParsedURL{Scheme: "http", Host: "example.com", Port: 8080, Path: "/search?q=go"},
		},
		{
			"Upper-case scheme",
			"HTTPS://example.com",
			domain.ParsedURL{Scheme: "https", Host: "example.com", Port: 443, Path: "/"},
		},
		{
			"IPv6 literal",
			"http://[::1]:9000/x",
			domain.ParsedURL{Scheme: "http", Host: "::1", Port: 9000, Path: "/x"},
		},
		{
			"IDN host",
			"http://bücher.example/",
			domain.ParsedURL{Scheme: "http", Host: "xn--bcher-kva.example", Port: 80, Path: "/"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseURL(tc.raw)
			assert.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseURL(%q) mismatch (-want +got):\n%s", tc.raw, diff)
			}
		})
	}
}

func TestParseURLInvalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"example.com",
		"/just/a/path",
		"http://",
		"http:///path",
		"ftp://example.com/file",
		"mailto:someone@example.com",
		"http://example.com:99999/",
		"http://example.com:abc/",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseURL(raw)
			var invalid *domain.ErrInvalidURL
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidURL for %q, got %v", raw, err)
			}
		})
	}
}

func TestParsedURLString(t *testing.T) {
	u := domain.ParsedURL{Scheme: "https", Host: "example.com", Port: 8443, Path: "/a"}
	assert.Equal(t, "https://example.com:8443/a", u.String())

	u = domain.ParsedURL{Scheme: "http", Host: "::1", Port: 80}
	assert.Equal(t, "http://[::1]/", u.String())
}

func TestResolve(t *testing.T) {
	base, err := ParseURL("http://example.com/a/b")
	assert.NoError(t, err)

	testCases := []struct {
		location string
		want     string
	}{
		{"/next", "http://example.com/next"},
		{"c", "http://example.com/a/c"},
		{"../up", "http://example.com/up"},
		{"http://example.org/", "http://example.org/"},
		{"https://secure.example.com/login", "https://secure.example.com/login"},
		{"//cdn.example.net/lib.js", "http://cdn.example.net/lib.js"},
		{"?page=2", "http://example.com/a/b?page=2"},
	}

	for _, tc := range testCases {
		t.Run(tc.location, func(t *testing.T) {
			got, err := Resolve(base, tc.location)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestBuildRequest(t *testing.T) {
	u, err := ParseURL("http://example.com:8080/path?x=1")
	assert.NoError(t, err)

	got := string(BuildRequest(NewRequest(u, "test-agent/1.0")))
	want := "GET /path?x=1 HTTP/1.1\r\n" +
		"Host: example.com:8080\r\n" +
		"User-Agent: test-agent/1.0\r\n" +
		"Accept: application/json, text/html\r\n" +
		"Connection: close\r\n" +
		"\r\n"
	assert.Equal(t, want, got)
}

func TestBuildRequestDefaults(t *testing.T) {
	req := NewRequest(domain.ParsedURL{Scheme: "https", Host: "example.com", Port: 443}, "")
	assert.Equal(t, "/", req.Path)
	assert.Equal(t, "example.com", req.Host)
	assert.Equal(t, DefaultUserAgent, req.UserAgent)

	req.Path = ""
	assert.Contains(t, string(BuildRequest(req)), "GET / HTTP/1.1\r\n")
}

func TestParseResponse(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"a\":1}")

	resp, err := ParseResponse(raw, false)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, map[string]string{"content-type": "application/json"}, resp.Headers)
	assert.Equal(t, `{"a":1}`, string(resp.Body))
	assert.Equal(t, raw, resp.Raw)
}

func TestParseResponseHeaders(t *testing.T) {
	raw := []byte("HTTP/1.1 301 Moved Permanently\r\n" +
		"Location: http://example.org/\r\n" +
		"this line has no separator\r\n" +
		"X-Dup: first\r\n" +
		"x-dup: second\r\n" +
		"Set-Cookie: a=b: c\r\n" +
		"\r\n" +
		"body\r\n\r\nwith separator")

	resp, err := ParseResponse(raw, false)
	assert.NoError(t, err)
	assert.Equal(t, 301, resp.StatusCode)

	want := map[string]string{
		"location":   "http://example.org/",
		"x-dup":      "second",
		"set-cookie": "a=b: c",
	}
	if diff := cmp.Diff(want, resp.Headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "body\r\n\r\nwith separator", string(resp.Body))
}

func TestParseResponseWithoutSeparator(t *testing.T) {
	resp, err := ParseResponse([]byte("HTTP/1.1 404 Not Found\r\nContent-Type: text/html"), false)
	assert.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "text/html", resp.Headers["content-type"])
	assert.Equal(t, 0, len(resp.Body))
}

func TestParseResponseMalformedStatus(t *testing.T) {
	for _, raw := range []string{
		"HTTP/1.1\r\n\r\nbody",
		"garbage\r\n\r\n",
		"HTTP/1.1 abc OK\r\n\r\n",
		"",
	} {
		t.Run(raw, func(t *testing.T) {
			resp, err := ParseResponse([]byte(raw), false)
			assert.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)

			_, err = ParseResponse([]byte(raw), true)
			var malformed *domain.ErrMalformedResponse
			if !errors.As(err, &malformed) {
				t.Fatalf("expected ErrMalformedResponse in strict mode, got %v", err)
			}
		})
	}
}

func TestIsTruncated(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want bool
	}{
		{"No content-length", "HTTP/1.1 200 OK\r\n\r\nbody", false},
		{"Exact length", "HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\nbody", false},
		{"Longer body", "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nbody", false},
		{"Short body", "HTTP/1.1 200 OK\r\nContent-Length: 10\r\n\r\nbody", true},
		{"Invalid length", "HTTP/1.1 200 OK\r\nContent-Length: ten\r\n\r\nbody", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := ParseResponse([]byte(tc.raw), true)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, IsTruncated(resp))
		})
	}
}
