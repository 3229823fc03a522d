package uri_test

import (
	"testing"

	"urix/pkg/uri"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSchemeAndHost(t *testing.T) {
	u, err := uri.Parse("HTTPS://WWW.Example.COM/A/B", uri.ParseOptions{Normalize: true})
	require.NoError(t, err)
	require.Equal(t, "https", u.Scheme)
	require.Equal(t, "www.example.com", u.Host.Name)
	// Path case is untouched: only scheme and host are case-insensitive.
	require.Equal(t, []string{"A", "B"}, u.Path)
}

func TestNormalizeDefaultPort(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		port    string
		hasPort bool
	}{
		{name: "http default dropped", in: "http://h:80/", port: "", hasPort: false},
		{name: "https default dropped", in: "https://h:443/", port: "", hasPort: false},
		{name: "ws default dropped", in: "ws://h:80/", port: "", hasPort: false},
		{name: "non-default kept", in: "http://h:8080/", port: "8080", hasPort: true},
		{name: "zero-padded default kept", in: "http://h:080/", port: "080", hasPort: true},
		{name: "https port on http kept", in: "http://h:443/", port: "443", hasPort: true},
		{name: "uppercase scheme still matches", in: "HTTP://h:80/", port: "", hasPort: false},
		{name: "empty port on unknown scheme kept", in: "zz://h:/", port: "", hasPort: true},
	}

	for _, tc := range cases {
		u, err := uri.Parse(tc.in, uri.ParseOptions{Normalize: true})
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.port, u.Port, tc.name)
		require.Equal(t, tc.hasPort, u.HasPort, tc.name)
	}
}

func TestNormalizeEscapes(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{in: "", out: ""},
		{in: "plain", out: "plain"},
		{in: "%7e", out: "~"},
		{in: "%41bc", out: "Abc"},
		{in: "%2f", out: "%2F"},
		{in: "a%3fb%7E", out: "a%3Fb~"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.out, uri.NormalizeEscapes(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"HTTP://User@Example.COM:80/%7Euser/a%2Fb?B=%2f&a=1#Frag",
		"https://[2001:DB8::1]:443/x",
		"ftp://192.168.0.1:21/pub",
	}

	for _, in := range inputs {
		once, err := uri.Parse(in, uri.ParseOptions{Normalize: true, DecomposeQuery: true})
		require.NoError(t, err, in)

		// Feeding the normalized form back through must be a fixed point.
		twice, err := uri.Parse(once.String(), uri.ParseOptions{Normalize: true, DecomposeQuery: true})
		require.NoError(t, err, in)
		require.Equal(t, once, twice, in)
	}
}

func TestNormalizePreservesRawQuery(t *testing.T) {
	u, err := uri.Parse("http://h/?K=%2f&K=2", uri.ParseOptions{Normalize: true})
	require.NoError(t, err)
	require.Equal(t, "K=%2f&K=2", u.RawQuery, "normalization must never rewrite the query")
}
