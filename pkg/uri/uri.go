package uri

import "strings"

// QueryPair is a single decoded key/value pair from a query string.
// Duplicate keys are preserved as separate pairs in their original order.
type QueryPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ParseOptions control how Parse interprets its input.
type ParseOptions struct {
	// Normalize applies the canonicalization rules after parsing: lowercase
	// scheme and named host, and removal of the scheme's well-known default
	// port. Dot-segment resolution is deliberately not performed.
	Normalize bool
	// DecomposeQuery additionally splits the raw query string into ordered
	// key/value pairs. Decomposition always operates on the original query
	// text, regardless of Normalize.
	DecomposeQuery bool
}

// ParsedURI is the structured result of parsing a single URI.
//
// Optional components carry an explicit Has* flag so that empty-but-present
// values round-trip: "http://host:/" has an empty port that is distinct from
// no port at all, and "http://host/?" has an empty query that is distinct
// from no query.
type ParsedURI struct {
	// Scheme is the URI scheme, lowercased when normalization was requested.
	Scheme string `json:"scheme,omitempty"`
	// HasScheme reports whether a scheme was present in the input.
	HasScheme bool `json:"hasScheme"`

	// UserInfo is the percent-decoded userinfo component.
	UserInfo string `json:"userInfo,omitempty"`
	// HasUserInfo reports whether a "userinfo@" component was present.
	HasUserInfo bool `json:"hasUserInfo"`

	// Host is the authority host as a tagged union; Host.Kind is HostNone
	// when the URI has no authority.
	Host Host `json:"host"`

	// Port is the port component exactly as written: leading zeros and empty
	// values are preserved, no numeric range check is applied.
	Port string `json:"port,omitempty"`
	// HasPort reports whether a ":port" component was present.
	HasPort bool `json:"hasPort"`

	// Path holds the percent-decoded path segments. A single leading '/'
	// does not contribute an empty first segment; interior and trailing
	// empty segments are preserved.
	Path []string `json:"path"`
	// AbsolutePath is true iff the raw path began with '/'.
	AbsolutePath bool `json:"absolutePath"`

	// RawQuery is the query component kept raw and undecoded.
	RawQuery string `json:"query,omitempty"`
	// HasQuery reports whether a "?query" component was present.
	HasQuery bool `json:"hasQuery"`

	// Fragment is the percent-decoded fragment component.
	Fragment string `json:"fragment,omitempty"`
	// HasFragment reports whether a "#fragment" component was present.
	HasFragment bool `json:"hasFragment"`

	// QueryPairs holds the decoded query key/value pairs in their original
	// order. It is nil unless decomposition was requested and a query was
	// present.
	QueryPairs []QueryPair `json:"queryPairs,omitempty"`

	// rawPath is the path exactly as written, undecoded. The extractor
	// reports this form instead of the split segments.
	rawPath string
}

// String reassembles the URI from its components. Userinfo, named hosts and
// the fragment are re-encoded; the path and query are rendered in the raw
// form they were parsed from, so parsing the result yields the same
// components back.
func (u *ParsedURI) String() string {
	var b strings.Builder
	if u.HasScheme {
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}
	if u.Host.Kind != HostNone {
		b.WriteString("//")
		if u.HasUserInfo {
			b.WriteString(pctEncode(u.UserInfo, &isRegName, ":"))
			b.WriteByte('@')
		}
		if u.Host.Kind == HostNamed {
			b.WriteString(pctEncode(u.Host.Name, &isRegName, ""))
		} else {
			b.WriteString(u.Host.Text())
		}
		if u.HasPort {
			b.WriteByte(':')
			b.WriteString(u.Port)
		}
	}
	b.WriteString(u.rawPath)
	if u.HasQuery {
		b.WriteByte('?')
		b.WriteString(u.RawQuery)
	}
	if u.HasFragment {
		b.WriteByte('#')
		b.WriteString(pctEncode(u.Fragment, &isRegName, ":@/?"))
	}

	return b.String()
}
