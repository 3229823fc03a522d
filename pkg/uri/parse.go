package uri

import (
	"net/netip"
	"strings"

	"urix/pkg/serrors"
)

// Parse parses a single URI string into its grammar components. Malformed
// input (empty string, invalid scheme, invalid percent-escape, malformed
// bracketed host literal, non-digit port) fails with the
// serrors.ErrInvalidURI kind and no partial result.
//
// The scheme is optional: input without a ':' ahead of the first '/', '?' or
// '#' is parsed as a bare path. See ParseUsage for a rendered summary of the
// accepted grammar.
func Parse(raw string, opts ParseOptions) (*ParsedURI, error) {
	u, err := parse(raw, false)
	if err != nil {
		return nil, err
	}

	if opts.DecomposeQuery && u.HasQuery {
		pairs, err := DecomposeQuery(u.RawQuery)
		if err != nil {
			return nil, err
		}
		u.QueryPairs = pairs
	}

	if opts.Normalize {
		u.normalize()
	}

	return u, nil
}

// parse runs the grammar scanner. In candidate mode (used by the extractor)
// an explicit scheme is required; otherwise the scheme is optional.
func parse(raw string, candidate bool) (*ParsedURI, error) {
	if raw == "" {
		return nil, serrors.With(serrors.ErrInvalidURI, "empty input")
	}

	u := &ParsedURI{Path: []string{}}
	rest := raw

	// Scheme: ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ), terminated by ':'.
	// A ':' ahead of any '/', '?' or '#' marks the scheme boundary.
	if idx := strings.IndexAny(rest, ":/?#"); idx >= 0 && rest[idx] == ':' {
		scheme := rest[:idx]
		if !isValidScheme(scheme) {
			return nil, serrors.With(serrors.ErrInvalidURI, "invalid scheme %q", scheme)
		}
		u.Scheme = scheme
		u.HasScheme = true
		rest = rest[idx+1:]
	}
	if candidate && !u.HasScheme {
		return nil, serrors.With(serrors.ErrInvalidURI, "missing scheme")
	}

	// Authority is introduced only by the "//" marker.
	if strings.HasPrefix(rest, "//") {
		auth := rest[2:]
		end := strings.IndexAny(auth, "/?#")
		if end < 0 {
			end = len(auth)
		}
		rest = auth[end:]
		if err := parseAuthority(auth[:end], u); err != nil {
			return nil, err
		}
	}

	// Path runs until the query or fragment delimiter.
	rawPath := rest
	if idx := strings.IndexAny(rawPath, "?#"); idx >= 0 {
		rawPath = rawPath[:idx]
		rest = rest[idx:]
	} else {
		rest = ""
	}
	u.rawPath = rawPath
	u.AbsolutePath = strings.HasPrefix(rawPath, "/")
	if err := splitPath(rawPath, u); err != nil {
		return nil, err
	}

	// Query is kept raw and undecoded at this stage.
	if strings.HasPrefix(rest, "?") {
		q := rest[1:]
		if idx := strings.IndexByte(q, '#'); idx >= 0 {
			rest = q[idx:]
			q = q[:idx]
		} else {
			rest = ""
		}
		if !checkBytes(q, &isRegName, ":@/?") {
			return nil, serrors.With(serrors.ErrInvalidURI, "illegal character in query")
		}
		u.RawQuery = q
		u.HasQuery = true
	}

	if strings.HasPrefix(rest, "#") {
		f := rest[1:]
		if !checkBytes(f, &isRegName, ":@/?") {
			return nil, serrors.With(serrors.ErrInvalidURI, "illegal character in fragment")
		}
		dec, err := pctDecode(f)
		if err != nil {
			return nil, err
		}
		u.Fragment = dec
		u.HasFragment = true
	}

	return u, nil
}

func isValidScheme(s string) bool {
	if s == "" || !isALPHA(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isALPHA(c) && !isDigit(c) && c != '+' && c != '-' && c != '.' {
			return false
		}
	}

	return true
}

func isALPHA(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}

	return true
}

// parseAuthority fills userinfo, host and port from the text between the
// "//" marker and the end of the authority.
func parseAuthority(auth string, u *ParsedURI) error {
	hostport := auth

	// The host cannot contain '@', so the last one separates the userinfo.
	if at := strings.LastIndexByte(auth, '@'); at >= 0 {
		info := auth[:at]
		if !checkBytes(info, &isRegName, ":") {
			return serrors.With(serrors.ErrInvalidURI, "illegal character in userinfo")
		}
		dec, err := pctDecode(info)
		if err != nil {
			return err
		}
		u.UserInfo = dec
		u.HasUserInfo = true
		hostport = auth[at+1:]
	}

	if strings.HasPrefix(hostport, "[") {
		return parseBracketedHost(hostport, u)
	}

	// Port: everything after the first ':' must be digits (possibly none).
	if ci := strings.IndexByte(hostport, ':'); ci >= 0 {
		port := hostport[ci+1:]
		if !isDigits(port) {
			return serrors.With(serrors.ErrInvalidURI, "invalid port %q", port)
		}
		u.Port = port
		u.HasPort = true
		hostport = hostport[:ci]
	}

	return parseHost(hostport, u)
}

// parseHost classifies an unbracketed host as an IPv4 literal or a
// registered name. The IPv4 form requires exactly four dot-separated decimal
// octets in 0-255; anything else falls through to the named form.
func parseHost(host string, u *ParsedURI) error {
	if addr, err := netip.ParseAddr(host); err == nil && addr.Is4() {
		u.Host = IPv4Host(addr.As4())

		return nil
	}

	if !checkBytes(host, &isRegName, "") {
		return serrors.With(serrors.ErrInvalidURI, "illegal character in host")
	}
	dec, err := pctDecode(host)
	if err != nil {
		return err
	}
	u.Host = NamedHost(dec)

	return nil
}

// parseBracketedHost handles "[...]" literals: IPv6 (one "::" compression,
// optional embedded IPv4 tail) or IPvFuture ("v" 1*HEX "." 1*allowed).
func parseBracketedHost(hostport string, u *ParsedURI) error {
	rb := strings.IndexByte(hostport, ']')
	if rb < 0 {
		return serrors.With(serrors.ErrInvalidURI, "unterminated bracketed host")
	}
	lit := hostport[1:rb]

	switch rest := hostport[rb+1:]; {
	case rest == "":
	case strings.HasPrefix(rest, ":") && isDigits(rest[1:]):
		u.Port = rest[1:]
		u.HasPort = true
	default:
		return serrors.With(serrors.ErrInvalidURI, "garbage after bracketed host")
	}

	if len(lit) > 0 && (lit[0] == 'v' || lit[0] == 'V') {
		if !isValidIPFuture(lit) {
			return serrors.With(serrors.ErrInvalidURI, "malformed IPvFuture literal %q", lit)
		}
		u.Host = IPFutureHost(lit)

		return nil
	}

	addr, err := netip.ParseAddr(lit)
	if err != nil || !addr.Is6() || addr.Zone() != "" {
		return serrors.With(serrors.ErrInvalidURI, "malformed IPv6 literal %q", lit)
	}
	u.Host = IPv6Host(addr.As16())

	return nil
}

// isValidIPFuture reports whether lit matches "v" 1*HEXDIG "." 1*( unreserved
// / sub-delims / ":" ).
func isValidIPFuture(lit string) bool {
	dot := strings.IndexByte(lit, '.')
	if dot < 2 || dot == len(lit)-1 {
		return false
	}
	for i := 1; i < dot; i++ {
		if !isHexDigit(lit[i]) {
			return false
		}
	}
	for i := dot + 1; i < len(lit); i++ {
		c := lit[i]
		if !isUnreserved[c] && !isSubDelim[c] && c != ':' {
			return false
		}
	}

	return true
}

// splitPath decodes the raw path into segments. The split is on '/': a
// single leading '/' contributes no empty first segment, while interior and
// trailing empty segments ("//" runs) are preserved.
func splitPath(rawPath string, u *ParsedURI) error {
	if rawPath == "" {
		return nil
	}
	if !checkBytes(rawPath, &isRegName, ":@/") {
		return serrors.With(serrors.ErrInvalidURI, "illegal character in path")
	}

	segs := strings.Split(rawPath, "/")
	if u.AbsolutePath {
		segs = segs[1:]
	}
	u.Path = make([]string, len(segs))
	for i, seg := range segs {
		dec, err := pctDecode(seg)
		if err != nil {
			return err
		}
		u.Path[i] = dec
	}

	return nil
}
