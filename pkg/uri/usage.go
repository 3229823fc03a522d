package uri

// ParseUsage returns a human-readable summary of the grammar Parse accepts
// and the component breakdown it produces. It is served verbatim by the help
// endpoints and the CLI.
func ParseUsage() string {
	return `parse a single URI into its components

input:   [scheme ":"] ["//" [userinfo "@"] host [":" port]] path ["?" query] ["#" fragment]

scheme    ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ); optional, reported lowercased
          when normalization is on
userinfo  text before the last "@" of the authority, percent-decoded
host      registered name (percent-decoded), IPv4 literal (4 address bytes),
          bracketed IPv6 literal (16 address bytes) or bracketed IPvFuture
port      decimal digits after the host ":", kept verbatim; dropped when it
          equals the scheme default and normalization is on
path      "/"-separated segments, each percent-decoded; a leading "/" marks the
          path absolute and contributes no empty segment
query     text after "?", kept raw; decompose into ordered key=value pairs on
          request, duplicates preserved
fragment  text after "#", percent-decoded

Malformed input (bad scheme, bad percent-escape, bad host literal, non-digit
port) is rejected as a whole; there are no partial results.`
}

// ExtractUsage returns a human-readable summary of the text extractor.
func ExtractUsage() string {
	return `extract every URI from free-form text

A match starts at an allow-listed scheme (default: http, https, ftp, ftps, ws,
wss; case-insensitive) immediately followed by "://" and runs until the first
character that cannot appear in a URI. Whitespace and characters such as '"',
'<' and '>' always end a match. Each match is validated with the full parser;
spans that fail validation are skipped as ordinary text.

The result is a set of equal-length arrays, one entry per match, carrying the
scheme, userinfo, host (named, IPv4 bytes, IPv6 bytes or IPvFuture), port, raw
path, raw query, fragment, an absolute-path flag and the verbatim matched
substring.`
}

// ParseDomainUsage returns a human-readable summary of the domain splitter.
func ParseDomainUsage() string {
	return `split a domain name into its dot-separated labels

The split is literal: "www.example.com" yields ["www" "example" "com"]. No
validation or trimming is performed and empty labels from leading, trailing or
doubled dots are preserved. The empty string yields one empty label.`
}
