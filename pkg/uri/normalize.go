package uri

import "strings"

// defaultPorts maps lowercase schemes to their well-known default port.
// A parsed port is dropped during normalization only when it byte-equals the
// entry here, so "080" or "0443" survive untouched.
var defaultPorts = map[string]string{
	"ftp":    "21",
	"gopher": "70",
	"http":   "80",
	"https":  "443",
	"imap":   "143",
	"ldap":   "389",
	"nntp":   "119",
	"pop":    "110",
	"rtsp":   "554",
	"sftp":   "22",
	"smtp":   "25",
	"snmp":   "161",
	"ssh":    "22",
	"telnet": "23",
	"ws":     "80",
	"wss":    "443",
}

// normalize applies the canonicalization rules in place. Each rule is
// independent and idempotent:
//   - lowercase the scheme and a named host,
//   - drop the port when it equals the scheme's well-known default,
//   - canonicalize percent-escapes of text kept in encoded form (the raw
//     path reported by the extractor).
//
// Dot-segment ("."/"..") resolution is not performed, and the raw query is
// never rewritten: query decomposition always sees the original text.
func (u *ParsedURI) normalize() {
	if u.HasScheme {
		u.Scheme = strings.ToLower(u.Scheme)
	}
	if u.Host.Kind == HostNamed {
		u.Host.Name = strings.ToLower(u.Host.Name)
	}
	if def, ok := defaultPorts[strings.ToLower(u.Scheme)]; ok && u.HasPort && u.Port == def {
		u.Port = ""
		u.HasPort = false
	}
	u.rawPath = NormalizeEscapes(u.rawPath)
}
