package uri

import "strings"

// DefaultSchemes is the extraction allow-list used when ExtractOptions does
// not supply one.
var DefaultSchemes = []string{"http", "https", "ftp", "ftps", "ws", "wss"}

// ExtractOptions control the text extractor.
type ExtractOptions struct {
	// Normalize applies the Parse normalization rules to every reported
	// component. The verbatim matched substring in URIs is unaffected.
	Normalize bool
	// Schemes is the case-insensitive scheme allow-list that triggers a
	// candidate match. DefaultSchemes is used when empty.
	Schemes []string
}

// Extraction holds the extractor output as equal-length parallel slices, one
// element per located URI. For a given entry exactly one of the host-variant
// slots (Hosts, IPv4Addrs, IPv6Addrs, IPFutures) is populated; the unused
// slots hold empty strings or zero-length byte slices so every slice stays
// index-aligned.
type Extraction struct {
	// Schemes holds the scheme of each match.
	Schemes []string `json:"schemes"`
	// UserInfos holds the decoded userinfo of each match, or "".
	UserInfos []string `json:"userInfos"`
	// Hosts holds the registered host name of each match, or "".
	Hosts []string `json:"hosts"`
	// IPv4Addrs holds the 4 address bytes for IPv4-literal hosts, or empty.
	IPv4Addrs [][]byte `json:"ipv4Addrs"`
	// IPv6Addrs holds the 16 address bytes for IPv6-literal hosts, or empty.
	IPv6Addrs [][]byte `json:"ipv6Addrs"`
	// IPFutures holds the IPvFuture literal for such hosts, or "".
	IPFutures []string `json:"ipFutures"`
	// Ports holds the verbatim port text of each match, or "".
	Ports []string `json:"ports"`
	// Paths holds the raw path of each match: unsplit, '/'-joined and
	// undecoded, in contrast with ParsedURI.Path.
	Paths []string `json:"paths"`
	// Queries holds the raw query of each match, or "".
	Queries []string `json:"queries"`
	// Fragments holds the decoded fragment of each match, or "".
	Fragments []string `json:"fragments"`
	// AbsolutePaths reports whether each match's path began with '/'.
	AbsolutePaths []bool `json:"absolutePaths"`
	// URIs holds the verbatim matched substrings, independent of the
	// Normalize option.
	URIs []string `json:"uris"`
}

// Len returns the number of located URIs.
func (e *Extraction) Len() int { return len(e.URIs) }

func newExtraction() *Extraction {
	return &Extraction{
		Schemes:       []string{},
		UserInfos:     []string{},
		Hosts:         []string{},
		IPv4Addrs:     [][]byte{},
		IPv6Addrs:     [][]byte{},
		IPFutures:     []string{},
		Ports:         []string{},
		Paths:         []string{},
		Queries:       []string{},
		Fragments:     []string{},
		AbsolutePaths: []bool{},
		URIs:          []string{},
	}
}

func (e *Extraction) append(u *ParsedURI, match string) {
	e.Schemes = append(e.Schemes, u.Scheme)
	e.UserInfos = append(e.UserInfos, u.UserInfo)

	var named, future string
	ipv4, ipv6 := []byte{}, []byte{}
	switch u.Host.Kind {
	case HostNamed:
		named = u.Host.Name
	case HostIPv4:
		ipv4 = u.Host.IP
	case HostIPv6:
		ipv6 = u.Host.IP
	case HostIPFuture:
		future = u.Host.Name
	}
	e.Hosts = append(e.Hosts, named)
	e.IPv4Addrs = append(e.IPv4Addrs, ipv4)
	e.IPv6Addrs = append(e.IPv6Addrs, ipv6)
	e.IPFutures = append(e.IPFutures, future)

	e.Ports = append(e.Ports, u.Port)
	e.Paths = append(e.Paths, u.rawPath)
	e.Queries = append(e.Queries, u.RawQuery)
	e.Fragments = append(e.Fragments, u.Fragment)
	e.AbsolutePaths = append(e.AbsolutePaths, u.AbsolutePath)
	e.URIs = append(e.URIs, match)
}

// Extract scans free text for URIs whose scheme is on the allow-list and is
// immediately followed by "://". Each candidate runs from the scheme match to
// the first character that is illegal in a URI (any whitespace always
// terminates) and is then validated by the grammar scanner. Candidates that
// fail validation are discarded silently: scanning backs off to one character
// past the scheme-match position and treats the rejected span as ordinary
// text. A partial match pending at end of input is never emitted.
//
// Extract never fails; when no URI is found every slice of the result has
// length zero. The terminator of a rejected span is located once and reused
// by restarts inside it, but every scheme occurrence within the span still
// revalidates its suffix, so adversarial input costs up to the span length
// times the scheme matches it contains.
func Extract(text string, opts ExtractOptions) *Extraction {
	schemes := opts.Schemes
	if len(schemes) == 0 {
		schemes = DefaultSchemes
	}

	res := newExtraction()
	spanEnd := 0
	for i := 0; i < len(text); {
		if !isALPHA(text[i]) {
			i++

			continue
		}
		n := matchScheme(text[i:], schemes)
		if n == 0 {
			i++

			continue
		}

		// Candidate runs until the first terminator. A restart inside a
		// rejected span keeps the span's terminator: the bytes up to it are
		// known to be legal URI bytes already.
		j := spanEnd
		if j <= i {
			j = i
			for j < len(text) && isURIByte[text[j]] {
				j++
			}
			spanEnd = j
		}

		match := text[i:j]
		u, err := parse(match, true)
		if err != nil {
			// Treat the rejected span as ordinary text and resume one
			// character past the scheme match.
			i++

			continue
		}
		if opts.Normalize {
			u.normalize()
		}
		res.append(u, match)
		i = j
	}

	return res
}

// matchScheme returns the length of the allow-listed scheme that s starts
// with, case-insensitively and immediately followed by "://", or 0.
func matchScheme(s string, schemes []string) int {
	for _, scheme := range schemes {
		n := len(scheme)
		if len(s) >= n+3 && strings.EqualFold(s[:n], scheme) && s[n:n+3] == "://" {
			return n
		}
	}

	return 0
}
