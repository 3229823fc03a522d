package uri

import (
	"fmt"
	"net/netip"
)

// HostKind discriminates the variants of the Host tagged union.
type HostKind uint8

const (
	// HostNone indicates the URI has no authority component.
	HostNone HostKind = iota
	// HostNamed indicates a registered (named) host, e.g. "www.example.com".
	HostNamed
	// HostIPv4 indicates an IPv4 address literal, e.g. "192.165.0.1".
	HostIPv4
	// HostIPv6 indicates a bracketed IPv6 address literal, e.g. "[::1]".
	HostIPv6
	// HostIPFuture indicates a bracketed IPvFuture literal, e.g. "[v1.fe80::a]".
	HostIPFuture
)

// String returns the lowercase name of the kind.
func (k HostKind) String() string {
	switch k {
	case HostNamed:
		return "named"
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostIPFuture:
		return "ipfuture"
	default:
		return "none"
	}
}

// MarshalText renders the kind by name in JSON and text encodings.
func (k HostKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText parses a kind from its name.
func (k *HostKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "named":
		*k = HostNamed
	case "ipv4":
		*k = HostIPv4
	case "ipv6":
		*k = HostIPv6
	case "ipfuture":
		*k = HostIPFuture
	case "none":
		*k = HostNone
	default:
		return fmt.Errorf("unknown host kind %q", string(b))
	}

	return nil
}

// Host is the tagged union of the possible host representations of a URI
// authority. Exactly one variant is populated for a successfully parsed
// authority; Kind is HostNone when the URI carries no authority at all.
//
// Modeling the host as a single union rather than independently-nullable
// fields makes the mutual-exclusion invariant structural: callers switch on
// Kind and read only the matching payload.
type Host struct {
	// Kind selects the populated variant.
	Kind HostKind `json:"kind"`
	// Name holds the percent-decoded registered name for HostNamed, or the
	// IPvFuture literal (without brackets) for HostIPFuture.
	Name string `json:"name,omitempty"`
	// IP holds 4 bytes for HostIPv4 or 16 bytes for HostIPv6.
	IP []byte `json:"ip,omitempty"`
}

// NamedHost returns a Host of kind HostNamed with the given decoded name.
func NamedHost(name string) Host { return Host{Kind: HostNamed, Name: name} }

// IPv4Host returns a Host of kind HostIPv4 holding the 4 address bytes.
func IPv4Host(ip [4]byte) Host { return Host{Kind: HostIPv4, IP: ip[:]} }

// IPv6Host returns a Host of kind HostIPv6 holding the 16 address bytes.
func IPv6Host(ip [16]byte) Host { return Host{Kind: HostIPv6, IP: ip[:]} }

// IPFutureHost returns a Host of kind HostIPFuture with the literal text
// (without the enclosing brackets).
func IPFutureHost(lit string) Host { return Host{Kind: HostIPFuture, Name: lit} }

// Text renders the host the way it appears inside a URI authority: the name
// for registered hosts, dotted-decimal for IPv4, the bracketed form for IPv6
// and IPvFuture literals, and "" for HostNone.
func (h Host) Text() string {
	switch h.Kind {
	case HostNamed:
		return h.Name
	case HostIPv4, HostIPv6:
		addr, ok := netip.AddrFromSlice(h.IP)
		if !ok {
			return ""
		}
		if h.Kind == HostIPv6 {
			return "[" + addr.String() + "]"
		}

		return addr.String()
	case HostIPFuture:
		return "[" + h.Name + "]"
	default:
		return ""
	}
}

// IsZero reports whether the host is the HostNone variant.
func (h Host) IsZero() bool { return h.Kind == HostNone }
