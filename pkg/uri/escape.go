package uri

import (
	"strings"

	"urix/pkg/serrors"
)

// Character class lookup tables for the URI grammar. Each table is indexed by
// byte; bytes >= 0x80 are never legal URI characters and stay false.
var (
	isUnreserved [256]bool
	isSubDelim   [256]bool
	isRegName    [256]bool
	isURIByte    [256]bool
)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		isUnreserved[c] = true
	}
	for c := 'A'; c <= 'Z'; c++ {
		isUnreserved[c] = true
	}
	for c := '0'; c <= '9'; c++ {
		isUnreserved[c] = true
	}
	for _, c := range []byte{'-', '.', '_', '~'} {
		isUnreserved[c] = true
	}
	for _, c := range []byte{'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '='} {
		isSubDelim[c] = true
	}
	// reg-name: unreserved / sub-delims / pct-encoded.
	// Full URI charset: unreserved, gen-delims, sub-delims and '%'.
	for i := range 256 {
		isRegName[i] = isUnreserved[i] || isSubDelim[i]
		isURIByte[i] = isRegName[i]
	}
	for _, c := range []byte{':', '/', '?', '#', '[', ']', '@', '%'} {
		isURIByte[c] = true
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// pctDecode decodes percent-escapes in s. A '%' not followed by two hex
// digits is an INVALID_URI error.
func pctDecode(s string) (string, error) {
	if !strings.ContainsRune(s, '%') {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' {
			b.WriteByte(c)

			continue
		}
		if i+2 >= len(s) || !isHexDigit(s[i+1]) || !isHexDigit(s[i+2]) {
			return "", serrors.With(serrors.ErrInvalidURI, "invalid percent-escape at offset %d", i)
		}
		b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
		i += 2
	}

	return b.String(), nil
}

// NormalizeEscapes canonicalizes the percent-escapes of a string kept in
// encoded form: escapes that decode to an unreserved ASCII character are
// replaced by the literal character, and the hex digits of all remaining
// escapes are uppercased. Malformed escapes are left untouched.
func NormalizeEscapes(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '%' || i+2 >= len(s) || !isHexDigit(s[i+1]) || !isHexDigit(s[i+2]) {
			b.WriteByte(c)

			continue
		}
		decoded := unhex(s[i+1])<<4 | unhex(s[i+2])
		if isUnreserved[decoded] {
			b.WriteByte(decoded)
		} else {
			b.WriteByte('%')
			b.WriteByte(upperHexDigits[s[i+1]])
			b.WriteByte(upperHexDigits[s[i+2]])
		}
		i += 2
	}

	return b.String()
}

var upperHexDigits = func() (t [256]byte) {
	for i := range 256 {
		t[i] = byte(i)
	}
	for c := byte('a'); c <= 'f'; c++ {
		t[c] = c - 'a' + 'A'
	}

	return t
}()

// pctEncode renders s with every byte outside the class table (and the extra
// set) percent-encoded, using uppercase hex digits.
func pctEncode(s string, class *[256]bool, extra string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if class[c] || strings.IndexByte(extra, c) >= 0 {
			b.WriteByte(c)

			continue
		}
		const hex = "0123456789ABCDEF"
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0xF])
	}

	return b.String()
}

// checkBytes verifies that every byte of s satisfies the given class table,
// optionally extended by extra bytes. '%' is always legal so percent-escapes
// can be validated separately by pctDecode.
func checkBytes(s string, class *[256]bool, extra string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if class[c] || c == '%' {
			continue
		}
		if strings.IndexByte(extra, c) >= 0 {
			continue
		}

		return false
	}

	return true
}
