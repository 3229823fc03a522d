package uri

import "strings"

// DecomposeQuery splits a raw query string into ordered key/value pairs.
// Fragments are separated by '&' and split at the first '='; a fragment
// without '=' yields an empty value. Keys and values are percent-decoded
// independently. Order and duplicate keys are preserved; nothing is
// collapsed into a map.
//
// An invalid percent-escape in a key or value fails with the
// serrors.ErrInvalidURI kind.
func DecomposeQuery(raw string) ([]QueryPair, error) {
	frags := strings.Split(raw, "&")
	pairs := make([]QueryPair, 0, len(frags))
	for _, frag := range frags {
		key, value, _ := strings.Cut(frag, "=")
		k, err := pctDecode(key)
		if err != nil {
			return nil, err
		}
		v, err := pctDecode(value)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, QueryPair{Key: k, Value: v})
	}

	return pairs, nil
}
