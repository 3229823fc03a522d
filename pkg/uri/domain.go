package uri

import "strings"

// ParseDomain splits a hierarchical domain name into its dot-delimited
// labels. The split is strict: no validation, no trimming, and empty labels
// from leading, trailing or adjacent dots are preserved. It never fails; the
// empty string yields a single empty label.
func ParseDomain(domain string) []string {
	return strings.Split(domain, ".")
}
