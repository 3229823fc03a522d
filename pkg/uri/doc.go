// Package uri implements URI/URN parsing, normalization and extraction.
//
// The package offers three independent entry points:
//   - Parse: parse a single URI string into its grammar components
//     (scheme, userinfo, host, port, path segments, query, fragment),
//     with optional normalization and query decomposition.
//   - Extract: scan free text for scheme-prefixed substrings and return
//     positionally-aligned parallel result slices, one element per valid
//     URI found.
//   - ParseDomain: split a hierarchical domain name into its dot-delimited
//     labels.
//
// All entry points are pure functions of their arguments: no I/O, no shared
// mutable state. They are safe to call concurrently without synchronization.
package uri
