package v1handler

import (
	"net/http"

	"urix/pkg/uri"
)

// ParseURIRequest is the body of POST /v1/parse.
type ParseURIRequest struct {
	// URI is the text to parse.
	URI string `json:"uri"`
	// Normalize lowercases the scheme and named host and drops a port that is
	// the scheme's default.
	Normalize bool `json:"normalize,omitempty"`
	// DecomposeQuery additionally splits the query into decoded key/value pairs.
	DecomposeQuery bool `json:"decomposeQuery,omitempty"`
}

// ParseURI parses a single URI into its components.
func (h Handler) ParseURI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParseURIRequest
	if err := readJSON(r, &req); err != nil {
		writeError(ctx, w, err)

		return
	}

	parsed, err := uri.Parse(req.URI, uri.ParseOptions{
		Normalize:      req.Normalize,
		DecomposeQuery: req.DecomposeQuery,
	})
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, parsed)
}

// ExtractURIsRequest is the body of POST /v1/extract.
type ExtractURIsRequest struct {
	// Text is the free-form text the URIs are extracted from.
	Text string `json:"text"`
	// Normalize applies component normalization to the extracted values. The
	// verbatim matched URIs are reported unchanged either way.
	Normalize bool `json:"normalize,omitempty"`
	// Schemes overrides the default list of recognized schemes.
	Schemes []string `json:"schemes,omitempty"`
}

// ExtractURIs extracts every URI from a piece of text.
func (h Handler) ExtractURIs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ExtractURIsRequest
	if err := readJSON(r, &req); err != nil {
		writeError(ctx, w, err)

		return
	}

	result := uri.Extract(req.Text, uri.ExtractOptions{
		Normalize: req.Normalize,
		Schemes:   req.Schemes,
	})

	writeJSON(ctx, w, http.StatusOK, result)
}

// SplitDomainRequest is the body of POST /v1/domain.
type SplitDomainRequest struct {
	// Domain is the domain name to split into labels.
	Domain string `json:"domain"`
}

// SplitDomainResponse carries the labels of a split domain name.
type SplitDomainResponse struct {
	Labels []string `json:"labels"`
}

// SplitDomain splits a domain name into its dot-separated labels.
func (h Handler) SplitDomain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SplitDomainRequest
	if err := readJSON(r, &req); err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, SplitDomainResponse{
		Labels: uri.ParseDomain(req.Domain),
	})
}

// UsageResponse carries the human-readable usage text of the URI operations.
type UsageResponse struct {
	Parse   string `json:"parse"`
	Extract string `json:"extract"`
	Domain  string `json:"domain"`
}

// Usage returns usage descriptions for the synchronous URI operations.
func (h Handler) Usage(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, UsageResponse{
		Parse:   uri.ParseUsage(),
		Extract: uri.ExtractUsage(),
		Domain:  uri.ParseDomainUsage(),
	})
}
