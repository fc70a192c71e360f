// Package tmdb provides the minimal TMDB API client used during year
// resolution.
//
// It authenticates requests and exposes movie search with an optional
// release-year filter plus movie detail retrieval. Responses are strongly
// typed so the resolver can rank candidate years. Options allow tests to
// supply custom HTTP clients without modifying production code.
package tmdb
