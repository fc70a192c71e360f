// Package metadata reconciles directory names against TMDB.
//
// Search wraps the TMDB client with an in-memory TTL cache, a persistent
// lookup-cache tier, and rate limiting between remote calls. Resolver applies
// the year disambiguation policy on top: it decides the authoritative release
// year for a title without corrupting sequel numbers that merely look like
// years. Lookup failures always degrade to "no result"; the resolver never
// surfaces an error to the rename loop.
package metadata
