// Command marquee normalizes movie directory names against TMDB metadata.
//
// The rename pipeline tokenizes each directory name, reconciles the release
// year, probes missing resolutions, rebuilds a canonical name, and records
// every rename in a JSON report that the revert command can replay backwards.
package main
