// Package preflight implements the doctor checks: configuration validity,
// directory access, external binaries, and TMDB reachability. Each check
// yields a stage.Health record so the CLI can render a uniform table.
package preflight
