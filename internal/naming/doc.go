// Package naming implements the movie-directory name engine: tokenizing raw
// folder names into semantic tokens, canonicalizing tokens into a fixed order,
// and classifying the difference between an old and a new name.
//
// The pipeline contract is idempotence: tokenizing and rebuilding a name the
// engine already produced yields the same name, byte for byte. Everything in
// this package exists to keep that property provable — names are parsed into a
// Tokens value once and rebuilt from it, never mutated through chained string
// substitutions.
package naming
