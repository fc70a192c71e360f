// Package textutil provides small text helpers for filename sanitization and
// conditional formatting.
package textutil
