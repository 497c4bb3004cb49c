// Package normalize folds transcripts and directory labels into a comparable form
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and other format chars
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace to single spaces and trim
//
// Accents and digits survive the pipeline: "García" and "Garcia" stay distinct keys
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

var std = New()

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Key normalizes s with the shared Normalizer
func Key(s string) string { return std.Normalize(s) }

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return strings.Join(strings.Fields(ns), " ")
}

// Tokens splits s on whitespace and trims punctuation from the edges of each token
// casing is preserved; tokens that are pure punctuation are dropped
func Tokens(s string) []string {
	raw := strings.Fields(strings.ToValidUTF8(s, ""))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimFunc(t, isEdgePunct)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Words counts whitespace separated words after normalization
func Words(s string) int { return len(strings.Fields(Key(s))) }

// isEdgePunct matches punctuation a recognizer leaves around words, like "¿" "," "."
func isEdgePunct(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }
