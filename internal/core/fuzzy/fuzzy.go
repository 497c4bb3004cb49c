// Package fuzzy ranks directory entries against a spoken phrase and decides
// whether the phrase names exactly one of them
package fuzzy

import (
	"sort"
	"unicode/utf8"

	"residences/internal/core/normalize"

	"github.com/antzucaro/matchr"
)

// Defaults used when Options leave a field zero
const (
	DefaultCutoff     = 60.0
	DefaultMargin     = 5.0
	DefaultMaxOptions = 5
)

// Score is the normalized similarity of a and b on a 0 to 100 scale
//
// Both inputs are normalized first. The score is twice the longest common
// subsequence over the summed rune lengths, two empty inputs score 100
func Score(a, b string) float64 {
	return scoreKeys(normalize.Key(a), normalize.Key(b))
}

func scoreKeys(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(matchr.LongestCommonSubsequence(a, b)) / float64(total)
}

// Options tune a resolution
type Options struct {
	// Cutoff is the lowest score a candidate needs to be considered
	Cutoff float64
	// Margin is the lead the best candidate needs over every other one
	Margin float64
	// MaxOptions caps the candidates reported on ambiguity
	MaxOptions int
}

func (o Options) withDefaults() Options {
	if o.Cutoff <= 0 {
		o.Cutoff = DefaultCutoff
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	if o.MaxOptions <= 0 {
		o.MaxOptions = DefaultMaxOptions
	}
	return o
}

// Kind is the outcome of a resolution
type Kind int

const (
	// NotFound means no candidate reached the cutoff
	NotFound Kind = iota
	// Resolved means one candidate leads every other by the margin
	Resolved
	// Ambiguous means several candidates score within the margin of the best
	Ambiguous
)

func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Match is one scored candidate
type Match[T any] struct {
	Item  T
	Label string
	Score float64
}

// Result is the decision over a candidate list
// Best is set when Kind is Resolved, Options when Kind is Ambiguous
type Result[T any] struct {
	Kind    Kind
	Best    Match[T]
	Options []Match[T]
}

// Rank scores every item whose label reaches the cutoff and orders them best first
// ties keep the input order
func Rank[T any](query string, items []T, label func(T) string, cutoff float64) []Match[T] {
	q := normalize.Key(query)
	out := make([]Match[T], 0, len(items))
	for _, it := range items {
		l := label(it)
		s := scoreKeys(q, normalize.Key(l))
		if s < cutoff {
			continue
		}
		out = append(out, Match[T]{Item: it, Label: l, Score: s})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Resolve picks the item that query names
//
// Items are distinct by position, two entries sharing a label are two
// candidates and leave the query ambiguous
func Resolve[T any](query string, items []T, label func(T) string, opts Options) Result[T] {
	opts = opts.withDefaults()

	ranked := Rank(query, items, label, opts.Cutoff)
	if len(ranked) == 0 {
		return Result[T]{Kind: NotFound}
	}

	top := ranked[0].Score
	n := 1
	for n < len(ranked) && top-ranked[n].Score < opts.Margin {
		n++
	}
	if n == 1 {
		return Result[T]{Kind: Resolved, Best: ranked[0]}
	}

	if n > opts.MaxOptions {
		n = opts.MaxOptions
	}
	return Result[T]{Kind: Ambiguous, Options: ranked[:n:n]}
}

// Labels returns the labels of ms in order
func Labels[T any](ms []Match[T]) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Label
	}
	return out
}
