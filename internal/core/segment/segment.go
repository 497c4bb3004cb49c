// Package segment splits raw voice transcripts into the substrings that hold
// a resident name, a task or measurement kind and an optional status or value
//
// Segmentation is positional, there is no grammar: it never fails on odd input
// and reports missing parts as empty strings or as a message on the result
package segment

import (
	"strings"

	"residences/internal/core/lexicon"
	"residences/internal/core/normalize"

	"golang.org/x/text/language"
)

// Task is the segmentation of a task assignment transcript
type Task struct {
	Name   string `json:"name"`
	Task   string `json:"task"`
	Status string `json:"status,omitempty"`
}

// Segmenter is safe for concurrent use
type Segmenter struct {
	lex  *lexicon.Lexicon
	lang language.Tag
}

// New builds a Segmenter over lex
func New(lex *lexicon.Lexicon) *Segmenter {
	if lex == nil {
		panic("segment.New requires a non nil lexicon")
	}
	return &Segmenter{lex: lex, lang: language.Spanish}
}

// Task splits a task assignment transcript
//
// The first status word found anywhere is removed and returned as Status.
// The remaining tokens split by count:
//
//	1     name only
//	2     one word name, one word task
//	3     two word name, one word task
//	4     two word name, two word task
//	5+    three word name, rest is the task
//
// Two tokens cannot hold a full name and a task, so the name keeps one word and
// the caller rejects it as incomplete instead of searching with a guessed split
func (s *Segmenter) Task(transcript string) Task {
	toks := normalize.Tokens(transcript)

	var out Task
	for i, t := range toks {
		if s.lex.IsStatus(t) {
			out.Status = t
			toks = append(toks[:i:i], toks[i+1:]...)
			break
		}
	}

	nameLen := 0
	switch n := len(toks); {
	case n == 0:
		return out
	case n <= 2:
		nameLen = 1
	case n <= 4:
		nameLen = 2
	default:
		nameLen = 3
	}

	out.Name = strings.Join(toks[:nameLen], " ")
	out.Task = strings.Join(toks[nameLen:], " ")
	return out
}
