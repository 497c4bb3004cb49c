// Package lexicon loads the keyword tables that drive transcript segmentation
// from the embedded lexicon.yaml
package lexicon

import (
	_ "embed"
	"fmt"
	"strings"

	"residences/internal/core/normalize"
	"residences/internal/core/vitals"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var embedded []byte

type rawMeasurement struct {
	Type     string   `yaml:"type"`
	Keywords []string `yaml:"keywords"`
}

type rawLexicon struct {
	Version        int              `yaml:"version"`
	StatusKeywords []string         `yaml:"status_keywords"`
	NameMarkers    []string         `yaml:"name_markers"`
	Measurements   []rawMeasurement `yaml:"measurements"`
}

// MeasurementRule maps a measurement kind to its trigger keywords
type MeasurementRule struct {
	Type     vitals.Type
	Keywords []string // normalized
}

// Lexicon is read only after Load and safe to share across goroutines
type Lexicon struct {
	Version      int
	Measurements []MeasurementRule

	statuses  []string
	statusSet map[string]struct{}
	markers   map[string]struct{}
}

// Load returns the lexicon compiled from the embedded lexicon.yaml
func Load() (*Lexicon, error) { return Parse(embedded) }

// MustLoad is Load that panics, for process bootstrap
func MustLoad() *Lexicon {
	l, err := Load()
	if err != nil {
		panic(err)
	}
	return l
}

// Parse compiles a lexicon from YAML bytes
func Parse(data []byte) (*Lexicon, error) {
	var raw rawLexicon
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("lexicon: parse yaml: %w", err)
	}
	if len(raw.NameMarkers) == 0 {
		return nil, fmt.Errorf("lexicon: name_markers must not be empty")
	}

	l := &Lexicon{
		Version: raw.Version,
		markers: map[string]struct{}{},
	}
	l.setStatuses(raw.StatusKeywords)

	for _, m := range raw.NameMarkers {
		if k := normalize.Key(m); k != "" {
			l.markers[k] = struct{}{}
		}
	}

	for i, m := range raw.Measurements {
		typ, ok := vitals.ParseType(m.Type)
		if !ok {
			return nil, fmt.Errorf("lexicon: measurements[%d]: unknown type %q", i, m.Type)
		}
		rule := MeasurementRule{Type: typ}
		for _, kw := range m.Keywords {
			if k := normalize.Key(kw); k != "" {
				rule.Keywords = append(rule.Keywords, k)
			}
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("lexicon: measurements[%d]: no keywords for %q", i, m.Type)
		}
		l.Measurements = append(l.Measurements, rule)
	}
	return l, nil
}

// WithStatusKeywords returns a copy whose status set is replaced by words
// an empty list keeps the current set
func (l *Lexicon) WithStatusKeywords(words []string) *Lexicon {
	if len(words) == 0 {
		return l
	}
	c := *l
	c.setStatuses(words)
	return &c
}

func (l *Lexicon) setStatuses(words []string) {
	l.statuses = nil
	l.statusSet = make(map[string]struct{}, len(words))
	for _, w := range words {
		k := normalize.Key(w)
		if k == "" {
			continue
		}
		if _, dup := l.statusSet[k]; dup {
			continue
		}
		l.statusSet[k] = struct{}{}
		l.statuses = append(l.statuses, k)
	}
}

// StatusKeywords lists the normalized status words in declaration order
func (l *Lexicon) StatusKeywords() []string {
	return append([]string(nil), l.statuses...)
}

// IsStatus reports whether tok is a configured status word
func (l *Lexicon) IsStatus(tok string) bool {
	_, ok := l.statusSet[normalize.Key(tok)]
	return ok
}

// IsNameMarker reports whether tok introduces a resident name
func (l *Lexicon) IsNameMarker(tok string) bool {
	_, ok := l.markers[normalize.Key(tok)]
	return ok
}

// DetectType returns the first measurement kind with a keyword contained in text
func (l *Lexicon) DetectType(text string) (vitals.Type, bool) {
	k := normalize.Key(text)
	for _, rule := range l.Measurements {
		for _, kw := range rule.Keywords {
			if strings.Contains(k, kw) {
				return rule.Type, true
			}
		}
	}
	return "", false
}
