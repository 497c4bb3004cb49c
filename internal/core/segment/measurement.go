package segment

import (
	"strings"
	"unicode"

	"residences/internal/core/normalize"
	"residences/internal/core/vitals"

	"golang.org/x/text/cases"
)

// Measurement messages for transcripts that cannot be segmented
const (
	MsgTypeNotIdentified = "measurement type not identified"
	MsgNoNameMarker      = "no 'de' or 'of' found before the resident name"
	MsgNameNotIdentified = "resident name not identified"
)

// Measurement is the segmentation of a measurement transcript
// Err is set when the transcript could not be fully segmented, the other
// fields then carry whatever was recovered before the failure
type Measurement struct {
	Name    string         `json:"name"`
	Type    vitals.Type    `json:"type,omitempty"`
	Reading vitals.Reading `json:"reading"`
	Err     string         `json:"error,omitempty"`
}

// Measurement splits a measurement transcript such as "Tensión de Juan Pérez 120 80"
//
// The kind comes from the first keyword table entry found in the text. The name
// is the run of words after the last name marker up to the first number, which
// must follow. Values are extracted per kind from the whole text
func (s *Segmenter) Measurement(transcript string) Measurement {
	text := normalize.Key(transcript)

	typ, ok := s.lex.DetectType(text)
	if !ok {
		return Measurement{Err: MsgTypeNotIdentified}
	}
	out := Measurement{Type: typ}

	toks := normalize.Tokens(text)
	last := -1
	for i, t := range toks {
		if s.lex.IsNameMarker(t) {
			last = i
		}
	}
	if last < 0 {
		out.Err = MsgNoNameMarker
		return out
	}

	var name []string
	numberFollows := false
	for _, t := range toks[last+1:] {
		if startsWithDigit(t) {
			numberFollows = true
			break
		}
		if !isNameWord(t) {
			break
		}
		name = append(name, t)
	}
	if len(name) == 0 || !numberFollows {
		out.Err = MsgNameNotIdentified
		return out
	}
	// Caser carries state, one per call
	out.Name = cases.Title(s.lang).String(strings.Join(name, " "))

	r, err := vitals.Extract(typ, text)
	if err != nil {
		out.Err = err.Error()
		return out
	}
	out.Reading = r
	return out
}

func startsWithDigit(t string) bool {
	for _, r := range t {
		return unicode.IsDigit(r)
	}
	return false
}

// isNameWord accepts letters plus inner hyphens and apostrophes
func isNameWord(t string) bool {
	for _, r := range t {
		if !unicode.IsLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return t != ""
}
