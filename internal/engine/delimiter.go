package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// regexDelimChars are the characters that may bracket a regex-shaped
// delimiter, e.g. /foo.*/i or ~ba[rz]~s.
const regexDelimChars = "{/#~@;%`"

// regexModifiers are the letters accepted after the closing bracket.
// 'g' is accepted for familiarity but ignored: scanning is always global.
const regexModifiers = "imsUg"

type delimiterKind int

const (
	literalDelimiter delimiterKind = iota
	regexDelimiter
	deadDelimiter // regex-shaped but failed to compile; matches nothing
)

// Delimiter is a classified search pattern: either a literal byte sequence
// or a bracketed regular expression with trailing modifier letters.
// Classification happens once at construction, never per search.
type Delimiter struct {
	Source string
	kind   delimiterKind
	re     *regexp.Regexp
}

// Group is one capture group of a regex match. Unmatched optional groups
// keep Present == false and offsets of -1; their value is never coerced
// to an empty string.
type Group struct {
	Key     string
	Value   string
	Start   int
	End     int
	Length  int
	Present bool
}

// MatchResult is the outcome of a single successful search.
type MatchResult struct {
	Position int
	Length   int
	Text     string
	Groups   []Group
}

// Classify inspects pattern and builds the matching Delimiter variant.
// A pattern counts as regex-shaped when it is at least 3 bytes long, starts
// with one of the bracket characters, the same character reappears later as
// the closing bracket (last occurrence wins), and everything after that
// closer is made of valid modifier letters. A regex-shaped pattern that does
// not compile yields a delimiter that matches nothing.
func Classify(pattern string) Delimiter {
	inner, flags, ok := splitRegexShape(pattern)
	if !ok {
		return Delimiter{Source: pattern, kind: literalDelimiter}
	}

	expr := inner
	if f := strings.Map(dropGlobalFlag, flags); f != "" {
		expr = "(?" + f + ")" + inner
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return Delimiter{Source: pattern, kind: deadDelimiter}
	}
	return Delimiter{Source: pattern, kind: regexDelimiter, re: re}
}

// IsPattern reports whether the delimiter was classified as regex-shaped.
func (d Delimiter) IsPattern() bool {
	return d.kind != literalDelimiter
}

// Find searches text from offset and returns the next match, or nil when
// none exists. It is a pure function of (text, delimiter, offset).
func (d Delimiter) Find(text string, from int) *MatchResult {
	if from < 0 {
		from = 0
	}
	if from > len(text) {
		return nil
	}

	switch d.kind {
	case deadDelimiter:
		return nil

	case regexDelimiter:
		loc := d.re.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			return nil
		}
		m := &MatchResult{
			Position: from + loc[0],
			Length:   loc[1] - loc[0],
			Text:     text[from+loc[0] : from+loc[1]],
		}
		names := d.re.SubexpNames()
		for i := 1; i < d.re.NumSubexp()+1; i++ {
			g := Group{Key: strconv.Itoa(i), Start: -1, End: -1}
			if i < len(names) && names[i] != "" {
				g.Key = names[i]
			}
			if loc[2*i] >= 0 {
				g.Present = true
				g.Start = from + loc[2*i]
				g.End = from + loc[2*i+1]
				g.Length = g.End - g.Start
				g.Value = text[g.Start:g.End]
			}
			m.Groups = append(m.Groups, g)
		}
		return m

	default:
		if d.Source == "" {
			return nil
		}
		idx := strings.Index(text[from:], d.Source)
		if idx < 0 {
			return nil
		}
		return &MatchResult{
			Position: from + idx,
			Length:   len(d.Source),
			Text:     d.Source,
		}
	}
}

// ReplaceAll substitutes every occurrence of the delimiter in text.
// Literal delimiters use plain substring replacement; regex delimiters use
// regex expansion (so repl may reference groups as $1); dead delimiters
// leave text untouched.
func (d Delimiter) ReplaceAll(text, repl string) string {
	switch d.kind {
	case deadDelimiter:
		return text
	case regexDelimiter:
		return d.re.ReplaceAllString(text, repl)
	default:
		if d.Source == "" {
			return text
		}
		return strings.ReplaceAll(text, d.Source, repl)
	}
}

// splitRegexShape splits a regex-shaped pattern into inner expression and
// modifier flags. ok is false when the pattern does not have the shape.
func splitRegexShape(pattern string) (inner, flags string, ok bool) {
	if len(pattern) < 3 {
		return "", "", false
	}
	d := pattern[0]
	if strings.IndexByte(regexDelimChars, d) < 0 {
		return "", "", false
	}
	close := strings.LastIndexByte(pattern[1:], d)
	if close < 0 {
		return "", "", false
	}
	close++ // index in pattern, guaranteed > 0
	flags = pattern[close+1:]
	for i := 0; i < len(flags); i++ {
		if strings.IndexByte(regexModifiers, flags[i]) < 0 {
			return "", "", false
		}
	}
	return pattern[1:close], flags, true
}

func dropGlobalFlag(r rune) rune {
	if r == 'g' {
		return -1
	}
	return r
}
