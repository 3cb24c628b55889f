package engine

import "strings"

// Segment is one run of text, either inside or outside a comment. Segments
// returned by Split are ordered, contiguous, and cover the whole input.
type Segment struct {
	IsComment bool
	Content   string
}

// Splitter separates text into comment and non-comment runs using fixed
// two-character markers. Detection is purely lexical: a marker inside a
// string literal still counts as a marker, and comments do not nest.
type Splitter struct {
	Line       string
	BlockOpen  string
	BlockClose string
}

// DefaultSplitter returns a splitter for the common //, /* and */ markers.
func DefaultSplitter() Splitter {
	return Splitter{Line: "//", BlockOpen: "/*", BlockClose: "*/"}
}

// Split separates text into alternating non-comment and comment segments.
// A block comment is non-greedy: the first close marker wins, and its
// content may span lines. A line comment runs to the end of the line; the
// line terminator itself belongs to the following non-comment segment. An
// unclosed block comment consumes the remainder of the text.
func (s Splitter) Split(text string) []Segment {
	var segments []Segment
	i := 0

	for i < len(text) {
		li := markerIndex(text, s.Line, i)
		bi := markerIndex(text, s.BlockOpen, i)

		pos, isBlock := li, false
		if bi >= 0 && (li < 0 || bi < li) {
			pos, isBlock = bi, true
		}
		if pos < 0 {
			segments = appendSegment(segments, Segment{Content: text[i:]})
			break
		}
		if pos > i {
			segments = appendSegment(segments, Segment{Content: text[i:pos]})
		}

		end := len(text)
		if isBlock {
			if ci := strings.Index(text[pos+len(s.BlockOpen):], s.BlockClose); ci >= 0 {
				end = pos + len(s.BlockOpen) + ci + len(s.BlockClose)
			}
		} else {
			if nl := strings.IndexByte(text[pos:], '\n'); nl >= 0 {
				end = pos + nl
			}
		}
		segments = appendSegment(segments, Segment{IsComment: true, Content: text[pos:end]})
		i = end
	}

	if len(segments) == 0 {
		segments = []Segment{{Content: text}}
	}
	return segments
}

// MapOutside applies fn to every non-comment segment and reassembles the
// text in original order, passing comment segments through verbatim.
func (s Splitter) MapOutside(text string, fn func(string) (string, error)) (string, error) {
	var sb strings.Builder
	for _, seg := range s.Split(text) {
		if seg.IsComment {
			sb.WriteString(seg.Content)
			continue
		}
		out, err := fn(seg.Content)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

// ReplaceOutside rewrites blocks in every non-comment segment, leaving
// comment segments untouched. Configuration errors surface before any
// segment is rewritten.
func (s Splitter) ReplaceOutside(text string, open, close []string, pattern Pattern) (string, error) {
	if _, _, err := classifyPairs(open, close); err != nil {
		return "", err
	}
	return s.MapOutside(text, func(run string) (string, error) {
		return Replace(run, open, close, pattern)
	})
}

// ReplaceOutsideComments is ReplaceOutside with the default comment markers.
func ReplaceOutsideComments(text string, open, close []string, pattern Pattern) (string, error) {
	return DefaultSplitter().ReplaceOutside(text, open, close, pattern)
}

func markerIndex(text, marker string, from int) int {
	if marker == "" {
		return -1
	}
	idx := strings.Index(text[from:], marker)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func appendSegment(segments []Segment, seg Segment) []Segment {
	if seg.Content == "" {
		return segments
	}
	if n := len(segments); n > 0 && segments[n-1].IsComment == seg.IsComment {
		segments[n-1].Content += seg.Content
		return segments
	}
	return append(segments, seg)
}
