package engine

import (
	"errors"
	"sort"
)

// ErrEmptyDelimiter is returned when an open, close, or section marker
// string is empty. An empty delimiter matches everywhere and is always a
// caller mistake.
var ErrEmptyDelimiter = errors.New("empty delimiter")

// ErrDelimiterCount is returned when parallel open/close delimiter lists
// have different lengths.
var ErrDelimiterCount = errors.New("open/close delimiter count mismatch")

// Block is a matched open/close delimiter pair. Close is nil for an
// unterminated block, which spans from its open match to end-of-text.
type Block struct {
	Open  MatchResult
	Close *MatchResult
}

// Closed reports whether the block has a close match.
func (b Block) Closed() bool {
	return b.Close != nil
}

// Start returns the offset where the block begins.
func (b Block) Start() int {
	return b.Open.Position
}

// End returns the offset just past the block given the text length.
func (b Block) End(textLen int) int {
	if b.Close != nil {
		return b.Close.Position + b.Close.Length
	}
	return textLen
}

// Inner returns the substring strictly between the open delimiter's end and
// the close delimiter's start. For an unterminated block it runs to
// end-of-text.
func (b Block) Inner(text string) string {
	start := b.Open.Position + b.Open.Length
	if start > len(text) {
		start = len(text)
	}
	end := len(text)
	if b.Close != nil && b.Close.Position < end {
		end = b.Close.Position
	}
	if end < start {
		end = start
	}
	return text[start:end]
}

// FreeRange is a span of text not covered by any block.
type FreeRange struct {
	Start int
	End   int
}

// FindBlocks scans text left to right for non-escaped open/close pairs of a
// single delimiter pair. Escaped opens are invisible to the scanner; escaped
// closes do not terminate a block and the close search continues forward
// from just past them. When an open never finds a close, one unterminated
// block is recorded and scanning stops: the open consumes the remainder of
// the text as ambiguous.
func FindBlocks(text string, open, close Delimiter) []Block {
	var blocks []Block
	offset := 0

	for offset <= len(text) {
		om := open.Find(text, offset)
		if om == nil {
			break
		}
		if IsEscaped(text, om.Position) {
			offset = om.Position + max(om.Length, 1)
			continue
		}

		searchFrom := om.Position + om.Length
		var cm *MatchResult
		for {
			cm = close.Find(text, searchFrom)
			if cm == nil {
				break
			}
			if !IsEscaped(text, cm.Position) {
				break
			}
			searchFrom = cm.Position + max(cm.Length, 1)
		}

		if cm == nil {
			blocks = append(blocks, Block{Open: *om})
			break
		}

		blocks = append(blocks, Block{Open: *om, Close: cm})
		next := cm.Position + cm.Length
		if next <= om.Position { // guard against zero-width matches
			next = om.Position + 1
		}
		offset = next
	}

	return blocks
}

// FindAllBlocks validates and classifies parallel open/close delimiter
// lists, runs the scan independently per pair, and merges the results in
// start order. Blocks from different pairs may overlap; that is resolved at
// rewrite time by processing order, not here.
func FindAllBlocks(text string, open, close []string) ([]Block, error) {
	openDelims, closeDelims, err := classifyPairs(open, close)
	if err != nil {
		return nil, err
	}

	var blocks []Block
	for i := range openDelims {
		blocks = append(blocks, FindBlocks(text, openDelims[i], closeDelims[i])...)
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Start() < blocks[j].Start()
	})
	return blocks, nil
}

// FreeRanges returns the complement of the union of block spans over
// [0, textLen).
func FreeRanges(textLen int, blocks []Block) []FreeRange {
	spans := make([]FreeRange, 0, len(blocks))
	for _, b := range blocks {
		start, end := b.Start(), b.End(textLen)
		if end > textLen {
			end = textLen
		}
		if start < end {
			spans = append(spans, FreeRange{Start: start, End: end})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var free []FreeRange
	pos := 0
	for _, s := range spans {
		if s.Start > pos {
			free = append(free, FreeRange{Start: pos, End: s.Start})
		}
		if s.End > pos {
			pos = s.End
		}
	}
	if pos < textLen {
		free = append(free, FreeRange{Start: pos, End: textLen})
	}
	return free
}

// classifyPairs rejects configuration errors before any scanning begins.
func classifyPairs(open, close []string) ([]Delimiter, []Delimiter, error) {
	if len(open) != len(close) {
		return nil, nil, ErrDelimiterCount
	}
	openDelims := make([]Delimiter, 0, len(open))
	closeDelims := make([]Delimiter, 0, len(close))
	for i := range open {
		if open[i] == "" || close[i] == "" {
			return nil, nil, ErrEmptyDelimiter
		}
		openDelims = append(openDelims, Classify(open[i]))
		closeDelims = append(closeDelims, Classify(close[i]))
	}
	return openDelims, closeDelims, nil
}
