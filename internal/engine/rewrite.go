package engine

import (
	"sort"
	"strings"
)

// placeholder is the single substitution point in a template pattern.
const placeholder = "%s"

// Pattern is the replacement recipe for a rewrite pass: either a
// template string with one %s placeholder for the block's inner text, or a
// callback producing the full replacement for the span. The two cases are
// dispatched explicitly at rewrite time.
type Pattern struct {
	template string
	callback func(inner string, b Block) string
}

// Template builds a template pattern. The inner text is substituted at the
// first %s; text around the placeholder re-wraps the block. For an
// unterminated block the part after the placeholder is dropped, since the
// close delimiter it decorates never appeared.
func Template(t string) Pattern {
	return Pattern{template: t}
}

// Callback builds a callback pattern. The function receives the inner text
// and the block metadata and must return the full replacement for the span,
// including any delimiters it wants to keep. The engine treats it as a pure
// function for the duration of one rewrite pass.
func Callback(fn func(inner string, b Block) string) Pattern {
	return Pattern{callback: fn}
}

func (p Pattern) expand(inner string, b Block) string {
	if p.callback != nil {
		return p.callback(inner, b)
	}
	i := strings.Index(p.template, placeholder)
	if i < 0 {
		return p.template
	}
	if !b.Closed() {
		return p.template[:i] + inner
	}
	return p.template[:i] + inner + p.template[i+len(placeholder):]
}

// Rewrite replaces every block span in text and returns the result. Blocks
// are processed in descending start order so that splicing one span never
// shifts the offsets of blocks still to be processed. The output is built in
// a fresh buffer; the input string is never mutated.
func Rewrite(text string, blocks []Block, pattern Pattern) string {
	if len(blocks) == 0 {
		return text
	}

	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start() > sorted[j].Start()
	})

	buf := []byte(text)
	for _, b := range sorted {
		start := b.Start()
		end := b.End(len(buf))
		// Spans from different delimiter pairs may overlap; clamp to the
		// evolving buffer so processing order alone decides the outcome.
		if start > len(buf) {
			continue
		}
		if end > len(buf) {
			end = len(buf)
		}
		if end < start {
			end = start
		}

		inner := b.Inner(string(buf))
		repl := pattern.expand(inner, b)

		next := make([]byte, 0, len(buf)-(end-start)+len(repl))
		next = append(next, buf[:start]...)
		next = append(next, repl...)
		next = append(next, buf[end:]...)
		buf = next
	}
	return string(buf)
}

// Replace finds every block bounded by the given delimiter pairs and
// rewrites it with the pattern. Regions outside blocks pass through
// unchanged. open and close are parallel lists; a single pair is the
// common case.
func Replace(text string, open, close []string, pattern Pattern) (string, error) {
	blocks, err := FindAllBlocks(text, open, close)
	if err != nil {
		return "", err
	}
	return Rewrite(text, blocks, pattern), nil
}

// CustomFunc receives the raw scan data for a text: the original text, the
// free ranges not covered by any block, and the discovered blocks. It may
// produce any result; the engine does not constrain it to text.
type CustomFunc func(text string, free []FreeRange, blocks []Block) (any, error)

// CustomReplace scans for blocks and hands the raw results to fn, enabling
// callers to build their own reassembly logic.
func CustomReplace(text string, open, close []string, fn CustomFunc) (any, error) {
	blocks, err := FindAllBlocks(text, open, close)
	if err != nil {
		return nil, err
	}
	return fn(text, FreeRanges(len(text), blocks), blocks)
}
