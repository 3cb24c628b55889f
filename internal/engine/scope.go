package engine

import "strings"

// ScopedApply confines a transformation to sections bounded by literal
// start/end markers. Text outside every section passes through verbatim and
// the markers themselves are preserved around each transformed interior.
// Sections never overlap and are processed strictly left to right. A section
// whose end marker is missing is recovered by appending a space plus the end
// marker to the working buffer, so every opened section closes.
func ScopedApply(text, sectionStart, sectionEnd string, fn func(string) (string, error)) (string, error) {
	if sectionStart == "" || sectionEnd == "" {
		return "", ErrEmptyDelimiter
	}

	var sb strings.Builder
	work := text
	i := 0

	for {
		si := strings.Index(work[i:], sectionStart)
		if si < 0 {
			sb.WriteString(work[i:])
			break
		}
		si += i

		interiorStart := si + len(sectionStart)
		ei := strings.Index(work[interiorStart:], sectionEnd)
		if ei < 0 {
			work += " " + sectionEnd
			ei = strings.Index(work[interiorStart:], sectionEnd)
		}
		ei += interiorStart

		out, err := fn(work[interiorStart:ei])
		if err != nil {
			return "", err
		}

		sb.WriteString(work[i:interiorStart])
		sb.WriteString(out)
		sb.WriteString(work[ei : ei+len(sectionEnd)])
		i = ei + len(sectionEnd)
	}

	return sb.String(), nil
}

// ScopedReplaceAll rewrites blocks only inside sections bounded by the
// given markers. Each section interior is split into comment and
// non-comment runs first; blocks are found and rewritten per non-comment
// run with the default comment markers.
func ScopedReplaceAll(text, sectionStart, sectionEnd string, open, close []string, pattern Pattern) (string, error) {
	if _, _, err := classifyPairs(open, close); err != nil {
		return "", err
	}
	splitter := DefaultSplitter()
	return ScopedApply(text, sectionStart, sectionEnd, func(interior string) (string, error) {
		return splitter.ReplaceOutside(interior, open, close, pattern)
	})
}
