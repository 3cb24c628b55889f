package engine

// IsEscaped reports whether the byte at pos is escaped, i.e. preceded by an
// odd number of consecutive backslashes. Escaping is transitive only through
// the contiguous backslash run immediately before pos.
func IsEscaped(text string, pos int) bool {
	if pos <= 0 || pos > len(text) {
		return false
	}
	n := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}
