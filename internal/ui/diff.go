package ui

import (
	"fmt"
	"strings"

	"blocksub/internal/config"
)

// ============================================================================
// Line Diff
// ============================================================================

type diffOpKind int

const (
	opEqual diffOpKind = iota
	opDelete
	opInsert
)

// diffOp is one line of a computed diff, with its position in the old (a)
// and new (b) line slices. The position for the side the op does not touch
// is -1.
type diffOp struct {
	kind  diffOpKind
	line  string
	aLine int
	bLine int
}

// diffLines computes a line diff between a and b using a longest common
// subsequence table.
func diffLines(a, b []string) []diffOp {
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			ops = append(ops, diffOp{kind: opEqual, line: a[i], aLine: i, bLine: j})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, diffOp{kind: opDelete, line: a[i], aLine: i, bLine: -1})
			i++
		default:
			ops = append(ops, diffOp{kind: opInsert, line: b[j], aLine: -1, bLine: j})
			j++
		}
	}
	for ; i < len(a); i++ {
		ops = append(ops, diffOp{kind: opDelete, line: a[i], aLine: i, bLine: -1})
	}
	for ; j < len(b); j++ {
		ops = append(ops, diffOp{kind: opInsert, line: b[j], aLine: -1, bLine: j})
	}
	return ops
}

// hunks groups op indices into context-limited ranges around changes.
func hunks(ops []diffOp, context int) [][2]int {
	var changed []int
	for i, op := range ops {
		if op.kind != opEqual {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	var out [][2]int
	start := max(changed[0]-context, 0)
	end := min(changed[0]+context+1, len(ops))
	for _, c := range changed[1:] {
		s := max(c-context, 0)
		if s <= end {
			end = min(c+context+1, len(ops))
			continue
		}
		out = append(out, [2]int{start, end})
		start, end = s, min(c+context+1, len(ops))
	}
	return append(out, [2]int{start, end})
}

// ============================================================================
// Rendering
// ============================================================================

// RenderDiff renders a unified, styled diff between before and after,
// headed by path. It returns an empty string when nothing changed.
func RenderDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	ops := diffLines(strings.Split(before, "\n"), strings.Split(after, "\n"))
	ranges := hunks(ops, config.GetContextLines())

	var sb strings.Builder
	sb.WriteString(styles.Header.Render(path))
	sb.WriteString("\n")

	for _, r := range ranges {
		sb.WriteString(styles.Marker.Render(hunkHeader(ops[r[0]:r[1]])))
		sb.WriteString("\n")
		for _, op := range ops[r[0]:r[1]] {
			switch op.kind {
			case opDelete:
				sb.WriteString(styles.Removed.Render("-" + op.line))
			case opInsert:
				sb.WriteString(styles.Added.Render("+" + op.line))
			default:
				sb.WriteString(styles.Context.Render(" " + op.line))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// hunkHeader builds the @@ marker line for one hunk.
func hunkHeader(ops []diffOp) string {
	aStart, aCount := -1, 0
	bStart, bCount := -1, 0
	for _, op := range ops {
		if op.aLine >= 0 {
			if aStart < 0 {
				aStart = op.aLine
			}
			aCount++
		}
		if op.bLine >= 0 {
			if bStart < 0 {
				bStart = op.bLine
			}
			bCount++
		}
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", aStart+1, aCount, bStart+1, bCount)
}
