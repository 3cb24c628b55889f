package ui

import "testing"

func opKinds(ops []diffOp) []diffOpKind {
	kinds := make([]diffOpKind, len(ops))
	for i, op := range ops {
		kinds[i] = op.kind
	}
	return kinds
}

func TestDiffLines(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want []diffOpKind
	}{
		{
			name: "identical",
			a:    []string{"x", "y"},
			b:    []string{"x", "y"},
			want: []diffOpKind{opEqual, opEqual},
		},
		{
			name: "one line changed",
			a:    []string{"a", "b", "c"},
			b:    []string{"a", "B", "c"},
			want: []diffOpKind{opEqual, opDelete, opInsert, opEqual},
		},
		{
			name: "insertion",
			a:    []string{"a", "c"},
			b:    []string{"a", "b", "c"},
			want: []diffOpKind{opEqual, opInsert, opEqual},
		},
		{
			name: "deletion at end",
			a:    []string{"a", "b"},
			b:    []string{"a"},
			want: []diffOpKind{opEqual, opDelete},
		},
		{
			name: "all new",
			a:    []string{"a"},
			b:    []string{"x"},
			want: []diffOpKind{opDelete, opInsert},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := opKinds(diffLines(tt.a, tt.b))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("op %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiffLinesRoundTrip(t *testing.T) {
	a := []string{"one", "two", "three"}
	b := []string{"one", "2", "three", "four"}

	var gotA, gotB []string
	for _, op := range diffLines(a, b) {
		switch op.kind {
		case opEqual:
			gotA = append(gotA, op.line)
			gotB = append(gotB, op.line)
		case opDelete:
			gotA = append(gotA, op.line)
		case opInsert:
			gotB = append(gotB, op.line)
		}
	}

	if len(gotA) != len(a) || len(gotB) != len(b) {
		t.Fatalf("round trip lost lines: %v / %v", gotA, gotB)
	}
	for i := range a {
		if gotA[i] != a[i] {
			t.Errorf("a[%d] = %q, want %q", i, gotA[i], a[i])
		}
	}
	for i := range b {
		if gotB[i] != b[i] {
			t.Errorf("b[%d] = %q, want %q", i, gotB[i], b[i])
		}
	}
}

func TestHunksMergeOverlappingRanges(t *testing.T) {
	ops := []diffOp{
		{kind: opEqual}, {kind: opDelete}, {kind: opEqual},
		{kind: opEqual}, {kind: opInsert}, {kind: opEqual},
	}

	ranges := hunks(ops, 2)
	if len(ranges) != 1 {
		t.Fatalf("expected 1 merged hunk, got %v", ranges)
	}
	if ranges[0] != [2]int{0, 6} {
		t.Errorf("hunk = %v, want [0 6]", ranges[0])
	}
}

func TestHunksSeparateRanges(t *testing.T) {
	ops := make([]diffOp, 20)
	ops[1].kind = opDelete
	ops[18].kind = opInsert

	ranges := hunks(ops, 1)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 hunks, got %v", ranges)
	}
	if ranges[0] != [2]int{0, 3} || ranges[1] != [2]int{17, 20} {
		t.Errorf("ranges = %v", ranges)
	}
}

func TestRenderDiffNoChanges(t *testing.T) {
	if got := RenderDiff("f.txt", "same", "same"); got != "" {
		t.Errorf("expected empty render, got %q", got)
	}
}
