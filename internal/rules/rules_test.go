package rules

import (
	"testing"

	"blocksub/internal/engine"
)

func newTestApplier() *Applier {
	return NewApplier(engine.DefaultSplitter())
}

func TestApplyBlockRule(t *testing.T) {
	rs := []Rule{{
		Open:    []string{"<"},
		Close:   []string{">"},
		Pattern: "[%s]",
	}}

	got, err := newTestApplier().Apply("a <one> b // <two>\n<three>", rs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := "a [one] b // <two>\n[three]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyScopedRule(t *testing.T) {
	rs := []Rule{{
		ScopeStart: "SCOPE_START",
		ScopeEnd:   "SCOPE_END",
		Open:       []string{"<"},
		Close:      []string{">"},
		Pattern:    "[%s]",
	}}

	text := "outside <1> SCOPE_START inner <2> SCOPE_END outside <3>"
	got, err := newTestApplier().Apply(text, rs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := "outside <1> SCOPE_START inner [2] SCOPE_END outside <3>"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyTokenRules(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		text string
		want string
	}{
		{
			name: "literal token",
			rule: Rule{Tokens: []TokenRule{{Find: "foo", Replace: "bar"}}},
			text: "foo // foo\nfoo",
			want: "bar // foo\nbar",
		},
		{
			name: "regex token",
			rule: Rule{Tokens: []TokenRule{{Find: `/v(\d+)/`, Replace: "version $1"}}},
			text: "v1 v22",
			want: "version 1 version 22",
		},
		{
			name: "empty find is a no-op",
			rule: Rule{Tokens: []TokenRule{{Find: "", Replace: "x"}}},
			text: "abc",
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestApplier().Apply(tt.text, []Rule{tt.rule})
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyOuterBeforeInner(t *testing.T) {
	// The outer block rewrite runs first; the inner rule then sees its
	// output, confined to the same section.
	rs := []Rule{{
		ScopeStart: "BEGIN",
		ScopeEnd:   "END",
		Open:       []string{"<"},
		Close:      []string{">"},
		Pattern:    "[%s]",
		Inner: []Rule{{
			Tokens: []TokenRule{{Find: "x", Replace: "y"}},
		}},
	}}

	got, err := newTestApplier().Apply("a <x> BEGIN <x> END", rs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := "a <x> BEGIN [y] END"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyNestedBlockRules(t *testing.T) {
	rs := []Rule{{
		Open:    []string{"{"},
		Close:   []string{"}"},
		Pattern: "(%s)",
		Inner: []Rule{{
			Open:    []string{"<"},
			Close:   []string{">"},
			Pattern: "[%s]",
		}},
	}}

	got, err := newTestApplier().Apply("a {b <c> d}", rs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := "a (b [c] d)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyRulesInOrder(t *testing.T) {
	rs := []Rule{
		{Tokens: []TokenRule{{Find: "a", Replace: "b"}}},
		{Tokens: []TokenRule{{Find: "b", Replace: "c"}}},
	}

	got, err := newTestApplier().Apply("a", rs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got != "c" {
		t.Errorf("got %q, want c", got)
	}
}

func TestApplyDefaultPatternUnwraps(t *testing.T) {
	rs := []Rule{{Open: []string{"<"}, Close: []string{">"}}}

	got, err := newTestApplier().Apply("a <b> c", rs)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if want := "a b c"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplySurfacesConfigurationErrors(t *testing.T) {
	rs := []Rule{{Open: []string{"<", "["}, Close: []string{">"}}}
	if _, err := newTestApplier().Apply("text", rs); err == nil {
		t.Error("expected configuration error")
	}
}
