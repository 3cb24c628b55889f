package rules

import (
	"blocksub/internal/engine"
)

// TokenRule is a plain search-replace pair. Find may be regex-shaped with
// the same bracket syntax as block delimiters; anything else is a literal.
type TokenRule struct {
	Find    string `mapstructure:"find"`
	Replace string `mapstructure:"replace"`
}

// Rule describes one transformation context: an optional scope marker pair
// confining all work to bounded sections, an optional block rewrite, plain
// token replacements, and an ordered list of nested rules applied after the
// outer rewrite within the same region. Rules are read-only input; the
// engine never mutates or persists them.
type Rule struct {
	Name       string      `mapstructure:"name"`
	ScopeStart string      `mapstructure:"scope_start"`
	ScopeEnd   string      `mapstructure:"scope_end"`
	Open       []string    `mapstructure:"open"`
	Close      []string    `mapstructure:"close"`
	Pattern    string      `mapstructure:"pattern"`
	Tokens     []TokenRule `mapstructure:"tokens"`
	Inner      []Rule      `mapstructure:"inner"`
}

// Scoped reports whether the rule confines its work to marker-bounded
// sections.
func (r Rule) Scoped() bool {
	return r.ScopeStart != "" && r.ScopeEnd != ""
}

// pattern returns the rule's replacement template, defaulting to the bare
// placeholder when none is configured.
func (r Rule) pattern() engine.Pattern {
	if r.Pattern == "" {
		return engine.Template("%s")
	}
	return engine.Template(r.Pattern)
}

// Applier applies rule tables to text. The splitter decides which comment
// markers shield text from rewriting.
type Applier struct {
	splitter engine.Splitter
}

// NewApplier creates an applier with the given comment markers.
func NewApplier(splitter engine.Splitter) *Applier {
	return &Applier{splitter: splitter}
}

// Apply runs every rule in order over text and returns the result. Each
// rule sees the output of the previous one.
func (a *Applier) Apply(text string, rules []Rule) (string, error) {
	var err error
	for _, r := range rules {
		text, err = a.applyRule(text, r)
		if err != nil {
			return "", err
		}
	}
	return text, nil
}

// applyRule applies one rule. A scoped rule confines all of its work to
// each section interior; an unscoped rule works on the whole text.
func (a *Applier) applyRule(text string, r Rule) (string, error) {
	if r.Scoped() {
		return engine.ScopedApply(text, r.ScopeStart, r.ScopeEnd, func(interior string) (string, error) {
			return a.applyWithin(interior, r)
		})
	}
	return a.applyWithin(text, r)
}

// applyWithin runs the rule's actions over one region in fixed order: the
// outer block rewrite first, then token replacements, then inner rules.
// Outer-scope rewriting always happens before inner-scope rewriting.
func (a *Applier) applyWithin(text string, r Rule) (string, error) {
	var err error

	if len(r.Open) > 0 {
		text, err = a.splitter.ReplaceOutside(text, r.Open, r.Close, r.pattern())
		if err != nil {
			return "", err
		}
	}

	for _, tok := range r.Tokens {
		text, err = a.applyToken(text, tok)
		if err != nil {
			return "", err
		}
	}

	for _, inner := range r.Inner {
		text, err = a.applyRule(text, inner)
		if err != nil {
			return "", err
		}
	}

	return text, nil
}

// applyToken runs one token replacement outside comments.
func (a *Applier) applyToken(text string, tok TokenRule) (string, error) {
	if tok.Find == "" {
		return text, nil
	}
	d := engine.Classify(tok.Find)
	return a.splitter.MapOutside(text, func(run string) (string, error) {
		return d.ReplaceAll(run, tok.Replace), nil
	})
}
