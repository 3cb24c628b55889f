package engine

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		isPattern bool
	}{
		{
			name:      "plain literal",
			pattern:   "BEGIN",
			isPattern: false,
		},
		{
			name:      "slash-bracketed regex",
			pattern:   "/a+/",
			isPattern: true,
		},
		{
			name:      "regex with modifiers",
			pattern:   "/foo/i",
			isPattern: true,
		},
		{
			name:      "tilde-bracketed regex",
			pattern:   "~ba[rz]~s",
			isPattern: true,
		},
		{
			name:      "brace-bracketed regex",
			pattern:   "{a+{",
			isPattern: true,
		},
		{
			name:      "too short to be a regex",
			pattern:   "//",
			isPattern: false,
		},
		{
			name:      "no closing bracket",
			pattern:   "/abc",
			isPattern: false,
		},
		{
			name:      "invalid modifier letter",
			pattern:   "#x#z",
			isPattern: false,
		},
		{
			name:      "malformed regex stays classified as pattern",
			pattern:   "/a(/",
			isPattern: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.pattern)
			if d.IsPattern() != tt.isPattern {
				t.Errorf("Classify(%q).IsPattern() = %v, want %v", tt.pattern, d.IsPattern(), tt.isPattern)
			}
		})
	}
}

func TestFindLiteral(t *testing.T) {
	d := Classify("ab")

	m := d.Find("xxabyyab", 0)
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Position != 2 || m.Length != 2 || m.Text != "ab" {
		t.Errorf("got pos=%d len=%d text=%q, want pos=2 len=2 text=ab", m.Position, m.Length, m.Text)
	}

	m = d.Find("xxabyyab", 3)
	if m == nil || m.Position != 6 {
		t.Fatalf("search from offset 3: got %+v, want position 6", m)
	}

	if m := d.Find("xxabyyab", 7); m != nil {
		t.Errorf("expected no match from offset 7, got %+v", m)
	}
}

func TestFindRegex(t *testing.T) {
	d := Classify("/(?P<word>[a-z]+)(\\d+)?/")

	m := d.Find("__abc42__", 0)
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Position != 2 || m.Text != "abc42" {
		t.Errorf("got pos=%d text=%q, want pos=2 text=abc42", m.Position, m.Text)
	}
	if len(m.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(m.Groups))
	}
	if g := m.Groups[0]; g.Key != "word" || g.Value != "abc" || g.Start != 2 || g.Length != 3 || !g.Present {
		t.Errorf("named group: %+v", g)
	}

	m = d.Find("__abc__", 0)
	if m == nil {
		t.Fatal("expected a match without the optional group")
	}
	if g := m.Groups[1]; g.Present || g.Value != "" || g.Start != -1 {
		t.Errorf("absent group must stay absent, got %+v", g)
	}
}

func TestFindCaseInsensitiveFlag(t *testing.T) {
	d := Classify("/begin/i")
	m := d.Find("xx BEGIN yy", 0)
	if m == nil || m.Position != 3 {
		t.Fatalf("case-insensitive search failed: %+v", m)
	}
}

func TestFindMalformedRegexMatchesNothing(t *testing.T) {
	d := Classify("/a(/")
	if m := d.Find("a(a(a(", 0); m != nil {
		t.Errorf("malformed regex must match nothing, got %+v", m)
	}
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		repl    string
		text    string
		want    string
	}{
		{
			name:    "literal token",
			pattern: "old",
			repl:    "new",
			text:    "old bold old",
			want:    "new bnew new",
		},
		{
			name:    "regex token with group reference",
			pattern: "/v(\\d+)/",
			repl:    "version $1",
			text:    "v1 and v22",
			want:    "version 1 and version 22",
		},
		{
			name:    "malformed regex leaves text untouched",
			pattern: "/a(/",
			repl:    "x",
			text:    "a(a(",
			want:    "a(a(",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.pattern).ReplaceAll(tt.text, tt.repl)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
