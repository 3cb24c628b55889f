package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"blocksub/internal/engine"
)

// Load reads a rule table from path. Markdown documents are parsed by
// LoadMarkdown; everything else (yaml, json, toml) goes through viper and
// must carry a top-level "rules" list. The loaded table is validated so
// configuration errors surface before any text is scanned.
func Load(path string) ([]Rule, error) {
	var (
		rs  []Rule
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		rs, err = LoadMarkdown(path)
	default:
		rs, err = loadConfigFile(path)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(rs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

func loadConfigFile(path string) ([]Rule, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	var rs []Rule
	if err := v.UnmarshalKey("rules", &rs); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return rs, nil
}

// Validate rejects rule tables with configuration errors: mismatched
// open/close delimiter counts or empty delimiter strings, at any nesting
// depth.
func Validate(rs []Rule) error {
	for i, r := range rs {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if len(r.Open) != len(r.Close) {
			return fmt.Errorf("rule %s: %w", name, engine.ErrDelimiterCount)
		}
		for j := range r.Open {
			if r.Open[j] == "" || r.Close[j] == "" {
				return fmt.Errorf("rule %s: %w", name, engine.ErrEmptyDelimiter)
			}
		}
		if (r.ScopeStart == "") != (r.ScopeEnd == "") {
			return fmt.Errorf("rule %s: scope_start and scope_end must be set together", name)
		}
		if err := Validate(r.Inner); err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
	}
	return nil
}
