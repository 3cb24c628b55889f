package rules

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fenceInfo is the info string marking a fenced code block as a rule table.
const fenceInfo = "blocksub"

// LoadMarkdown extracts rule tables from a Markdown document. Every fenced
// code block tagged `blocksub` is parsed as YAML — either a top-level
// "rules" list or a single rule mapping. Rules without a name inherit the
// text of the nearest heading above their fence. Everything else in the
// document is ignored, so rule files double as readable documentation.
func LoadMarkdown(path string) ([]Rule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	return ParseMarkdown(src)
}

// ParseMarkdown is LoadMarkdown over in-memory content.
func ParseMarkdown(src []byte) ([]Rule, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		out     []Rule
		heading string
		walkErr error
	)

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			heading = strings.TrimSpace(nodeText(node, src))
		case *ast.FencedCodeBlock:
			if string(node.Language(src)) != fenceInfo {
				return ast.WalkContinue, nil
			}
			rs, err := parseFence(fenceContent(node, src))
			if err != nil {
				walkErr = err
				return ast.WalkStop, nil
			}
			for i := range rs {
				if rs[i].Name == "" {
					rs[i].Name = heading
				}
			}
			out = append(out, rs...)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	return out, nil
}

// parseFence parses one fenced block's YAML. A block holding a "rules" key
// contributes the whole list; otherwise the mapping is read as one rule.
func parseFence(content []byte) ([]Rule, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("parsing rule fence: %w", err)
	}

	if v.IsSet("rules") {
		var rs []Rule
		if err := v.UnmarshalKey("rules", &rs); err != nil {
			return nil, fmt.Errorf("parsing rule fence: %w", err)
		}
		return rs, nil
	}

	var r Rule
	if err := v.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("parsing rule fence: %w", err)
	}
	return []Rule{r}, nil
}

// fenceContent concatenates the raw lines of a fenced code block.
func fenceContent(node *ast.FencedCodeBlock, src []byte) []byte {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.Bytes()
}

// nodeText concatenates the source segments of a node's lines.
func nodeText(node ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}
