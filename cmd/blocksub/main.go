package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"blocksub/internal/config"
	"blocksub/internal/engine"
	"blocksub/internal/output"
	"blocksub/internal/rules"
	"blocksub/internal/ui"
)

var version = "0.1.0"

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules that would be applied",
	Long: `Loads the rule table (from --rules or the config file) and prints
each rule without touching any input.`,
	RunE: runRules,
}

var rootCmd = &cobra.Command{
	Use:   "blocksub [file...]",
	Short: "Delimiter-aware block substitution",
	Long: `Rewrites delimiter-bounded blocks in text files.

Rules come from a rule table (YAML, JSON, TOML, or Markdown) or from
ad-hoc --open/--close/--pattern flags. Comments are left untouched, and
rules with scope markers only rewrite inside their sections. Without
file arguments, input is read from stdin and the result printed.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSub,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(rulesCmd)

	rootCmd.PersistentFlags().StringP("rules", "r", "", "Rule table file (yaml, json, toml, md)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: print, write, copy")
	rootCmd.PersistentFlags().BoolP("write", "w", false, "Rewrite files in place (shorthand for -o write)")
	rootCmd.PersistentFlags().Bool("copy", false, "Copy result to clipboard (shorthand for -o copy)")
	rootCmd.PersistentFlags().BoolP("diff", "d", false, "Show a diff instead of the rewritten text")
	rootCmd.PersistentFlags().BoolP("interactive", "i", false, "Preview each file's diff and confirm before writing")

	rootCmd.Flags().StringSlice("open", nil, "Ad-hoc open delimiter (repeatable)")
	rootCmd.Flags().StringSlice("close", nil, "Ad-hoc close delimiter (repeatable)")
	rootCmd.Flags().StringP("pattern", "p", "", "Replacement template for ad-hoc delimiters (%s = block interior)")
	rootCmd.Flags().String("section-start", "", "Only rewrite between this marker and --section-end")
	rootCmd.Flags().String("section-end", "", "Section end marker")

	viper.BindPFlag("rules", rootCmd.PersistentFlags().Lookup("rules"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
	ui.RefreshStyles()
}

// loadRules builds the rule table: from the rule file when one is
// configured, otherwise from the ad-hoc delimiter flags.
func loadRules(cmd *cobra.Command) ([]rules.Rule, error) {
	if path := config.GetRules(); path != "" {
		return rules.Load(path)
	}

	open, _ := cmd.Flags().GetStringSlice("open")
	closing, _ := cmd.Flags().GetStringSlice("close")
	if len(open) == 0 {
		return nil, fmt.Errorf("no rules: pass --rules or --open/--close")
	}

	pattern, _ := cmd.Flags().GetString("pattern")
	sectionStart, _ := cmd.Flags().GetString("section-start")
	sectionEnd, _ := cmd.Flags().GetString("section-end")

	rs := []rules.Rule{{
		Name:       "ad-hoc",
		ScopeStart: sectionStart,
		ScopeEnd:   sectionEnd,
		Open:       open,
		Close:      closing,
		Pattern:    pattern,
	}}
	if err := rules.Validate(rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// splitterFromConfig builds the comment splitter from the configured
// comment markers.
func splitterFromConfig() engine.Splitter {
	return engine.Splitter{
		Line:       config.GetCommentLine(),
		BlockOpen:  config.GetCommentBlockOpen(),
		BlockClose: config.GetCommentBlockClose(),
	}
}

// outputMode resolves the shorthand flags into the configured mode.
func outputMode(cmd *cobra.Command) output.Mode {
	if w, _ := cmd.Flags().GetBool("write"); w {
		config.SetOutput("write")
	} else if c, _ := cmd.Flags().GetBool("copy"); c {
		config.SetOutput("copy")
	} else if o, _ := cmd.Flags().GetString("output"); o != "" {
		config.SetOutput(o)
	}
	return output.Mode(config.GetOutput())
}

// input is one unit of work: a file path (empty for stdin) and its text.
type input struct {
	path string
	text string
}

func readInputs(args []string) ([]input, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return []input{{path: "", text: string(data)}}, nil
	}

	inputs := make([]input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{path: path, text: string(data)})
	}
	return inputs, nil
}

func runSub(cmd *cobra.Command, args []string) error {
	rs, err := loadRules(cmd)
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}

	applier := rules.NewApplier(splitterFromConfig())

	type result struct {
		input
		rewritten string
	}
	results := make([]result, 0, len(inputs))
	for _, in := range inputs {
		rewritten, err := applier.Apply(in.text, rs)
		if err != nil {
			name := in.path
			if name == "" {
				name = "stdin"
			}
			return fmt.Errorf("%s: %w", name, err)
		}
		results = append(results, result{input: in, rewritten: rewritten})
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		previews := make([]ui.Preview, 0, len(results))
		for _, r := range results {
			if r.rewritten == r.text {
				continue
			}
			previews = append(previews, ui.Preview{Path: r.path, Before: r.text, After: r.rewritten})
		}
		sink := output.NewSink()
		accepted, err := ui.RunPreview(previews, func(p ui.Preview) error {
			return sink.Emit(p.Path, p.After, output.ModeWrite)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%d of %d file(s) rewritten\n", accepted, len(previews))
		return nil
	}

	if diff, _ := cmd.Flags().GetBool("diff"); diff {
		for _, r := range results {
			path := r.path
			if path == "" {
				path = "stdin"
			}
			if rendered := ui.RenderDiff(path, r.text, r.rewritten); rendered != "" {
				fmt.Print(rendered)
			}
		}
		return nil
	}

	mode := outputMode(cmd)
	sink := output.NewSink()
	for _, r := range results {
		if err := sink.Emit(r.path, r.rewritten, mode); err != nil {
			return err
		}
	}
	return nil
}

func runRules(cmd *cobra.Command, args []string) error {
	path := config.GetRules()
	if path == "" {
		return fmt.Errorf("no rule table configured: pass --rules or set rules in the config file")
	}

	rs, err := rules.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d rule(s)\n", path, len(rs))
	printRules(rs, 0)
	return nil
}

// printRules lists each rule and its nested rules, indented by depth.
func printRules(rs []rules.Rule, depth int) {
	indent := strings.Repeat("  ", depth)
	for i, r := range rs {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("rule %d", i+1)
		}
		fmt.Printf("%s- %s\n", indent, name)
		if r.Scoped() {
			fmt.Printf("%s    scope: %q .. %q\n", indent, r.ScopeStart, r.ScopeEnd)
		}
		for j := range r.Open {
			fmt.Printf("%s    block: %q .. %q\n", indent, r.Open[j], r.Close[j])
		}
		if r.Pattern != "" {
			fmt.Printf("%s    pattern: %q\n", indent, r.Pattern)
		}
		for _, tok := range r.Tokens {
			fmt.Printf("%s    token: %q -> %q\n", indent, tok.Find, tok.Replace)
		}
		printRules(r.Inner, depth+1)
	}
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
