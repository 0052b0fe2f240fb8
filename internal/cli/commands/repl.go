package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/earlylint/internal/cli/output"
	"github.com/leapstack-labs/earlylint/pkg/lint"
	"github.com/leapstack-labs/earlylint/pkg/parser"
	"github.com/leapstack-labs/earlylint/pkg/source"
)

const (
	replPrompt     = "earlylint> "
	replContPrompt = "       ...> "
	replSourceName = "<repl>"
)

// ReplOptions holds options for the repl command.
type ReplOptions struct {
	Disable []string
	Rules   []string
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	opts := &ReplOptions{}
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Lint statements interactively",
		Long: `Start an interactive session. Each entry is parsed as the body of a
function and linted immediately. Entries continue over several lines
until every bracket is closed.`,
		Example: `  earlylint repl
  earlylint> let n = 0x1aBc;
  earlylint> .explain mixed-case-hex-literal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")

	return cmd
}

func runRepl(cmd *cobra.Command, opts *ReplOptions) error {
	cc := NewCommandContext(cmd, string(output.ModeText))
	cc.warnUnknownRules(opts.Disable, opts.Rules)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     replHistoryFile(),
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	session := newReplSession(cc.Renderer, cc.Cfg.LintConfig(opts.Disable, opts.Rules), cc.Logger)

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "earlylint REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if session.feed(line) == replQuit {
			return nil
		}
		if session.pending() {
			rl.SetPrompt(replContPrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
}

func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "earlylint")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

func newReplCompleter() *readline.PrefixCompleter {
	var ids []readline.PrefixCompleterInterface
	for _, r := range lint.All() {
		ids = append(ids, readline.PcItem(r.ID()))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".rules"),
		readline.PcItem(".explain", ids...),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

type replStatus int

const (
	replContinue replStatus = iota
	replQuit
)

// replSession accumulates input and lints each complete entry.
type replSession struct {
	r      *output.Renderer
	cfg    *lint.Config
	logger *slog.Logger
	buf    strings.Builder
	depth  int
}

func newReplSession(r *output.Renderer, cfg *lint.Config, logger *slog.Logger) *replSession {
	return &replSession{r: r, cfg: cfg, logger: logger}
}

func (s *replSession) reset() {
	s.buf.Reset()
	s.depth = 0
}

func (s *replSession) pending() bool {
	return s.buf.Len() > 0
}

// feed consumes one input line.
func (s *replSession) feed(line string) replStatus {
	trimmed := strings.TrimSpace(line)
	if !s.pending() {
		if trimmed == "" {
			return replContinue
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.command(trimmed)
		}
	}

	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	s.depth += bracketDelta(line)
	if s.depth > 0 {
		return replContinue
	}

	src := s.buf.String()
	s.reset()
	s.eval(src)
	return replContinue
}

// bracketDelta counts opening minus closing brackets outside string and
// character literals and line comments.
func bracketDelta(line string) int {
	delta := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"':
			quote = c
		case '\'':
			// 'x' and '\n' are characters; anything else is a lifetime.
			if i+1 < len(line) && line[i+1] == '\\' {
				quote = c
			} else if i+2 < len(line) && line[i+2] == '\'' {
				i += 2
			}
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				return delta
			}
		case '{', '(', '[':
			delta++
		case '}', ')', ']':
			delta--
		}
	}
	return delta
}

// eval lints src and renders the findings. It returns the diagnostics.
func (s *replSession) eval(src string) []lint.Diagnostic {
	block, err := parser.ParseBlockBody(src)
	if err != nil {
		s.r.Error(err.Error())
		return nil
	}

	file := source.NewFile(replSourceName, []byte(src))
	diags := lint.NewAnalyzer(s.cfg, file, lint.WithLogger(s.logger)).Analyze(block)
	if len(diags) == 0 {
		s.r.Success("no findings")
		return nil
	}
	for _, d := range diags {
		s.r.RenderDiagnostic(replSourceName, file, d)
	}
	return diags
}

func (s *replSession) command(line string) replStatus {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return replQuit

	case ".help":
		printReplHelp(s.r.Writer())

	case ".rules":
		for _, ri := range lint.AllRules() {
			s.r.Printf("  %-32s %s\n", ri.ID, ri.Description)
		}

	case ".explain":
		if len(parts) < 2 {
			s.r.Error("usage: .explain <rule-id>")
			break
		}
		rule, ok := lint.ByID(parts[1])
		if !ok {
			s.r.Error(fmt.Sprintf("rule %q not found", parts[1]))
			break
		}
		showRuleText(s.r, RuleDetail{RuleInfo: lint.GetRuleInfo(rule), DocumentationURL: docURL(s.cfg.DocsBaseURL, rule.ID())})

	default:
		s.r.Error(fmt.Sprintf("unknown command: %s (type .help for commands)", parts[0]))
	}
	return replContinue
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .rules            List all rules
  .explain <rule>   Show documentation for a rule
  .quit / .exit     Exit the REPL

Tips:
  - Each entry is linted as a function body: let x = 0123;
  - Entries continue over several lines until brackets balance
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}
