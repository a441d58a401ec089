package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrison/ctxgrep/internal/config"
	"github.com/harrison/ctxgrep/internal/display"
	"github.com/harrison/ctxgrep/internal/filelock"
	"github.com/harrison/ctxgrep/internal/logger"
	"github.com/harrison/ctxgrep/internal/matcher"
	"github.com/harrison/ctxgrep/internal/models"
	"github.com/harrison/ctxgrep/internal/search"
	"github.com/spf13/cobra"
)

func addSearchFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("pattern", "p", "", "Pattern to search for (regular expression)")
	flags.StringP("file-path", "f", "", "File or directory to search")
	flags.IntP("before-context", "B", 0, "Lines of context before each hit")
	flags.IntP("after-context", "A", 0, "Lines of context after each hit")
	flags.IntP("context", "C", 0, "Lines of context before and after each hit")
	flags.BoolP("ignore-case", "i", false, "Case-insensitive search")
	flags.BoolP("line-number", "n", false, "Print the line number of each hit")
	flags.BoolP("verbose", "v", false, "Report unreadable files and directories on stderr")
	flags.BoolP("fixed-strings", "F", false, "Treat the pattern as a literal string")
	flags.String("mode", "", "Scan mode: window or line (default: window)")
	flags.String("color", "", "Color output: auto, always or never (default: auto)")
	flags.String("config", "", "Path to config file (default: .ctxgrep/config.yaml)")
	flags.String("log-level", "", "Log level for -v and --log-file: trace, debug, info, warn, error")
	flags.String("log-file", "", "Append run logs to this file")
	flags.StringSlice("exclude-dir", nil, "Directory names to skip (repeatable)")
	flags.Bool("skip-hidden", false, "Skip files and directories starting with '.'")
	flags.Int("max-depth", 0, "Maximum directory depth (0 = unlimited)")
	flags.Int64("max-file-size", 0, "Skip files larger than this many bytes (0 = unlimited)")
	flags.StringP("output", "o", "", "Write results to this file instead of stdout")
}

// runSearch implements the search command logic
func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(flagOverrides(cmd))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	pattern, root, err := resolveTarget(cmd, args)
	if err != nil {
		return err
	}

	// An invalid pattern fails before any file is touched
	m, err := matcher.Compile(cfg.SearchSpec(pattern))
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	errColor := display.ColorEnabled(cfg.Color, asFile(errOut))

	log, closeLog, err := buildLogger(cfg, errOut)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Mode == models.ModeLine && (cfg.ContextBefore > 0 || cfg.ContextAfter > 0) {
		display.WarnContextIgnored(cfg.ContextBefore, cfg.ContextAfter).Display(errOut, errColor)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	var out io.Writer = cmd.OutOrStdout()
	var buffered *bytes.Buffer
	if outputPath != "" {
		buffered = &bytes.Buffer{}
		out = buffered
	}

	// Colors are for terminals, never for result files
	useColor := outputPath == "" && display.ColorEnabled(cfg.Color, asFile(out))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := display.NewReporter(out, display.ReporterOptions{
		LineNumbers: cfg.LineNumbers,
		Color:       useColor,
		Highlight:   m.Highlight,
	})

	runner := search.NewRunner(reporter, log)
	_, err = runner.Run(ctx, search.Request{
		Root:    root,
		Matcher: m,
		Walk:    cfg.WalkOptions(),
		Scan:    cfg.ScanOptions(),
	})
	if err != nil {
		log.LogError(err.Error())
		return err
	}

	if buffered != nil {
		// An existing results file keeps its permissions
		mode := filelock.ModeOf(outputPath, filelock.DefaultMode)
		if err := filelock.LockAndWrite(outputPath, buffered.Bytes(), mode); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}
	return nil
}

// loadConfig reads --config if given, otherwise the project or user config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// flagOverrides collects only the flags set on the command line.
func flagOverrides(cmd *cobra.Command) config.FlagOverrides {
	flags := cmd.Flags()
	var o config.FlagOverrides

	intFlag := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}
	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	// -C sets both sides, explicit -B/-A take precedence
	if c := intFlag("context"); c != nil {
		o.ContextBefore = c
		o.ContextAfter = c
	}
	if b := intFlag("before-context"); b != nil {
		o.ContextBefore = b
	}
	if a := intFlag("after-context"); a != nil {
		o.ContextAfter = a
	}

	o.IgnoreCase = boolFlag("ignore-case")
	o.LineNumbers = boolFlag("line-number")
	o.Verbose = boolFlag("verbose")
	o.Literal = boolFlag("fixed-strings")
	o.SkipHidden = boolFlag("skip-hidden")
	o.Mode = stringFlag("mode")
	o.Color = stringFlag("color")
	o.LogLevel = stringFlag("log-level")
	o.LogFile = stringFlag("log-file")
	o.MaxDepth = intFlag("max-depth")
	o.ExcludeDirs, _ = flags.GetStringSlice("exclude-dir")

	if flags.Changed("max-file-size") {
		v, _ := flags.GetInt64("max-file-size")
		o.MaxFileSize = &v
	}
	return o
}

// resolveTarget returns the pattern and root from flags or positional args.
// Flags win; remaining positional args fill in whatever is missing, pattern first.
func resolveTarget(cmd *cobra.Command, args []string) (string, string, error) {
	pattern, _ := cmd.Flags().GetString("pattern")
	root, _ := cmd.Flags().GetString("file-path")

	rest := args
	if pattern == "" && len(rest) > 0 {
		pattern, rest = rest[0], rest[1:]
	}
	if root == "" && len(rest) > 0 {
		root, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return "", "", fmt.Errorf("unexpected argument %q", rest[0])
	}

	if pattern == "" {
		return "", "", errors.New("a search pattern is required (-p or first argument)")
	}
	if root == "" {
		return "", "", errors.New("a search path is required (-f or second argument)")
	}
	return pattern, root, nil
}

// buildLogger wires the console logger (verbose only) and the optional file logger.
func buildLogger(cfg *config.Config, errOut io.Writer) (logger.Logger, func(), error) {
	var loggers []logger.Logger

	if cfg.Verbose {
		loggers = append(loggers, logger.NewConsoleLogger(errOut, cfg.LogLevel))
	}

	closeLog := func() {}
	if cfg.LogFile != "" {
		fl, err := logger.NewFileLogger(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		loggers = append(loggers, fl)
		closeLog = func() { _ = fl.Close() }
	}

	if len(loggers) == 0 {
		return logger.NewNoOpLogger(), closeLog, nil
	}
	return logger.NewMultiLogger(loggers...), closeLog, nil
}

func asFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}
