package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/logsweep/internal/assist"
	"github.com/dshills/logsweep/internal/config"
	"github.com/dshills/logsweep/internal/credential"
)

var version = "0.1.0"

// app carries the state shared by all subcommands.
type app struct {
	configFile string
	verbose    bool

	cfg    *config.Config
	log    *zap.Logger
	stdout io.Writer
	stderr io.Writer

	// prompter asks for a missing API key; newProvider, when set, replaces provider
	// resolution from the configured model.
	prompter    credential.Prompter
	newProvider assist.ProviderFunc
	// color enables syntax highlighting of code written to stdout.
	color bool
}

func main() {
	a := &app{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		prompter: credential.TerminalPrompter{In: os.Stdin, Out: os.Stderr},
		color:    isTerminal(os.Stdout),
	}

	if err := newRootCmd(a).Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "logsweep",
		Short:         "Remove console log statements from source files, with optional model-assisted cleanup",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (default: $HOME/"+config.FileName+")")
	pf.BoolVar(&a.verbose, "verbose", false, "Log processing steps to stderr")

	root.AddCommand(
		newRemoveCmd(a),
		newWorkspaceCmd(a),
		newScanCmd(a),
		newWatchCmd(a),
		newSmartCmd(a),
		newAdviceCmd(a, adviceAnalyze),
		newAdviceCmd(a, adviceGenerate),
		newAdviceCmd(a, adviceQuality),
	)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	return root
}

// init builds the logger and loads the configuration.
func (a *app) init() error {
	if a.log == nil {
		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if a.verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.log = logger
	}

	cfg, err := config.Load(a.configFile)
	if err != nil {
		return exitError(3, "failed to load config: %v", err)
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		fmt.Fprintln(a.stderr, "Configuration errors:")
		for _, e := range errs {
			fmt.Fprintf(a.stderr, "  %s\n", e)
		}
		return exitError(3, "invalid configuration in %s", cfg.File)
	}
	a.cfg = cfg
	a.log.Debug("config loaded", zap.String("file", cfg.File), zap.String("model", cfg.Model))
	return nil
}

// service returns the model service, prompting for the API key on first use.
func (a *app) service() *assist.Service {
	gate := credential.NewGate(a.cfg.Credential(), "API key", a.prompter, a.cfg, a.log)
	return assist.New(assist.Config{
		Model:      a.cfg.Model,
		MaxTokens:  a.cfg.MaxTokens,
		BaseURL:    a.cfg.BaseURL,
		Redact:     a.cfg.Redact,
		HTTPClient: &http.Client{Timeout: a.cfg.Timeout},
	}, gate, a.newProvider, a.log)
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// assistError maps a model operation failure to an exit code.
func assistError(err error) error {
	switch {
	case errors.Is(err, assist.ErrMissingCredential):
		return exitError(4, "no API key configured: set api_key in %s or LOGSWEEP_API_KEY (%v)", config.FileName, err)
	case errors.Is(err, assist.ErrRemoteCall):
		return exitError(4, "%v", err)
	default:
		return exitError(1, "%v", err)
	}
}
