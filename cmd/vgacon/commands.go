package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/vgacon/internal/app"
	"github.com/dshills/vgacon/internal/config"
	"github.com/dshills/vgacon/internal/renderer/screenshot"
	"github.com/dshills/vgacon/internal/script"
)

// globalFlags are shared by every command and override the
// configuration file and environment.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	backend    string
	noWatch    bool
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:   "vgacon",
		Short: "80x25 text console with search and idle clear",
		Long: `vgacon echoes typed text onto an 80x25 character screen.

Esc starts a search, Enter highlights every match and Esc returns to
typing. Caps-Lock (Ctrl-L in a terminal) toggles the case of letters.
Text left alone in normal mode is cleared after the idle interval.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, &flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to configuration file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFile, "log-file", "", "append logs to this file")
	pf.StringVar(&flags.backend, "backend", "", "display backend (terminal, null, vga)")
	root.Flags().BoolVar(&flags.noWatch, "no-watch", false, "do not reload the configuration file on change")

	root.AddCommand(
		newRunCommand(&flags),
		newScriptCommand(&flags),
		newVersionCommand(),
	)
	return root
}

func newRunCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive console (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.noWatch, "no-watch", false, "do not reload the configuration file on change")
	return cmd
}

func newScriptCommand(flags *globalFlags) *cobra.Command {
	var pngPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "script FILE",
		Short: "Drive a headless console with a Lua script",
		Long: `script runs FILE against a console on the null or vga backend and
prints the final screen. The script sees type, key, raw, idle, mode,
text, search, caps, line, cursor and print.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, flags, args[0], pngPath, quiet)
		},
	}
	cmd.Flags().StringVar(&pngPath, "png", "", "also write the final screen as a PNG image")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the final screen")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vgacon %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.logFile != "" {
		cfg.Logging.File = flags.logFile
	}
	if flags.backend != "" {
		cfg.Backend.Kind = flags.backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openLogger builds the session logger. Without a log file, a terminal
// session logs nowhere so the screen stays clean.
func openLogger(cfg *config.Config, stderr io.Writer) (*app.Logger, func(), error) {
	out := stderr
	closeFn := func() {}

	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case cfg.Backend.Kind == config.BackendTerminal:
		out = io.Discard
	}

	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(cfg.Logging.Level)
	lc.Output = out
	return app.NewSessionLogger(lc), closeFn, nil
}

func newApplication(cmd *cobra.Command, flags *globalFlags, watch bool, adjust func(*config.Config)) (*app.Application, func(), error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	if adjust != nil {
		adjust(cfg)
	}
	logger, closeLog, err := openLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	opts := app.Options{Config: cfg, Logger: logger}
	if watch {
		opts.ConfigPath = flags.configPath
	}
	application, err := app.New(opts)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return application, func() {
		application.Close()
		closeLog()
	}, nil
}

func runConsole(cmd *cobra.Command, flags *globalFlags) error {
	application, cleanup, err := newApplication(cmd, flags, !flags.noWatch, nil)
	if err != nil {
		return err
	}
	defer cleanup()

	return application.Run(cmd.Context())
}

func runScript(cmd *cobra.Command, flags *globalFlags, path, pngPath string, quiet bool) error {
	// Scripts never own the terminal.
	headless := func(cfg *config.Config) {
		if cfg.Backend.Kind == config.BackendTerminal {
			cfg.Backend.Kind = config.BackendNull
		}
		cfg.Idle.Enabled = false
	}
	application, cleanup, err := newApplication(cmd, flags, false, headless)
	if err != nil {
		return err
	}
	defer cleanup()

	application.Render()

	runner := script.NewRunner(application, script.WithOutput(cmd.OutOrStdout()))
	defer runner.Close()
	if err := runner.RunFile(cmd.Context(), path); err != nil {
		return err
	}

	frame := application.Frame()
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), frame.String())
	}
	if pngPath != "" {
		f, err := os.Create(pngPath)
		if err != nil {
			return fmt.Errorf("create image: %w", err)
		}
		if err := screenshot.PNG(f, frame, screenshot.Config{}); err != nil {
			_ = f.Close()
			return fmt.Errorf("write image: %w", err)
		}
		return f.Close()
	}
	return nil
}
