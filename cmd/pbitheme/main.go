// Command pbitheme reads the formatting of a Power BI report and writes a
// report theme from the visuals you select.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/pbitheme/internal/config"
	"github.com/tsawler/pbitheme/internal/logger"
)

// version is set at build time.
var version = "0.1.0"

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitConflict = 3
)

// exitCodeError carries a specific exit code out of a command.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

// app holds what the commands share.
type app struct {
	stdout io.Writer
	stderr io.Writer

	v          *viper.Viper
	cfg        *config.Config
	configPath string
}

// flagKeys maps config keys to the flags that set them.
var flagKeys = map[string]string{
	"name":        "name",
	"dataColors":  "data-colors",
	"background":  "background",
	"foreground":  "foreground",
	"tableAccent": "table-accent",
	"output":      "output",
	"color":       "color",
	"log.level":   "log-level",
	"log.file":    "log-file",
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	defer func() { _ = logger.Close() }()

	a := &app{stdout: stdout, stderr: stderr, v: config.New()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitOK
	}

	var ec *exitCodeError
	if errors.As(err, &ec) {
		if ec.code != exitConflict {
			fmt.Fprintln(stderr, "Error:", ec.err)
		}
		return ec.code
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitError
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pbitheme",
		Short: "Build report themes from the formatting of a Power BI report",
		Long: `pbitheme reads the visual formatting stored in a Power BI report (.pbix)
and compiles the visuals and formatting objects you select into a theme file
that can be imported into other reports.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (default ./pbitheme.yaml or ~/.config/pbitheme/pbitheme.yaml)")
	pf.String("log-level", "", "Set log level (debug|info|warn|error) [default: warn]")
	pf.String("log-file", "", "Write logs to file instead of stderr")
	pf.String("color", "auto", "Colorize output (auto|always|never)")

	root.AddCommand(
		a.inspectCmd(),
		a.selectionCmd(),
		a.compileCmd(),
		a.paletteCmd(),
		a.stripCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads the config and configures logging before any command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.BindFlags(a.v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Configure(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	if cfg.Log.File == "" {
		logger.SetOutput(a.stderr)
	}
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}
	return nil
}

func (a *app) styles(w io.Writer) *styles {
	mode := "auto"
	if a.cfg != nil {
		mode = a.cfg.Color
	}
	return newStyles(w, colorEnabled(mode, w))
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.stdout, "pbitheme v%s\n", version)
		},
	}
}
