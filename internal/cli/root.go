// Package cli implements the measures command-line interface: standard and
// smart conversions, catalog listing, conversion history, and init.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/measures/internal/buildinfo"
	"github.com/mesh-intelligence/measures/internal/logger"
	"github.com/mesh-intelligence/measures/internal/paths"
	"github.com/mesh-intelligence/measures/pkg/types"
	"github.com/mesh-intelligence/measures/pkg/units"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	debug     bool
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags rootFlags

	configDir string
	dataDir   string
	cfg       types.Config
	converter *units.Converter

	closeLog func() error
}

// NewRootCmd creates the top-level "measures" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "measures",
		Short: "Convert between units of measurement",
		Long: `measures converts amounts between units of length, weight, temperature,
storage, speed, time, area and volume. Use "convert" with an explicit
category or "smart" with an expression such as "10 kilometer to mile".`,
		Version: buildinfo.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/measures)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory for history and logs (default: $XDG_DATA_HOME/measures)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCategoriesCmd(a))
	root.AddCommand(newUnitsCmd(a))
	root.AddCommand(newConvertCmd(a))
	root.AddCommand(newSmartCmd(a))
	root.AddCommand(newHistoryCmd(a))

	return root, a
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root, a := newRootCmd()
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// setup resolves directories, loads config.yaml, builds the catalog and
// starts logging. The version command needs none of it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysErr(err)
	}
	cfg, err := decodeConfig(v)
	if err != nil {
		return sysErr(err)
	}

	catalog, err := units.NewCatalog(cfg.Categories...)
	if err != nil {
		return sysErr(fmt.Errorf("load categories: %w", err))
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve data dir: %w", err))
	}

	a.configDir = configDir
	a.dataDir = dataDir
	a.cfg = cfg
	a.cfg.DataDir = dataDir
	a.converter = units.NewConverter(catalog)

	// Logging is best effort; a read-only data dir must not block conversions.
	if closeLog, err := logger.Setup(logger.Config{Dir: dataDir, Debug: a.flags.debug}); err == nil {
		a.closeLog = closeLog
	}
	logger.L().Debug("command.start",
		"command", cmd.CommandPath(),
		"config_dir", configDir,
		"data_dir", dataDir,
		"log_path", logger.Path(),
		"categories", len(catalog.ListCategories()),
	)
	return nil
}

// close releases the log file opened by setup.
func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
		a.closeLog = nil
	}
}

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysErr marks err as a system failure (config, storage, I/O).
func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error returned by the root command to a process exit
// code. Unmarked errors are caller mistakes.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// warn prints a non-fatal problem to the command's error stream.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "warning: "+format+"\n", args...)
}
