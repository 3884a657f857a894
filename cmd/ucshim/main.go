// Package main is the ucshim command: the same conversion shim the DLL
// exposes, driven from a terminal for diagnostics, scripting, and
// generating host integration modules.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/config"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/logging"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes mirror types.Status.
const (
	exitSuccess = 0
	exitFailure = 1
	exitError   = 2
)

var (
	// cfg is the merged configuration, populated before any subcommand runs.
	cfg types.ShimConfig
	log zerolog.Logger

	// shimOptions is appended to every Shim the CLI builds. Tests use it to
	// swap in a fake tool.
	shimOptions []shim.Option
)

var rootCmd = &cobra.Command{
	Use:   "ucshim",
	Short: "Drive the Universal Converter shim from the command line",
	Long: `ucshim runs the external conversion CLI the same way UniversalConverter32.dll
does for VB6 and Visual FoxPro 9 hosts: it validates paths, runs the tool
from the install directory, and reports success only when the output file
exists.

Settings come from built-in defaults, ucshim.yaml, UCSHIM_* environment
variables, and flags, in increasing order of precedence.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ucshim.yaml in ., the install directory, or ~/.config/ucshim)")
	pf.String("interpreter", "", "interpreter used to run the conversion CLI")
	pf.String("entry-script", "", "conversion CLI script, relative to the tool directory")
	pf.String("probe-token", "", "text the interpreter's --version output must contain")
	pf.String("tool-dir", "", "directory to run the tool from (default: install directory)")
	pf.Bool("quiet", true, "pass --quiet to the conversion CLI")
	pf.Duration("timeout", 0, "abort a conversion after this long (0 waits forever)")
	pf.String("journal", "", "record conversions in this SQLite file")
	pf.String("dll-name", "", "DLL file name used in generated host modules")
	pf.BoolP("verbose", "v", false, "log the commands being run")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	log = logging.Configure(logging.ProfileCLI)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug().Str("file", used).Msg("using config file")
	}
	return nil
}

func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	dirs := []string{"."}
	if dir, err := shim.ModuleDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "ucshim"))
	}

	v := config.NewViper(dirs...)
	if file, _ := cmd.Flags().GetString("config"); file != "" {
		v.SetConfigFile(file)
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

func newShim() *shim.Shim {
	opts := append([]shim.Option{shim.WithLogger(log)}, shimOptions...)
	return shim.New(cfg.Tool, opts...)
}

// statusError carries a non-success Result out of RunE so main can turn it
// into an exit code.
type statusError struct {
	res types.Result
}

func (e *statusError) Error() string {
	if e.res.Message == "" {
		return e.res.Status.String()
	}
	return e.res.Message
}

// report turns a Result into the command's outcome.
func report(res types.Result) error {
	if res.OK() {
		return nil
	}
	return &statusError{res: res}
}

func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *statusError
	if errors.As(err, &se) && se.res.Status == types.StatusFailure {
		return exitFailure
	}
	return exitError
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ucshim:", err)
	}
	os.Exit(exitCode(err))
}
