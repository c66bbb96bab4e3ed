package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/monorun/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringSlice is a repeatable string flag.
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("monorun", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
monorun - run scripts across the workspaces affected by a change.

Usage:
  monorun [options] list
  monorun [options] run SCRIPT [SCRIPT...]
  monorun [options] deps WORKSPACE
  monorun [options] dependents WORKSPACE

Commands:
  list        Print the selected workspace set, one per line.
  run         Run the named scripts across the selected workspaces.
  deps        Print a workspace's direct dependencies.
  dependents  Print a workspace's direct dependents.

Workspace selection (default: affected by the git diff between -base and -head):
`)
		flagSet.PrintDefaults()
	}

	var scope stringSlice
	flagSet.Var(&scope, "scope", "Select a workspace by name. Repeatable.")
	allFlag := flagSet.Bool("all", false, "Select every known workspace.")
	baseFlag := flagSet.String("base", "origin/main", "Base git ref for change detection.")
	headFlag := flagSet.String("head", "HEAD", "Head git ref for change detection.")
	rootFlag := flagSet.String("root", ".", "Repository root containing monorun.hcl.")
	productionFlag := flagSet.Bool("production", false, "Only follow production and peer dependency edges.")
	exclusiveFlag := flagSet.Bool("exclusive", false, "Omit the seed workspace from deps/dependents listings.")
	concurrencyFlag := flagSet.Int("concurrency", 0, "Concurrency cap for run. 0 uses the host's parallelism; negative values reduce it.")
	verboseFlag := flagSet.Bool("verbose", false, "Print captured output for successful tasks too.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	command := flagSet.Arg(0)
	rest := flagSet.Args()[1:]

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := app.Config{
		RepoRoot:    *rootFlag,
		Command:     command,
		Scope:       scope,
		All:         *allFlag,
		Base:        *baseFlag,
		Head:        *headFlag,
		Production:  *productionFlag,
		Exclusive:   *exclusiveFlag,
		Concurrency: *concurrencyFlag,
		Verbose:     *verboseFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	}

	switch command {
	case app.CmdRun:
		cfg.Scripts = rest
	case app.CmdDeps, app.CmdDependents:
		if len(rest) != 1 {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("%s takes exactly one workspace name", command)}
		}
		cfg.Target = rest[0]
	case app.CmdList:
		if len(rest) > 0 {
			return nil, false, &ExitError{Code: 2, Message: "list takes no arguments"}
		}
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}
