package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/dvcheck/internal/app"
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

// Parse processes command-line arguments. Settings are layered: DVCHECK_*
// variables from the optional --env-file, then the process environment, then
// flags given explicitly on the command line. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer, environ map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("dvcheck", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dvcheck - Declarative validation rules for survey data.

Usage:
  dvcheck [options] [SCRIPT_PATH]

Arguments:
  SCRIPT_PATH
    Path to a single .hcl/.yaml script or a directory containing scripts.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintf(output, "\nEvery option can also be set with a %s<NAME> environment variable,\ne.g. %sREPORT_FORMAT=json.\n", app.EnvPrefix, app.EnvPrefix)
	}

	scriptFlag := flagSet.String("script", "", "Path to the script file or directory.")
	sFlag := flagSet.String("s", "", "Path to the script file or directory (shorthand).")
	dataFlag := flagSet.String("data", "", "Path to the CSV dataset. Overrides the script's dataset block.")
	idColumnFlag := flagSet.String("id-column", "", "Name of the record id column. Default 'record'.")
	delimiterFlag := flagSet.String("delimiter", "", "CSV field delimiter. Default ','.")
	reportFormatFlag := flagSet.String("report-format", "text", "Report output format. Options: 'text' or 'json'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 4, "Number of checks evaluated concurrently.")
	debugFlag := flagSet.Bool("debug", false, "List the failing record ids of every check.")
	strictFlag := flagSet.Bool("strict", false, "Exit with status 1 when any check fails or faults.")
	envFileFlag := flagSet.String("env-file", "", "Path to a .env file with DVCHECK_* settings.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	merged := map[string]string{}
	if *envFileFlag != "" {
		fileEnv, err := godotenv.Read(*envFileFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("failed to read env file: %v", err)}
		}
		maps.Copy(merged, fileEnv)
		slog.Debug("Env file loaded.", "path", *envFileFlag, "count", len(fileEnv))
	}
	maps.Copy(merged, environ)

	cfg, err := app.ConfigFromEnv(merged)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	// Only flags that were actually set override the environment.
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "script":
			cfg.ScriptPath = *scriptFlag
		case "s":
			if *scriptFlag == "" {
				cfg.ScriptPath = *sFlag
			}
		case "data":
			cfg.DataPath = *dataFlag
		case "id-column":
			cfg.IDColumn = *idColumnFlag
		case "delimiter":
			cfg.Delimiter = *delimiterFlag
		case "report-format":
			cfg.ReportFormat = *reportFormatFlag
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "workers":
			cfg.WorkerCount = *workersFlag
		case "debug":
			cfg.Debug = *debugFlag
		case "strict":
			cfg.Strict = *strictFlag
		}
	})
	if *scriptFlag == "" && *sFlag == "" && flagSet.NArg() > 0 {
		cfg.ScriptPath = flagSet.Arg(0)
	}
	slog.Debug("Script path determined.", "path", cfg.ScriptPath)

	if cfg.ScriptPath == "" {
		slog.Debug("No script path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
