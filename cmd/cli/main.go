package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/dvcheck/internal/app"
	"github.com/specialistvlad/dvcheck/internal/cli"
)

// main is the entrypoint for the dvcheck application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:], env.ToMap(os.Environ())); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Reports go to outW, logs and usage text to errW.
func run(outW, errW io.Writer, args []string, environ map[string]string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, errW, environ)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on an invalid rule registry, so we recover here to
	// provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	dvcheckApp := app.NewApp(outW, errW, appConfig)
	summary, err := dvcheckApp.Run(context.Background())
	if err != nil {
		return err
	}
	if appConfig.Strict && !summary.OK() {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
