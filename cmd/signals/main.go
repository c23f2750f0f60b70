package main

import (
	"context"
	"log"
	"os"

	"github.com/rxtech-lab/argo-signal/internal/version"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Path to the run config `FILE` (yaml)",
		Required: true,
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "signals",
		Usage:   "Generate, validate and backtest trend-following trading signals",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Compute signals, check them for lookahead bias, then backtest them",
				Flags:  []cli.Flag{configFlag()},
				Action: runAction,
			},
			{
				Name:  "validate",
				Usage: "Compute signals and check them for lookahead bias only",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Override the validation mode (sampled or exhaustive)",
					},
				},
				Action: validateAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the run config",
				Action: schemaAction,
			},
		},
	}
}

// Exit codes of the signals command.
const (
	exitFailure       = 1
	exitConfiguration = 2
	exitData          = 3
	exitLookahead     = 4
)

func exitCode(err error) int {
	switch {
	case errors.IsConfigurationError(err):
		return exitConfiguration
	case errors.IsDataError(err):
		return exitData
	case errors.HasCode(err, errors.ErrCodeLookaheadViolation):
		return exitLookahead
	default:
		return exitFailure
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Print(err)
		os.Exit(exitCode(err))
	}
}
