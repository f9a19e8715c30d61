package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/wetware/ocap"
	"github.com/wetware/ocap/internal/cmd/demo"
)

var flags = []cli.Flag{
	// Logging
	&cli.StringFlag{
		Name:    "logfmt",
		Aliases: []string{"f"},
		Usage:   "`format` logs as text, json or none",
		Value:   "text",
		EnvVars: []string{"OCAP_LOGFMT"},
	},
	&cli.StringFlag{
		Name:    "loglvl",
		Usage:   "set logging `level` to trace, debug, info, warn, error or fatal",
		Value:   "info",
		EnvVars: []string{"OCAP_LOGLVL"},
	},
	// Statsd
	&cli.StringFlag{
		Name:        "statsd",
		Aliases:     []string{"metrics"},
		Usage:       "send metrics to udp `host:port`",
		EnvVars:     []string{"OCAP_STATSD", "OCAP_METRICS"},
		DefaultText: "disabled",
	},
	// Tracing
	&cli.BoolFlag{
		Name:    "trace",
		Usage:   "write dispatch spans to stdout",
		EnvVars: []string{"OCAP_TRACE"},
	},
}

var commands = []*cli.Command{
	demo.Command(),
}

func main() {
	run(&cli.App{
		Name:                 "ocap",
		HelpName:             "ocap",
		Usage:                "local capability dispatch",
		UsageText:            "ocap [global options] command [command options] [arguments...]",
		Version:              ocap.Version,
		EnableBashCompletion: true,
		Flags:                flags,
		Commands:             commands,
		Metadata: map[string]interface{}{
			"version": ocap.Version,
		},
	})
}

func run(app *cli.App) {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
