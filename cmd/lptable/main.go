package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/homier/lptable/internal/workload"
	"github.com/phuslu/log"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	executableName := "lptable"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet(executableName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [flags] <script.yaml>\n\nflags:\n", executableName)
		flags.PrintDefaults()
	}

	level := flags.String("level", "info", "log level (debug, info, warn, error)")
	dump := flags.Bool("dump", false, "print the table contents after the run")

	if len(args) > 0 {
		args = args[1:]
	}

	if err := flags.Parse(args); err != nil {
		// flags will automatically call .Usage()
		return 2
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	logger := log.Logger{
		Level:      log.ParseLevel(*level),
		TimeField:  "time",
		TimeFormat: "15:04:05",
		Writer:     &log.IOWriter{Writer: stderr},
	}

	f, err := os.Open(flags.Arg(0))
	if err != nil {
		logger.Error().Err(err).Msg("opening script")
		return 1
	}
	defer f.Close()

	script, err := workload.Decode(f)
	if err != nil {
		logger.Error().Err(err).Str("path", flags.Arg(0)).Msg("reading script")
		return 1
	}

	report, err := workload.Run(script, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("running script")
		return 1
	}

	for _, r := range report.Results {
		fmt.Fprintln(stdout, r)
	}

	fmt.Fprintln(stdout, report.Stats)

	if *dump && report.Dump != "" {
		fmt.Fprintln(stdout, report.Dump)
	}

	return 0
}
