package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/bloom/internal/app"
	"github.com/five82/bloom/internal/export"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bloom", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "override config path (optional)")
	prefsPath := fs.String("prefs", "", "override preferences path (optional)")
	envFile := fs.String("env", "", "load environment from this file (default ./.env when present)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: bloom [flags] [export|stats] [-format json|yaml|text]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath, EnvFile: *envFile}

	rest := fs.Args()
	if len(rest) == 0 {
		if err := app.Run(ctx, opts); err != nil {
			fmt.Fprintf(stderr, "bloom: %v\n", err)
			return 1
		}
		return 0
	}

	var write func(context.Context, app.Options, io.Writer, export.Format) error
	defaultFormat := "json"
	switch rest[0] {
	case "export":
		write = app.Export
	case "stats":
		write = app.Stats
		defaultFormat = "text"
	default:
		fmt.Fprintf(stderr, "bloom: unknown command %q\n", rest[0])
		fs.Usage()
		return 2
	}

	sub := flag.NewFlagSet("bloom "+rest[0], flag.ContinueOnError)
	sub.SetOutput(stderr)
	formatName := sub.String("format", defaultFormat, "output format: json, yaml or text")
	if err := sub.Parse(rest[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	format, err := export.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(stderr, "bloom: %v\n", err)
		return 2
	}

	if err := write(ctx, opts, stdout, format); err != nil {
		fmt.Fprintf(stderr, "bloom %s: %v\n", rest[0], err)
		return 1
	}
	return 0
}
