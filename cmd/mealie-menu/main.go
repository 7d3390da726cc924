package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/mealie-menu/internal/app"
	"github.com/five82/mealie-menu/internal/config"
	"github.com/five82/mealie-menu/internal/menu"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mealie-menu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mealie-menu [flags] [menu.json]")
		fmt.Fprintln(stderr, "Reads the menu from stdin when no file is given.")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "config file path (optional, defaults to ~/.config/mealie-menu/config.toml)")
	year := fs.Int("year", 0, "ISO year of the menu week (optional, defaults to the menu's year or the current year)")
	verbose := fs.Bool("v", false, "log debug diagnostics to stderr")
	printSchema := fs.Bool("schema", false, "print the JSON Schema of the menu document and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(stderr, "mealie-menu: at most one menu file may be given")
		fs.Usage()
		return 2
	}

	if *printSchema {
		schema, err := menu.JSONSchema()
		if err != nil {
			fmt.Fprintf(stderr, "mealie-menu: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(schema))
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		MenuPath:   fs.Arg(0),
		Year:       *year,
		Verbose:    *verbose,
		Stdout:     stdout,
		Stderr:     stderr,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(stderr, "mealie-menu: %v\n", err)
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(stderr)
			fmt.Fprint(stderr, cfgErr.Remediation())
		}
		return 1
	}
	return 0
}
