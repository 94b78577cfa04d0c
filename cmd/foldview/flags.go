// ABOUTME: CLI flag parsing using stdlib flag package.
// ABOUTME: Supports -file, -config, -dump-json, -help, -version, -verbose.

package main

import "flag"

type cliArgs struct {
	file      string
	configDir string
	dumpJSON  bool
	help      bool
	version   bool
	verbose   bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.file, "file", "", "File to open (empty = built-in sample document)")
	flag.StringVar(&args.configDir, "config", "", "Project root to resolve .foldview/config.yaml from (default: cwd)")
	flag.BoolVar(&args.dumpJSON, "dump-json", false, "Print a {rows, folds, rightmost} snapshot and exit, bypassing the TUI")
	flag.BoolVar(&args.help, "help", false, "Show usage and exit")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")

	flag.Parse()
	return args
}
