// flutter-icons derives every platform app icon of a Flutter project from
// a single master image.
//
// Usage: flutter-icons <master_icon.png> <project_root> [--platforms <names>]
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/cwalker-code/generate-flutter-icons/internal/iconspec"
	"github.com/cwalker-code/generate-flutter-icons/internal/pipeline"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// cliArgs is the parsed command line.
type cliArgs struct {
	master    string
	root      string
	platforms []iconspec.Platform
}

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "help", "-h", "--help":
			printUsage()
			return
		case "version", "-V", "--version":
			fmt.Printf("flutter-icons %s (built %s)\n", version, buildDate)
			return
		}
	}

	parsed, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'flutter-icons help' for usage.\n")
		os.Exit(1)
	}

	opts := pipeline.Options{Progress: os.Stdout, Warn: os.Stderr}
	var tty *ttyProgress
	if term.IsTerminal(int(os.Stdout.Fd())) {
		tty = &ttyProgress{out: os.Stdout}
		opts.Progress = tty
	}

	if err := pipeline.Generate(parsed.master, parsed.root, parsed.platforms, opts); err != nil {
		if tty != nil {
			tty.done()
		}
		fatal("%v", err)
	}
	if tty != nil {
		tty.done()
		fmt.Printf("wrote %d outputs\n", tty.lines)
	}
}

// parseArgs validates flags and positionals without touching the
// filesystem, so a bad platform list fails before anything is written.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs
	platformsCSV := ""
	var positional []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--platforms", "-p":
			if i+1 >= len(args) {
				return parsed, fmt.Errorf("--platforms requires a comma-separated list (e.g. android,ios)")
			}
			platformsCSV = args[i+1]
			i++
		default:
			positional = append(positional, args[i])
		}
	}

	if len(positional) != 2 {
		return parsed, fmt.Errorf("expected <master_icon> <project_root>, got %d arguments", len(positional))
	}

	platforms, err := iconspec.ParsePlatforms(platformsCSV)
	if err != nil {
		return parsed, err
	}

	parsed.master = positional[0]
	parsed.root = positional[1]
	parsed.platforms = platforms
	return parsed, nil
}

// ttyProgress collapses per-file progress onto a single rewritten line
// when stdout is a terminal.
type ttyProgress struct {
	out   *os.File
	lines int
}

func (p *ttyProgress) Write(b []byte) (int, error) {
	p.lines++
	line := b
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	fmt.Fprintf(p.out, "\r\033[2K[%d] %s", p.lines, line)
	return len(b), nil
}

// done terminates the rewritten line so later output starts fresh.
func (p *ttyProgress) done() {
	if p.lines > 0 {
		fmt.Fprint(p.out, "\r\033[2K")
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`flutter-icons: generate platform app icons from one master image

Usage:
  flutter-icons <master_icon.png> <project_root> [--platforms <names>]
  flutter-icons help | version

The project root is the Flutter project directory (the one containing
android/, ios/, macos/, ...). Every output is regenerated on every run.

Flags:
  --platforms, -p   Comma-separated platform names. Default: all except
                    the opt-in sets.

Platforms:
  android      launcher + adaptive foreground mipmaps
  ios          AppIcon.appiconset (alpha flattened, as App Store requires)
  macos        AppIcon.appiconset
  windows      single multi-resolution app_icon.ico
  linux        256px app_icon.png
  web          favicon + PWA icons (incl. maskable)
  store        appstore.png / playstore.png at the project root
  ios-legacy   pre-iOS-7 icon slots (opt-in)
  watch        watchOS icon slots (opt-in)

The master should be a square PNG, ideally 1024px or larger, with
transparency where the platform supports it.
`)
}
