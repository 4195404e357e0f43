// Command siglab synthesizes, corrupts, analyzes and modulates test signals.
//
// Usage:
//
//	siglab [-v] <command> [flags]
//
// Commands:
//
//	gen       generate a waveform or sweep, optionally with faults
//	spectrum  FFT/PSD or STFT of a generated signal
//	bode      Bode table of a continuous-time transfer function
//	mod       modulate, demodulate and measure a carrier
//	vowel     classify a two-formant test spectrum
//	window    list window functions with their noise bandwidth
//
// Examples:
//
//	siglab gen -wave square -freq 50 -faults clipping:3,emi:2
//	siglab spectrum -wave sine -freq 120 -top 3
//	siglab bode -num 1 -den 1,1 -start 0.01 -stop 100 -points 9
//	siglab mod -scheme qpsk -bits 10110010
//	siglab vowel -f1 700 -f2 1200
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var errUsage = errors.New("siglab: usage")

type env struct {
	stdout io.Writer
	stderr io.Writer
	log    *zap.Logger
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"gen":      {"generate a waveform or sweep, optionally with faults", runGen},
	"spectrum": {"FFT/PSD or STFT of a generated signal", runSpectrum},
	"bode":     {"Bode table of a continuous-time transfer function", runBode},
	"mod":      {"modulate, demodulate and measure a carrier", runMod},
	"vowel":    {"classify a two-formant test spectrum", runVowel},
	"window":   {"list window functions with their noise bandwidth", runWindow},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("siglab", flag.ContinueOnError)
	global.SetOutput(stderr)
	verbose := global.Bool("v", false, "debug logging in development format")
	global.Usage = func() { usage(stderr, global) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr, global)
		return errUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "error: unknown command %q\n\n", rest[0])
		usage(stderr, global)
		return errUsage
	}

	log := newLogger(*verbose, stderr)
	defer func() { _ = log.Sync() }()

	e := &env{stdout: stdout, stderr: stderr, log: log}
	if err := cmd.run(e, rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		log.Error("command failed", zap.String("command", rest[0]), zap.Error(err))
		return err
	}
	return nil
}

// newLogger writes JSON at info level, or console output at debug level
// when verbose is set.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	level := zapcore.InfoLevel
	if verbose {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

func usage(w io.Writer, global *flag.FlagSet) {
	_, _ = fmt.Fprintf(w, "Usage: siglab [-v] <command> [flags]\n\nCommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\n", name, commands[name].summary)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(w, "\nGlobal flags:\n")
	global.PrintDefaults()
	_, _ = fmt.Fprintf(w, "\nRun 'siglab <command> -h' for command flags.\n")
}

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("siglab "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
