package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args, DefaultEnv())
	stop()
	undo()

	os.Exit(code)
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'nb2md --help' for usage.")
		return ExitUsage
	}

	switch {
	case flags.help:
		printUsage(env.Stdout)
		return ExitSuccess
	case flags.version:
		fmt.Fprintf(env.Stdout, "nb2md %s\n", Version)
		return ExitSuccess
	}

	cfg, err := resolveConfig(flags, positional)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, configHint(err, flags.config))
		return exitCodeFor(err)
	}
	env.Config = cfg

	s := newSession(flags, env)
	if flags.watch {
		err = s.watch(ctx)
		if errors.Is(err, context.Canceled) {
			return ExitSuccess
		}
		if err != nil {
			s.out.printError(err, s.outputDir())
		}
		return exitCodeFor(err)
	}
	return s.convert(ctx)
}
