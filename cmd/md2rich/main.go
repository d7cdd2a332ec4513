package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	md2rich "github.com/richclip/go-md2rich"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, inputs, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if flags.version {
		fmt.Println(Version)
		return
	}

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolSize := resolvePoolSize(flags.workers)
	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := newConverterPool(poolSize, func() *md2rich.Converter {
		return md2rich.NewConverter()
	})
	defer pool.close()

	if err := run(ctx, flags, inputs, pool); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
