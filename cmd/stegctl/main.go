// Command stegctl hides text messages in image, audio, video and document
// files and recovers them.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// IOConfig holds the process streams and environment used by run.
type IOConfig struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
}

// DefaultIOConfig returns the real process streams and environment.
func DefaultIOConfig() IOConfig {
	return IOConfig{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], DefaultIOConfig()); err != nil {
		fatal(os.Stderr, "%v", err)
	}
}

func run(ctx context.Context, args []string, cfg IOConfig) error {
	root := newRootCmd(cfg)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func fatal(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Error: "+format+"\n", args...)
	os.Exit(1)
}
