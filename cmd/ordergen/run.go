package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run starts the generator job and waits until it finishes or ctx is
// cancelled. It returns the process exit code.
func run(ctx context.Context, app *fx.App) int {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start generator: %v\n", err)
		return 1
	}

	code := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop generator: %v\n", err)
		return 1
	}
	return code
}
