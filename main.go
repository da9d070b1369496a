package main

import (
	"context"
	"errors"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		// The failed lookup has already been printed.
		if errors.Is(err, errLookupFailed) {
			os.Exit(1)
		}

		exitOnError(err)
	}
}
