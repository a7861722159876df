// Command texture computes Haralick texture feature bands for a single-band image.
//
//	texture run --config texture.yaml --input scene.tif --output-dir out/
//	texture region --config texture.yaml --bounds 0,0,1024,768 --output 100,100,200,200
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
