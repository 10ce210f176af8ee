package main

import (
	"context"
	"fmt"

	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/openpmd"
)

// runConvert proves spec.md §2's backend-agnostic contract: src and dst
// may be any supported (introspectable) backend pair, discovered purely
// from their file extensions.
func runConvert(ctx context.Context, args []string) error {
	fs := newFlagSet("convert")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: openpmdcli convert <src> <dst>")
	}
	srcPath, dstPath := fs.Arg(0), fs.Arg(1)

	srcBackend, _, err := resolveBackend(ctx, srcPath, openpmd.ReadOnly)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	src, ok := srcBackend.(introspectable)
	if !ok {
		return fmt.Errorf("source backend %s is not convertible", srcBackend.BackendName())
	}

	dstBackend, _, err := resolveBackend(ctx, dstPath, openpmd.Create)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	dst, ok := dstBackend.(introspectable)
	if !ok {
		return fmt.Errorf("destination backend %s is not convertible", dstBackend.BackendName())
	}

	n := 0
	for _, path := range src.Paths("/") {
		attrs, dtype, extent, data, found := src.Export(path)
		if !found {
			continue
		}
		dst.Import(path, attrs, dtype, extent, data)
		n++
	}

	if err := dstBackend.Flush(ctx, iotask.UserFlush); err != nil {
		return fmt.Errorf("flushing destination: %w", err)
	}
	fmt.Printf("converted %d path(s) from %s (%s) to %s (%s)\n", n, srcPath, srcBackend.BackendName(), dstPath, dstBackend.BackendName())
	return nil
}
