package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openPMD/openpmd-go/openpmd"
)

func runInspect(ctx context.Context, args []string) error {
	fs := newFlagSet("inspect")
	iteration := fs.Int64("iteration", -1, "iteration index to inspect")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 || *iteration < 0 {
		return fmt.Errorf("usage: openpmdcli inspect <path> --iteration N")
	}
	path := fs.Arg(0)

	backend, _, err := resolveBackend(ctx, path, openpmd.ReadOnly)
	if err != nil {
		return err
	}
	intro, ok := backend.(introspectable)
	if !ok {
		return fmt.Errorf("backend %s has no introspectable index to inspect", backend.BackendName())
	}

	iterPath := fmt.Sprintf("/data/%d", *iteration)
	attrs, _, _, _, found := intro.Export(iterPath)
	if !found {
		return fmt.Errorf("iteration %d not found at %s", *iteration, iterPath)
	}
	out, err := json.MarshalIndent(attrs, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
