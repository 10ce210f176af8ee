package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/openPMD/openpmd-go/openpmd"
)

// introspectable is satisfied by backend/json.Handler and
// backend/toml.Handler: enough surface for ls/inspect/convert to walk a
// backend's path index directly, without replaying it through the full
// openpmd.Series hierarchy.
type introspectable interface {
	Paths(prefix string) []string
	Export(path string) (attrs map[string]any, dtype string, extent []uint64, data any, ok bool)
	Import(path string, attrs map[string]any, dtype string, extent []uint64, data any)
}

func runLs(ctx context.Context, args []string) error {
	fs := newFlagSet("ls")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: openpmdcli ls <path>")
	}
	path := fs.Arg(0)

	backend, _, err := resolveBackend(ctx, path, openpmd.ReadOnly)
	if err != nil {
		return err
	}
	intro, ok := backend.(introspectable)
	if !ok {
		return fmt.Errorf("backend %s has no introspectable index to list", backend.BackendName())
	}

	iterations := map[string]bool{}
	meshes := map[string]map[string]bool{}
	species := map[string]map[string]bool{}
	for _, p := range intro.Paths("/data/") {
		parts := strings.Split(strings.TrimPrefix(p, "/data/"), "/")
		if len(parts) == 0 || parts[0] == "" {
			continue
		}
		iter := parts[0]
		iterations[iter] = true
		if len(parts) >= 3 && parts[1] == "meshes" {
			if meshes[iter] == nil {
				meshes[iter] = map[string]bool{}
			}
			meshes[iter][parts[2]] = true
		}
		if len(parts) >= 3 && parts[1] == "particles" {
			if species[iter] == nil {
				species[iter] = map[string]bool{}
			}
			species[iter][parts[2]] = true
		}
	}

	var iters []string
	for k := range iterations {
		iters = append(iters, k)
	}
	sort.Strings(iters)
	for _, iter := range iters {
		fmt.Printf("iteration %s\n", iter)
		var names []string
		for n := range meshes[iter] {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("  mesh %s\n", n)
		}
		names = names[:0]
		for n := range species[iter] {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("  species %s\n", n)
		}
	}
	return nil
}
