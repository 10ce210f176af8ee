// cmd/openpmdcli is the thin CLI of SPEC_FULL.md §6: ls/inspect/convert/
// rank-table over any of the backends in package backend, built with the
// standard library flag package rather than a fetched CLI framework --
// see DESIGN.md for why this one concern stays on the standard library.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/openPMD/openpmd-go/backend/adios2"
	"github.com/openPMD/openpmd-go/backend/hdf5"
	"github.com/openPMD/openpmd-go/backend/json"
	"github.com/openPMD/openpmd-go/backend/toml"
	"github.com/openPMD/openpmd-go/iohandler"
	"github.com/openPMD/openpmd-go/openpmd"
	"github.com/openPMD/openpmd-go/store"
	"github.com/openPMD/openpmd-go/store/localstore"
)

// resolveBackend picks a backend implementation for path by its extension
// (spec.md §6's %E rule), opening an existing file for read-style access
// modes and a fresh one for Create.
func resolveBackend(ctx context.Context, path string, access openpmd.Access) (iohandler.Backend, store.Blob, error) {
	blob := localstore.New()
	ext := filepath.Ext(path)
	name, ok := openpmd.BackendForExtension(ext)
	if !ok {
		return nil, nil, fmt.Errorf("cannot infer backend from extension %q", ext)
	}

	switch name {
	case "JSON":
		if access == openpmd.Create {
			h, err := json.New(name, path, blob, false)
			return h, blob, err
		}
		h, err := json.Open(ctx, name, path, blob, false)
		return h, blob, err
	case "TOML":
		if access == openpmd.Create {
			h, err := toml.New(name, path, blob)
			return h, blob, err
		}
		h, err := toml.Open(ctx, name, path, blob)
		return h, blob, err
	case "HDF5":
		return hdf5.New(path), blob, nil
	case "ADIOS2":
		return adios2.New(path), blob, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend %q", name)
	}
}
