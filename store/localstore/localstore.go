// Package localstore is the store.Blob implementation for plain filesystem
// paths -- the default scheme, and the one every other store exists to
// generalize away from.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package localstore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/openPMD/openpmd-go/store"
)

type Store struct{}

var _ store.Blob = Store{}

func New() Store { return Store{} }

func (Store) ReadAll(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (Store) WriteAll(_ context.Context, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func (Store) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (Store) Glob(_ context.Context, pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

func (Store) Remove(_ context.Context, path string) error {
	return os.Remove(path)
}
