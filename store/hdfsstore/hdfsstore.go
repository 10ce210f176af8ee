// Package hdfsstore is the store.Blob implementation backing the
// "hdfs://" path scheme, grounded on the teacher's colinmarc/hdfs/v2
// dependency.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package hdfsstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/colinmarc/hdfs/v2"

	"github.com/openPMD/openpmd-go/store"
)

type Store struct {
	client *hdfs.Client
}

var _ store.Blob = (*Store)(nil)

func New(namenode string) (*Store, error) {
	client, err := hdfs.New(namenode)
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

// split strips a leading namenode host ("namenode/path" -> "/path"); a
// path already absolute in the HDFS namespace passes through unchanged.
func split(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	if i := strings.Index(path, "/"); i >= 0 {
		return path[i:]
	}
	return "/" + path
}

func (s *Store) ReadAll(_ context.Context, path string) ([]byte, error) {
	f, err := s.client.Open(split(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Store) WriteAll(_ context.Context, path string, data []byte) error {
	p := split(path)
	if dir := filepath.Dir(p); dir != "/" && dir != "." {
		if err := s.client.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	_ = s.client.Remove(p)
	w, err := s.client.Create(p)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *Store) Exists(_ context.Context, path string) (bool, error) {
	_, err := s.client.Stat(split(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *Store) Glob(_ context.Context, pattern string) ([]string, error) {
	return s.client.Glob(split(pattern))
}

func (s *Store) Remove(_ context.Context, path string) error {
	return s.client.Remove(split(path))
}
