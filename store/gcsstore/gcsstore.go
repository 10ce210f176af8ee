// Package gcsstore is the store.Blob implementation backing the "gs://"
// path scheme, grounded on the teacher's cloud.google.com/go/storage
// dependency.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package gcsstore

import (
	"bytes"
	"context"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/openPMD/openpmd-go/store"
)

type Store struct {
	client *storage.Client
}

var _ store.Blob = (*Store)(nil)

func New(ctx context.Context) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

func split(path string) (bucket, object string) {
	path = strings.TrimPrefix(path, "/")
	i := strings.Index(path, "/")
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+1:]
}

func (s *Store) ReadAll(ctx context.Context, path string) ([]byte, error) {
	bucket, object := split(path)
	r, err := s.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (s *Store) WriteAll(ctx context.Context, path string, data []byte) error {
	bucket, object := split(path)
	w := s.client.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	bucket, object := split(path)
	_, err := s.client.Bucket(bucket).Object(object).Attrs(ctx)
	if err == nil {
		return true, nil
	}
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	return false, err
}

func (s *Store) Glob(ctx context.Context, pattern string) ([]string, error) {
	bucket, prefix := split(pattern)
	if i := strings.IndexAny(prefix, "*?["); i >= 0 {
		prefix = prefix[:i]
	}
	it := s.client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, bucket+"/"+attrs.Name)
	}
	return names, nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	bucket, object := split(path)
	return s.client.Bucket(bucket).Object(object).Delete(ctx)
}
