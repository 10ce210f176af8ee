// Package store is the pluggable blob-persistence surface beneath
// file-based and group-based backend file I/O (SPEC_FULL.md §2): a Series
// path of the form s3://bucket/key, az://container/blob, gs://bucket/object
// or hdfs://namenode/path resolves through the matching implementation
// instead of the local filesystem. Generalizes aistore's own multi-cloud
// backend abstraction (ais/prxs3.go plus the cloud SDKs in the teacher's
// go.mod) to the one filesystem touchpoint openPMD has.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package store

import (
	"context"
	"strings"
)

// Blob is the minimal persistence surface a backend needs: whole-object
// read/write (backend files here are never so large that streaming I/O
// matters at this layer -- openPMD datasets are chunked well above this),
// existence/listing for %E/%T discovery, and removal for DELETE_FILE.
type Blob interface {
	ReadAll(ctx context.Context, path string) ([]byte, error)
	WriteAll(ctx context.Context, path string, data []byte) error
	Exists(ctx context.Context, path string) (bool, error)
	Glob(ctx context.Context, pattern string) ([]string, error)
	Remove(ctx context.Context, path string) error
}

// Scheme is the prefix identifying which Blob implementation owns a path.
type Scheme string

const (
	SchemeLocal Scheme = ""
	SchemeS3    Scheme = "s3"
	SchemeAzure Scheme = "az"
	SchemeGCS   Scheme = "gs"
	SchemeHDFS  Scheme = "hdfs"
)

// ParseScheme splits "scheme://rest" into (scheme, rest); a path with no
// "://" is SchemeLocal.
func ParseScheme(path string) (Scheme, string) {
	if i := strings.Index(path, "://"); i >= 0 {
		return Scheme(path[:i]), path[i+3:]
	}
	return SchemeLocal, path
}

// Resolver looks up the Blob implementation registered for a scheme.
// Resolver is satisfied by *Registry in ordinary use; exported as an
// interface so tests can substitute an in-memory fake.
type Resolver interface {
	Resolve(scheme Scheme) (Blob, bool)
}

// Registry is the default Resolver: one Blob instance per scheme, with
// SchemeLocal always present.
type Registry struct {
	byScheme map[Scheme]Blob
}

func NewRegistry(local Blob) *Registry {
	return &Registry{byScheme: map[Scheme]Blob{SchemeLocal: local}}
}

func (r *Registry) Register(s Scheme, b Blob) { r.byScheme[s] = b }

func (r *Registry) Resolve(s Scheme) (Blob, bool) {
	b, ok := r.byScheme[s]
	return b, ok
}

// Split is a convenience combining ParseScheme and Resolve: given a full
// path and a Resolver, returns the Blob responsible for it and the
// scheme-stripped remainder path.
func Split(path string, r Resolver) (Blob, string, bool) {
	scheme, rest := ParseScheme(path)
	b, ok := r.Resolve(scheme)
	return b, rest, ok
}
