// Package s3store is the store.Blob implementation backing the "s3://"
// path scheme, grounded on the teacher's aws-sdk-go-v2 dependency
// (ais/prxs3.go wires the same SDK family for bucket/object request
// shaping and error translation, generalized here to whole-file
// persistence of backend files).
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/openPMD/openpmd-go/store"
)

type Store struct {
	client *s3.Client
}

var _ store.Blob = (*Store)(nil)

// New loads the default AWS config chain (env vars, shared config, IMDS)
// the same way the teacher's cloud backends bootstrap their SDK clients.
func New(ctx context.Context) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return &Store{client: s3.NewFromConfig(cfg)}, nil
}

// split turns "bucket/key/with/slashes" into (bucket, key).
func split(path string) (bucket, key string) {
	path = strings.TrimPrefix(path, "/")
	i := strings.Index(path, "/")
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+1:]
}

func (s *Store) ReadAll(ctx context.Context, path string) ([]byte, error) {
	bucket, key := split(path)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, translateErr(err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *Store) WriteAll(ctx context.Context, path string, data []byte) error {
	bucket, key := split(path)
	uploader := manager.NewUploader(s.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return translateErr(err)
}

func (s *Store) Exists(ctx context.Context, path string) (bool, error) {
	bucket, key := split(path)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err == nil {
		return true, nil
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}
	return false, translateErr(err)
}

func (s *Store) Glob(ctx context.Context, pattern string) ([]string, error) {
	// S3 has no glob; pattern is treated as a prefix up to the first
	// wildcard, mirroring the teacher's own ListObjectsV2-based prefix
	// scans (ais/prxs3.go's handling of LIST-by-prefix S3 requests).
	bucket, prefix := split(pattern)
	if i := strings.IndexAny(prefix, "*?["); i >= 0 {
		prefix = prefix[:i]
	}
	var names []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket), Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, translateErr(err)
		}
		for _, obj := range page.Contents {
			names = append(names, bucket+"/"+aws.ToString(obj.Key))
		}
	}
	return names, nil
}

func (s *Store) Remove(ctx context.Context, path string) error {
	bucket, key := split(path)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	return translateErr(err)
}

func translateErr(err error) error { return err }
