// Package toml is the TOML-serialized sibling of backend/json: same
// buntdb-indexed path->node bookkeeping, but Flush renders the index as a
// TOML document via pelletier/go-toml/v2 rather than JSON text.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package toml

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/buntdb"

	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/backend/databuf"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iohandler"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/nlog"
	"github.com/openPMD/openpmd-go/store"
	"github.com/openPMD/openpmd-go/xerrors"
)

var jsonc = jsoniter.ConfigCompatibleWithStandardLibrary

// node mirrors backend/json's node: one path's attributes plus, if it owns
// a dataset, the dataset's shape/dtype/payload. The index itself stays
// JSON-encoded internally (buntdb only stores strings); only the final
// rendered document is TOML.
type node struct {
	Attrs  map[string]any `json:"attributes,omitempty" toml:"attributes,omitempty"`
	Dtype  string         `json:"datatype,omitempty" toml:"datatype,omitempty"`
	Extent []uint64       `json:"extent,omitempty" toml:"extent,omitempty"`
	Data   any            `json:"data,omitempty" toml:"data,omitempty"`
}

// Handler is the TOML backend. One instance owns one backend file, same
// fileBased/groupBased cardinality rule as backend/json.
type Handler struct {
	iohandler.Base

	name     string
	blobPath string
	blob     store.Blob
	idx      *buntdb.DB // path -> json-encoded node
	buffers  map[string]*databuf.Buffer
}

var _ iohandler.Backend = (*Handler)(nil)

// New opens the in-memory path->node index backing one TOML file at
// blobPath, persisted through blob.
func New(name, blobPath string, blob store.Blob) (*Handler, error) {
	idx, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, xerrors.NewBackendError("TOML", err)
	}
	return &Handler{
		name:     name,
		blobPath: blobPath,
		blob:     blob,
		idx:      idx,
		buffers:  make(map[string]*databuf.Buffer),
	}, nil
}

// Open loads an existing TOML backend file at blobPath into a fresh
// index, mirroring backend/json.Open.
func Open(ctx context.Context, name, blobPath string, blob store.Blob) (*Handler, error) {
	h, err := New(name, blobPath, blob)
	if err != nil {
		return nil, err
	}
	if exists, err := blob.Exists(ctx, blobPath); err == nil && !exists {
		return nil, xerrors.NewNoSuchFile(blobPath)
	}
	payload, err := blob.ReadAll(ctx, blobPath)
	if err != nil {
		return nil, xerrors.NewBackendError("TOML", err)
	}
	doc := map[string]node{}
	if err := toml.Unmarshal(payload, &doc); err != nil {
		return nil, xerrors.NewBackendError("TOML", err)
	}
	for path, n := range doc {
		h.putNode(path, n)
	}
	return h, nil
}

func (*Handler) BackendName() string { return "TOML" }
func (h *Handler) Name() string      { return h.name }

func pathFor(w *core.Writable) string {
	if w.Parent() == nil {
		return "/"
	}
	parentPath := pathFor(w.Parent())
	if parentPath == "/" {
		return "/" + w.Key()
	}
	return parentPath + "/" + w.Key()
}

func (h *Handler) getNode(path string) node {
	var n node
	_ = h.idx.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(path)
		if err != nil {
			return nil
		}
		return jsonc.UnmarshalFromString(val, &n)
	})
	return n
}

// bufferFor returns the tracked offset-addressed buffer for path, lazily
// reconstructing it from the node's serialized dtype/extent/data when this
// handler didn't track it already (mirrors backend/json.Handler.bufferFor).
func (h *Handler) bufferFor(path string, n node) (*databuf.Buffer, error) {
	if buf, ok := h.buffers[path]; ok {
		return buf, nil
	}
	dt, ok := attribute.ParseDatatype(n.Dtype)
	if !ok {
		return nil, xerrors.NewBackendError("TOML", fmt.Errorf("no dataset at %s", path))
	}
	buf, err := databuf.Wrap(dt, n.Extent, n.Data)
	if err != nil {
		return nil, err
	}
	h.buffers[path] = buf
	return buf, nil
}

func (h *Handler) putNode(path string, n node) {
	buf, _ := jsonc.MarshalToString(n)
	_ = h.idx.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(path, buf, nil)
		return err
	})
}

// Flush executes every queued task in FIFO order, then -- unless level
// suppresses dataset/attribute persistence -- renders the whole index as
// one TOML document and writes it through store.Blob.
func (h *Handler) Flush(ctx context.Context, level iotask.FlushLevel) error {
	tasks := h.Drain()
	for _, t := range tasks {
		if err := h.apply(t); err != nil {
			h.SetLastFlushOK(false)
			return xerrors.NewBackendError("TOML", err)
		}
	}
	if level == iotask.SkeletonOnly {
		h.SetLastFlushOK(true)
		return nil
	}

	payload, err := h.render()
	if err != nil {
		h.SetLastFlushOK(false)
		return xerrors.NewBackendError("TOML", err)
	}
	if err := h.blob.WriteAll(ctx, h.blobPath, payload); err != nil {
		h.SetLastFlushOK(false)
		return xerrors.NewBackendError("TOML", err)
	}
	nlog.Infof("TOML backend flushed %d bytes to %s", len(payload), h.blobPath)
	h.SetLastFlushOK(true)
	return nil
}

func (h *Handler) apply(t iotask.IOTask) error {
	path := pathFor(t.Target)
	switch t.Op {
	case iotask.CreateFile, iotask.OpenFile, iotask.CreatePath, iotask.OpenPath:
		n := h.getNode(path)
		h.putNode(path, n)
	case iotask.CloseFile, iotask.ClosePath, iotask.Advance:
		// no persistent state change
	case iotask.DeleteFile, iotask.DeletePath, iotask.DeleteDataset:
		delete(h.buffers, path)
		_ = h.idx.Update(func(tx *buntdb.Tx) error {
			_, err := tx.Delete(path)
			return err
		})
	case iotask.CreateDataset:
		n := h.getNode(path)
		n.Dtype = t.Params.Dataset.Dtype.String()
		n.Extent = t.Params.Dataset.Extent
		buf, err := databuf.New(t.Params.Dataset.Dtype, t.Params.Dataset.Extent)
		if err != nil {
			return err
		}
		h.buffers[path] = buf
		n.Data = buf.Data()
		h.putNode(path, n)
	case iotask.OpenDataset:
		n := h.getNode(path)
		n.Dtype = t.Params.Dataset.Dtype.String()
		n.Extent = t.Params.Dataset.Extent
		buf, err := databuf.Wrap(t.Params.Dataset.Dtype, t.Params.Dataset.Extent, n.Data)
		if err != nil {
			return err
		}
		h.buffers[path] = buf
		n.Data = buf.Data()
		h.putNode(path, n)
	case iotask.ExtendDataset:
		n := h.getNode(path)
		buf, err := h.bufferFor(path, n)
		if err != nil {
			return err
		}
		if err := buf.Resize(t.Params.Dataset.Extent); err != nil {
			return err
		}
		n.Dtype = t.Params.Dataset.Dtype.String()
		n.Extent = t.Params.Dataset.Extent
		n.Data = buf.Data()
		h.putNode(path, n)
	case iotask.WriteDataset:
		n := h.getNode(path)
		buf, err := h.bufferFor(path, n)
		if err != nil {
			return err
		}
		if err := buf.Write(t.Params.Offset, t.Params.Extent, t.Params.Data); err != nil {
			return err
		}
		n.Data = buf.Data()
		h.putNode(path, n)
	case iotask.ReadDataset:
		n := h.getNode(path)
		buf, err := h.bufferFor(path, n)
		if err != nil {
			return err
		}
		data, err := buf.Read(t.Params.Offset, t.Params.Extent)
		if err != nil {
			return err
		}
		t.Params.Data = data
	case iotask.WriteAtt:
		n := h.getNode(path)
		if n.Attrs == nil {
			n.Attrs = map[string]any{}
		}
		n.Attrs[t.Params.AttName] = t.Params.Attr.Raw()
		h.putNode(path, n)
	case iotask.ReadAtt:
		n := h.getNode(path)
		if n.Attrs != nil {
			_ = n.Attrs[t.Params.AttName]
		}
	case iotask.DeleteAtt:
		n := h.getNode(path)
		if n.Attrs != nil {
			delete(n.Attrs, t.Params.AttName)
			h.putNode(path, n)
		}
	case iotask.ListAtts:
		n := h.getNode(path)
		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		t.Params.AttKeys = keys
	case iotask.ListPaths, iotask.ListDatasets, iotask.GetBufferView, iotask.AvailableChunks:
		// served by the caller's own bookkeeping
	default:
		return fmt.Errorf("TOML backend: unhandled operation %s", t.Op)
	}
	return nil
}

// Paths lists every indexed backend path with the given prefix, sorted
// ascending, mirroring backend/json.Handler.Paths.
func (h *Handler) Paths(prefix string) []string {
	var out []string
	_ = h.idx.View(func(tx *buntdb.Tx) error {
		return tx.AscendGreaterOrEqual("", prefix, func(key, _ string) bool {
			if !strings.HasPrefix(key, prefix) {
				return false
			}
			out = append(out, key)
			return true
		})
	})
	return out
}

// Export returns one path's accumulated attrs/dtype/extent/data, mirroring
// backend/json.Handler.Export.
func (h *Handler) Export(path string) (attrs map[string]any, dtype string, extent []uint64, data any, ok bool) {
	var n node
	err := h.idx.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(path)
		if err != nil {
			return err
		}
		return jsonc.UnmarshalFromString(val, &n)
	})
	if err != nil {
		return nil, "", nil, nil, false
	}
	if buf, err := h.bufferFor(path, n); err == nil {
		n.Data = buf.Data()
	}
	return n.Attrs, n.Dtype, n.Extent, n.Data, true
}

// Import is Export's inverse, mirroring backend/json.Handler.Import.
func (h *Handler) Import(path string, attrs map[string]any, dtype string, extent []uint64, data any) {
	h.putNode(path, node{Attrs: attrs, Dtype: dtype, Extent: extent, Data: data})
}

// render walks the whole index and marshals it as one TOML table keyed by
// backend path. TOML has no native "map with arbitrary key names nested at
// top level" ambiguity here since every key is a plain string path.
func (h *Handler) render() ([]byte, error) {
	doc := map[string]node{}
	_ = h.idx.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("", func(key, value string) bool {
			var n node
			if jsonc.UnmarshalFromString(value, &n) == nil {
				doc[key] = n
			}
			return true
		})
	})
	return toml.Marshal(doc)
}
