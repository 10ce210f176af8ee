package toml

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/store/localstore"
)

func TestFlushWritesAttributeAndRoundTripsThroughOpen(t *testing.T) {
	ctx := context.Background()
	blob := localstore.New()
	blobPath := filepath.Join(t.TempDir(), "data.toml")

	h, err := New("TOML", blobPath, blob)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	root := core.NewWritable(nil, "")
	h.Enqueue(iotask.New(root, iotask.CreateFile, &iotask.Parameter{Name: blobPath}))
	h.Enqueue(iotask.New(root, iotask.WriteAtt, &iotask.Parameter{AttName: "openPMD", Attr: attribute.StringOf("1.1.0")}))

	if err := h.Flush(ctx, iotask.UserFlush); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !h.LastFlushOK() {
		t.Fatal("LastFlushOK() = false after a successful flush")
	}

	reopened, err := Open(ctx, "TOML", blobPath, blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	attrs, _, _, _, ok := reopened.Export("/")
	if !ok {
		t.Fatal("Export(\"/\") = not ok after reopening a flushed file")
	}
	if attrs["openPMD"] != "1.1.0" {
		t.Errorf("attrs[openPMD] = %v, want \"1.1.0\"", attrs["openPMD"])
	}
}

func TestImportIsExportInverse(t *testing.T) {
	blob := localstore.New()
	blobPath := filepath.Join(t.TempDir(), "data.toml")
	h, err := New("TOML", blobPath, blob)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.Import("/a/b", map[string]any{"k": "v"}, "DOUBLE", []uint64{3}, []float64{1, 2, 3})

	attrs, dtype, extent, data, ok := h.Export("/a/b")
	if !ok {
		t.Fatal("Export after Import = not ok")
	}
	if attrs["k"] != "v" || dtype != "DOUBLE" || len(extent) != 1 || extent[0] != 3 || data == nil {
		t.Errorf("round trip mismatch: attrs=%v dtype=%v extent=%v data=%v", attrs, dtype, extent, data)
	}
}

func TestWriteDatasetAtDisjointOffsetsThenReadSubRange(t *testing.T) {
	// Two StoreChunk-equivalent writes at different offsets of the same
	// 2x4 dataset must not clobber each other, and a sub-range read must
	// return only the requested slice, not the whole backing array.
	ctx := context.Background()
	blob := localstore.New()
	blobPath := filepath.Join(t.TempDir(), "data.toml")

	h, err := New("TOML", blobPath, blob)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	node := core.NewWritable(core.NewWritable(nil, ""), "rho")
	dataset := core.NewDataset(attribute.Double, core.Extent{2, 4})
	h.Enqueue(iotask.New(node, iotask.CreateDataset, &iotask.Parameter{Dataset: dataset}))
	h.Enqueue(iotask.New(node, iotask.WriteDataset, &iotask.Parameter{
		Offset: core.Offset{0, 0}, Extent: core.Extent{1, 4}, Dtype: attribute.Double, Data: []float64{1, 2, 3, 4},
	}))
	h.Enqueue(iotask.New(node, iotask.WriteDataset, &iotask.Parameter{
		Offset: core.Offset{1, 0}, Extent: core.Extent{1, 4}, Dtype: attribute.Double, Data: []float64{5, 6, 7, 8},
	}))
	readRow0 := &iotask.Parameter{Offset: core.Offset{0, 0}, Extent: core.Extent{1, 4}, Dtype: attribute.Double}
	readCol := &iotask.Parameter{Offset: core.Offset{0, 2}, Extent: core.Extent{2, 1}, Dtype: attribute.Double}
	h.Enqueue(iotask.New(node, iotask.ReadDataset, readRow0))
	h.Enqueue(iotask.New(node, iotask.ReadDataset, readCol))

	if err := h.Flush(ctx, iotask.UserFlush); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	gotRow0, ok := readRow0.Data.([]float64)
	if !ok {
		t.Fatalf("row 0 read: Data = %T, want []float64", readRow0.Data)
	}
	if want := []float64{1, 2, 3, 4}; !equalFloat64(gotRow0, want) {
		t.Errorf("row 0 = %v, want %v (first chunk must survive the second chunk's write)", gotRow0, want)
	}

	gotCol, ok := readCol.Data.([]float64)
	if !ok {
		t.Fatalf("column read: Data = %T, want []float64", readCol.Data)
	}
	if want := []float64{3, 7}; !equalFloat64(gotCol, want) {
		t.Errorf("column 2 = %v, want %v", gotCol, want)
	}

	_, _, _, full, ok := h.Export("/rho")
	if !ok {
		t.Fatal("Export(\"/rho\") = not ok")
	}
	fullData, ok := full.([]float64)
	if !ok {
		t.Fatalf("full export: Data = %T, want []float64", full)
	}
	if want := []float64{1, 2, 3, 4, 5, 6, 7, 8}; !equalFloat64(fullData, want) {
		t.Errorf("full backing array = %v, want %v", fullData, want)
	}
}

func equalFloat64(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPathsFiltersByPrefix(t *testing.T) {
	blob := localstore.New()
	blobPath := filepath.Join(t.TempDir(), "data.toml")
	h, err := New("TOML", blobPath, blob)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.Import("/data/0/meshes/E", nil, "", nil, nil)
	h.Import("/data/0/particles/e", nil, "", nil, nil)
	h.Import("/data/1/meshes/E", nil, "", nil, nil)

	got := h.Paths("/data/0/")
	if len(got) != 2 {
		t.Fatalf("Paths(\"/data/0/\") = %v, want 2 entries", got)
	}
}
