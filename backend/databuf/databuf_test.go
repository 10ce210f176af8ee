package databuf

import (
	"reflect"
	"testing"

	"github.com/openPMD/openpmd-go/attribute"
)

func TestWriteDisjointRegionsThenReadSubRanges(t *testing.T) {
	buf, err := New(attribute.Double, []uint64{2, 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := buf.Write([]uint64{0, 0}, []uint64{1, 4}, []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write row 0: %v", err)
	}
	if err := buf.Write([]uint64{1, 0}, []uint64{1, 4}, []float64{5, 6, 7, 8}); err != nil {
		t.Fatalf("Write row 1: %v", err)
	}

	row0, err := buf.Read([]uint64{0, 0}, []uint64{1, 4})
	if err != nil {
		t.Fatalf("Read row 0: %v", err)
	}
	if got := row0.([]float64); !reflect.DeepEqual(got, []float64{1, 2, 3, 4}) {
		t.Errorf("row 0 = %v, want [1 2 3 4]", got)
	}

	col2, err := buf.Read([]uint64{0, 2}, []uint64{2, 1})
	if err != nil {
		t.Fatalf("Read column 2: %v", err)
	}
	if got := col2.([]float64); !reflect.DeepEqual(got, []float64{3, 7}) {
		t.Errorf("column 2 = %v, want [3 7]", got)
	}

	if got := buf.Data().([]float64); !reflect.DeepEqual(got, []float64{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("full data = %v, want [1 2 3 4 5 6 7 8]", got)
	}
}

func TestResizePreservesExistingContents(t *testing.T) {
	buf, err := New(attribute.Int64, []uint64{2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := buf.Write([]uint64{0}, []uint64{2}, []int64{10, 20}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := buf.Resize([]uint64{4}); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	got, err := buf.Read([]uint64{0}, []uint64{4})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := []int64{10, 20, 0, 0}; !reflect.DeepEqual(got.([]int64), want) {
		t.Errorf("after resize = %v, want %v", got, want)
	}
}

func TestWrapConvertsJSONRoundTrippedData(t *testing.T) {
	// After a JSON round trip, data stored under an `any` field comes back
	// as []interface{} holding float64s, even for an integer dtype.
	roundTripped := []interface{}{float64(1), float64(2), float64(3)}
	buf, err := Wrap(attribute.UInt32, []uint64{3}, roundTripped)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	got, err := buf.Read([]uint64{0}, []uint64{3})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := []uint32{1, 2, 3}; !reflect.DeepEqual(got.([]uint32), want) {
		t.Errorf("Read after Wrap = %v, want %v", got, want)
	}
}

func TestWriteLengthMismatchIsRejected(t *testing.T) {
	buf, err := New(attribute.Double, []uint64{4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := buf.Write([]uint64{0}, []uint64{4}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected an error writing 3 values into a 4-element region")
	}
}

func TestUnsupportedDatatypeIsRejected(t *testing.T) {
	if _, err := New(attribute.VecString, []uint64{2}); err == nil {
		t.Fatal("expected an error allocating a buffer for a Vec/complex datatype")
	}
}
