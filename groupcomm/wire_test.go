package groupcomm

import (
	"testing"

	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/core"
)

func TestMarshalUnmarshalTableRoundTrip(t *testing.T) {
	table := chunk.Table{
		{Info: chunk.Info{Offset: core.Offset{0, 0}, Extent: core.Extent{4, 8}}, SourceID: 1},
		{Info: chunk.Info{Offset: core.Offset{4, 0}, Extent: core.Extent{4, 8}}, SourceID: 2},
	}
	b := marshalTable(nil, table)
	got, rest, err := unmarshalTable(b)
	if err != nil {
		t.Fatalf("unmarshalTable: %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("unread trailing bytes: %d", len(rest))
	}
	if len(got) != len(table) {
		t.Fatalf("got %d chunks, want %d", len(got), len(table))
	}
	for i := range table {
		if len(got[i].Offset) != len(table[i].Offset) {
			t.Fatalf("chunk %d offset = %v, want %v", i, got[i].Offset, table[i].Offset)
		}
		for d := range table[i].Offset {
			if got[i].Offset[d] != table[i].Offset[d] {
				t.Errorf("chunk %d offset[%d] = %d, want %d", i, d, got[i].Offset[d], table[i].Offset[d])
			}
		}
		if !got[i].Extent.Equal(table[i].Extent) {
			t.Errorf("chunk %d extent = %v, want %v", i, got[i].Extent, table[i].Extent)
		}
		if got[i].SourceID != table[i].SourceID {
			t.Errorf("chunk %d sourceID = %d, want %d", i, got[i].SourceID, table[i].SourceID)
		}
	}
}

func TestMarshalUnmarshalEmptyTable(t *testing.T) {
	b := marshalTable(nil, chunk.Table{})
	got, _, err := unmarshalTable(b)
	if err != nil {
		t.Fatalf("unmarshalTable: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d chunks from an empty table, want 0", len(got))
	}
}
