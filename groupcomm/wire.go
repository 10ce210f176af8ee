package groupcomm

import (
	"github.com/tinylib/msgp/msgp"

	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/core"
)

// wireChunk is the on-the-wire shape of a chunk.Written, hand-encoded with
// tinylib/msgp's runtime append/read helpers -- HTTPRing exchanges these
// instead of JSON so a chunk table round-trips through a ring hop without
// an intermediate allocation-heavy decode step.
type wireChunk struct {
	Offset   []uint64
	Extent   []uint64
	SourceID uint64
}

// marshalTable appends the msgpack encoding of a chunk table to b.
func marshalTable(b []byte, t chunk.Table) []byte {
	b = msgp.AppendArrayHeader(b, uint32(len(t)))
	for _, c := range t {
		b = msgp.AppendMapHeader(b, 3)
		b = msgp.AppendString(b, "offset")
		b = msgp.AppendArrayHeader(b, uint32(len(c.Offset)))
		for _, v := range c.Offset {
			b = msgp.AppendUint64(b, v)
		}
		b = msgp.AppendString(b, "extent")
		b = msgp.AppendArrayHeader(b, uint32(len(c.Extent)))
		for _, v := range c.Extent {
			b = msgp.AppendUint64(b, v)
		}
		b = msgp.AppendString(b, "sourceID")
		b = msgp.AppendUint64(b, c.SourceID)
	}
	return b
}

// unmarshalTable decodes a chunk table previously produced by
// marshalTable, returning the remaining unread bytes.
func unmarshalTable(b []byte) (chunk.Table, []byte, error) {
	n, b, err := msgp.ReadArrayHeaderBytes(b)
	if err != nil {
		return nil, b, err
	}
	out := make(chunk.Table, 0, n)
	for i := uint32(0); i < n; i++ {
		var wc wireChunk
		fields, b2, err := msgp.ReadMapHeaderBytes(b)
		if err != nil {
			return nil, b2, err
		}
		b = b2
		for f := uint32(0); f < fields; f++ {
			var key string
			key, b, err = msgp.ReadStringBytes(b)
			if err != nil {
				return nil, b, err
			}
			switch key {
			case "offset":
				var arrN uint32
				arrN, b, err = msgp.ReadArrayHeaderBytes(b)
				if err != nil {
					return nil, b, err
				}
				wc.Offset = make([]uint64, arrN)
				for d := uint32(0); d < arrN; d++ {
					wc.Offset[d], b, err = msgp.ReadUint64Bytes(b)
					if err != nil {
						return nil, b, err
					}
				}
			case "extent":
				var arrN uint32
				arrN, b, err = msgp.ReadArrayHeaderBytes(b)
				if err != nil {
					return nil, b, err
				}
				wc.Extent = make([]uint64, arrN)
				for d := uint32(0); d < arrN; d++ {
					wc.Extent[d], b, err = msgp.ReadUint64Bytes(b)
					if err != nil {
						return nil, b, err
					}
				}
			case "sourceID":
				wc.SourceID, b, err = msgp.ReadUint64Bytes(b)
				if err != nil {
					return nil, b, err
				}
			}
		}
		out = append(out, chunk.Written{
			Info:     chunk.Info{Offset: core.Offset(wc.Offset), Extent: core.Extent(wc.Extent)},
			SourceID: wc.SourceID,
		})
	}
	return out, b, nil
}
