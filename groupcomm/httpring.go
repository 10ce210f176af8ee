package groupcomm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/nlog"
)

// HTTPRing is a Communicator for non-MPI multi-process setups: ranks form
// a logical ring of HTTP endpoints, and a collective is realized by
// passing a payload rank-to-rank around the ring once. It exists for the
// deployments the teacher itself targets (plain HTTP fleets, no MPI
// runtime available) rather than for performance.
type HTTPRing struct {
	rank      uint32
	endpoints []string // endpoints[i] is rank i's base URL
	client    *fasthttp.Client
	timeout   time.Duration
}

var _ Communicator = (*HTTPRing)(nil)

func NewHTTPRing(rank uint32, endpoints []string) *HTTPRing {
	return &HTTPRing{
		rank:      rank,
		endpoints: endpoints,
		client:    &fasthttp.Client{},
		timeout:   30 * time.Second,
	}
}

func (r *HTTPRing) Rank() uint32 { return r.rank }
func (r *HTTPRing) Size() int    { return len(r.endpoints) }

func (r *HTTPRing) next() uint32 {
	return (r.rank + 1) % uint32(len(r.endpoints))
}

// call POSTs body to path on this rank's immediate successor, blocking
// until that hop (and every hop it in turn makes, per Handler's relay
// logic) has answered.
func (r *HTTPRing) call(path string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s%s", r.endpoints[r.next()], path))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetBody(body)
	if err := r.client.DoTimeout(req, resp, r.timeout); err != nil {
		return nil, err
	}
	return append([]byte(nil), resp.Body()...), nil
}

// Forward is Handler's hook for relaying a collective it has already added
// its own contribution to: remaining counts the ranks (including the one
// about to receive this call) still owed a turn before the accumulated
// payload heads back around the ring to the call that started it.
func (r *HTTPRing) Forward(op string, remaining int, acc []byte) ([]byte, error) {
	return r.call(fmt.Sprintf("/groupcomm/%s?remaining=%d", op, remaining), acc)
}

// AllGatherHostnames walks the whole ring: this rank seeds the accumulator
// with its own hostname and hands it to its successor, whose Handler adds
// its own hostname and forwards again, and so on for every other rank, so
// the map that finally threads back here has every rank's entry.
func (r *HTTPRing) AllGatherHostnames(_ context.Context, method Method) (map[uint32]string, error) {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	if method == MethodMPIProcessorName {
		nlog.Warningf("HTTPRing has no MPI runtime; falling back to POSIX hostname for rank %d", r.rank)
	}

	result := map[uint32]string{r.rank: host}
	if r.Size() <= 1 {
		return result, nil
	}
	body, err := r.call(fmt.Sprintf("/groupcomm/hostnames?remaining=%d", r.Size()-1), encodeHostnames(result))
	if err != nil {
		return nil, err
	}
	for rank, h := range decodeHostnames(body) {
		result[rank] = h
	}
	return result, nil
}

// AllGatherChunks walks the whole ring the same way AllGatherHostnames
// does: the accumulator starts as this rank's own chunk table and every
// rank in between merges in its own before forwarding, so the table that
// threads back is the union over the whole ring, not just one hop.
func (r *HTTPRing) AllGatherChunks(_ context.Context, local chunk.Table) (chunk.Table, error) {
	if r.Size() <= 1 {
		return local, nil
	}
	body, err := r.call(fmt.Sprintf("/groupcomm/chunktable?remaining=%d", r.Size()-1), EncodeChunkTable(local))
	if err != nil {
		return nil, err
	}
	fromRing, _, err := unmarshalTable(body)
	if err != nil {
		return nil, err
	}
	return fromRing, nil
}

// Barrier round-trips a single no-op ping around the ring.
func (r *HTTPRing) Barrier(_ context.Context) error {
	if r.Size() <= 1 {
		return nil
	}
	_, err := r.call(fmt.Sprintf("/groupcomm/barrier?remaining=%d", r.Size()-1), nil)
	return err
}

// EncodeChunkTable is the wire-format entry point a rank's HTTP handler
// uses to serve /groupcomm/chunktable to the rest of the ring.
func EncodeChunkTable(t chunk.Table) []byte {
	return marshalTable(nil, t)
}

func encodeHostnames(m map[uint32]string) []byte {
	// "rank=host;rank=host;..." -- deliberately simple: both ends of this
	// wire format are this package's own client and Handler.
	var out []byte
	for rank, host := range m {
		out = append(out, []byte(fmt.Sprintf("%d=%s;", rank, host))...)
	}
	return out
}

func decodeHostnames(b []byte) map[uint32]string {
	out := map[uint32]string{}
	var rank uint32
	var host string
	for _, part := range splitSemicolon(b) {
		if part == "" {
			continue
		}
		if _, err := fmt.Sscanf(part, "%d=%s", &rank, &host); err == nil {
			out[rank] = host
		}
	}
	return out
}

func splitSemicolon(b []byte) []string {
	var out []string
	start := 0
	for i, c := range b {
		if c == ';' {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	out = append(out, string(b[start:]))
	return out
}
