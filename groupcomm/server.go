package groupcomm

import (
	"os"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/openPMD/openpmd-go/chunk"
)

// Handler builds the fasthttp.RequestHandler an HTTPRing participant
// exposes so its predecessor in the ring can reach it. Each request carries
// the collective's accumulator-so-far in its body and a "remaining" count
// of how many more ranks (including this one) still owe a contribution:
// this rank merges its own hostname/chunk table in, and either answers
// directly (remaining exhausted) or relays the merged accumulator to its
// own successor via ring and blocks on that answer -- the call chain that
// results is what actually walks every rank in the ring, not just one hop.
func Handler(ring *HTTPRing, localChunks func() chunk.Table) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		remaining, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("remaining")))
		switch string(ctx.Path()) {
		case "/groupcomm/hostnames":
			acc := decodeHostnames(ctx.PostBody())
			host, err := os.Hostname()
			if err != nil {
				host = "unknown"
			}
			acc[ring.Rank()] = host
			ctx.Write(relay(ring, "hostnames", remaining, encodeHostnames(acc)))
		case "/groupcomm/chunktable":
			acc, _, err := unmarshalTable(ctx.PostBody())
			if err != nil {
				ctx.SetStatusCode(fasthttp.StatusBadRequest)
				return
			}
			merged := append(acc.Clone(), localChunks()...)
			ctx.Write(relay(ring, "chunktable", remaining, EncodeChunkTable(merged)))
		case "/groupcomm/barrier":
			if remaining > 1 {
				if _, err := ring.Forward("barrier", remaining-1, nil); err != nil {
					ctx.SetStatusCode(fasthttp.StatusBadGateway)
					return
				}
			}
			ctx.SetStatusCode(fasthttp.StatusOK)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	}
}

// relay returns acc directly once this rank was the last one owed a turn;
// otherwise it forwards the merged accumulator to the next rank and
// returns whatever eventually threads back.
func relay(ring *HTTPRing, op string, remaining int, acc []byte) []byte {
	if remaining <= 1 {
		return acc
	}
	body, err := ring.Forward(op, remaining-1, acc)
	if err != nil {
		return acc
	}
	return body
}
