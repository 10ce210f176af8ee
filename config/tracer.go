package config

import (
	"strings"

	cuckoo "github.com/seiflotfy/cuckoofilter"

	"github.com/openPMD/openpmd-go/nlog"
)

// Tracer implements spec.md §4.6's "Tracing JSON": every read through a
// leaf records its path; after backend init, the complement of what was
// read ("invertShadow") enumerates unused options, and a warning is
// emitted for unused global keys (backend-key subtrees are deferred to
// their own backends, which run their own Tracer instance).
//
// The "seen" set is backed by a cuckoo filter rather than a map: this
// mirrors the teacher's dependency on seiflotfy/cuckoofilter for
// approximate membership, accepting the filter's bounded false-positive
// rate in exchange for O(1) memory independent of config depth. A false
// positive here means an unused key is (rarely) not reported -- a missed
// warning, never a wrongly-suppressed required key.
type Tracer struct {
	seen     *cuckoo.Filter
	allPaths []string
}

// NewTracer enumerates every leaf path reachable in cfg up front, so
// UnusedPaths can report a concrete list rather than just a boolean.
func NewTracer(cfg map[string]any) *Tracer {
	t := &Tracer{seen: cuckoo.NewFilter(1024)}
	t.allPaths = collectPaths("", cfg)
	return t
}

func collectPaths(prefix string, v any) []string {
	obj, ok := v.(map[string]any)
	if !ok {
		if prefix == "" {
			return nil
		}
		return []string{prefix}
	}
	var out []string
	for k, child := range obj {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		out = append(out, collectPaths(path, child)...)
	}
	return out
}

// MarkRead records that path was consulted via operator[] during backend
// init.
func (t *Tracer) MarkRead(path string) {
	t.seen.InsertUnique([]byte(path))
}

// UnusedPaths returns the complement of every path marked read -- the
// shadow tree's "invertShadow" -- excluding subtrees under a
// backend-specific root (hdf5./adios2./json./adios1.), which are each
// backend's own responsibility to trace.
func (t *Tracer) UnusedPaths() []string {
	var unused []string
	for _, p := range t.allPaths {
		if isBackendScoped(p) {
			continue
		}
		if !t.seen.Lookup([]byte(p)) {
			unused = append(unused, p)
		}
	}
	return unused
}

func isBackendScoped(path string) bool {
	for _, root := range []string{"hdf5.", "adios2.", "json.", "adios1."} {
		if strings.HasPrefix(path, root) {
			return true
		}
	}
	return false
}

// WarnUnused logs one warning per unused global key, the behavior spec.md
// §4.6 calls for after backend init completes.
func (t *Tracer) WarnUnused() {
	for _, p := range t.UnusedPaths() {
		nlog.Warningf("unused configuration key: %q", p)
	}
}
