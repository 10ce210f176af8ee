package openpmd

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/groupcomm"
	"github.com/openPMD/openpmd-go/iohandler"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/metrics"
	"github.com/openPMD/openpmd-go/nlog"
	"github.com/openPMD/openpmd-go/xerrors"
)

// Series is the root owner of the backend handle (spec.md §3's Series
// row): global attributes, the iterations mapping, and the encoding that
// governs how iterations map to backend files/paths.
type Series struct {
	base

	path     string
	access   Access
	encoding Encoding
	backend  iohandler.Backend
	comm     groupcomm.Communicator

	Iterations *IterationContainer

	step stepMachine // groupBased/variableBased step status lives on the Series itself
}

// New constructs a Series bound to path under access, with backend as the
// resolved storage implementation, chosen by the caller. comm may be nil,
// defaulting to groupcomm.Solo.
func New(path string, access Access, backend iohandler.Backend, comm groupcomm.Communicator) *Series {
	if comm == nil {
		comm = groupcomm.Solo{}
	}
	s := &Series{path: path, access: access, backend: backend, comm: comm}
	s.base = newBase(s, nil, "")
	s.Iterations = newIterationContainer(s, s.w, "data")

	if access == Create {
		s.encoding = inferEncoding(path)
		_ = s.SetAttribute("openPMD", attribute.StringOf("1.1.0"))
		_ = s.SetAttribute("basePath", attribute.StringOf("/data/%T/"))
		_ = s.SetAttribute("iterationEncoding", attribute.StringOf(s.encoding.String()))
		_ = s.SetAttribute("iterationFormat", attribute.StringOf(path))
	}
	return s
}

// inferEncoding applies spec.md §4.3's rule: fileBased iff the template
// contains a %T substitution; everything else defaults to groupBased
// (variableBased is an explicit opt-in the caller sets post-construction,
// since it is ADIOS2-only and cannot be inferred from a path alone).
func inferEncoding(path string) Encoding {
	if strings.Contains(path, "%T") {
		return FileBased
	}
	return GroupBased
}

func (s *Series) Path() string        { return s.path }
func (s *Series) Access() Access      { return s.access }
func (s *Series) Encoding() Encoding  { return s.encoding }
func (s *Series) Backend() iohandler.Backend { return s.backend }
func (s *Series) Comm() groupcomm.Communicator { return s.comm }

// SetEncoding overrides the inferred encoding, e.g. to select
// variableBased for an ADIOS2-backed Series (spec.md §4.3).
func (s *Series) SetEncoding(e Encoding) error {
	if e == VariableBased && s.backend.BackendName() != "ADIOS2" {
		return xerrors.NewWrongAPIUsage("variableBased encoding requires the ADIOS2 backend")
	}
	s.encoding = e
	return s.SetAttribute("iterationEncoding", attribute.StringOf(e.String()))
}

func (s *Series) WriteIterations() *IterationContainer {
	if !s.access.IsWriting() {
		return s.Iterations
	}
	return s.Iterations
}

func (s *Series) ReadIterations() *IterationContainer { return s.Iterations }

// Flush implements spec.md §4.7's flush engine.
func (s *Series) Flush(ctx context.Context, level iotask.FlushLevel) error {
	start := time.Now()
	for _, idx := range s.Iterations.Indices() {
		it := s.Iterations.Get(idx)
		if it.closeStatus == ClosedInBackend {
			continue
		}
		if !it.w.IsWritten() && it.closeStatus != ParseAccessDeferred {
			s.enqueueIterationCreate(it)
		}
		if err := s.flushIterationTree(it, level); err != nil {
			return err
		}
		flushAttributes(it.base, s.backend)
		it.w.ClearAfterFlush()
		if it.closeStatus == ClosedInFrontend {
			it.MarkClosedInBackend()
		}
	}
	flushAttributes(s.base, s.backend)

	err := s.backend.Flush(ctx, level)
	ok := err == nil
	if lfs, isLFS := s.backend.(iohandler.LastFlushSuccessful); isLFS {
		ok = lfs.LastFlushOK()
	}
	metrics.FlushDuration.WithLabelValues(level.String(), s.backend.BackendName()).Observe(time.Since(start).Seconds())
	if err != nil {
		nlog.Errorf("series flush failed on backend %s: %v", s.backend.BackendName(), err)
		return xerrors.NewBackendError(s.backend.BackendName(), err)
	}
	if !ok {
		return xerrors.NewBackendError(s.backend.BackendName(), errNotOK)
	}
	s.w.ClearAfterFlush()
	return nil
}

var errNotOK = xerrors.NewWrongAPIUsage("backend reported flush not successful")

func (s *Series) enqueueIterationCreate(it *Iteration) {
	if s.encoding == FileBased {
		it.enqueue(iotask.CreateFile, &iotask.Parameter{Name: filenameFor(s.path, it.index), Encoding: s.encoding.String()})
	} else {
		it.enqueue(iotask.CreatePath, &iotask.Parameter{Path: basePathFor(it.index)})
	}
}

func basePathFor(index uint64) string { return "/data/" + indexKey(index) + "/" }

// flushIterationTree drains every mesh/particle component under it. Before
// a ParticleSpecies is flushed, its position/positionOffset dimensionality
// invariant (spec.md §3) is checked, rejecting the flush rather than
// persisting an inconsistent species.
func (s *Series) flushIterationTree(it *Iteration, level iotask.FlushLevel) error {
	it.Meshes.Range(func(_ string, m Mesh) bool {
		s.flushComponentContainer(m.base, m.Container, level)
		return true
	})
	var ferr error
	it.Particles.Range(func(_ string, p ParticleSpecies) bool {
		if err := p.ValidatePositionDims(); err != nil {
			ferr = err
			return false
		}
		p.Container.Range(func(_ string, r Record) bool {
			s.flushComponentContainer(r.base, r.Container, level)
			return true
		})
		p.patches.Range(func(_ string, pr PatchRecord) bool {
			pr.Range(func(_ string, c *PatchRecordComponent) bool {
				flushAttributes(c.base, s.backend)
				return true
			})
			return true
		})
		return true
	})
	return ferr
}

// flushComponentContainer drains each component's pending chunk writes
// (already enqueued synchronously by StoreChunk) and flushes attributes
// last, per node, as spec.md §4.7 requires. CREATE_DATASET/EXTEND_DATASET
// are enqueued synchronously by ResetDataset/MakeEmpty, not here.
func (s *Series) flushComponentContainer(owner base, children *Container[*RecordComponent], level iotask.FlushLevel) {
	children.Range(func(_ string, c *RecordComponent) bool {
		if level != iotask.SkeletonOnly && level != iotask.CreateOrOpenFiles {
			c.clearPending()
		}
		flushAttributes(c.base, s.backend)
		c.w.ClearAfterFlush()
		return true
	})
	flushAttributes(owner, s.backend)
}

// flushAttributes enqueues WRITE_ATT for every attribute on a dirty node,
// reserved/schema keys first so a reader of a partially-written file can
// still identify it (spec.md §4.7's attribute ordering rule).
func flushAttributes(b base, backend iohandler.Backend) {
	if !b.w.IsDirty() {
		return
	}
	keys := b.AttributeKeys()
	var reserved, user []string
	for _, k := range keys {
		if _, ok := attribute.Reserved[k]; ok {
			reserved = append(reserved, k)
		} else {
			user = append(user, k)
		}
	}
	for _, k := range append(reserved, user...) {
		a, _ := b.GetAttribute(k)
		backend.Enqueue(iotask.New(b.w, iotask.WriteAtt, &iotask.Parameter{AttName: k, Attr: a}))
	}
}

// filenameFor substitutes the %T placeholder in template with index,
// honoring an optional zero-padding width (e.g. %05T -> "00100"), mirroring
// discovery.go's templateToRegexp parsing of the same placeholder on the
// read side.
func filenameFor(template string, index uint64) string {
	var b strings.Builder
	i := 0
	for i < len(template) {
		if template[i] == '%' {
			j := i + 1
			for j < len(template) && template[j] >= '0' && template[j] <= '9' {
				j++
			}
			if j < len(template) && template[j] == 'T' {
				width := 0
				if j > i+1 {
					width, _ = strconv.Atoi(template[i+1 : j])
				}
				b.WriteString(padIndex(index, width))
				i = j + 1
				continue
			}
		}
		b.WriteByte(template[i])
		i++
	}
	return b.String()
}

func padIndex(index uint64, width int) string {
	s := strconv.FormatUint(index, 10)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
