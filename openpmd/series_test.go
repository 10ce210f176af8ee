package openpmd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/openPMD/openpmd-go/attribute"
	jsonbackend "github.com/openPMD/openpmd-go/backend/json"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/openpmd"
	"github.com/openPMD/openpmd-go/store/localstore"
)

func TestOpenpmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "openpmd suite")
}

var _ = Describe("Series", func() {
	var (
		ctx      context.Context
		blobPath string
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir, err := os.MkdirTemp("", "openpmd-series-test")
		Expect(err).NotTo(HaveOccurred())
		blobPath = filepath.Join(dir, "data.json")
	})

	newCreateSeries := func() (*openpmd.Series, *jsonbackend.Handler) {
		backend, err := jsonbackend.New("JSON", blobPath, localstore.New(), false)
		Expect(err).NotTo(HaveOccurred())
		s := openpmd.New(blobPath, openpmd.Create, backend, nil)
		return s, backend
	}

	Context("creation", func() {
		It("infers groupBased encoding from a plain path", func() {
			s, _ := newCreateSeries()
			Expect(s.Encoding()).To(Equal(openpmd.GroupBased))
		})

		It("infers fileBased encoding from a %T template", func() {
			backend, err := jsonbackend.New("JSON", "run_%T.json", localstore.New(), false)
			Expect(err).NotTo(HaveOccurred())
			s := openpmd.New("run_%T.json", openpmd.Create, backend, nil)
			Expect(s.Encoding()).To(Equal(openpmd.FileBased))
		})

		It("seeds the standard openPMD attributes", func() {
			s, _ := newCreateSeries()
			a, ok := s.GetAttribute("openPMD")
			Expect(ok).To(BeTrue())
			v, ok := a.Raw().(string)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal("1.1.0"))
		})
	})

	Context("iteration open/close", func() {
		It("starts a fresh iteration in ParseAccessDeferred", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.CloseStatus()).To(Equal(openpmd.ParseAccessDeferred))
		})

		It("opens from ParseAccessDeferred and rejects a second open after close", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.Open()).To(Succeed())
			Expect(it.Close(false)).To(Succeed())
			Expect(it.CloseStatus()).To(Equal(openpmd.ClosedInFrontend))
			Expect(it.Open()).To(HaveOccurred())
		})

		It("rejects closing an already-closed-in-backend iteration", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.Close(false)).To(Succeed())
			it.MarkClosedInBackend()
			Expect(it.Close(false)).To(HaveOccurred())
		})
	})

	Context("mesh dataset round trip through a flush", func() {
		It("writes a chunk and persists it through the JSON backend", func() {
			s, backend := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.Open()).To(Succeed())

			comp := it.Meshes.Get("E").Component("x")
			Expect(comp.ResetDataset(core.NewDataset(attribute.Double, core.Extent{2, 2}))).To(Succeed())
			Expect(comp.StoreChunk([]float64{1, 2, 3, 4}, core.Offset{0, 0}, core.Extent{2, 2})).To(Succeed())

			Expect(s.Flush(ctx, iotask.UserFlush)).To(Succeed())
			Expect(backend.LastFlushOK()).To(BeTrue())

			_, dtype, extent, data, ok := backend.Export("/data/0/meshes/E/x")
			Expect(ok).To(BeTrue())
			Expect(dtype).To(Equal(attribute.Double.String()))
			Expect(extent).To(Equal([]uint64{2, 2}))
			Expect(data).NotTo(BeNil())
		})

		It("rejects shrinking a written dataset", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.Open()).To(Succeed())
			comp := it.Meshes.Get("E").Component("x")
			Expect(comp.ResetDataset(core.NewDataset(attribute.Double, core.Extent{4}))).To(Succeed())
			Expect(comp.StoreChunk([]float64{1, 2, 3, 4}, core.Offset{0}, core.Extent{4})).To(Succeed())
			err := comp.ResetDataset(core.NewDataset(attribute.Double, core.Extent{2}))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("constant components", func() {
		It("loadChunk on a constant component synthesizes a value-filled buffer without touching the backend", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.Open()).To(Succeed())
			comp := it.Meshes.Get("rho").Component("scalar")
			Expect(comp.MakeConstant(attribute.Float64Of(7.5), core.Extent{3, 3})).To(Succeed())

			p := comp.LoadChunk(core.Offset{1, 0}, core.Extent{2, 3})
			buf, ok := p.Data.([]float64)
			Expect(ok).To(BeTrue())
			Expect(buf).To(HaveLen(6))
			for _, v := range buf {
				Expect(v).To(Equal(7.5))
			}
		})
	})

	Context("particle species invariants", func() {
		It("rejects a flush when position and positionOffset disagree on dimensionality", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.Open()).To(Succeed())

			species := it.Particles.Get("electrons")
			pos := species.Record("position")
			Expect(pos.Component("x").ResetDataset(core.NewDataset(attribute.Double, core.Extent{4}))).To(Succeed())
			Expect(pos.Component("y").ResetDataset(core.NewDataset(attribute.Double, core.Extent{4}))).To(Succeed())

			off := species.Record("positionOffset")
			Expect(off.ScalarComponent().ResetDataset(core.NewDataset(attribute.Double, core.Extent{4}))).To(Succeed())

			Expect(s.Flush(ctx, iotask.UserFlush)).To(HaveOccurred())
		})

		It("allows a flush when position and positionOffset agree on dimensionality", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.Open()).To(Succeed())

			species := it.Particles.Get("electrons")
			pos := species.Record("position")
			Expect(pos.Component("x").ResetDataset(core.NewDataset(attribute.Double, core.Extent{4}))).To(Succeed())
			Expect(pos.Component("y").ResetDataset(core.NewDataset(attribute.Double, core.Extent{4}))).To(Succeed())

			off := species.Record("positionOffset")
			Expect(off.Component("x").ResetDataset(core.NewDataset(attribute.Double, core.Extent{4}))).To(Succeed())
			Expect(off.Component("y").ResetDataset(core.NewDataset(attribute.Double, core.Extent{4}))).To(Succeed())

			Expect(s.Flush(ctx, iotask.UserFlush)).To(Succeed())
		})
	})

	Context("step protocol", func() {
		It("rejects endStep before any beginStep", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.EndStep()).To(HaveOccurred())
		})

		It("allows a begin/end pair and rejects a double begin", func() {
			s, _ := newCreateSeries()
			it := s.Iterations.Get(0)
			Expect(it.BeginStep()).To(Succeed())
			Expect(it.StepStatus()).To(Equal(openpmd.DuringStep))
			Expect(it.BeginStep()).To(HaveOccurred())
			Expect(it.EndStep()).To(Succeed())
			Expect(it.StepStatus()).To(Equal(openpmd.NoStep))
		})
	})
})
