package tracing

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/replacement"
)

var _ = Describe("CSVTracer", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "steps")
	})

	It("should write a header and one line per step", func() {
		tracer := NewCSVTracer(path)
		tracer.Init()

		sim := replacement.NewSimulator(replacement.KindFIFO)
		CollectTrace(sim, tracer)
		sim.Run(shortTrace, 2)
		Expect(tracer.Close()).To(Succeed())

		content, err := os.ReadFile(tracer.Filename())
		Expect(err).NotTo(HaveOccurred())

		lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
		Expect(lines).To(HaveLen(1 + len(shortTrace)))
		Expect(lines[0]).To(Equal(
			"RunID, Policy, FrameCount, Index, Page, Slot, Hit, Fault, Frames"))
		Expect(lines[1]).To(HaveSuffix(", FIFO, 2, 0, 1, 0, false, false, 1 -"))
		Expect(lines[3]).To(HaveSuffix(", FIFO, 2, 2, 1, 0, true, false, 1 2"))
		Expect(lines[4]).To(HaveSuffix(", FIFO, 2, 3, 3, 0, false, true, 3 2"))
	})

	It("should flush when the buffer is full", func() {
		tracer := NewCSVTracer(path)
		tracer.bufferSize = 2
		tracer.Init()

		tracer.StartRun(replacement.RunInfo{ID: "r", Policy: replacement.KindLRU})
		tracer.Step(replacement.Step{RunID: "r", Frames: replacement.NewFrameTable(1)})
		Expect(tracer.steps).To(HaveLen(1))

		tracer.Step(replacement.Step{RunID: "r", Frames: replacement.NewFrameTable(1)})
		Expect(tracer.steps).To(BeEmpty())

		Expect(tracer.Close()).To(Succeed())

		content, err := os.ReadFile(tracer.Filename())
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.Count(string(content), "r, LRU, 0, 0, 0, 0, false, false, -\n")).
			To(Equal(2))
	})

	It("should refuse to overwrite a file", func() {
		Expect(os.WriteFile(path+".csv", nil, 0o644)).To(Succeed())

		tracer := NewCSVTracer(path)

		Expect(func() { tracer.Init() }).To(Panic())
	})

	It("should close once", func() {
		tracer := NewCSVTracer(path)
		tracer.Init()

		Expect(tracer.Close()).To(Succeed())
		Expect(tracer.Close()).To(Succeed())
	})
})
