package tracing

import (
	"go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/replacement"
)

var shortTrace = []replacement.PageID{1, 2, 1, 3}

var _ = Describe("CollectTrace", func() {
	var (
		mockCtrl *gomock.Controller
		tracer   *MockTracer
		sim      *replacement.Simulator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tracer = NewMockTracer(mockCtrl)
		sim = replacement.NewSimulator(replacement.KindFIFO)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should forward run events in order", func() {
		CollectTrace(sim, tracer)

		var info replacement.RunInfo

		gomock.InOrder(
			tracer.EXPECT().StartRun(gomock.Any()).
				Do(func(i replacement.RunInfo) { info = i }),
			tracer.EXPECT().Step(gomock.Any()).Times(len(shortTrace)),
			tracer.EXPECT().EndRun(gomock.Any()).
				Do(func(s replacement.RunSummary) {
					Expect(s.RunInfo).To(Equal(info))
					Expect(s.Result).To(Equal(replacement.Result{
						Faults: 1, References: 2, Misses: 3,
					}))
				}),
		)

		sim.Run(shortTrace, 2)

		Expect(info.Policy).To(Equal(replacement.KindFIFO))
		Expect(info.FrameCount).To(Equal(2))
		Expect(info.TraceLength).To(Equal(len(shortTrace)))
	})

	It("should not attach the same tracer twice", func() {
		CollectTrace(sim, tracer)

		Expect(func() { CollectTrace(sim, tracer) }).To(Panic())
	})

	It("should wrap a tracer into a hook", func() {
		tracer.EXPECT().StartRun(gomock.Any())
		tracer.EXPECT().Step(gomock.Any()).Times(len(shortTrace))
		tracer.EXPECT().EndRun(gomock.Any())

		sim.AcceptHook(NewTraceHook(tracer))
		sim.Run(shortTrace, 2)
	})
})
