package replacement

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/hooking"
)

var beladyTrace = []PageID{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

// finalFrames runs the policy and returns the frame table after the last
// reference.
func finalFrames(kind Kind, trace []PageID, frameCount int) FrameTable {
	var last FrameTable

	s := NewSimulator(kind)
	s.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
		if ctx.Pos == HookPosStep {
			last = ctx.Item.(Step).Frames
		}
	}))
	s.Run(trace, frameCount)

	return last
}

func pagesOf(table FrameTable) []PageID {
	pages := make([]PageID, len(table))
	for i, s := range table {
		pages[i] = -1
		if s.Occupied {
			pages[i] = s.Page
		}
	}

	return pages
}

var _ = Describe("Kind", func() {
	It("should parse policy names", func() {
		for name, want := range map[string]Kind{
			"fifo":  KindFIFO,
			"LRU":   KindLRU,
			"opt":   KindOPT,
			"Extra": KindOPT,
		} {
			kind, err := ParseKind(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(kind).To(Equal(want))
		}
	})

	It("should reject unknown names", func() {
		_, err := ParseKind("clock")
		Expect(err).To(MatchError(ErrUnknownPolicy))
	})

	It("should print policy labels", func() {
		Expect(KindFIFO.String()).To(Equal("FIFO"))
		Expect(KindLRU.String()).To(Equal("LRU"))
		Expect(KindOPT.String()).To(Equal("OPT"))
		Expect(Kind(9).String()).To(Equal("Kind(9)"))
	})
})

var _ = Describe("Run", func() {
	DescribeTable("should reproduce the textbook results",
		func(kind Kind, frameCount int, want Result) {
			Expect(Run(kind, beladyTrace, frameCount)).To(Equal(want))
		},
		Entry("FIFO, 3 frames", KindFIFO, 3,
			Result{Faults: 6, References: 9, Misses: 9}),
		Entry("FIFO, 4 frames (Belady's anomaly)", KindFIFO, 4,
			Result{Faults: 6, References: 8, Misses: 10}),
		Entry("LRU, 3 frames", KindLRU, 3,
			Result{Faults: 7, References: 9, Misses: 10}),
		Entry("LRU, 4 frames", KindLRU, 4,
			Result{Faults: 4, References: 8, Misses: 8}),
		Entry("OPT, 3 frames", KindOPT, 3,
			Result{Faults: 4, References: 9, Misses: 7}),
		Entry("OPT, 4 frames", KindOPT, 4,
			Result{Faults: 2, References: 8, Misses: 6}),
	)

	DescribeTable("should only count warm-up once for a repeated page",
		func(kind Kind) {
			r := Run(kind, []PageID{0, 0, 0, 0}, 1)
			Expect(r).To(Equal(Result{Faults: 0, References: 3, Misses: 1}))
			Expect(r.MissRate()).To(Equal(0.0))
		},
		Entry("FIFO", KindFIFO),
		Entry("LRU", KindLRU),
		Entry("OPT", KindOPT),
	)

	DescribeTable("should not count the reference that fills the table",
		func(kind Kind) {
			r := Run(kind, []PageID{5}, 1)
			Expect(r).To(Equal(Result{Misses: 1}))
			Expect(math.IsNaN(r.MissRate())).To(BeTrue())
		},
		Entry("FIFO", KindFIFO),
		Entry("LRU", KindLRU),
		Entry("OPT", KindOPT),
	)

	It("should keep FIFO order when a page is hit", func() {
		trace := []PageID{1, 2, 1, 3}
		Expect(pagesOf(finalFrames(KindFIFO, trace, 2))).
			To(Equal([]PageID{3, 2}))
		Expect(pagesOf(finalFrames(KindLRU, trace, 2))).
			To(Equal([]PageID{1, 3}))
	})

	It("should let LRU fill empty frames before evicting", func() {
		trace := []PageID{1, 2, 1, 3, 4}

		Expect(LRU(trace, 3)).
			To(Equal(Result{Faults: 1, References: 1, Misses: 4}))
		Expect(pagesOf(finalFrames(KindLRU, trace, 3))).
			To(Equal([]PageID{1, 4, 3}))
	})

	It("should leave frames empty while the trace is short", func() {
		Expect(pagesOf(finalFrames(KindOPT, []PageID{3, 3, 8}, 4))).
			To(Equal([]PageID{3, 8, -1, -1}))
	})

	It("should let OPT evict the first page never used again", func() {
		Expect(pagesOf(finalFrames(KindOPT, []PageID{1, 2, 3, 4}, 3))).
			To(Equal([]PageID{4, 2, 3}))
	})

	It("should let OPT prefer a page never used again", func() {
		Expect(pagesOf(finalFrames(KindOPT, []PageID{1, 2, 3, 4, 1, 2}, 3))).
			To(Equal([]PageID{1, 2, 4}))
	})

	It("should let OPT evict the farthest next use", func() {
		trace := []PageID{1, 2, 3, 4, 3, 2}
		Expect(pagesOf(finalFrames(KindOPT, trace, 3))).
			To(Equal([]PageID{4, 2, 3}))
		Expect(OPT(trace, 3)).
			To(Equal(Result{Faults: 1, References: 3, Misses: 4}))
	})

	It("should panic without frames", func() {
		Expect(func() { FIFO([]PageID{1}, 0) }).To(Panic())
		Expect(func() { NewSimulator(KindLRU).Run([]PageID{1}, -1) }).
			To(Panic())
	})

	It("should panic on an empty trace", func() {
		Expect(func() { OPT(nil, 3) }).To(Panic())
	})
})
