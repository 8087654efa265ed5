package tracing

import (
	"context"
	"path/filepath"

	"go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/hooking"
	"github.com/sarchlab/pagesim/replacement"
)

var _ = Describe("DBTracer", func() {
	var (
		mockCtrl *gomock.Controller
		recorder *MockDataRecorder
		tracer   *DBTracer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		recorder = NewMockDataRecorder(mockCtrl)

		recorder.EXPECT().CreateTable("runs", runEntry{})
		recorder.EXPECT().CreateTable("steps", stepEntry{})

		tracer = NewDBTracer(recorder)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record steps", func() {
		step := replacement.Step{
			RunID:   "run1",
			Index:   3,
			Page:    7,
			Slot:    1,
			Counted: true,
			Frames: replacement.FrameTable{
				{Page: 5, Occupied: true},
				{Page: 7, Occupied: true},
				{},
			},
		}

		recorder.EXPECT().InsertData("steps", stepEntry{
			RunID:    "run1",
			Position: 3,
			Page:     7,
			Slot:     1,
			Counted:  true,
			Frames:   "5 7 -",
		})

		tracer.Step(step)
	})

	It("should record runs when they end", func() {
		tracer.StartRun(replacement.RunInfo{ID: "run1"})

		recorder.EXPECT().InsertData("runs", runEntry{
			ID:          "run1",
			Policy:      "OPT",
			FrameCount:  3,
			TraceLength: 12,
			Faults:      4,
			References:  9,
			Misses:      7,
		})

		tracer.EndRun(replacement.RunSummary{
			RunInfo: replacement.RunInfo{
				ID:          "run1",
				Policy:      replacement.KindOPT,
				FrameCount:  3,
				TraceLength: 12,
			},
			Result: replacement.Result{Faults: 4, References: 9, Misses: 7},
		})
	})

	It("should skip steps when asked to", func() {
		tracer.SkipSteps()

		recorder.EXPECT().InsertData("runs", gomock.Any())

		sim := replacement.NewSimulator(replacement.KindLRU)
		CollectTrace(sim, tracer)
		sim.Run(shortTrace, 2)
	})

	It("should flush on terminate", func() {
		recorder.EXPECT().Flush()

		tracer.Terminate()
	})
})

var _ = Describe("Recording round trip", func() {
	It("should read back the recorded runs and steps", func() {
		name := filepath.Join(GinkgoT().TempDir(), "recording")
		recorder := datarecording.New(name)
		tracer := NewDBTracer(recorder)

		var steps []replacement.Step
		sim := replacement.NewSimulator(replacement.KindFIFO)
		CollectTrace(sim, tracer)
		sim.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if ctx.Pos == replacement.HookPosStep {
				steps = append(steps, ctx.Item.(replacement.Step))
			}
		}))

		sim.Run(shortTrace, 2)
		sim.Run(shortTrace, 3)
		Expect(recorder.Close()).To(Succeed())

		reader, err := OpenRecording(name)
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		runs, err := reader.ListRuns(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(runs).To(HaveLen(2))
		Expect(runs[0].Policy).To(Equal(replacement.KindFIFO))
		Expect(runs[0].FrameCount).To(Equal(2))
		Expect(runs[0].Result).To(Equal(replacement.Result{
			Faults: 1, References: 2, Misses: 3,
		}))
		Expect(runs[1].FrameCount).To(Equal(3))
		Expect(runs[1].Result).To(Equal(replacement.Result{Misses: 3}))

		recorded, err := reader.ListSteps(context.Background(), runs[0].ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(recorded).To(Equal(steps[:len(shortTrace)]))

		none, err := reader.ListSteps(context.Background(), "unknown")
		Expect(err).NotTo(HaveOccurred())
		Expect(none).To(BeEmpty())
	})

	It("should fail to open a missing recording", func() {
		_, err := OpenRecording(filepath.Join(GinkgoT().TempDir(), "absent"))

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Frame encoding", func() {
	It("should round trip frames", func() {
		frames := replacement.FrameTable{{}, {Page: 12, Occupied: true}}

		Expect(formatFrames(frames)).To(Equal("- 12"))

		parsed, err := parseFrames("- 12")
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed).To(Equal(frames))
	})

	It("should reject bad frames", func() {
		_, err := parseFrames("1 x")

		Expect(err).To(MatchError(ContainSubstring(`bad frame "x"`)))
	})
})
