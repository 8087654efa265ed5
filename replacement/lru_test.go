package replacement

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// referenceLRUMisses replays the trace through hashicorp's LRU list.
func referenceLRUMisses(trace []PageID, frameCount int) int {
	cache, err := simplelru.NewLRU[PageID, struct{}](frameCount, nil)
	Expect(err).NotTo(HaveOccurred())

	misses := 0
	for _, page := range trace {
		if _, ok := cache.Get(page); ok {
			continue
		}

		misses++
		cache.Add(page, struct{}{})
	}

	return misses
}

var _ = Describe("LRU", func() {
	It("should reset the age of a hit page", func() {
		c := newLRUChooser(3)
		c.beforeReference()
		c.beforeReference()
		c.onHit(1)

		Expect(c.ages).To(Equal([]int{2, 0, 2}))
		Expect(c.victim(0, FrameTable{{1, true}, {2, true}, {3, true}}, false)).
			To(Equal(0))
	})

	It("should miss exactly as often as an LRU list", func() {
		for seed := uint64(1); seed <= 30; seed++ {
			trace := randomTrace(seed, 300, 4+int(seed%13))

			for frames := 1; frames <= 10; frames++ {
				Expect(LRU(trace, frames).Misses).
					To(Equal(referenceLRUMisses(trace, frames)))
			}
		}
	})
})
