package policy

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	It("should list the policies in simulation order", func() {
		Expect(Names()).To(Equal([]string{
			"MIN", "FIFO", "LRU", "LFU", "Clock", "WS",
		}))
	})

	DescribeTable("should match names case-insensitively",
		func(name, expected string) {
			e, ok := New(name)

			Expect(ok).To(BeTrue())
			Expect(e.Name()).To(Equal(expected))
		},
		Entry("min", "min", NameMIN),
		Entry("optimal", "Optimal", NameMIN),
		Entry("fifo", "FIFO", NameFIFO),
		Entry("lru", "Lru", NameLRU),
		Entry("lfu", "lfu", NameLFU),
		Entry("clock", "CLOCK", NameClock),
		Entry("ws", "ws", NameWorkingSet),
		Entry("workingset", "WorkingSet", NameWorkingSet),
	)

	It("should reject unknown names", func() {
		_, ok := New("random")

		Expect(ok).To(BeFalse())
	})

	It("should create fresh engines", func() {
		engines := Standard()

		Expect(engines).To(HaveLen(6))
		Expect(engines[5].Allocation()).To(Equal(VariableAllocation))
		for _, e := range engines[:5] {
			Expect(e.Allocation()).To(Equal(FixedAllocation))
		}

		again := Standard()
		Expect(again[0]).NotTo(BeIdenticalTo(engines[0]))
	})
})
