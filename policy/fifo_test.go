package policy

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FIFO", func() {
	var e *FixedEngine

	BeforeEach(func() {
		e = NewFixedEngine(NameFIFO, NewFIFOVictimFinder())
	})

	It("should fault 9 times on the Belady string with 3 frames", func() {
		records, s := simulate(e, makeProblem(6, 3, 1, beladyRefs...))

		Expect(s.Faults).To(Equal(9))
		Expect(s.References).To(Equal(12))
		Expect(victims(records)).To(Equal(
			[]int{0, 1, 2, 0, 1, 2, 0, x, x, 1, 2, x}))
	})

	It("should show Belady's anomaly with 4 frames", func() {
		_, s := simulate(e, makeProblem(6, 4, 1, beladyRefs...))

		Expect(s.Faults).To(Equal(10))
	})

	It("should not reorder pages on a hit", func() {
		records, _ := simulate(e, makeProblem(3, 2, 1, 0, 1, 0, 2))

		Expect(records[3].Victim).To(Equal(0))
		Expect(records[3].Resident).To(Equal([]int{2, 1}))
	})
})
