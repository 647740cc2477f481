package policy

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRU", func() {
	var e *FixedEngine

	BeforeEach(func() {
		e = NewFixedEngine(NameLRU, NewLRUVictimFinder())
	})

	It("should fault 10 times on the Belady string with 3 frames", func() {
		records, s := simulate(e, makeProblem(6, 3, 1, beladyRefs...))

		Expect(s.Faults).To(Equal(10))
		Expect(victims(records)).To(Equal(
			[]int{0, 1, 2, 0, 1, 2, 0, x, x, 0, 1, 2}))
	})

	It("should refresh the page on a hit", func() {
		records, _ := simulate(e, makeProblem(3, 2, 1, 0, 1, 0, 2))

		Expect(records[3].Victim).To(Equal(1))
		Expect(records[3].Resident).To(Equal([]int{0, 2}))
	})
})
