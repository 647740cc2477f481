package policy

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Clock", func() {
	var (
		finder *ClockVictimFinder
		e      *FixedEngine
	)

	BeforeEach(func() {
		finder = NewClockVictimFinder()
		e = NewFixedEngine(NameClock, finder)
	})

	It("should fault 9 times on the Belady string with 3 frames", func() {
		records, s := simulate(e, makeProblem(6, 3, 1, beladyRefs...))

		Expect(s.Faults).To(Equal(9))
		Expect(victims(records)).To(Equal(
			[]int{0, 1, 2, 0, 1, 2, 0, x, x, 1, 2, x}))
	})

	It("should clear every bit before evicting from a full set", func() {
		p := makeProblem(4, 3, 1, 0, 1, 2, 3)
		e.Reset(p)
		for t := 0; t < 4; t++ {
			e.Step(t)
		}

		Expect(finder.LastSweep()).To(Equal(3))
		Expect(finder.Hand()).To(Equal(1))
		Expect(finder.Referenced(0)).To(BeTrue())
		Expect(finder.Referenced(1)).To(BeFalse())
	})

	It("should give a referenced page a second chance", func() {
		p := makeProblem(5, 3, 1, 0, 1, 2, 3, 1, 4)
		e.Reset(p)

		var last StepRecord
		for t := 0; t < p.Refs.Len(); t++ {
			last = e.Step(t)
		}

		Expect(last.Victim).To(Equal(2))
		Expect(last.Resident).To(Equal([]int{3, 1, 4}))
		Expect(finder.LastSweep()).To(Equal(1))
	})

	It("should keep the hand between faults", func() {
		records, _ := simulate(e, makeProblem(5, 3, 1, 0, 1, 2, 3, 0, 4))

		Expect(victims(records)).To(Equal([]int{0, 1, 2, 0, 1, 2}))
	})

	It("should move the hand back to frame 0 on reset", func() {
		p := makeProblem(4, 3, 1, 0, 1, 2, 3)
		simulate(e, p)
		Expect(finder.Hand()).To(Equal(1))

		e.Reset(p)
		Expect(finder.Hand()).To(Equal(0))
	})
})
