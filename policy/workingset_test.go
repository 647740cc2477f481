package policy

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("WorkingSetEngine", func() {
	var e *WorkingSetEngine

	BeforeEach(func() {
		e = NewWorkingSetEngine()
	})

	faultTimes := func(records []StepRecord) []int {
		var times []int
		for _, rec := range records {
			if rec.Fault {
				times = append(times, rec.Time)
			}
		}

		return times
	}

	It("should keep a page idle for exactly window steps", func() {
		records, s := simulate(e, makeProblem(3, 0, 2, 0, 1, 2, 0, 1, 2))

		Expect(faultTimes(records)).To(Equal([]int{0, 1, 2}))
		Expect(records[2].Resident).To(Equal([]int{0, 1, 2}))
		Expect(s.Faults).To(Equal(3))
		Expect(s.Variable).To(BeTrue())
		Expect(s.AverageResident).To(BeNumerically("~", 2.5, 1e-9))
	})

	It("should evict a page idle for longer than the window", func() {
		records, s := simulate(e, makeProblem(3, 0, 1, 0, 1, 2, 0, 1, 2))

		Expect(faultTimes(records)).To(Equal([]int{0, 1, 2, 3, 4, 5}))
		Expect(records[2].Evicted).To(Equal([]int{0}))
		Expect(records[3].Resident).To(Equal([]int{0, 2}))
		Expect(s.AverageResident).To(BeNumerically("~", 11.0/6.0, 1e-9))
	})

	It("should hold only the current page with a zero window", func() {
		records, s := simulate(e, makeProblem(2, 0, 0, 1, 1, 0))

		Expect(s.Faults).To(Equal(2))
		Expect(records[1].Fault).To(BeFalse())
		Expect(records[2].Resident).To(Equal([]int{0}))
	})

	It("should never report a victim", func() {
		records, _ := simulate(e, makeProblem(3, 0, 1, 0, 1, 2, 0))

		for _, rec := range records {
			Expect(rec.Victim).To(Equal(NoVictim))
		}
	})

	It("should report a zero average for an empty string", func() {
		_, s := simulate(e, makeProblem(3, 2, 1))

		Expect(s.AverageResident).To(BeZero())
		Expect(s.FaultRate()).To(BeZero())
	})
})
