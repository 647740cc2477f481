package policy

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/residency"
)

// lookaheadMIN replays MIN by scanning the rest of the reference string on
// every fault.
func lookaheadMIN(p *refstring.Problem) []int {
	mem := make([]int, p.FrameCount)
	for i := range mem {
		mem[i] = residency.Empty
	}

	out := make([]int, 0, p.Refs.Len())
	for now, page := range p.Refs {
		if len(mem) == 0 || contains(mem, page) {
			out = append(out, NoVictim)
			continue
		}

		victim := 0
		farthest := -1
		for slot, resident := range mem {
			d := p.Refs.Len()
			for j := now; j < p.Refs.Len(); j++ {
				if p.Refs[j] == resident {
					d = j - now
					break
				}
			}

			if farthest < d {
				farthest = d
				victim = slot
			}
		}

		mem[victim] = page
		out = append(out, victim)
	}

	return out
}

func contains(mem []int, page int) bool {
	for _, p := range mem {
		if p == page {
			return true
		}
	}

	return false
}

var _ = Describe("MIN", func() {
	var e *FixedEngine

	BeforeEach(func() {
		e = NewFixedEngine(NameMIN, NewMINVictimFinder())
	})

	It("should fault 7 times on the Belady string with 3 frames", func() {
		records, s := simulate(e, makeProblem(6, 3, 1, beladyRefs...))

		Expect(s.Faults).To(Equal(7))
		Expect(victims(records)).To(Equal(
			[]int{0, 1, 2, 2, x, x, 2, x, x, 0, 0, x}))
	})

	It("should evict the lowest frame among pages never used again", func() {
		records, _ := simulate(e, makeProblem(4, 2, 1, 0, 1, 2, 3))

		Expect(victims(records)).To(Equal([]int{0, 0, 0, 0}))
		Expect(e.Frames().IsEmpty(1)).To(BeTrue())
	})

	It("should fill a free frame before a page that recurs", func() {
		records, _ := simulate(e, makeProblem(4, 2, 1, 0, 1, 0))

		Expect(victims(records)).To(Equal([]int{0, 1, x}))
		Expect(records[2].Resident).To(Equal([]int{0, 1}))
	})

	It("should prefer a never-used page over a recurring one", func() {
		records, _ := simulate(e, makeProblem(4, 2, 1, 0, 1, 2, 0))

		Expect(records[2].Victim).To(Equal(1))
		Expect(records[3].Fault).To(BeFalse())
	})

	It("should build the next-use table in one backward scan", func() {
		table := BuildNextUseTable(refstring.ReferenceString{0, 1, 0, 2, 1})

		Expect(table).To(Equal(NextUseTable{2, 4, Never, Never, Never}))
		Expect(table.After(1)).To(Equal(4))
	})

	It("should match a full lookahead on random strings", func() {
		g := refstring.NewGenerator(11)

		for i := 0; i < 100; i++ {
			p, err := g.GenerateFor(refstring.Params{
				PageCount:  1 + i%9,
				FrameCount: i % 6,
				WindowSize: 1,
				Length:     i,
			})
			Expect(err).NotTo(HaveOccurred())

			records, _ := simulate(e, p)
			Expect(victims(records)).To(Equal(lookaheadMIN(p)))
		}
	})
})
