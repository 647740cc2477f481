package simulation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/sim"
)

var _ = Describe("Driver", func() {
	var (
		mockCtrl *gomock.Controller
		hook     *MockHook
		problem  *refstring.Problem
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hook = NewMockHook(mockCtrl)

		refs := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}
		problem = &refstring.Problem{
			Params: refstring.Params{
				PageCount:  6,
				FrameCount: 3,
				WindowSize: 2,
				Length:     len(refs),
			},
			Refs: refs,
		}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run every policy in the standard order", func() {
		d := MakeBuilder().WithProblem(problem).Build()

		summaries := d.Run()

		Expect(d.Policies()).To(Equal(policy.Names()))
		Expect(summaries).To(HaveLen(6))
		Expect(summaries[0].Policy).To(Equal(policy.NameMIN))
		Expect(summaries[0].Faults).To(Equal(7))
		Expect(summaries[1].Faults).To(Equal(9))
		Expect(summaries[2].Faults).To(Equal(10))
		Expect(summaries[5].Variable).To(BeTrue())
	})

	It("should keep the standard order for a subset", func() {
		d := MakeBuilder().
			WithProblem(problem).
			WithPolicies("ws", "lru", "MIN").
			Build()

		Expect(d.Policies()).To(Equal([]string{
			policy.NameMIN, policy.NameLRU, policy.NameWorkingSet,
		}))
	})

	It("should panic on an unknown policy", func() {
		Expect(func() {
			MakeBuilder().WithProblem(problem).WithPolicies("nru").Build()
		}).To(Panic())
	})

	It("should panic without a problem", func() {
		Expect(func() { MakeBuilder().Build() }).To(Panic())
	})

	It("should invoke the hooks around every run", func() {
		var ctxs []sim.HookCtx
		hook.EXPECT().Func(gomock.Any()).
			Do(func(ctx sim.HookCtx) { ctxs = append(ctxs, ctx) }).
			Times(len(problem.Refs) + 2)

		d := MakeBuilder().
			WithProblem(problem).
			WithPolicies("fifo").
			WithHook(hook).
			WithIDGenerator(sim.NewSequentialIDGenerator()).
			Build()
		d.Run()

		info := RunInfo{
			RunID:      "1",
			Policy:     policy.NameFIFO,
			Allocation: policy.FixedAllocation,
			Params:     problem.Params,
		}

		Expect(ctxs[0].Pos).To(Equal(sim.HookPosRunStart))
		Expect(ctxs[0].Item).To(Equal(info))
		Expect(ctxs[0].Domain).To(BeIdenticalTo(d))

		for i, ctx := range ctxs[1 : len(ctxs)-1] {
			Expect(ctx.Pos).To(Equal(sim.HookPosStep))
			Expect(ctx.Detail).To(Equal(info))

			rec := ctx.Item.(policy.StepRecord)
			Expect(rec.Time).To(Equal(i))
			Expect(rec.Page).To(Equal(problem.Refs[i]))
		}

		last := ctxs[len(ctxs)-1]
		Expect(last.Pos).To(Equal(sim.HookPosRunEnd))
		Expect(last.Item.(policy.Summary).Faults).To(Equal(9))
	})

	It("should give every run its own ID", func() {
		var ids []string
		hook.EXPECT().Func(gomock.Any()).
			Do(func(ctx sim.HookCtx) {
				if ctx.Pos == sim.HookPosRunStart {
					ids = append(ids, ctx.Item.(RunInfo).RunID)
				}
			}).
			AnyTimes()

		d := MakeBuilder().
			WithProblem(problem).
			WithHook(hook).
			WithIDGenerator(sim.NewSequentialIDGenerator()).
			Build()
		d.Run()
		d.Run()

		Expect(ids).To(Equal([]string{
			"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12",
		}))
	})

	It("should reproduce the summaries on a second run", func() {
		d := MakeBuilder().WithProblem(problem).Build()

		Expect(d.Run()).To(Equal(d.Run()))
	})
})
