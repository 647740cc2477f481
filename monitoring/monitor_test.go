package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

var _ = Describe("Monitor", func() {
	var (
		m       *Monitor
		handler http.Handler
	)

	get := func(url string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

		return rec
	}

	run := func(policies ...string) {
		problem := &refstring.Problem{
			Params: refstring.Params{
				PageCount:  3,
				FrameCount: 2,
				WindowSize: 1,
				Length:     4,
			},
			Refs: []int{0, 1, 0, 2},
		}

		simulation.MakeBuilder().
			WithProblem(problem).
			WithPolicies(policies...).
			WithHook(m).
			WithIDGenerator(sim.NewSequentialIDGenerator()).
			Build().
			Run()
	}

	BeforeEach(func() {
		m = NewMonitor()
		m.profileDuration = 10 * time.Millisecond
		handler = m.Handler()
	})

	It("should reject privileged ports", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should track one progress bar per run", func() {
		run("fifo", "ws")

		rec := get("/api/progress")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var bars []progressRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(2))
		Expect(bars[0].ID).To(Equal("1"))
		Expect(bars[0].Name).To(Equal("FIFO"))
		Expect(bars[0].Total).To(Equal(uint64(4)))
		Expect(bars[0].Finished).To(Equal(uint64(4)))
		Expect(bars[1].Name).To(Equal("WS"))
		Expect(m.progressBars[1].Done()).To(BeTrue())
	})

	It("should list the summaries", func() {
		run("lru", "ws")

		rec := get("/api/summaries")

		var summaries []summaryRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &summaries)).To(Succeed())
		Expect(summaries).To(Equal([]summaryRsp{
			{Policy: "LRU", Faults: 3, References: 4, FaultRate: 0.75},
			{Policy: "WS", Faults: 3, References: 4, FaultRate: 0.75,
				Variable: true, AverageResident: 1.75},
		}))
	})

	It("should keep the last step of each policy", func() {
		run("clock")

		Expect(m.states).To(HaveKey("Clock"))
		state := m.states["Clock"]
		Expect(state.Time).To(Equal(3))
		Expect(state.Faults).To(Equal(3))
		Expect(state.Resident).To(Equal([]int{2, 1}))

		rec := get("/api/policy/clock")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Clock"))
	})

	It("should answer 404 for an unknown policy", func() {
		rec := get("/api/policy/nru")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should export metrics", func() {
		run("fifo")

		rec := get("/metrics")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(
			`pagesim_references_total{policy="FIFO"} 4`))
		Expect(rec.Body.String()).To(ContainSubstring(
			`pagesim_page_faults_total{policy="FIFO"} 3`))
	})

	It("should report resource usage", func() {
		rec := get("/api/resource")

		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).To(BeNumerically(">", 0))
	})

	It("should collect a profile", func() {
		rec := get("/api/profile")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
	})

	It("should serve the web page", func() {
		rec := get("/")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(HavePrefix("<!DOCTYPE html>"))
	})
})
