// Package monitoring serves the progress and results of a running
// simulation over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/pagesim/monitoring/web"
	"github.com/sarchlab/pagesim/policy"
	"github.com/sarchlab/pagesim/sim"
	"github.com/sarchlab/pagesim/simulation"
)

// PolicyState is the latest step a policy has taken.
type PolicyState struct {
	RunID      string
	Policy     string
	Allocation string
	Time       int
	Page       int
	Fault      bool
	Victim     int
	Faults     int
	Resident   []int
}

// Monitor is a hook that tracks the simulation and serves what it has
// seen. The HTTP handlers only read copies taken under the lock.
type Monitor struct {
	portNumber      int
	profileDuration time.Duration
	metrics         *metrics

	lock         sync.Mutex
	progressBars []*ProgressBar
	current      *ProgressBar
	states       map[string]*PolicyState
	summaries    []policy.Summary
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		profileDuration: time.Second,
		metrics:         newMetrics(),
		states:          make(map[string]*PolicyState),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		slog.Warn("monitor port not allowed, using a random port instead",
			"port", portNumber)

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// Func updates the progress, the policy states and the metrics.
func (m *Monitor) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case sim.HookPosRunStart:
		m.runStart(ctx.Item.(simulation.RunInfo))
	case sim.HookPosStep:
		info, _ := ctx.Detail.(simulation.RunInfo)
		m.step(info, ctx.Item.(policy.StepRecord))
	case sim.HookPosRunEnd:
		m.runEnd(ctx.Item.(policy.Summary))
	}
}

func (m *Monitor) runStart(info simulation.RunInfo) {
	bar := &ProgressBar{
		ID:        info.RunID,
		Name:      info.Policy,
		StartTime: time.Now(),
		Total:     uint64(info.Params.Length),
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.progressBars = append(m.progressBars, bar)
	m.current = bar
	m.states[info.Policy] = &PolicyState{
		RunID:      info.RunID,
		Policy:     info.Policy,
		Allocation: info.Allocation.String(),
		Time:       -1,
		Page:       -1,
		Victim:     policy.NoVictim,
	}
}

func (m *Monitor) step(info simulation.RunInfo, rec policy.StepRecord) {
	m.metrics.references.WithLabelValues(rec.Policy).Inc()
	if rec.Fault {
		m.metrics.faults.WithLabelValues(rec.Policy).Inc()
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if m.current != nil {
		m.current.IncrementFinished(1)
	}

	m.states[rec.Policy] = &PolicyState{
		RunID:      info.RunID,
		Policy:     rec.Policy,
		Allocation: info.Allocation.String(),
		Time:       rec.Time,
		Page:       rec.Page,
		Fault:      rec.Fault,
		Victim:     rec.Victim,
		Faults:     rec.Faults,
		Resident:   append([]int(nil), rec.Resident...),
	}
}

func (m *Monitor) runEnd(s policy.Summary) {
	if s.Variable {
		m.metrics.averageResident.WithLabelValues(s.Policy).Set(s.AverageResident)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.summaries = append(m.summaries, s)
	m.current = nil
}

// Handler returns the HTTP handler of the monitoring server.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/summaries", m.listSummaries)
	r.HandleFunc("/api/policy/{name}", m.policyDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.Handle("/metrics", promhttp.HandlerFor(
		m.metrics.registry, promhttp.HandlerOpts{}))
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := "http://localhost:" +
		strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)

	slog.Info("monitoring simulation", "url", url)

	handler := m.Handler()

	go func() {
		err := http.Serve(listener, handler)
		dieOnErr(err)
	}()

	return url
}

// OpenBrowser opens url in the default browser. Failures are only logged.
func OpenBrowser(url string) {
	err := browser.OpenURL(url)
	if err != nil {
		slog.Warn("cannot open browser", "url", url, "error", err)
	}
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	bars := make([]progressRsp, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		bars = append(bars, b.snapshot())
	}
	m.lock.Unlock()

	writeJSON(w, bars)
}

type summaryRsp struct {
	Policy          string  `json:"policy"`
	Faults          int     `json:"faults"`
	References      int     `json:"references"`
	FaultRate       float64 `json:"fault_rate"`
	Variable        bool    `json:"variable"`
	AverageResident float64 `json:"average_resident"`
}

func (m *Monitor) listSummaries(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rsp := make([]summaryRsp, 0, len(m.summaries))
	for _, s := range m.summaries {
		rsp = append(rsp, summaryRsp{
			Policy:          s.Policy,
			Faults:          s.Faults,
			References:      s.References,
			FaultRate:       s.FaultRate(),
			Variable:        s.Variable,
			AverageResident: s.AverageResident,
		})
	}
	m.lock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) policyDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	state := m.findStateOr404(w, name)
	if state == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(state)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

func (m *Monitor) findStateOr404(
	w http.ResponseWriter,
	name string,
) *PolicyState {
	m.lock.Lock()
	defer m.lock.Unlock()

	for policyName, s := range m.states {
		if strings.EqualFold(policyName, name) {
			state := *s
			return &state
		}
	}

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("Policy not found"))
	dieOnErr(err)

	return nil
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
