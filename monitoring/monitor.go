package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	pagesim "github.com/oss6/pagesim"
)

// Monitor turns a running Coordinator into an inspectable HTTP server,
// adapted from monitor.go: the same reflective goseth-backed field
// endpoints and gopsutil resource/pprof profiling endpoints, narrowed to
// the one Coordinator a pagesim run has instead of an arbitrary component
// graph.
type Monitor struct {
	coord      *pagesim.Coordinator
	portNumber int
	progress   *ProgressBar
	logger     *log.Logger
}

// NewMonitor returns a Monitor that logs through logger (falling back to
// the standard logger if nil).
func NewMonitor(logger *log.Logger) *Monitor {
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{logger: logger}
}

// WithPortNumber sets the port the monitoring server binds to. Ports below
// 1000 are rejected in favor of an OS-assigned port, matching the
// teacher's guard against binding privileged ports.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is not allowed for the monitoring server; "+
				"using a random port instead.\n", portNumber)
		portNumber = 0
	}
	m.portNumber = portNumber
	return m
}

// RegisterCoordinator wires the monitor to c, subscribing a progress bar to
// its admission and reap hooks.
func (m *Monitor) RegisterCoordinator(c *pagesim.Coordinator) {
	m.coord = c
	m.progress = NewProgressBar(c.Name(), 0)

	c.AcceptHook(pagesim.HookFunc{At: pagesim.OnAdmit, Fn: func(pagesim.HookCtx) {
		m.progress.IncrementInProgress(1)
	}})
	c.AcceptHook(pagesim.HookFunc{At: pagesim.OnReap, Fn: func(pagesim.HookCtx) {
		m.progress.MoveInProgressToFinished(1)
	}})
}

// StartServer starts the monitoring HTTP server on a background goroutine
// and returns the URL it is listening on.
func (m *Monitor) StartServer() (string, error) {
	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/snapshot", m.snapshot)
	r.HandleFunc("/api/field/{json}", m.field)
	r.HandleFunc("/api/progress", m.listProgress)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	actualPort := ":0"
	if m.portNumber >= 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	if err != nil {
		return "", &pagesim.Fault{Kind: pagesim.ErrResource, Message: err.Error()}
	}

	url := fmt.Sprintf("http://localhost:%d", listener.Addr().(*net.TCPAddr).Port)
	m.logger.Printf("monitoring pagesim run at %s", url)

	go func() {
		if err := http.Serve(listener, r); err != nil {
			m.logger.Printf("monitoring server stopped: %v", err)
		}
	}()

	return url, nil
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, `{"now_ns":%d}`, m.coord.Now().NowNS())
}

func (m *Monitor) snapshot(w http.ResponseWriter, _ *http.Request) {
	snap := m.coord.Snapshot()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&snap)
	serializer.SetMaxDepth(3)

	dieOnErr(serializer.Serialize(w))
}

type fieldReq struct {
	FieldName string `json:"field_name,omitempty"`
}

// field drills into the current Snapshot at a dotted field path, mirroring
// listFieldValue.go's per-component field inspection endpoint.
func (m *Monitor) field(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]

	req := fieldReq{}
	if err := json.Unmarshal([]byte(jsonString), &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "invalid field request: %s", err)
		return
	}

	snap := m.coord.Snapshot()

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&snap)
	serializer.SetMaxDepth(3)

	fields := strings.Split(req.FieldName, ".")
	if err := serializer.SetEntryPoint(fields); err != nil {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "unknown field: %s", err)
		return
	}

	dieOnErr(serializer.Serialize(w))
}

func (m *Monitor) listProgress(w http.ResponseWriter, _ *http.Request) {
	body, err := json.Marshal(m.progress)
	dieOnErr(err)

	_, err = w.Write(body)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	body, err := json.Marshal(resourceRsp{CPUPercent: cpuPercent, MemorySize: memInfo.RSS})
	dieOnErr(err)

	_, err = w.Write(body)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	dieOnErr(pprof.StartCPUProfile(buf))
	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	body, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(body)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
