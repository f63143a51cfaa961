// Package monitoring turns a running simulation into a small web server so
// it can be observed and controlled from outside the process.
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
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/liuq/desim/sim"
)

// A Monitor exposes the state of a simulation over HTTP: the clock, the
// registered entities, progress bars, and profiles of the host process.
type Monitor[T sim.Time] struct {
	sim        *sim.Simulation[T]
	portNumber int

	entityLock sync.Mutex
	entities   map[string]any

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor.
func NewMonitor[T sim.Time]() *Monitor[T] {
	return &Monitor[T]{
		entities: make(map[string]any),
	}
}

// WithPortNumber sets the port the monitor serves on. Ports below 1000 are
// rejected and a random port is used instead.
func (m *Monitor[T]) WithPortNumber(portNumber int) *Monitor[T] {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSimulation registers the simulation to be monitored.
func (m *Monitor[T]) RegisterSimulation(s *sim.Simulation[T]) {
	m.sim = s
}

// RegisterEntity registers a named object, typically a queueing primitive,
// whose state can be inspected through the entity endpoints.
func (m *Monitor[T]) RegisterEntity(name string, entity any) {
	m.entityLock.Lock()
	defer m.entityLock.Unlock()

	if _, ok := m.entities[name]; ok {
		panic("entity " + name + " already registered")
	}

	m.entities[name] = entity
}

// CreateProgressBar creates a new progress bar shown on the monitor page.
func (m *Monitor[T]) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        sim.GetIDGenerator().Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a progress bar from the monitor page.
func (m *Monitor[T]) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// StartServer starts the monitor as a web server. The port can also be set
// through the DESIM_MONITOR_PORT environment variable, read from a .env file
// if present. Setting DESIM_MONITOR_OPEN=1 opens the page in a browser.
func (m *Monitor[T]) StartServer() {
	_ = godotenv.Load()

	if m.portNumber == 0 {
		if port, err := strconv.Atoi(
			os.Getenv("DESIM_MONITOR_PORT")); err == nil {
			m.WithPortNumber(port)
		}
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/pause", m.pauseSimulation)
	r.HandleFunc("/api/continue", m.continueSimulation)
	r.HandleFunc("/api/run", m.run)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/list_entities", m.listEntities)
	r.HandleFunc("/api/entity/{name}", m.entityDetails)
	r.HandleFunc("/api/resources", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	if os.Getenv("DESIM_MONITOR_OPEN") == "1" {
		_ = browser.OpenURL(url)
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor[T]) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%v}", m.sim.Now())
}

func (m *Monitor[T]) pauseSimulation(w http.ResponseWriter, _ *http.Request) {
	m.sim.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor[T]) continueSimulation(
	w http.ResponseWriter,
	_ *http.Request,
) {
	m.sim.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor[T]) run(_ http.ResponseWriter, _ *http.Request) {
	go m.sim.Run()
}

func (m *Monitor[T]) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bytes, err := json.Marshal(m.progressBars)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor[T]) listEntities(w http.ResponseWriter, _ *http.Request) {
	m.entityLock.Lock()
	defer m.entityLock.Unlock()

	names := make([]string, 0, len(m.entities))
	for name := range m.entities {
		names = append(names, name)
	}

	bytes, err := json.Marshal(names)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor[T]) entityDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	m.entityLock.Lock()
	entity, ok := m.entities[name]
	m.entityLock.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Entity not found"))
		dieOnErr(err)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(entity)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor[T]) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor[T]) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
