// Package monitoring turns a running replay into a server, so that the
// hierarchy's counters can be watched while a long trace plays out.
package monitoring

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sarchlab/cachesim/hierarchy"
)

// A Monitor serves the hierarchy's running counters over HTTP, both as JSON
// and in the Prometheus exposition format.
type Monitor struct {
	hierarchy  *hierarchy.Hierarchy
	registry   *prometheus.Registry
	listener   *PromListener
	portNumber int
}

// NewMonitor creates a monitor for the given hierarchy's counters.
func NewMonitor() *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
	}
	m.listener = NewPromListener(m.registry)

	return m
}

// WithPortNumber sets the port the monitoring server listens on. Port 0 picks
// a random free port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	m.portNumber = portNumber
	return m
}

// RegisterHierarchy registers the hierarchy whose counters are served.
func (m *Monitor) RegisterHierarchy(h *hierarchy.Hierarchy) {
	m.hierarchy = h
}

// StatsListener returns the listener the hierarchy must be built with for the
// Prometheus counters to move.
func (m *Monitor) StatsListener() hierarchy.StatsListener {
	return m.listener
}

// StartServer starts the monitoring server in the background and prints the
// address it listens on.
func (m *Monitor) StartServer() error {
	r := mux.NewRouter()
	r.HandleFunc("/api/stats", m.serveStats)
	r.Handle("/metrics", promhttp.HandlerFor(
		m.registry, promhttp.HandlerOpts{}))

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", m.portNumber))
	if err != nil {
		return fmt.Errorf("starting monitoring server: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Monitoring server listening on http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		if err := http.Serve(listener, r); err != nil {
			fmt.Fprintf(os.Stderr, "monitoring server stopped: %s\n", err)
		}
	}()

	return nil
}

type statsResponse struct {
	L1I hierarchy.Stats `json:"l1i"`
	L1D hierarchy.Stats `json:"l1d"`
	L2  hierarchy.Stats `json:"l2"`
}

func (m *Monitor) serveStats(w http.ResponseWriter, _ *http.Request) {
	rsp := statsResponse{
		L1I: m.hierarchy.L1IStats(),
		L1D: m.hierarchy.L1DStats(),
		L2:  m.hierarchy.L2Stats(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
