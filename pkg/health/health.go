// Package health tracks server readiness and answers the HTTP probe
// endpoints the deployment mounts next to the MCP transport.
package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// phase is the lifecycle position of the server.
type phase int32

const (
	phaseStarting phase = iota
	phaseReady
	phaseDraining
)

func (p phase) String() string {
	switch p {
	case phaseReady:
		return "ready"
	case phaseDraining:
		return "draining"
	default:
		return "starting"
	}
}

// Checker answers liveness and readiness probes from a single atomic phase.
// A fresh Checker reports starting until the lifecycle marks it ready; it is
// safe for concurrent use.
type Checker struct {
	phase atomic.Int32
}

// NewChecker creates a Checker in the starting phase.
func NewChecker() *Checker {
	return &Checker{}
}

// SetReady marks the server ready to serve.
func (c *Checker) SetReady() {
	c.phase.Store(int32(phaseReady))
}

// SetDraining marks the server as shutting down.
func (c *Checker) SetDraining() {
	c.phase.Store(int32(phaseDraining))
}

// IsReady reports whether the server should receive traffic.
func (c *Checker) IsReady() bool {
	return phase(c.phase.Load()) == phaseReady
}

// State returns the current phase name.
func (c *Checker) State() string {
	return phase(c.phase.Load()).String()
}

// LivenessHandler answers 200 in every phase; being able to respond at all is
// the check. Mount at /healthz.
func (*Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, "ok")
	}
}

// ReadinessHandler answers 200 only while ready and 503 while starting or
// draining, so a draining server leaves rotation before the listener closes.
// Mount at /readyz.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		code := http.StatusServiceUnavailable
		if c.IsReady() {
			code = http.StatusOK
		}
		respond(w, code, c.State())
	}
}

func respond(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
