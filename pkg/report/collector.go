// Package report accumulates diagnostics over a run and renders them as the
// combined failure message or as structured output.
package report

import (
	"slices"
	"sync"

	"github.com/specvital/focusguard/pkg/domain"
)

// Collector is an append-only, ordered set of diagnostics scoped to one run.
// It is safe for concurrent use; order is the order of Add calls.
type Collector struct {
	mu    sync.Mutex
	diags []domain.Diagnostic
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends diags in order.
func (c *Collector) Add(diags ...domain.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, diags...)
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []domain.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.diags)
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diags)
}

// Message renders the combined message for everything collected so far.
func (c *Collector) Message() string {
	return Message(c.Diagnostics())
}

// Err returns nil when nothing was collected and a *FailureError otherwise.
func (c *Collector) Err() error {
	diags := c.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	return &FailureError{Message: Message(diags), Raw: diags}
}

// Drain returns the collected diagnostics and empties the collector.
func (c *Collector) Drain() []domain.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	diags := c.diags
	c.diags = nil
	return diags
}

// Reset discards every collected diagnostic.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = nil
}
