package tracer

import "sync/atomic"

// Counters aggregates ray statistics for a whole render. A single Counters is
// shared by every TraceRecord of the render, forks included, and may be
// updated from several goroutines at once.
type Counters struct {
	Raycasts         atomic.Int64 // Forward nearest-hit queries
	Backtraces       atomic.Int64 // Backward resolution attempts
	InitialRays      atomic.Int64 // Camera rays
	Reflections      atomic.Int64 // Reflections from outside a surface
	InnerReflections atomic.Int64 // Reflections from inside a medium
	Refractions      atomic.Int64
	Overwhites       atomic.Int64 // Paths cut short by a saturated color
}

// CounterSnapshot is a point-in-time copy of Counters
type CounterSnapshot struct {
	Raycasts         int64 `json:"raycasts"`
	Backtraces       int64 `json:"backtraces"`
	InitialRays      int64 `json:"initialRays"`
	Reflections      int64 `json:"reflections"`
	InnerReflections int64 `json:"innerReflections"`
	Refractions      int64 `json:"refractions"`
	Overwhites       int64 `json:"overwhites"`
}

// Snapshot copies the current counter values
func (c *Counters) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		Raycasts:         c.Raycasts.Load(),
		Backtraces:       c.Backtraces.Load(),
		InitialRays:      c.InitialRays.Load(),
		Reflections:      c.Reflections.Load(),
		InnerReflections: c.InnerReflections.Load(),
		Refractions:      c.Refractions.Load(),
		Overwhites:       c.Overwhites.Load(),
	}
}

// TotalRaycasts counts forward and backward queries together
func (s CounterSnapshot) TotalRaycasts() int64 {
	return s.Raycasts + s.Backtraces
}

// TotalReflections counts outer and inner reflections together
func (s CounterSnapshot) TotalReflections() int64 {
	return s.Reflections + s.InnerReflections
}
