package tracer

import (
	"iter"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// HistoryItem is one recorded segment of a trace path
type HistoryItem struct {
	Ray   core.Ray
	Hit   *core.HitRecord // nil when the ray escaped the scene
	Color core.Color
	Step  int
}

// Miss reports whether the segment hit nothing
func (h HistoryItem) Miss() bool {
	return h.Hit == nil
}

// TraceRecord carries the mutable state of a single trace path: recursion
// counts, the penetration stack and, optionally, the path history. A record
// is created per camera ray and must not be shared between goroutines; only
// its Counters are.
type TraceRecord struct {
	Background core.Color
	Counters   *Counters

	NumReflections      int
	NumInnerReflections int
	NumRefractions      int

	RecordHistory     bool
	Step              int
	StartDistance     float64 // Path length travelled before this record was forked
	MissSegmentLength float64 // Nominal length of a miss when measuring history

	History  []HistoryItem
	Branches []*TraceRecord

	stack []core.HitRecord // Surfaces entered but not yet exited, top is last
}

// NewTraceRecord creates the record for a camera ray
func NewTraceRecord(background core.Color, counters *Counters, recordHistory bool) *TraceRecord {
	if counters == nil {
		counters = &Counters{}
	}
	return &TraceRecord{
		Background:    background,
		Counters:      counters,
		RecordHistory: recordHistory,
	}
}

// Push records that the path entered the surface of hit
func (r *TraceRecord) Push(hit core.HitRecord) {
	r.stack = append(r.stack, hit)
}

// Pop removes and returns the most recently entered surface
func (r *TraceRecord) Pop() (core.HitRecord, bool) {
	if len(r.stack) == 0 {
		return core.HitRecord{}, false
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return top, true
}

// Peek returns the surface the path is currently traversing
func (r *TraceRecord) Peek() (core.HitRecord, bool) {
	if len(r.stack) == 0 {
		return core.HitRecord{}, false
	}
	return r.stack[len(r.stack)-1], true
}

// Depth returns the number of nested volumes the path is inside
func (r *TraceRecord) Depth() int {
	return len(r.stack)
}

// Stack returns a copy of the penetration stack, bottom first
func (r *TraceRecord) Stack() []core.HitRecord {
	return append([]core.HitRecord(nil), r.stack...)
}

// AddHistoryItem appends a path segment when history recording is enabled.
// A nil hit marks a miss.
func (r *TraceRecord) AddHistoryItem(ray core.Ray, hit *core.HitRecord, color core.Color) {
	if !r.RecordHistory {
		return
	}
	if hit != nil {
		h := *hit
		hit = &h
	}
	r.History = append(r.History, HistoryItem{Ray: ray, Hit: hit, Color: color, Step: r.Step})
	r.Step++
}

// HistoryDistance sums the lengths of the recorded segments. Misses count
// as missLength.
func (r *TraceRecord) HistoryDistance(missLength float64) float64 {
	total := 0.0
	for _, item := range r.History {
		if item.Hit != nil {
			total += item.Hit.Distance
		} else {
			total += missLength
		}
	}
	return total
}

// Fork creates an independent continuation of this path. The child shares
// the Counters but gets its own copy of the recursion counts and the
// penetration stack. It is appended to Branches.
func (r *TraceRecord) Fork() *TraceRecord {
	child := &TraceRecord{
		Background:          r.Background,
		Counters:            r.Counters,
		NumReflections:      r.NumReflections,
		NumInnerReflections: r.NumInnerReflections,
		NumRefractions:      r.NumRefractions,
		RecordHistory:       r.RecordHistory,
		Step:                r.Step + 1,
		StartDistance:       r.HistoryDistance(r.MissSegmentLength),
		MissSegmentLength:   r.MissSegmentLength,
		stack:               r.Stack(),
	}
	r.Branches = append(r.Branches, child)
	return child
}

// FlattenBranches yields this record followed by all of its descendants,
// depth first
func (r *TraceRecord) FlattenBranches() iter.Seq[*TraceRecord] {
	return func(yield func(*TraceRecord) bool) {
		r.walk(yield)
	}
}

func (r *TraceRecord) walk(yield func(*TraceRecord) bool) bool {
	if !yield(r) {
		return false
	}
	for _, branch := range r.Branches {
		if !branch.walk(yield) {
			return false
		}
	}
	return true
}
