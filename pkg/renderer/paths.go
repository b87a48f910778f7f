package renderer

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/tracer"
)

// DefaultMissSegmentLength is how long a ray that hits nothing is drawn
const DefaultMissSegmentLength = 10.0

// PathSegment is one traced ray of a diagnostic path. Segments of a branch
// are listed in the order they were recorded, which is after everything
// traced from their end point, and StartDistance/EndDistance accumulate in
// that same order rather than in travel order. Start and End are exact.
type PathSegment struct {
	Start         core.Vec3  `json:"start"`
	End           core.Vec3  `json:"end"`
	Color         core.Color `json:"color"`
	Step          int        `json:"step"`
	StartDistance float64    `json:"startDistance"` // Distance travelled along the path before this segment
	EndDistance   float64    `json:"endDistance"`
	Miss          bool       `json:"miss"`
}

// Path is every segment traced for one viewport sample, branches included
type Path struct {
	X        int           `json:"x"`
	Y        int           `json:"y"`
	Segments []PathSegment `json:"segments"`
}

// TracePaths traces a numX x numY grid of rays across the viewport with
// history recording and turns every branch into line segments. Misses are
// drawn missLength long.
func (r *Renderer) TracePaths(numX, numY int, missLength float64) ([]Path, tracer.CounterSnapshot) {
	counters := &tracer.Counters{}
	paths := make([]Path, 0, numX*numY)

	for y := 0; y < numY; y++ {
		for x := 0; x < numX; x++ {
			counters.InitialRays.Add(1)

			ray := r.camera.GetPixelRay(x, y, numX, numY)
			record := tracer.NewTraceRecord(r.scene.Background, counters, true)
			record.MissSegmentLength = missLength
			r.raytracer.Trace(ray, record)

			path := Path{X: x, Y: y}
			for branch := range record.FlattenBranches() {
				path.Segments = append(path.Segments, branchSegments(branch, missLength)...)
			}
			paths = append(paths, path)
		}
	}

	return paths, counters.Snapshot()
}

// branchSegments lays the history of one branch end to end, starting at the
// distance where the branch forked
func branchSegments(branch *tracer.TraceRecord, missLength float64) []PathSegment {
	segments := make([]PathSegment, 0, len(branch.History))
	start := branch.StartDistance

	for _, item := range branch.History {
		seg := PathSegment{
			Start:         item.Ray.Origin,
			Color:         item.Color,
			Step:          item.Step,
			StartDistance: start,
		}
		if item.Miss() {
			seg.End = item.Ray.At(missLength)
			seg.EndDistance = start + missLength
			seg.Miss = true
		} else {
			seg.End = item.Hit.Point
			seg.EndDistance = start + item.Hit.Distance
		}
		segments = append(segments, seg)
		start = seg.EndDistance
	}

	return segments
}
