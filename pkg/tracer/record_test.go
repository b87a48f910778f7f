package tracer

import (
	"math"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

func TestTraceRecord_StackIsLIFO(t *testing.T) {
	a := &mockSurface{name: "A"}
	b := &mockSurface{name: "B"}
	record := NewTraceRecord(core.Black, nil, false)

	if _, ok := record.Peek(); ok {
		t.Fatal("Expected empty stack")
	}

	record.Push(core.HitRecord{Surface: a})
	record.Push(core.HitRecord{Surface: b})
	if record.Depth() != 2 {
		t.Fatalf("Expected depth 2, got %d", record.Depth())
	}

	for _, expected := range []*mockSurface{b, a} {
		top, ok := record.Pop()
		if !ok || top.Surface != expected {
			t.Errorf("Expected to pop %s, got %v", expected.name, top.Surface)
		}
	}
	if _, ok := record.Pop(); ok {
		t.Error("Pop on empty stack should fail")
	}
}

func TestTraceRecord_AddHistoryItem(t *testing.T) {
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	hit := core.HitRecord{Distance: 2}

	disabled := NewTraceRecord(core.Black, nil, false)
	disabled.AddHistoryItem(ray, &hit, core.RGB(1, 0, 0))
	if len(disabled.History) != 0 || disabled.Step != 0 {
		t.Error("History should not be recorded when disabled")
	}

	record := NewTraceRecord(core.Black, nil, true)
	record.AddHistoryItem(ray, &hit, core.RGB(1, 0, 0))
	record.AddHistoryItem(ray, nil, core.Black)

	if len(record.History) != 2 {
		t.Fatalf("Expected 2 history items, got %d", len(record.History))
	}
	if record.History[0].Miss() || !record.History[1].Miss() {
		t.Error("Expected a hit followed by a miss")
	}
	if record.History[0].Step != 0 || record.History[1].Step != 1 || record.Step != 2 {
		t.Errorf("Unexpected steps: %d, %d, next %d", record.History[0].Step, record.History[1].Step, record.Step)
	}

	// The record keeps its own copy of the hit
	hit.Distance = 99
	if record.History[0].Hit.Distance != 2 {
		t.Error("History item should not alias the caller's hit")
	}
}

func TestTraceRecord_HistoryDistance(t *testing.T) {
	record := NewTraceRecord(core.Black, nil, true)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	record.AddHistoryItem(ray, &core.HitRecord{Distance: 1.5}, core.Black)
	record.AddHistoryItem(ray, &core.HitRecord{Distance: 2.5}, core.Black)
	record.AddHistoryItem(ray, nil, core.Black)

	tests := []struct {
		missLength float64
		expected   float64
	}{
		{0, 4},
		{10, 14},
	}
	for _, tt := range tests {
		if got := record.HistoryDistance(tt.missLength); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("HistoryDistance(%f): expected %f, got %f", tt.missLength, tt.expected, got)
		}
	}
}

func TestTraceRecord_Fork(t *testing.T) {
	a := &mockSurface{name: "A"}
	b := &mockSurface{name: "B"}
	background := core.RGB(0.1, 0.2, 0.3)
	parent := NewTraceRecord(background, &Counters{}, true)
	parent.MissSegmentLength = 3
	parent.NumReflections = 2
	parent.NumInnerReflections = 1
	parent.NumRefractions = 4
	parent.Push(core.HitRecord{Surface: a})
	parent.Push(core.HitRecord{Surface: b})
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	parent.AddHistoryItem(ray, &core.HitRecord{Distance: 2}, core.Black)
	parent.AddHistoryItem(ray, nil, core.Black)

	child := parent.Fork()

	if child.Counters != parent.Counters {
		t.Error("Fork must share the counters")
	}
	if child.Background != background || !child.RecordHistory {
		t.Error("Fork must keep the background and history setting")
	}
	if child.NumReflections != 2 || child.NumInnerReflections != 1 || child.NumRefractions != 4 {
		t.Errorf("Fork must copy recursion counts, got %d/%d/%d",
			child.NumReflections, child.NumInnerReflections, child.NumRefractions)
	}
	if child.Step != parent.Step+1 {
		t.Errorf("Expected step %d, got %d", parent.Step+1, child.Step)
	}
	if child.StartDistance != 5 {
		t.Errorf("Expected start distance 5, got %f", child.StartDistance)
	}
	if len(parent.Branches) != 1 || parent.Branches[0] != child {
		t.Error("Fork must be appended to the parent's branches")
	}
	if len(child.History) != 0 {
		t.Error("Fork starts with an empty history")
	}

	stack := child.Stack()
	if len(stack) != 2 || stack[0].Surface != a || stack[1].Surface != b {
		t.Fatalf("Fork must preserve stack order, got %v", stack)
	}

	// Stacks and counts are independent after the fork
	child.Pop()
	child.NumRefractions++
	if parent.Depth() != 2 || parent.NumRefractions != 4 {
		t.Error("Mutating the fork changed the parent")
	}

	child.Counters.Raycasts.Add(3)
	if parent.Counters.Raycasts.Load() != 3 {
		t.Error("Counter updates through the fork must be visible to the parent")
	}
}

func TestTraceRecord_FlattenBranches(t *testing.T) {
	root := NewTraceRecord(core.Black, nil, false)
	first := root.Fork()
	firstChild := first.Fork()
	second := root.Fork()
	grandchild := firstChild.Fork()

	var got []*TraceRecord
	for r := range root.FlattenBranches() {
		got = append(got, r)
	}

	expected := []*TraceRecord{root, first, firstChild, grandchild, second}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d records, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Record %d out of pre-order", i)
		}
	}

	// Stops as soon as the consumer does
	count := 0
	for range root.FlattenBranches() {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("Expected early stop after 2 records, got %d", count)
	}
}
