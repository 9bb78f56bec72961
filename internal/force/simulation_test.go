package force

import (
	"math"
	"testing"
)

func TestStepDecaysAlphaTowardTarget(t *testing.T) {
	sim := NewSimulation([]*Node{{ID: "a"}})

	before := sim.Alpha()
	sim.Step()
	if sim.Alpha() >= before {
		t.Fatalf("alpha should decay toward zero target: before=%v after=%v", before, sim.Alpha())
	}

	sim.SetAlphaTarget(0.3)
	sim.SetAlpha(0.01)
	sim.Step()
	if sim.Alpha() <= 0.01 {
		t.Fatalf("alpha should rise toward elevated target, got %v", sim.Alpha())
	}
}

func TestSimulationSettles(t *testing.T) {
	sim := NewSimulation([]*Node{{ID: "a"}, {ID: "b"}})
	sim.AddForce(NewManyBodyForce(-30))

	for i := 0; i < 400 && sim.Running(); i++ {
		sim.Step()
	}
	if sim.Running() {
		t.Fatalf("simulation should settle below alphaMin within 400 steps, alpha=%v", sim.Alpha())
	}

	// An elevated target keeps it live indefinitely.
	sim.SetAlphaTarget(0.3)
	if !sim.Running() {
		t.Fatal("simulation with elevated alpha target must report running")
	}
}

func TestPinnedNodeDoesNotDrift(t *testing.T) {
	a := &Node{ID: "a"}
	b := &Node{ID: "b"}
	sim := NewSimulation([]*Node{a, b})
	sim.AddForce(NewManyBodyForce(-100))

	a.Pin(5, 7)
	for i := 0; i < 50; i++ {
		sim.Step()
	}
	if a.X != 5 || a.Y != 7 {
		t.Fatalf("pinned node moved to (%v, %v)", a.X, a.Y)
	}
	if a.VX != 0 || a.VY != 0 {
		t.Fatalf("pinned node carries velocity (%v, %v)", a.VX, a.VY)
	}

	a.Unpin()
	sim.SetAlpha(1)
	for i := 0; i < 50; i++ {
		sim.Step()
	}
	if a.X == 5 && a.Y == 7 {
		t.Fatal("released node should resume free simulation")
	}
}

func TestLinkForceApproachesTargetDistance(t *testing.T) {
	a := &Node{ID: "a"}
	b := &Node{ID: "b"}
	sim := NewSimulation([]*Node{a, b})
	sim.AddForce(NewLinkForce([]*Link{{SourceID: "a", TargetID: "b"}}, 20))

	for i := 0; i < 300; i++ {
		sim.Step()
	}

	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if math.Abs(dist-20) > 2 {
		t.Fatalf("linked nodes should settle near distance 20, got %v", dist)
	}
}

func TestLinkForceSkipsUnresolvedEndpoints(t *testing.T) {
	a := &Node{ID: "a"}
	f := NewLinkForce([]*Link{
		{SourceID: "a", TargetID: "ghost"},
		{SourceID: "ghost", TargetID: "a"},
	}, 10)
	f.Initialize([]*Node{a})

	if len(f.links) != 0 {
		t.Fatalf("unresolved links should be dropped, kept %d", len(f.links))
	}
	f.Apply(1) // must not panic with no links
}

func TestCenterForceRecentersCentroid(t *testing.T) {
	nodes := []*Node{
		{ID: "a", X: 100, Y: 100},
		{ID: "b", X: 120, Y: 140},
	}
	sim := NewSimulation(nodes)
	center := NewCenterForce(40, 12)
	sim.AddForce(center)

	sim.Step()

	cx := (nodes[0].X + nodes[1].X) / 2
	cy := (nodes[0].Y + nodes[1].Y) / 2
	if math.Abs(cx-40) > 1e-9 || math.Abs(cy-12) > 1e-9 {
		t.Fatalf("centroid should sit at the center point, got (%v, %v)", cx, cy)
	}

	center.SetPosition(80, 24)
	sim.Step()
	cx = (nodes[0].X + nodes[1].X) / 2
	cy = (nodes[0].Y + nodes[1].Y) / 2
	if math.Abs(cx-80) > 1e-9 || math.Abs(cy-24) > 1e-9 {
		t.Fatalf("centroid should follow the repositioned center, got (%v, %v)", cx, cy)
	}
}

func TestCollideForceSeparatesOverlap(t *testing.T) {
	a := &Node{ID: "a", X: 10, Y: 10}
	b := &Node{ID: "b", X: 10.5, Y: 10}
	sim := NewSimulation([]*Node{a, b})
	sim.AddForce(NewCollideForce(3))

	for i := 0; i < 100; i++ {
		sim.Step()
	}

	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 5 {
		t.Fatalf("colliding nodes should separate to ~2r, got %v", dist)
	}
}

func TestFind(t *testing.T) {
	a := &Node{ID: "a", X: 0.1, Y: 0.1}
	b := &Node{ID: "b", X: 50, Y: 50}
	sim := NewSimulation([]*Node{a, b})

	if got := sim.Find(1, 1, 5); got != a {
		t.Fatalf("expected node a, got %v", got)
	}
	if got := sim.Find(49, 51, 5); got != b {
		t.Fatalf("expected node b, got %v", got)
	}
	if got := sim.Find(200, 200, 5); got != nil {
		t.Fatalf("expected no hit, got %v", got)
	}
}

func TestInitialPlacementAvoidsCoincidentPoints(t *testing.T) {
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = &Node{ID: string(rune('a' + i))}
	}
	NewSimulation(nodes)

	seen := make(map[[2]float64]bool)
	for _, n := range nodes {
		key := [2]float64{n.X, n.Y}
		if seen[key] {
			t.Fatalf("nodes placed at identical initial position %v", key)
		}
		seen[key] = true
	}
}

func TestCoincidentNodesStayFinite(t *testing.T) {
	// Every node at the same point, enough of them that each jiggle
	// residue class is exercised for both repulsion and collision.
	nodes := make([]*Node, 11)
	for i := range nodes {
		nodes[i] = &Node{ID: string(rune('a' + i)), X: 5, Y: 5}
	}
	sim := NewSimulation(nodes)
	sim.AddForce(NewManyBodyForce(-60))
	sim.AddForce(NewCollideForce(2))

	sim.Step()
	for _, n := range nodes {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsInf(n.X, 0) || math.IsInf(n.Y, 0) {
			t.Fatalf("node %s position not finite after step: (%v, %v)", n.ID, n.X, n.Y)
		}
	}

	// The jiggle must have pushed them off the shared point.
	moved := false
	for _, n := range nodes {
		if n.X != 5 || n.Y != 5 {
			moved = true
		}
	}
	if !moved {
		t.Fatal("coincident nodes never separated")
	}
}

func TestJiggleIsNeverZero(t *testing.T) {
	for i := 0; i < 32; i++ {
		if jiggle(i) == 0 {
			t.Fatalf("jiggle(%d) is zero", i)
		}
	}
}
