// Package force implements an iterative force-directed layout simulation.
// The simulation owns node positions and velocities; callers step it once
// per animation frame and read the updated coordinates back out. Nodes can
// be pinned to a fixed position (FX/FY), which overrides anything the
// forces compute until the pin is released.
package force

import "math"

// Node is a single simulated body. X/Y are simulation-owned coordinates,
// VX/VY the current velocity. FX/FY, when non-nil, pin the node in place.
type Node struct {
	ID string

	X, Y   float64
	VX, VY float64
	FX, FY *float64

	index int
}

// Pin fixes the node at the given position. While pinned the node does not
// drift under repulsion or centering.
func (n *Node) Pin(x, y float64) {
	fx, fy := x, y
	n.FX, n.FY = &fx, &fy
}

// Unpin releases a pinned node so it resumes free simulation on the next
// step.
func (n *Node) Unpin() {
	n.FX, n.FY = nil, nil
}

// Pinned reports whether the node currently has a fixed position.
func (n *Node) Pinned() bool {
	return n.FX != nil || n.FY != nil
}

// Link connects two nodes by id. Endpoints are resolved against the
// simulation's node set when the link force initializes.
type Link struct {
	SourceID string
	TargetID string

	source *Node
	target *Node
}

// Source returns the resolved source node, nil before initialization.
func (l *Link) Source() *Node { return l.source }

// Target returns the resolved target node, nil before initialization.
func (l *Link) Target() *Node { return l.target }

// initialRadius and initialAngle place unpositioned nodes on a phyllotaxis
// spiral so the first steps do not divide by zero on coincident points.
const (
	initialRadius = 10.0
	initialAngle  = math.Pi * (3 - 2.23606797749979) // golden angle
)

func placeInitial(nodes []*Node) {
	for i, n := range nodes {
		n.index = i
		if n.X != 0 || n.Y != 0 {
			continue
		}
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		n.X = radius * math.Cos(angle)
		n.Y = radius * math.Sin(angle)
	}
}

// jiggle returns a small deterministic non-zero offset used when two bodies
// occupy the exact same point. The half-step keeps it non-zero for every
// index, so distance checks never divide by zero.
func jiggle(i int) float64 {
	return (float64(i%7) - 3.5) * 1e-6
}
