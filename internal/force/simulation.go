package force

import "math"

// Default simulation tuning. These track the conventional force-simulation
// defaults: alpha cools from 1 toward alphaMin over roughly 300 steps, and
// velocities lose 60% of their magnitude each step.
const (
	defaultAlphaMin      = 0.001
	defaultVelocityDecay = 0.6 // multiplier applied to velocity each step
)

// A Force perturbs node positions or velocities on each simulation step.
// alpha is the simulation's current energy in [0,1].
type Force interface {
	Initialize(nodes []*Node)
	Apply(alpha float64)
}

// Simulation advances a set of nodes under a list of forces. It performs no
// scheduling of its own: the caller invokes Step once per frame for as long
// as Running reports true.
type Simulation struct {
	nodes  []*Node
	forces []Force

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64
}

// NewSimulation creates a simulation over nodes, assigning initial spiral
// positions to any node still at the origin.
func NewSimulation(nodes []*Node) *Simulation {
	placeInitial(nodes)
	return &Simulation{
		nodes:         nodes,
		alpha:         1,
		alphaMin:      defaultAlphaMin,
		alphaDecay:    1 - math.Pow(defaultAlphaMin, 1.0/300),
		alphaTarget:   0,
		velocityDecay: defaultVelocityDecay,
	}
}

// AddForce registers a force and initializes it against the node set.
func (s *Simulation) AddForce(f Force) {
	f.Initialize(s.nodes)
	s.forces = append(s.forces, f)
}

// Nodes returns the simulated node set.
func (s *Simulation) Nodes() []*Node { return s.nodes }

// Alpha returns the current energy.
func (s *Simulation) Alpha() float64 { return s.alpha }

// AlphaTarget returns the energy the simulation decays toward.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// SetAlpha overrides the current energy, e.g. to reheat after a resize.
func (s *Simulation) SetAlpha(a float64) { s.alpha = a }

// SetAlphaTarget raises or lowers the steady-state energy. A non-zero
// target keeps the simulation live during interaction.
func (s *Simulation) SetAlphaTarget(t float64) { s.alphaTarget = t }

// Running reports whether the simulation still has energy to dissipate.
// With an elevated alpha target it never settles.
func (s *Simulation) Running() bool {
	return s.alpha >= s.alphaMin || s.alphaTarget > 0
}

// Step advances the simulation by one tick: decay alpha toward the target,
// apply every force, then integrate velocities into positions. Pinned nodes
// snap to their fixed coordinates and carry no velocity.
func (s *Simulation) Step() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, f := range s.forces {
		f.Apply(s.alpha)
	}

	for _, n := range s.nodes {
		if n.FX != nil {
			n.X = *n.FX
			n.VX = 0
		} else {
			n.VX *= s.velocityDecay
			n.X += n.VX
		}
		if n.FY != nil {
			n.Y = *n.FY
			n.VY = 0
		} else {
			n.VY *= s.velocityDecay
			n.Y += n.VY
		}
	}
}

// Find returns the node closest to (x, y) within radius, or nil if none is
// in range. Used for pointer hit testing.
func (s *Simulation) Find(x, y, radius float64) *Node {
	r2 := radius * radius
	var closest *Node
	for _, n := range s.nodes {
		dx := x - n.X
		dy := y - n.Y
		d2 := dx*dx + dy*dy
		if d2 < r2 {
			closest = n
			r2 = d2
		}
	}
	return closest
}
