package force

import "math"

// LinkForce pulls linked nodes toward a target distance. Each step the
// spring displacement is split between the endpoints, biased toward the
// endpoint with fewer connections so hubs stay put.
type LinkForce struct {
	links    []*Link
	distance float64
	nodes    []*Node
	count    []int // degree per node index
	bias     []float64
}

// NewLinkForce creates a link force with the given target distance. Links
// whose endpoints do not resolve against the node set are skipped silently;
// callers are expected to validate edges at ingestion.
func NewLinkForce(links []*Link, distance float64) *LinkForce {
	return &LinkForce{links: links, distance: distance}
}

// Initialize resolves link endpoints by node id and precomputes degrees.
func (f *LinkForce) Initialize(nodes []*Node) {
	f.nodes = nodes
	byID := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	resolved := f.links[:0]
	for _, l := range f.links {
		l.source = byID[l.SourceID]
		l.target = byID[l.TargetID]
		if l.source != nil && l.target != nil {
			resolved = append(resolved, l)
		}
	}
	f.links = resolved

	f.count = make([]int, len(nodes))
	for _, l := range f.links {
		f.count[l.source.index]++
		f.count[l.target.index]++
	}
	f.bias = make([]float64, len(f.links))
	for i, l := range f.links {
		sc := float64(f.count[l.source.index])
		f.bias[i] = sc / (sc + float64(f.count[l.target.index]))
	}
}

// Apply relaxes every link toward the target distance.
func (f *LinkForce) Apply(alpha float64) {
	for i, l := range f.links {
		src, tgt := l.source, l.target

		dx := tgt.X + tgt.VX - src.X - src.VX
		dy := tgt.Y + tgt.VY - src.Y - src.VY
		if dx == 0 {
			dx = jiggle(i)
		}
		if dy == 0 {
			dy = jiggle(i + 1)
		}

		dist := math.Sqrt(dx*dx + dy*dy)
		strength := 1.0 / math.Min(float64(f.count[src.index]), float64(f.count[tgt.index]))
		k := (dist - f.distance) / dist * alpha * strength

		b := f.bias[i]
		tgt.VX -= dx * k * b
		tgt.VY -= dy * k * b
		src.VX += dx * k * (1 - b)
		src.VY += dy * k * (1 - b)
	}
}

// ManyBodyForce applies pairwise charge between all nodes. A negative
// strength repels, spreading the graph apart.
type ManyBodyForce struct {
	strength float64
	nodes    []*Node
}

// NewManyBodyForce creates a charge force. Use a negative strength for
// repulsion.
func NewManyBodyForce(strength float64) *ManyBodyForce {
	return &ManyBodyForce{strength: strength}
}

// Initialize records the node set.
func (f *ManyBodyForce) Initialize(nodes []*Node) { f.nodes = nodes }

// Apply accumulates inverse-square charge between every pair. O(n^2), which
// is fine at ontology-graph scale.
func (f *ManyBodyForce) Apply(alpha float64) {
	for i, a := range f.nodes {
		for j := i + 1; j < len(f.nodes); j++ {
			b := f.nodes[j]

			dx := b.X - a.X
			dy := b.Y - a.Y
			if dx == 0 {
				dx = jiggle(i)
			}
			if dy == 0 {
				dy = jiggle(j)
			}

			d2 := dx*dx + dy*dy
			w := f.strength * alpha / d2

			b.VX += dx * w
			b.VY += dy * w
			a.VX -= dx * w
			a.VY -= dy * w
		}
	}
}

// CenterForce translates the node set so its centroid sits at a fixed
// point. Repositionable so a viewport resize can re-center the layout.
type CenterForce struct {
	x, y  float64
	nodes []*Node
}

// NewCenterForce creates a centering force at (x, y).
func NewCenterForce(x, y float64) *CenterForce {
	return &CenterForce{x: x, y: y}
}

// SetPosition moves the center point.
func (f *CenterForce) SetPosition(x, y float64) {
	f.x = x
	f.y = y
}

// Position returns the current center point.
func (f *CenterForce) Position() (x, y float64) { return f.x, f.y }

// Initialize records the node set.
func (f *CenterForce) Initialize(nodes []*Node) { f.nodes = nodes }

// Apply shifts all positions by the centroid error. Operates on positions,
// not velocities, so the correction is immediate.
func (f *CenterForce) Apply(alpha float64) {
	if len(f.nodes) == 0 {
		return
	}
	var sx, sy float64
	for _, n := range f.nodes {
		sx += n.X
		sy += n.Y
	}
	sx = sx/float64(len(f.nodes)) - f.x
	sy = sy/float64(len(f.nodes)) - f.y
	for _, n := range f.nodes {
		n.X -= sx
		n.Y -= sy
	}
}

// CollideForce keeps nodes from overlapping by pushing apart any pair
// closer than twice the node radius.
type CollideForce struct {
	radius float64
	nodes  []*Node
}

// NewCollideForce creates a collision force with a fixed per-node radius.
func NewCollideForce(radius float64) *CollideForce {
	return &CollideForce{radius: radius}
}

// Initialize records the node set.
func (f *CollideForce) Initialize(nodes []*Node) { f.nodes = nodes }

// Apply resolves pairwise overlap by splitting the separation between both
// velocities.
func (f *CollideForce) Apply(alpha float64) {
	minDist := f.radius * 2
	for i, a := range f.nodes {
		for j := i + 1; j < len(f.nodes); j++ {
			b := f.nodes[j]

			dx := b.X + b.VX - a.X - a.VX
			dy := b.Y + b.VY - a.Y - a.VY
			if dx == 0 {
				dx = jiggle(i)
			}
			if dy == 0 {
				dy = jiggle(j)
			}

			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= minDist {
				continue
			}

			k := (minDist - dist) / dist * 0.5
			b.VX += dx * k
			b.VY += dy * k
			a.VX -= dx * k
			a.VY -= dy * k
		}
	}
}
