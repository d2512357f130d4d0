package game

import "math"

// CollisionKind classifies what a point or ray ran into.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionWall
	CollisionTrail
	CollisionAgent
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionNone:
		return "none"
	case CollisionWall:
		return "wall"
	case CollisionTrail:
		return "trail"
	case CollisionAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// CollisionResult reports the outcome of a point collision test.
type CollisionResult struct {
	Collided bool
	Kind     CollisionKind
	OtherID  int // trail owner or hit agent; NoWinner-style -1 when n/a
}

// RaycastResult reports the nearest obstruction along a ray.
type RaycastResult struct {
	Distance float64
	Kind     CollisionKind // CollisionNone when nothing within the requested range
	OtherID  int           // owner of a trail/agent hit, -1 otherwise
}

// Self-trail exclusion windows. An agent cannot collide with the wall it is
// presently emitting, so point tests skip its most recent segments (the live
// head counts as one). Raycasts are forward-looking rather than lethal and
// skip one more.
const (
	selfTrailSkipPoint = 2
	selfTrailSkipRay   = 3
)

// CollisionEngine answers stateless queries against a snapshot of all agents.
// It holds only tuning; every query takes the agent list explicitly.
type CollisionEngine struct {
	tun *Tuning
}

// NewCollisionEngine creates a collision engine over the given tuning.
func NewCollisionEngine(tun *Tuning) *CollisionEngine {
	return &CollisionEngine{tun: tun}
}

// CheckCollision tests a candidate position for the agent selfID against the
// world. Checks run in order wall, trail, agent: walls are the cheapest test
// and the most urgent hazard, and the first match wins.
//
// Trail rules: a trail participates only once its owner has made a first turn
// (TrailActive: spawn lanes are safe); a dead agent's trail remains a live
// hazard; self-trail tests skip the most recent segments per
// selfTrailSkipPoint; other agents' trails are tested in full.
func (ce *CollisionEngine) CheckCollision(point Vec2, selfID int, agents []*AgentState) CollisionResult {
	if !inBounds(point, ce.tun.ArenaHalf, ce.tun.AgentRadius) {
		return CollisionResult{Collided: true, Kind: CollisionWall, OtherID: -1}
	}

	halfWidth := ce.tun.TrailWidth/2 + ce.tun.AgentRadius
	for _, a := range agents {
		if !a.TrailActive {
			continue
		}
		segs := a.Trail
		if a.ID == selfID {
			if len(segs) <= selfTrailSkipPoint {
				continue
			}
			segs = segs[:len(segs)-selfTrailSkipPoint]
		}
		for _, seg := range segs {
			if seg.contains(point, halfWidth) {
				return CollisionResult{Collided: true, Kind: CollisionTrail, OtherID: a.ID}
			}
		}
	}

	hitDistSq := (2 * ce.tun.AgentRadius) * (2 * ce.tun.AgentRadius)
	for _, a := range agents {
		if a.ID == selfID || !a.IsAlive {
			continue
		}
		if point.DistSq(a.Position) <= hitDistSq {
			return CollisionResult{Collided: true, Kind: CollisionAgent, OtherID: a.ID}
		}
	}

	return CollisionResult{Kind: CollisionNone, OtherID: -1}
}

// Raycast marches a sample point outward from origin along dir in fixed steps,
// testing trail and agent hits, while computing the exact analytic distance to
// the nearest wall along the ray. The reported distance is the nearest of the
// march hit and the wall, clamped to maxDist. This is the decision policy's
// only sensing mechanism.
//
// Degenerate inputs (non-positive range, near-zero direction) return a
// definite zero/no-hit result rather than NaN.
func (ce *CollisionEngine) Raycast(origin Vec2, dir Vec2, maxDist float64, agents []*AgentState, selfID int) RaycastResult {
	if maxDist <= 0 {
		return RaycastResult{Distance: 0, Kind: CollisionNone, OtherID: -1}
	}
	if math.Abs(dir.X) < 1e-9 && math.Abs(dir.Z) < 1e-9 {
		return RaycastResult{Distance: 0, Kind: CollisionNone, OtherID: -1}
	}

	wallDist := ce.analyticWallDistance(origin, dir)

	halfWidth := ce.tun.TrailWidth/2 + ce.tun.AgentRadius
	hitDistSq := (2 * ce.tun.AgentRadius) * (2 * ce.tun.AgentRadius)
	limit := math.Min(maxDist, wallDist)

	for t := ce.tun.RaycastStep; t <= limit; t += ce.tun.RaycastStep {
		sample := origin.Add(dir.Scale(t))

		for _, a := range agents {
			if !a.TrailActive {
				continue
			}
			segs := a.Trail
			if a.ID == selfID {
				if len(segs) <= selfTrailSkipRay {
					continue
				}
				segs = segs[:len(segs)-selfTrailSkipRay]
			}
			for _, seg := range segs {
				if seg.contains(sample, halfWidth) {
					return RaycastResult{Distance: t, Kind: CollisionTrail, OtherID: a.ID}
				}
			}
		}

		for _, a := range agents {
			if a.ID == selfID || !a.IsAlive {
				continue
			}
			if sample.DistSq(a.Position) <= hitDistSq {
				return RaycastResult{Distance: t, Kind: CollisionAgent, OtherID: a.ID}
			}
		}
	}

	if wallDist <= maxDist {
		return RaycastResult{Distance: wallDist, Kind: CollisionWall, OtherID: -1}
	}
	return RaycastResult{Distance: maxDist, Kind: CollisionNone, OtherID: -1}
}

// analyticWallDistance returns the exact distance from origin to the inset
// arena boundary along dir. Axes with a near-zero directional component are
// skipped, guarding against dividing a gap by ~0.
func (ce *CollisionEngine) analyticWallDistance(origin Vec2, dir Vec2) float64 {
	lim := ce.tun.ArenaHalf - ce.tun.AgentRadius
	best := math.MaxFloat64

	if math.Abs(dir.X) > 1e-9 {
		gap := lim - origin.X
		if dir.X < 0 {
			gap = -lim - origin.X
		}
		if d := gap / dir.X; d >= 0 && d < best {
			best = d
		}
	}
	if math.Abs(dir.Z) > 1e-9 {
		gap := lim - origin.Z
		if dir.Z < 0 {
			gap = -lim - origin.Z
		}
		if d := gap / dir.Z; d >= 0 && d < best {
			best = d
		}
	}
	return best
}
