package game

import "math"

// TrailSegment is one committed straight run of light wall. Segments are
// immutable once committed; only the head segment of an agent's trail (the
// last element) has its End advanced while the agent rides it. Segments
// accumulate for the whole round. A full restart is the only thing that
// clears them, and a dead agent's wall stays lethal.
type TrailSegment struct {
	Start     Vec2
	End       Vec2
	Direction Direction
}

// contains reports whether p lies within the segment's bounding rectangle
// expanded by halfWidth on every side. Trail segments run along cardinal
// axes, so the expanded AABB is the collision shape.
func (s TrailSegment) contains(p Vec2, halfWidth float64) bool {
	minX := math.Min(s.Start.X, s.End.X) - halfWidth
	maxX := math.Max(s.Start.X, s.End.X) + halfWidth
	minZ := math.Min(s.Start.Z, s.End.Z) - halfWidth
	maxZ := math.Max(s.Start.Z, s.End.Z) + halfWidth
	return p.X >= minX && p.X <= maxX && p.Z >= minZ && p.Z <= maxZ
}

// distanceTo returns the distance from p to the nearest point on the segment.
// A zero-length segment degrades to point distance rather than NaN.
func (s TrailSegment) distanceTo(p Vec2) float64 {
	dx := s.End.X - s.Start.X
	dz := s.End.Z - s.Start.Z
	lenSq := dx*dx + dz*dz
	if lenSq < 1e-12 {
		return p.Dist(s.Start)
	}
	t := ((p.X-s.Start.X)*dx + (p.Z-s.Start.Z)*dz) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := Vec2{s.Start.X + t*dx, s.Start.Z + t*dz}
	return p.Dist(closest)
}
