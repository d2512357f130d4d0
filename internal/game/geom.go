package game

import "math"

// Vec2 is a point or direction on the arena floor. The vertical axis is Z
// (depth), matching the convention that angle 0 points toward -Z.
type Vec2 struct {
	X float64
	Z float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Z + o.Z}
}

// Scale returns v scaled by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Z * f}
}

// DistSq returns the squared distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return dx*dx + dz*dz
}

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Sqrt(v.DistSq(o))
}

// Direction is the coarse cardinal heading used for AI reasoning and trail
// bookkeeping. The continuous angle and the direction are kept as a pair:
// outside a turn they agree exactly; during a turn the direction has already
// snapped to the destination while the angle is still interpolating.
type Direction int

const (
	North Direction = iota // angle 0, toward -Z
	East                   // angle pi/2, toward +X
	South                  // angle pi, toward +Z
	West                   // angle 3*pi/2, toward -X
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Angle returns the continuous angle this cardinal corresponds to, in [0, 2pi).
func (d Direction) Angle() float64 {
	return float64(d) * math.Pi / 2
}

// Vec returns the unit vector for this cardinal.
func (d Direction) Vec() Vec2 {
	switch d {
	case North:
		return Vec2{0, -1}
	case East:
		return Vec2{1, 0}
	case South:
		return Vec2{0, 1}
	default:
		return Vec2{-1, 0}
	}
}

// Left returns the cardinal 90° counter-clockwise of d.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the cardinal 90° clockwise of d.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// cardinals lists all four directions, used for escape-path counting.
var cardinals = [4]Direction{North, East, South, West}

// directionForAngle returns the cardinal nearest to a continuous angle.
func directionForAngle(a float64) Direction {
	a = normalizeAngle(a)
	return Direction(int(math.Round(a/(math.Pi/2))) % 4)
}

// normalizeAngle wraps an angle to [0, 2pi).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// angleDelta returns the shortest signed rotation from a to b, in [-pi, pi].
func angleDelta(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	}
	if d < -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// displacement converts a heading and travel distance into a position delta.
// Angle 0 moves toward -Z; angles increase clockwise.
func displacement(angle, dist float64) Vec2 {
	return Vec2{math.Sin(angle) * dist, -math.Cos(angle) * dist}
}

// travelDistance returns how far an agent moves in dtMs milliseconds.
func travelDistance(dtMs, speedMul, baseSpeed float64) float64 {
	return baseSpeed * speedMul * dtMs / 1000.0
}

// inBounds reports whether p lies strictly inside the arena square inset by
// margin. A point at or beyond the inset boundary is a wall collision.
func inBounds(p Vec2, half, margin float64) bool {
	lim := half - margin
	return p.X > -lim && p.X < lim && p.Z > -lim && p.Z < lim
}

// wallGap returns the signed distance from p to the arena boundary in the
// given cardinal direction. Negative means p is already past that wall.
func wallGap(p Vec2, d Direction, half float64) float64 {
	switch d {
	case North:
		return p.Z + half
	case East:
		return half - p.X
	case South:
		return half - p.Z
	default:
		return p.X + half
	}
}
