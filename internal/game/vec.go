package game

import "math"

// Vec3 is a world-space position or direction. Y is up; the arena floor is
// the XZ plane with X growing east and Z growing south.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) LenSq() float64     { return v.Dot(v) }
func (v Vec3) Len() float64       { return math.Sqrt(v.LenSq()) }

// DistSq returns the squared distance between two points.
func (v Vec3) DistSq(o Vec3) float64 { return v.Sub(o).LenSq() }

// Dist returns the distance between two points.
func (v Vec3) Dist(o Vec3) float64 { return math.Sqrt(v.DistSq(o)) }

// Normalize returns the unit vector, or the zero vector for zero length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// AngleTo returns the angle in radians between two vectors.
func (v Vec3) AngleTo(o Vec3) float64 {
	d := v.Len() * o.Len()
	if d == 0 {
		return math.Pi / 2
	}
	c := v.Dot(o) / d
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// normalizeAngle wraps a into (-π, π].
func normalizeAngle(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
