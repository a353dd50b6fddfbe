package game

import "math"

// HasLineOfSight reports whether the floor-level segment from (ax,az) to
// (bx,bz) clears every wall block. Platforms never block sight.
func (a *Arena) HasLineOfSight(ax, az, bx, bz float64) bool {
	for _, w := range a.walls {
		if segmentHitsRect(ax, az, bx, bz, w.MinX, w.MinZ, w.MaxX, w.MaxZ) {
			return false
		}
	}
	return true
}

// FirstWallHit returns the nearest point where the segment from a to b
// enters a wall block, measured along the floor plane.
func (a *Arena) FirstWallHit(from, to Vec3) (Vec3, bool) {
	best, found := 2.0, false
	for _, w := range a.walls {
		if t, ok := segmentRectEntry(from.X, from.Z, to.X, to.Z, w.MinX, w.MinZ, w.MaxX, w.MaxZ); ok && t < best {
			best, found = t, true
		}
	}
	if !found {
		return Vec3{}, false
	}
	return from.Add(to.Sub(from).Scale(best)), true
}

// segmentRectEntry returns the first parameter t in [0,1] at which the
// segment (ox,oz)->(ex,ez) enters the rectangle. The bool is false on a miss.
func segmentRectEntry(ox, oz, ex, ez, minX, minZ, maxX, maxZ float64) (float64, bool) {
	tMin, tMax := 0.0, 1.0
	slabs := [2][4]float64{
		{ox, ex - ox, minX, maxX},
		{oz, ez - oz, minZ, maxZ},
	}
	for _, s := range slabs {
		o, d, lo, hi := s[0], s[1], s[2], s[3]
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1, t2 := (lo-o)/d, (hi-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	if tMax < 0 || tMin > 1 {
		return 0, false
	}
	return tMin, true
}

func segmentHitsRect(ox, oz, ex, ez, minX, minZ, maxX, maxZ float64) bool {
	_, hit := segmentRectEntry(ox, oz, ex, ez, minX, minZ, maxX, maxZ)
	return hit
}
