package game

import "math"

const (
	shotGravity      = 25.0 // world units/s²
	shotMaxAge       = 2.0  // seconds
	shotSubsteps     = 3
	shotGroundProbe  = 0.2 // shots test ground this far below their centre
	shotWallRadius   = 0.1
	shotWallPaintMul = 0.8
	shotKillY        = -10.0
	wallHitEpsilon   = 0.01

	bombSpeed        = 22.0
	bombGravity      = 40.0
	bombFuse         = 2.0
	bombDamage       = 120.0
	bombPaintRadius  = 5.0
	bombSize         = 0.35
	bombGroundMargin = 0.3
	bombWallRadius   = 0.3
	bombSplashRadius = 3.0

	hitHeight = 1.0 // direct hits test against this point above the feet
	hitMargin = 0.5 // added to the body radius for direct hits
)

// ProjectileKind separates ordinary shots from thrown bombs.
type ProjectileKind uint8

const (
	KindShot ProjectileKind = iota
	KindBomb
)

func (k ProjectileKind) String() string {
	if k == KindBomb {
		return "bomb"
	}
	return "shot"
}

// Projectile is one live ballistic body.
type Projectile struct {
	ID          int
	Kind        ProjectileKind
	Team        Team
	Owner       int // combatant id, for kill credit
	Pos         Vec3
	Vel         Vec3
	Damage      float64
	PaintRadius float64
	Size        float64
	Age         float64

	alive     bool
	impact    Vec3
	hasImpact bool
}

// Alive reports whether the projectile is still in flight.
func (p *Projectile) Alive() bool { return p.alive }

// Impact returns the recorded death position, if any.
func (p *Projectile) Impact() (Vec3, bool) { return p.impact, p.hasImpact }

// Destroy removes the projectile without an impact, as on a direct hit.
func (p *Projectile) Destroy() { p.alive = false }

func (p *Projectile) die(at Vec3) {
	p.alive = false
	p.impact = at
	p.hasImpact = true
}

// ImpactSurface says what a dying projectile struck.
type ImpactSurface uint8

const (
	SurfaceNone  ImpactSurface = iota // timeout in place
	SurfaceFloor                      // floor or platform top
	SurfaceWall                       // side of a wall or platform
)

// ProjectileEvent is emitted when a projectile dies with an impact position.
// Shots produce landings; bombs produce explosions.
type ProjectileEvent struct {
	Kind    ProjectileKind
	Team    Team
	Owner   int
	Pos     Vec3
	Surface ImpactSurface
	Damage  float64 // bombs: centre splash damage
}

// ProjectileEngine owns every live shot and bomb.
type ProjectileEngine struct {
	list   []*Projectile
	nextID int
}

// NewProjectileEngine returns an empty engine.
func NewProjectileEngine() *ProjectileEngine {
	return &ProjectileEngine{}
}

// Live returns the projectiles currently in flight. The slice is reused.
func (e *ProjectileEngine) Live() []*Projectile { return e.list }

// Shoot spawns a shot from origin along dir at speed.
func (e *ProjectileEngine) Shoot(origin, dir Vec3, team Team, owner int, speed, paintRadius, size, damage float64) *Projectile {
	p := &Projectile{
		ID:          e.nextID,
		Kind:        KindShot,
		Team:        team,
		Owner:       owner,
		Pos:         origin,
		Vel:         dir.Scale(speed),
		Damage:      damage,
		PaintRadius: paintRadius,
		Size:        size,
		alive:       true,
	}
	e.nextID++
	e.list = append(e.list, p)
	return p
}

// ThrowBomb spawns a bomb from a Combatant's throw descriptor.
func (e *ProjectileEngine) ThrowBomb(b BombThrow, owner int) *Projectile {
	p := &Projectile{
		ID:          e.nextID,
		Kind:        KindBomb,
		Team:        b.Team,
		Owner:       owner,
		Pos:         b.Origin,
		Vel:         b.Dir.Scale(bombSpeed),
		Damage:      bombDamage,
		PaintRadius: bombPaintRadius,
		Size:        bombSize,
		alive:       true,
	}
	e.nextID++
	e.list = append(e.list, p)
	return p
}

// Update advances every projectile, paints impacts and returns one event
// per projectile that died with an impact position. Dead projectiles are
// removed from the live list.
func (e *ProjectileEngine) Update(dt float64, t Terrain) []ProjectileEvent {
	var events []ProjectileEvent
	for _, p := range e.list {
		if !p.alive {
			continue
		}
		var surf ImpactSurface
		if p.Kind == KindBomb {
			surf = updateBomb(p, dt, t)
		} else {
			surf = updateShot(p, dt, t)
		}
		if p.alive || !p.hasImpact {
			continue
		}
		ev := ProjectileEvent{Kind: p.Kind, Team: p.Team, Owner: p.Owner, Pos: p.impact, Surface: surf}
		if p.Kind == KindBomb {
			ev.Damage = p.Damage
		}
		events = append(events, ev)
	}
	e.Sweep()
	return events
}

// Sweep drops dead projectiles from the live list.
func (e *ProjectileEngine) Sweep() {
	n := 0
	for _, p := range e.list {
		if p.alive {
			e.list[n] = p
			n++
		}
	}
	for i := n; i < len(e.list); i++ {
		e.list[i] = nil
	}
	e.list = e.list[:n]
}

// Reset discards every projectile.
func (e *ProjectileEngine) Reset() {
	for i := range e.list {
		e.list[i] = nil
	}
	e.list = e.list[:0]
}

func updateShot(p *Projectile, dt float64, t Terrain) ImpactSurface {
	p.Age += dt
	if p.Age > shotMaxAge {
		p.alive = false
		return SurfaceNone
	}
	p.Vel.Y -= shotGravity * dt
	step := p.Vel.Scale(dt / shotSubsteps)
	for i := 0; i < shotSubsteps; i++ {
		p.Pos = p.Pos.Add(step)

		if p.Pos.Y <= t.GroundY(p.Pos.X, p.Pos.Z, p.Pos.Y-shotGroundProbe) {
			t.PaintAt(p.Pos.X, p.Pos.Z, p.Team, p.PaintRadius)
			p.die(p.Pos)
			return SurfaceFloor
		}

		cx, cz := t.CollideWalls(p.Pos.X, p.Pos.Z, shotWallRadius)
		if math.Abs(cx-p.Pos.X) > wallHitEpsilon || math.Abs(cz-p.Pos.Z) > wallHitEpsilon {
			t.PaintWallAt(p.Pos, p.Team, p.PaintRadius*shotWallPaintMul)
			p.die(p.Pos)
			return SurfaceWall
		}
	}
	if p.Pos.Y < shotKillY {
		p.alive = false
	}
	return SurfaceNone
}

// updateBomb detonates on first contact or when the fuse runs out. Bombs
// never bounce.
func updateBomb(p *Projectile, dt float64, t Terrain) ImpactSurface {
	p.Age += dt
	p.Vel.Y -= bombGravity * dt
	next := p.Pos.Add(p.Vel.Scale(dt))

	gy := t.GroundY(next.X, next.Z, next.Y)
	if next.Y <= gy+bombGroundMargin {
		p.Pos = next
		hit := Vec3{X: next.X, Y: gy, Z: next.Z}
		t.PaintAt(hit.X, hit.Z, p.Team, p.PaintRadius)
		p.die(hit)
		return SurfaceFloor
	}

	cx, cz := t.CollideWalls(next.X, next.Z, bombWallRadius)
	if math.Abs(cx-next.X) > wallHitEpsilon || math.Abs(cz-next.Z) > wallHitEpsilon {
		p.Pos = next
		t.PaintWallAt(next, p.Team, p.PaintRadius)
		p.die(next)
		return SurfaceWall
	}

	p.Pos = next
	if p.Age > bombFuse {
		p.die(p.Pos)
	}
	return SurfaceNone
}

// directHit reports whether a live shot touches combatant c.
func directHit(p *Projectile, c *Combatant) bool {
	r := bodyRadius + hitMargin
	return p.Pos.DistSq(c.Pos().Add(Vec3{Y: hitHeight})) < r*r
}

// splashDamage is the bomb damage at distance d from the centre, falling
// linearly to zero at the splash radius.
func splashDamage(maxDmg, d, radius float64) float64 {
	if d >= radius {
		return 0
	}
	return maxDmg * (1 - d/radius)
}
