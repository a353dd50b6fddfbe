package game

// WeaponKind tags the firing behaviour of a weapon.
type WeaponKind uint8

const (
	WeaponShooter WeaponKind = iota // automatic, fires every cooldown while held
	WeaponRoller                    // short-range pellets plus a melee swing
	WeaponCharger                   // charge while held, fire on release
	weaponKindCount
)

func (k WeaponKind) String() string {
	switch k {
	case WeaponShooter:
		return "shooter"
	case WeaponRoller:
		return "roller"
	case WeaponCharger:
		return "charger"
	default:
		return "unknown"
	}
}

// WeaponDef is the static parameter record for one weapon kind.
type WeaponDef struct {
	Kind        WeaponKind
	Name        string
	FireRate    float64 // seconds between actions
	InkCost     float64 // ink per action (charger: per unit of charge, x3)
	ProjSpeed   float64 // world units/s
	Spread      float64 // max random direction jitter
	PaintRadius float64 // world units
	Damage      float64
	ProjSize    float64
	ProjCount   int

	// Roller melee.
	MeleeRange  float64
	MeleeDamage float64
	MeleeArc    float64 // full cone angle, radians

	// Charger.
	ChargeTime      float64 // seconds to reach full charge
	ChargeMaxDamage float64
	ChargeMaxSpeed  float64
}

// Weapons is the fixed weapon table, indexed by WeaponKind.
var Weapons = [weaponKindCount]WeaponDef{
	WeaponShooter: {
		Kind: WeaponShooter, Name: "Splattershot",
		FireRate: 0.09, InkCost: 1.8, ProjSpeed: 55, Spread: 0.025,
		PaintRadius: 2.0, Damage: 18, ProjSize: 0.22, ProjCount: 1,
	},
	WeaponRoller: {
		Kind: WeaponRoller, Name: "Splat Roller",
		FireRate: 0.45, InkCost: 5.0, ProjSpeed: 35, Spread: 0.12,
		PaintRadius: 4.0, Damage: 60, ProjSize: 0.5, ProjCount: 3,
		MeleeRange: 4, MeleeDamage: 80, MeleeArc: 1.2,
	},
	WeaponCharger: {
		Kind: WeaponCharger, Name: "Splat Charger",
		FireRate: 0.08, InkCost: 3.0, ProjSpeed: 100, Spread: 0.003,
		PaintRadius: 1.8, Damage: 30, ProjSize: 0.12, ProjCount: 1,
		ChargeTime: 1.0, ChargeMaxDamage: 150, ChargeMaxSpeed: 150,
	},
}

// Weapon returns the definition for kind k, falling back to the shooter.
func Weapon(k WeaponKind) WeaponDef {
	if k >= weaponKindCount {
		return Weapons[WeaponShooter]
	}
	return Weapons[k]
}

// trailRadius is the passive floor-paint radius while walking with this weapon.
func (w WeaponDef) trailRadius() float64 {
	if w.Kind == WeaponRoller {
		return rollerTrailRadius
	}
	return walkPaintRadius
}
