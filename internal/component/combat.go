package component

// Resistances are per-damage-type mitigation fractions in [0,1).
type Resistances struct {
	EM        float64 `json:"em"`
	Thermal   float64 `json:"thermal"`
	Kinetic   float64 `json:"kinetic"`
	Explosive float64 `json:"explosive"`
}

// Health is the three-layer hit point pool. Damage is applied shield →
// armor → hull, each layer mitigated by its own resistances.
type Health struct {
	HullHP             float64     `json:"hull_hp"`
	HullMax            float64     `json:"hull_max"`
	ArmorHP            float64     `json:"armor_hp"`
	ArmorMax           float64     `json:"armor_max"`
	ShieldHP           float64     `json:"shield_hp"`
	ShieldMax          float64     `json:"shield_max"`
	ShieldRechargeRate float64     `json:"shield_recharge_rate"`
	ShieldResists      Resistances `json:"shield_resists"`
	ArmorResists       Resistances `json:"armor_resists"`
	HullResists        Resistances `json:"hull_resists"`
}

func DefaultHealth() Health {
	return Health{
		HullHP: 100, HullMax: 100,
		ArmorHP: 100, ArmorMax: 100,
		ShieldHP: 100, ShieldMax: 100,
		ShieldRechargeRate: 1,
	}
}

// Capacitor powers module activation. Invariant: 0 ≤ Capacitor ≤ CapacitorMax.
type Capacitor struct {
	Capacitor    float64 `json:"capacitor"`
	CapacitorMax float64 `json:"capacitor_max"`
	RechargeRate float64 `json:"recharge_rate"`
}

func DefaultCapacitor() Capacitor {
	return Capacitor{Capacitor: 100, CapacitorMax: 100, RechargeRate: 5}
}

// Weapon is a single fitted turret or launcher.
type Weapon struct {
	Type          string  `json:"type"`
	DamageType    string  `json:"damage_type"` // em/thermal/kinetic/explosive
	Damage        float64 `json:"damage"`
	OptimalRange  float64 `json:"optimal_range"`
	FalloffRange  float64 `json:"falloff_range"`
	TrackingSpeed float64 `json:"tracking_speed"`
	RateOfFire    float64 `json:"rate_of_fire"` // seconds between shots
	CapacitorCost float64 `json:"capacitor_cost"`
	AmmoType      string  `json:"ammo_type"`
	AmmoCount     int     `json:"ammo_count"`
}

// Target tracks the lock state machine. Invariant:
// len(LockedTargets)+len(LockingTargets) ≤ Ship.MaxLockedTargets.
type Target struct {
	// LockedTargets preserves lock completion order.
	LockedTargets []string `json:"locked_targets"`
	// LockingTargets maps target entity id → lock progress in [0,1).
	LockingTargets map[string]float64 `json:"locking_targets"`
}

func DefaultTarget() Target {
	return Target{
		LockedTargets:  []string{},
		LockingTargets: map[string]float64{},
	}
}

// LootEntry is one possible drop from a destroyed entity.
type LootEntry struct {
	ItemID   string  `json:"item_id"`
	Quantity int     `json:"quantity"`
	Chance   float64 `json:"chance"`
}

// LootTable defines what a wreck yields when this entity dies.
type LootTable struct {
	ISKDrop float64     `json:"isk_drop"`
	Entries []LootEntry `json:"entries"`
}

// Wreck marks a destroyed ship's husk, left behind with rolled loot.
type Wreck struct {
	SourceEntityID string `json:"source_entity_id"`
	SourceShipType string `json:"source_ship_type"`
	Salvaged       bool   `json:"salvaged"`
}
