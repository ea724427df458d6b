package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eveoffline/server/internal/component"
)

// WeaponTemplate is a hull's fixed armament, if any.
type WeaponTemplate struct {
	Type          string  `yaml:"type"`
	DamageType    string  `yaml:"damage_type"`
	Damage        float64 `yaml:"damage"`
	OptimalRange  float64 `yaml:"optimal_range"`
	FalloffRange  float64 `yaml:"falloff_range"`
	TrackingSpeed float64 `yaml:"tracking_speed"`
	RateOfFire    float64 `yaml:"rate_of_fire"`
	CapacitorCost float64 `yaml:"capacitor_cost"`
	AmmoType      string  `yaml:"ammo_type"`
	AmmoCount     int     `yaml:"ammo_count"`
}

// ShipTemplate holds static stats for a hull type loaded from YAML.
type ShipTemplate struct {
	Type              string  `yaml:"type"`
	Class             string  `yaml:"class"`
	Race              string  `yaml:"race"`
	MaxSpeed          float64 `yaml:"max_speed"`
	CPUMax            float64 `yaml:"cpu_max"`
	PowergridMax      float64 `yaml:"powergrid_max"`
	SignatureRadius   float64 `yaml:"signature_radius"`
	ScanResolution    float64 `yaml:"scan_resolution"`
	MaxLockedTargets  int     `yaml:"max_locked_targets"`
	MaxTargetingRange float64 `yaml:"max_targeting_range"`
	AlignTime         float64 `yaml:"align_time"`
	WarpSpeed         float64 `yaml:"warp_speed"`
	WarpCoreStrength  float64 `yaml:"warp_core_strength"`
	ShieldHP          float64 `yaml:"shield_hp"`
	ShieldRecharge    float64 `yaml:"shield_recharge"`
	ArmorHP           float64 `yaml:"armor_hp"`
	HullHP            float64 `yaml:"hull_hp"`
	CapacitorMax      float64 `yaml:"capacitor_max"`
	CapRecharge       float64 `yaml:"cap_recharge"`
	CargoCapacity     float64 `yaml:"cargo_capacity"`

	Weapon *WeaponTemplate `yaml:"weapon"`
}

// Ship builds the Ship component for a hull named shipName.
func (t *ShipTemplate) Ship(shipName string) component.Ship {
	return component.Ship{
		Type:              t.Type,
		Class:             t.Class,
		Name:              shipName,
		Race:              t.Race,
		CPU:               t.CPUMax,
		CPUMax:            t.CPUMax,
		Powergrid:         t.PowergridMax,
		PowergridMax:      t.PowergridMax,
		SignatureRadius:   t.SignatureRadius,
		ScanResolution:    t.ScanResolution,
		MaxLockedTargets:  t.MaxLockedTargets,
		MaxTargetingRange: t.MaxTargetingRange,
		AlignTime:         t.AlignTime,
		WarpSpeed:         t.WarpSpeed,
		WarpCoreStrength:  t.WarpCoreStrength,
	}
}

// Health builds a full-hp Health component with frigate-grade resists.
func (t *ShipTemplate) Health() component.Health {
	return component.Health{
		HullHP:             t.HullHP,
		HullMax:            t.HullHP,
		ArmorHP:            t.ArmorHP,
		ArmorMax:           t.ArmorHP,
		ShieldHP:           t.ShieldHP,
		ShieldMax:          t.ShieldHP,
		ShieldRechargeRate: t.ShieldRecharge,
		ShieldResists:      component.Resistances{EM: 0, Thermal: 0.2, Kinetic: 0.4, Explosive: 0.5},
		ArmorResists:       component.Resistances{EM: 0.5, Thermal: 0.35, Kinetic: 0.25, Explosive: 0.1},
		HullResists:        component.Resistances{},
	}
}

func (t *ShipTemplate) Capacitor() component.Capacitor {
	return component.Capacitor{
		Capacitor:    t.CapacitorMax,
		CapacitorMax: t.CapacitorMax,
		RechargeRate: t.CapRecharge,
	}
}

func (t *ShipTemplate) Velocity() component.Velocity {
	return component.Velocity{MaxSpeed: t.MaxSpeed}
}

// WeaponComponent returns the hull's fitted weapon, or false for unarmed hulls.
func (t *ShipTemplate) WeaponComponent() (component.Weapon, bool) {
	if t.Weapon == nil {
		return component.Weapon{}, false
	}
	return component.Weapon{
		Type:          t.Weapon.Type,
		DamageType:    t.Weapon.DamageType,
		Damage:        t.Weapon.Damage,
		OptimalRange:  t.Weapon.OptimalRange,
		FalloffRange:  t.Weapon.FalloffRange,
		TrackingSpeed: t.Weapon.TrackingSpeed,
		RateOfFire:    t.Weapon.RateOfFire,
		CapacitorCost: t.Weapon.CapacitorCost,
		AmmoType:      t.Weapon.AmmoType,
		AmmoCount:     t.Weapon.AmmoCount,
	}, true
}

type shipListFile struct {
	Ships []ShipTemplate `yaml:"ships"`
}

// ShipTable holds all hull templates indexed by type.
type ShipTable struct {
	templates map[string]*ShipTemplate
}

func (t *ShipTable) Get(shipType string) *ShipTemplate {
	return t.templates[shipType]
}

func (t *ShipTable) Count() int {
	return len(t.templates)
}

// LoadShipTable loads hull templates from a YAML file. A missing file falls
// back to the builtin table so the server can boot without data files.
func LoadShipTable(path string) (*ShipTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return BuiltinShipTable(), nil
		}
		return nil, fmt.Errorf("read ship_list: %w", err)
	}
	var f shipListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse ship_list: %w", err)
	}
	t := &ShipTable{templates: make(map[string]*ShipTemplate, len(f.Ships))}
	for i := range f.Ships {
		ship := &f.Ships[i]
		t.templates[ship.Type] = ship
	}
	return t, nil
}

// BuiltinShipTable is the fallback hull catalog.
func BuiltinShipTable() *ShipTable {
	ships := []ShipTemplate{
		{
			Type: "rifter", Class: "Frigate", Race: "minmatar",
			MaxSpeed: 325, CPUMax: 125, PowergridMax: 38,
			SignatureRadius: 35, ScanResolution: 660,
			MaxLockedTargets: 4, MaxTargetingRange: 22500,
			AlignTime: 3.2, WarpSpeed: 5000, WarpCoreStrength: 1,
			ShieldHP: 450, ShieldRecharge: 1.2, ArmorHP: 400, HullHP: 350,
			CapacitorMax: 250, CapRecharge: 2.8, CargoCapacity: 140,
			Weapon: &WeaponTemplate{
				Type: "200mm AutoCannon", DamageType: "explosive",
				Damage: 18, OptimalRange: 1200, FalloffRange: 6000,
				TrackingSpeed: 0.35, RateOfFire: 3.0, CapacitorCost: 0.5,
				AmmoType: "fusion_s", AmmoCount: 200,
			},
		},
		{
			Type: "merlin", Class: "Frigate", Race: "caldari",
			MaxSpeed: 310, CPUMax: 150, PowergridMax: 35,
			SignatureRadius: 39, ScanResolution: 640,
			MaxLockedTargets: 4, MaxTargetingRange: 30000,
			AlignTime: 3.5, WarpSpeed: 5000, WarpCoreStrength: 1,
			ShieldHP: 600, ShieldRecharge: 1.6, ArmorHP: 300, HullHP: 300,
			CapacitorMax: 280, CapRecharge: 3.0, CargoCapacity: 150,
			Weapon: &WeaponTemplate{
				Type: "125mm Railgun", DamageType: "kinetic",
				Damage: 14, OptimalRange: 9000, FalloffRange: 3000,
				TrackingSpeed: 0.2, RateOfFire: 3.5, CapacitorCost: 1.2,
				AmmoType: "antimatter_s", AmmoCount: 200,
			},
		},
		{
			Type: "breacher", Class: "Frigate", Race: "minmatar",
			MaxSpeed: 335, CPUMax: 140, PowergridMax: 30,
			SignatureRadius: 36, ScanResolution: 630,
			MaxLockedTargets: 4, MaxTargetingRange: 27000,
			AlignTime: 3.3, WarpSpeed: 5000, WarpCoreStrength: 1,
			ShieldHP: 500, ShieldRecharge: 1.4, ArmorHP: 325, HullHP: 325,
			CapacitorMax: 235, CapRecharge: 2.6, CargoCapacity: 135,
			Weapon: &WeaponTemplate{
				Type: "Rocket Launcher", DamageType: "thermal",
				Damage: 16, OptimalRange: 7500, FalloffRange: 1500,
				TrackingSpeed: 0.5, RateOfFire: 4.0, CapacitorCost: 0,
				AmmoType: "mjolnir_rocket", AmmoCount: 120,
			},
		},
		{
			Type: "shuttle", Class: "Shuttle", Race: "caldari",
			MaxSpeed: 400, CPUMax: 5, PowergridMax: 5,
			SignatureRadius: 25, ScanResolution: 500,
			MaxLockedTargets: 2, MaxTargetingRange: 12500,
			AlignTime: 2.0, WarpSpeed: 7500, WarpCoreStrength: 1,
			ShieldHP: 60, ShieldRecharge: 0.5, ArmorHP: 50, HullHP: 55,
			CapacitorMax: 50, CapRecharge: 1.0, CargoCapacity: 10,
		},
	}
	t := &ShipTable{templates: make(map[string]*ShipTemplate, len(ships))}
	for i := range ships {
		t.templates[ships[i].Type] = &ships[i]
	}
	return t
}
