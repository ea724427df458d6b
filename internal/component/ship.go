package component

// Ship holds a hull's fixed fitting and sensor stats.
type Ship struct {
	Type              string  `json:"type"`
	Class             string  `json:"class"`
	Name              string  `json:"name"`
	Race              string  `json:"race"`
	CPU               float64 `json:"cpu"`
	CPUMax            float64 `json:"cpu_max"`
	Powergrid         float64 `json:"powergrid"`
	PowergridMax      float64 `json:"powergrid_max"`
	SignatureRadius   float64 `json:"signature_radius"`
	ScanResolution    float64 `json:"scan_resolution"`
	MaxLockedTargets  int     `json:"max_locked_targets"`
	MaxTargetingRange float64 `json:"max_targeting_range"`
	AlignTime         float64 `json:"align_time"`
	WarpSpeed         float64 `json:"warp_speed"`
	WarpCoreStrength  float64 `json:"warp_core_strength"`
}

func DefaultShip() Ship {
	return Ship{
		Type:              "shuttle",
		Class:             "Shuttle",
		Race:              "caldari",
		ScanResolution:    500,
		MaxLockedTargets:  2,
		MaxTargetingRange: 25000,
		AlignTime:         3,
		WarpSpeed:         5000,
		WarpCoreStrength:  1,
	}
}

// InventoryItem is one stack in a cargo hold.
type InventoryItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Inventory is a cargo hold.
type Inventory struct {
	MaxCapacity float64         `json:"max_capacity"`
	Items       []InventoryItem `json:"items"`
}

func DefaultInventory() Inventory {
	return Inventory{MaxCapacity: 100, Items: []InventoryItem{}}
}

// Drone is one drone in a bay, stored or in space.
type Drone struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	HullHP    float64 `json:"hull_hp"`
	Bandwidth float64 `json:"bandwidth"`
}

// DroneBay holds an entity's drones.
type DroneBay struct {
	BayCapacity  float64 `json:"bay_capacity"`
	MaxBandwidth float64 `json:"max_bandwidth"`
	Stored       []Drone `json:"stored"`
	Deployed     []Drone `json:"deployed"`
}

// Docked marks an entity as docked at a station; movement and targeting
// systems skip docked entities.
type Docked struct {
	StationID string `json:"station_id"`
}
