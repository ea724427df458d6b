package component

// SolarSystem marks the entity representing a star system.
type SolarSystem struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	SecurityStatus float64 `json:"security_status"`
}

// Station is a dockable structure.
type Station struct {
	Name          string   `json:"name"`
	Owner         string   `json:"owner"`
	DockingRadius float64  `json:"docking_radius"`
	Services      []string `json:"services"`
}

// WormholeConnection links this system to another, with limited life.
type WormholeConnection struct {
	DestinationSystem string  `json:"destination_system"`
	Stability         float64 `json:"stability"`
	MassLimit         float64 `json:"mass_limit"`
	ExpiresIn         float64 `json:"expires_in"`
}

// MineralDeposit is a minable asteroid's remaining content.
type MineralDeposit struct {
	OreType     string  `json:"ore_type"`
	Remaining   float64 `json:"remaining"`
	RespawnRate float64 `json:"respawn_rate"`
}

// SystemResources summarizes a system's harvestable density.
type SystemResources struct {
	AsteroidDensity float64 `json:"asteroid_density"`
	IceDensity      float64 `json:"ice_density"`
	GasDensity      float64 `json:"gas_density"`
}

// MarketOrder is one standing buy or sell order at a hub.
type MarketOrder struct {
	OrderID  string  `json:"order_id"`
	ItemID   string  `json:"item_id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Buy      bool    `json:"buy"`
	Issuer   string  `json:"issuer"`
}

// MarketHub holds a station's order book.
type MarketHub struct {
	Orders []MarketOrder `json:"orders"`
}

// Contract is a courier or item-exchange agreement.
type Contract struct {
	ContractID string  `json:"contract_id"`
	Issuer     string  `json:"issuer"`
	Type       string  `json:"type"`
	Reward     float64 `json:"reward"`
	Collateral float64 `json:"collateral"`
	Status     string  `json:"status"`
}

// ContractBoard holds a station's open contracts.
type ContractBoard struct {
	Contracts []Contract `json:"contracts"`
}
