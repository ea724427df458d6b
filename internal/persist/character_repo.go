package persist

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eveoffline/server/internal/component"
)

type CharacterRow struct {
	ID          int32
	AccountName string
	Name        string
	ShipType    string
	Corporation string
	ISK         float64
	X           float64
	Y           float64
	Z           float64
	SolarSystem string
	CreatedAt   time.Time
	DeletedAt   *time.Time
}

type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

func (r *CharacterRepo) LoadByName(ctx context.Context, name string) (*CharacterRow, error) {
	c := &CharacterRow{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, account_name, name, ship_type, corporation, isk,
		        x, y, z, solar_system, created_at, deleted_at
		 FROM characters WHERE name = $1 AND deleted_at IS NULL`, name,
	).Scan(
		&c.ID, &c.AccountName, &c.Name, &c.ShipType, &c.Corporation, &c.ISK,
		&c.X, &c.Y, &c.Z, &c.SolarSystem, &c.CreatedAt, &c.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CharacterRepo) Create(ctx context.Context, c *CharacterRow) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO characters (account_name, name, ship_type, corporation, isk, x, y, z, solar_system)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
		c.AccountName, c.Name, c.ShipType, c.Corporation, c.ISK,
		c.X, c.Y, c.Z, c.SolarSystem,
	).Scan(&c.ID)
}

func (r *CharacterRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM characters WHERE name = $1)`, name,
	).Scan(&exists)
	return exists, err
}

// SaveCharacter updates all mutable character fields.
func (r *CharacterRepo) SaveCharacter(ctx context.Context, c *CharacterRow) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE characters SET
			ship_type = $1, corporation = $2, isk = $3,
			x = $4, y = $5, z = $6, solar_system = $7
		 WHERE name = $8`,
		c.ShipType, c.Corporation, c.ISK,
		c.X, c.Y, c.Z, c.SolarSystem,
		c.Name,
	)
	return err
}

func (r *CharacterRepo) SoftDelete(ctx context.Context, name string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE characters SET deleted_at = NOW() WHERE name = $1 AND deleted_at IS NULL`,
		name,
	)
	return err
}

// LoadInventory loads the inventory JSONB column for a character.
func (r *CharacterRepo) LoadInventory(ctx context.Context, name string) ([]component.InventoryItem, error) {
	var raw []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(inventory, '[]'::jsonb) FROM characters WHERE name = $1 AND deleted_at IS NULL`, name,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []component.InventoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveInventory saves the inventory JSONB column for a character.
func (r *CharacterRepo) SaveInventory(ctx context.Context, name string, items []component.InventoryItem) error {
	if items == nil {
		items = []component.InventoryItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx,
		`UPDATE characters SET inventory = $1 WHERE name = $2`,
		data, name,
	)
	return err
}

// LoadStandings loads the standings JSONB column for a character.
func (r *CharacterRepo) LoadStandings(ctx context.Context, name string) (*component.Standings, error) {
	var raw []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COALESCE(standings, '{}'::jsonb) FROM characters WHERE name = $1 AND deleted_at IS NULL`, name,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s := component.DefaultStandings()
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveStandings saves the standings JSONB column for a character.
func (r *CharacterRepo) SaveStandings(ctx context.Context, name string, s *component.Standings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx,
		`UPDATE characters SET standings = $1 WHERE name = $2`,
		data, name,
	)
	return err
}
