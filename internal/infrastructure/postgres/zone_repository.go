package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

var _ repository.ZoneRepository = (*ZoneRepo)(nil)

// ZoneRepo implementación del puerto ZoneRepository sobre PostgreSQL.
// Coordinates se persiste como JSONB.
type ZoneRepo struct {
	db Querier
}

// NewZoneRepository construye el adaptador de persistencia para zonas.
func NewZoneRepository(db Querier) *ZoneRepo {
	return &ZoneRepo{db: db}
}

// Create persiste una nueva zona.
func (r *ZoneRepo) Create(ctx context.Context, zone *entity.Zone) error {
	coords, err := json.Marshal(zone.Coordinates)
	if err != nil {
		return fmt.Errorf("marshal coordinates: %w", err)
	}
	query := `
		INSERT INTO zones (id, company_id, name, description, color, coordinates, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.db.Exec(ctx, query,
		zone.ID, zone.CompanyID, zone.Name, zone.Description, zone.Color,
		coords, zone.CreatedAt, zone.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

// GetByID obtiene una zona por ID.
func (r *ZoneRepo) GetByID(ctx context.Context, id string) (*entity.Zone, error) {
	query := `
		SELECT id, company_id, name, description, color, coordinates, created_at, updated_at
		FROM zones WHERE id = $1`
	var z entity.Zone
	var coords []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&z.ID, &z.CompanyID, &z.Name, &z.Description, &z.Color, &coords,
		&z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	if err := json.Unmarshal(coords, &z.Coordinates); err != nil {
		return nil, fmt.Errorf("unmarshal coordinates: %w", err)
	}
	return &z, nil
}

// ListByCompany lista zonas de una empresa con paginación.
func (r *ZoneRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Zone, error) {
	query := `
		SELECT id, company_id, name, description, color, coordinates, created_at, updated_at
		FROM zones WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var list []*entity.Zone
	for rows.Next() {
		var z entity.Zone
		var coords []byte
		if err := rows.Scan(
			&z.ID, &z.CompanyID, &z.Name, &z.Description, &z.Color, &coords,
			&z.CreatedAt, &z.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		if err := json.Unmarshal(coords, &z.Coordinates); err != nil {
			return nil, fmt.Errorf("unmarshal coordinates: %w", err)
		}
		list = append(list, &z)
	}
	return list, rows.Err()
}

// ClearCompany desvincula las zonas de una empresa (company_id = NULL).
func (r *ZoneRepo) ClearCompany(ctx context.Context, companyID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE zones SET company_id = NULL, updated_at = now() WHERE company_id = $1`,
		companyID,
	)
	if err != nil {
		return fmt.Errorf("clear zones company: %w", err)
	}
	return nil
}
