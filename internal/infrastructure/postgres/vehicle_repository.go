package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `id, company_id, name, plate_number, vehicle_type, weight_capacity, volume_capacity, current_driver_id, zone_id, status, created_at, updated_at`

// VehicleRepo implementación del puerto VehicleRepository sobre PostgreSQL.
type VehicleRepo struct {
	db Querier
}

// NewVehicleRepository construye el adaptador de persistencia para vehículos.
func NewVehicleRepository(db Querier) *VehicleRepo {
	return &VehicleRepo{db: db}
}

// Create persiste un nuevo vehículo.
func (r *VehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		vehicle.ID, vehicle.CompanyID, vehicle.Name, vehicle.PlateNumber, vehicle.VehicleType,
		vehicle.WeightCapacity, vehicle.VolumeCapacity, vehicle.CurrentDriverID, vehicle.ZoneID,
		vehicle.Status, vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	var v entity.Vehicle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.CompanyID, &v.Name, &v.PlateNumber, &v.VehicleType,
		&v.WeightCapacity, &v.VolumeCapacity, &v.CurrentDriverID, &v.ZoneID,
		&v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// Update actualiza un vehículo.
func (r *VehicleRepo) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles SET name = $2, plate_number = $3, vehicle_type = $4,
			weight_capacity = $5, volume_capacity = $6, current_driver_id = $7,
			zone_id = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		vehicle.ID, vehicle.Name, vehicle.PlateNumber, vehicle.VehicleType,
		vehicle.WeightCapacity, vehicle.VolumeCapacity, vehicle.CurrentDriverID,
		vehicle.ZoneID, vehicle.Status, vehicle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	return nil
}

// ListByCompany lista vehículos de una empresa con paginación.
// company_id = $1 excluye por construcción los vehículos sin empresa (NULL).
func (r *VehicleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, companyID, limit, offset)
}

// ListByDriver lista los vehículos asignados a un conductor.
func (r *VehicleRepo) ListByDriver(ctx context.Context, driverID string) ([]*entity.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles WHERE current_driver_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, query, driverID)
}

func (r *VehicleRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Vehicle, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	return scanVehicles(rows)
}

func scanVehicles(rows pgx.Rows) ([]*entity.Vehicle, error) {
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(
			&v.ID, &v.CompanyID, &v.Name, &v.PlateNumber, &v.VehicleType,
			&v.WeightCapacity, &v.VolumeCapacity, &v.CurrentDriverID, &v.ZoneID,
			&v.Status, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ClearCompany desvincula los vehículos de una empresa (company_id = NULL).
func (r *VehicleRepo) ClearCompany(ctx context.Context, companyID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE vehicles SET company_id = NULL, updated_at = now() WHERE company_id = $1`,
		companyID,
	)
	if err != nil {
		return fmt.Errorf("clear vehicles company: %w", err)
	}
	return nil
}
