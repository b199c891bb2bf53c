package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, company_id, tracking_number, po_number, sender_id, assigned_driver_id, vehicle_id, pickup_address, drop_address, total_weight, total_volume, status, description, created_at, updated_at`

// ShipmentRepo implementación del puerto ShipmentRepository sobre PostgreSQL.
type ShipmentRepo struct {
	db Querier
}

// NewShipmentRepository construye el adaptador de persistencia para envíos.
func NewShipmentRepository(db Querier) *ShipmentRepo {
	return &ShipmentRepo{db: db}
}

// Create persiste un nuevo envío.
func (r *ShipmentRepo) Create(ctx context.Context, shipment *entity.Shipment) error {
	query := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		shipment.ID, shipment.CompanyID, shipment.TrackingNumber, shipment.PONumber,
		shipment.SenderID, shipment.AssignedDriverID, shipment.VehicleID,
		shipment.PickupAddress, shipment.DropAddress, shipment.TotalWeight, shipment.TotalVolume,
		shipment.Status, shipment.Description, shipment.CreatedAt, shipment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert shipment: tracking duplicado: %w", err)
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// GetByID obtiene un envío por ID.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	var s entity.Shipment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CompanyID, &s.TrackingNumber, &s.PONumber,
		&s.SenderID, &s.AssignedDriverID, &s.VehicleID,
		&s.PickupAddress, &s.DropAddress, &s.TotalWeight, &s.TotalVolume,
		&s.Status, &s.Description, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

// Update actualiza un envío.
func (r *ShipmentRepo) Update(ctx context.Context, shipment *entity.Shipment) error {
	query := `
		UPDATE shipments SET assigned_driver_id = $2, vehicle_id = $3, status = $4,
			description = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		shipment.ID, shipment.AssignedDriverID, shipment.VehicleID,
		shipment.Status, shipment.Description, shipment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	return nil
}

// ListByCompany lista envíos de una empresa con paginación.
func (r *ShipmentRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, companyID, limit, offset)
}

// ListBySender lista envíos creados por un remitente.
func (r *ShipmentRepo) ListBySender(ctx context.Context, senderID string, limit, offset int) ([]*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments WHERE sender_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, senderID, limit, offset)
}

// ListByDriver lista envíos asignados a un conductor.
func (r *ShipmentRepo) ListByDriver(ctx context.Context, driverID string, limit, offset int) ([]*entity.Shipment, error) {
	query := `
		SELECT ` + shipmentColumns + `
		FROM shipments WHERE assigned_driver_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, driverID, limit, offset)
}

func (r *ShipmentRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Shipment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()
	return scanShipments(rows)
}

func scanShipments(rows pgx.Rows) ([]*entity.Shipment, error) {
	var list []*entity.Shipment
	for rows.Next() {
		var s entity.Shipment
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.TrackingNumber, &s.PONumber,
			&s.SenderID, &s.AssignedDriverID, &s.VehicleID,
			&s.PickupAddress, &s.DropAddress, &s.TotalWeight, &s.TotalVolume,
			&s.Status, &s.Description, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ClearCompany desvincula los envíos de una empresa (company_id = NULL).
func (r *ShipmentRepo) ClearCompany(ctx context.Context, companyID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE shipments SET company_id = NULL, updated_at = now() WHERE company_id = $1`,
		companyID,
	)
	if err != nil {
		return fmt.Errorf("clear shipments company: %w", err)
	}
	return nil
}
