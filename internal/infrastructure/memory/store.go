// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en tests unitarios de los casos de uso; el update
// condicional de estado es atómico bajo el mutex, igual que el UPDATE
// condicional del adaptador PostgreSQL.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/Logistics-api/internal/application/ports"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

// Store guarda todas las colecciones bajo un único mutex.
type Store struct {
	mu sync.Mutex

	users     map[string]entity.User
	companies map[string]entity.Company
	vehicles  map[string]entity.Vehicle
	zones     map[string]entity.Zone
	shipments map[string]entity.Shipment
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]entity.User),
		companies: make(map[string]entity.Company),
		vehicles:  make(map[string]entity.Vehicle),
		zones:     make(map[string]entity.Zone),
		shipments: make(map[string]entity.Shipment),
	}
}

// Repos devuelve el bundle de puertos respaldado por este store.
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Users:     (*userRepo)(s),
		Companies: (*companyRepo)(s),
		Vehicles:  (*vehicleRepo)(s),
		Zones:     (*zoneRepo)(s),
		Shipments: (*shipmentRepo)(s),
	}
}

// Run implementa ports.TxRunner. El store no soporta rollback: los casos de
// uso validan antes de escribir, de modo que un error corta el flujo antes
// de dejar escrituras parciales.
func (s *Store) Run(_ context.Context, fn func(r ports.Repos) error) error {
	return fn(s.Repos())
}

// ── users ────────────────────────────────────────────────────────────────────

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *userRepo) UpdateStatusIf(_ context.Context, id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Status != from {
		return false, nil
	}
	u.Status = to
	r.users[id] = u
	return true, nil
}

func (r *userRepo) ListByCompanyAndStatus(_ context.Context, companyID, status string, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.User
	for _, u := range r.users {
		if u.CompanyID != nil && *u.CompanyID == companyID && u.Status == status {
			out := u
			list = append(list, &out)
		}
	}
	sortByCreatedDesc(list, func(u *entity.User) int64 { return u.CreatedAt.UnixNano() })
	return page(list, limit, offset), nil
}

func (r *userRepo) DeleteByCompany(_ context.Context, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.CompanyID != nil && *u.CompanyID == companyID {
			delete(r.users, id)
		}
	}
	return nil
}

// ── companies ────────────────────────────────────────────────────────────────

type companyRepo Store

func (r *companyRepo) Create(_ context.Context, company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Name == company.Name {
			return domain.ErrDuplicate
		}
	}
	r.companies[company.ID] = *company
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[id]; ok {
		out := c
		return &out, nil
	}
	return nil, nil
}

func (r *companyRepo) GetByName(_ context.Context, name string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Name == name {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *companyRepo) SearchByName(_ context.Context, query string, limit int) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Company
	for _, c := range r.companies {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out := c
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *companyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.companies, id)
	return nil
}

// ── vehicles ─────────────────────────────────────────────────────────────────

type vehicleRepo Store

func (r *vehicleRepo) Create(_ context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (r *vehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vehicles[id]; ok {
		out := v
		return &out, nil
	}
	return nil, nil
}

func (r *vehicleRepo) Update(_ context.Context, vehicle *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vehicles[vehicle.ID] = *vehicle
	return nil
}

func (r *vehicleRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Vehicle
	for _, v := range r.vehicles {
		if v.CompanyID != nil && *v.CompanyID == companyID {
			out := v
			list = append(list, &out)
		}
	}
	sortByCreatedDesc(list, func(v *entity.Vehicle) int64 { return v.CreatedAt.UnixNano() })
	return page(list, limit, offset), nil
}

func (r *vehicleRepo) ListByDriver(_ context.Context, driverID string) ([]*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Vehicle
	for _, v := range r.vehicles {
		if v.CurrentDriverID != nil && *v.CurrentDriverID == driverID {
			out := v
			list = append(list, &out)
		}
	}
	sortByCreatedDesc(list, func(v *entity.Vehicle) int64 { return v.CreatedAt.UnixNano() })
	return list, nil
}

func (r *vehicleRepo) ClearCompany(_ context.Context, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, v := range r.vehicles {
		if v.CompanyID != nil && *v.CompanyID == companyID {
			v.CompanyID = nil
			r.vehicles[id] = v
		}
	}
	return nil
}

// ── zones ────────────────────────────────────────────────────────────────────

type zoneRepo Store

func (r *zoneRepo) Create(_ context.Context, zone *entity.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones[zone.ID] = *zone
	return nil
}

func (r *zoneRepo) GetByID(_ context.Context, id string) (*entity.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if z, ok := r.zones[id]; ok {
		out := z
		return &out, nil
	}
	return nil, nil
}

func (r *zoneRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Zone
	for _, z := range r.zones {
		if z.CompanyID != nil && *z.CompanyID == companyID {
			out := z
			list = append(list, &out)
		}
	}
	sortByCreatedDesc(list, func(z *entity.Zone) int64 { return z.CreatedAt.UnixNano() })
	return page(list, limit, offset), nil
}

func (r *zoneRepo) ClearCompany(_ context.Context, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, z := range r.zones {
		if z.CompanyID != nil && *z.CompanyID == companyID {
			z.CompanyID = nil
			r.zones[id] = z
		}
	}
	return nil
}

// ── shipments ────────────────────────────────────────────────────────────────

type shipmentRepo Store

func (r *shipmentRepo) Create(_ context.Context, shipment *entity.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shipments[shipment.ID] = *shipment
	return nil
}

func (r *shipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shipments[id]; ok {
		out := s
		return &out, nil
	}
	return nil, nil
}

func (r *shipmentRepo) Update(_ context.Context, shipment *entity.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shipments[shipment.ID] = *shipment
	return nil
}

func (r *shipmentRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Shipment, error) {
	return r.listWhere(func(s entity.Shipment) bool {
		return s.CompanyID != nil && *s.CompanyID == companyID
	}, limit, offset)
}

func (r *shipmentRepo) ListBySender(_ context.Context, senderID string, limit, offset int) ([]*entity.Shipment, error) {
	return r.listWhere(func(s entity.Shipment) bool { return s.SenderID == senderID }, limit, offset)
}

func (r *shipmentRepo) ListByDriver(_ context.Context, driverID string, limit, offset int) ([]*entity.Shipment, error) {
	return r.listWhere(func(s entity.Shipment) bool {
		return s.AssignedDriverID != nil && *s.AssignedDriverID == driverID
	}, limit, offset)
}

func (r *shipmentRepo) listWhere(match func(entity.Shipment) bool, limit, offset int) ([]*entity.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Shipment
	for _, s := range r.shipments {
		if match(s) {
			out := s
			list = append(list, &out)
		}
	}
	sortByCreatedDesc(list, func(s *entity.Shipment) int64 { return s.CreatedAt.UnixNano() })
	return page(list, limit, offset), nil
}

func (r *shipmentRepo) ClearCompany(_ context.Context, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.shipments {
		if s.CompanyID != nil && *s.CompanyID == companyID {
			s.CompanyID = nil
			r.shipments[id] = s
		}
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func sortByCreatedDesc[T any](list []T, created func(T) int64) {
	sort.Slice(list, func(i, j int) bool { return created(list[i]) > created(list[j]) })
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
