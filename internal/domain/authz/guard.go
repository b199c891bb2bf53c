// Package authz implementa el control de acceso multi-tenant: resolución de
// scope (la empresa única del actor) y la decisión permitir/denegar por
// operación. Es dominio puro: sin DB, sin HTTP, sin estado.
package authz

import (
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

// Operation identifica una clase de operación gobernada por la tabla de permisos.
type Operation string

const (
	OpManageUsers       Operation = "users:manage"       // listar/crear usuarios de la empresa
	OpResolveOnboarding Operation = "onboarding:resolve" // aprobar/rechazar solicitudes
	OpDeleteCompany     Operation = "company:delete"

	OpManageVehicles      Operation = "vehicles:manage"
	OpViewVehicles        Operation = "vehicles:view"
	OpUpdateVehicleStatus Operation = "vehicles:update_status"

	OpManageZones Operation = "zones:manage"
	OpViewZones   Operation = "zones:view"

	OpCreateShipment       Operation = "shipments:create"
	OpViewShipments        Operation = "shipments:view"
	OpAssignShipment       Operation = "shipments:assign"
	OpUpdateShipmentStatus Operation = "shipments:update_status"
)

// permission describe cómo un rol ejerce una operación. selfOnly restringe
// el acceso a recursos directamente vinculados al actor (conductor asignado,
// remitente del envío).
type permission struct {
	selfOnly bool
}

// rolePermissions es la tabla estática rol → operación → permiso.
// Un rol sin entrada para una operación la tiene denegada: agregar un rol
// nuevo obliga a declarar aquí qué puede hacer.
var rolePermissions = map[string]map[Operation]permission{
	entity.RoleAdmin: {
		OpManageUsers:          {},
		OpResolveOnboarding:    {},
		OpDeleteCompany:        {},
		OpManageVehicles:       {},
		OpViewVehicles:         {},
		OpUpdateVehicleStatus:  {},
		OpManageZones:          {},
		OpViewZones:            {},
		OpViewShipments:        {},
		OpAssignShipment:       {},
		OpUpdateShipmentStatus: {},
	},
	entity.RoleMSME: {
		OpCreateShipment: {},
		OpViewShipments:  {selfOnly: true},
	},
	entity.RoleDriver: {
		OpViewVehicles:         {selfOnly: true},
		OpUpdateVehicleStatus:  {selfOnly: true},
		OpViewShipments:        {selfOnly: true},
		OpUpdateShipmentStatus: {selfOnly: true},
	},
}

// Target describe el recurso objetivo de una operación scoped.
// CompanyID nil significa recurso sin empresa: invisible para cualquier
// actor scoped. LinkedUserIDs son los usuarios directamente vinculados al
// recurso (remitente, conductor asignado) para permisos selfOnly.
type Target struct {
	CompanyID     *string
	LinkedUserIDs []string
}

// Decision es el resultado del guard. Cuando Allowed es false, Reason es uno
// de los errores de dominio (ErrAccountNotActive, ErrInsufficientRole,
// ErrCrossTenantAccess, ErrNotAssignedToActor).
type Decision struct {
	Allowed bool
	Reason  error
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(reason error) Decision { return Decision{Reason: reason} }

// ResolveScope devuelve la empresa única dentro de la cual el actor puede
// operar. El scope es un singleton deliberadamente: toda consulta posterior
// queda reducida a un filtro de igualdad, y no existe forma de unir los
// datos de dos empresas por accidente.
func ResolveScope(actor *entity.User) (string, error) {
	if actor == nil || actor.CompanyID == nil || *actor.CompanyID == "" {
		return "", domain.ErrNoCompanyAssigned
	}
	return *actor.CompanyID, nil
}

// Authorize decide si actor puede ejecutar op sobre target.
// target nil significa operación sin recurso concreto (ej. listar dentro del
// propio scope); el caller sigue obligado a filtrar por ResolveScope.
//
// Orden de evaluación:
//  1. estado del actor (solo ACTIVE opera)
//  2. permiso del rol para la operación
//  3. pertenencia del recurso a la empresa del actor
//  4. vínculo directo actor-recurso para permisos selfOnly
func Authorize(actor *entity.User, op Operation, target *Target) Decision {
	if actor == nil || actor.Status != entity.StatusActive {
		return deny(domain.ErrAccountNotActive)
	}

	perm, ok := rolePermissions[actor.Role][op]
	if !ok {
		return deny(domain.ErrInsufficientRole)
	}

	if target == nil {
		return allow()
	}

	scope, err := ResolveScope(actor)
	if err != nil {
		return deny(err)
	}
	if target.CompanyID == nil || *target.CompanyID != scope {
		return deny(domain.ErrCrossTenantAccess)
	}

	if perm.selfOnly && !linked(target.LinkedUserIDs, actor.ID) {
		return deny(domain.ErrNotAssignedToActor)
	}

	return allow()
}

func linked(ids []string, actorID string) bool {
	for _, id := range ids {
		if id != "" && id == actorID {
			return true
		}
	}
	return false
}
