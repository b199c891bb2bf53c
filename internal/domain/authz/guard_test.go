package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/authz"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
)

func activeUser(role, companyID string) *entity.User {
	return &entity.User{
		ID:        "user-" + role,
		CompanyID: &companyID,
		Role:      role,
		Status:    entity.StatusActive,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveScope
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveScope_DevuelveLaEmpresaDelActor(t *testing.T) {
	actor := activeUser(entity.RoleAdmin, "empresa-a")
	scope, err := authz.ResolveScope(actor)
	require.NoError(t, err)
	assert.Equal(t, "empresa-a", scope)
}

func TestResolveScope_SinEmpresa_RetornaError(t *testing.T) {
	actor := &entity.User{ID: "u1", Role: entity.RoleAdmin, Status: entity.StatusActive}
	_, err := authz.ResolveScope(actor)
	assert.ErrorIs(t, err, domain.ErrNoCompanyAssigned)

	empty := ""
	actor.CompanyID = &empty
	_, err = authz.ResolveScope(actor)
	assert.ErrorIs(t, err, domain.ErrNoCompanyAssigned)
}

// ──────────────────────────────────────────────────────────────────────────────
// Authorize: orden de evaluación: estado, rol, tenant, vínculo
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthorize_ActorPending_SiempreDenegado(t *testing.T) {
	companyID := "empresa-a"
	actor := &entity.User{
		ID:        "u1",
		CompanyID: &companyID,
		Role:      entity.RoleAdmin,
		Status:    entity.StatusPending,
	}
	d := authz.Authorize(actor, authz.OpManageUsers, nil)
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrAccountNotActive)
}

func TestAuthorize_ActorNil_Denegado(t *testing.T) {
	d := authz.Authorize(nil, authz.OpViewVehicles, nil)
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrAccountNotActive)
}

func TestAuthorize_RolSinPermiso_InsufficientRole(t *testing.T) {
	// El estado se evalúa antes que el rol, y el rol antes que el tenant:
	// un MSME activo de otra empresa recibe InsufficientRole, no CrossTenant.
	msme := activeUser(entity.RoleMSME, "empresa-a")
	otra := "empresa-b"
	d := authz.Authorize(msme, authz.OpResolveOnboarding, &authz.Target{CompanyID: &otra})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrInsufficientRole)
}

func TestAuthorize_CrossTenant_Denegado(t *testing.T) {
	admin := activeUser(entity.RoleAdmin, "empresa-a")
	otra := "empresa-b"
	d := authz.Authorize(admin, authz.OpResolveOnboarding, &authz.Target{CompanyID: &otra})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrCrossTenantAccess)
}

func TestAuthorize_RecursoSinEmpresa_InvisibleParaTodos(t *testing.T) {
	// Un recurso con CompanyID nil (empresa eliminada) no pertenece a ningún
	// scope: ni siquiera un admin lo alcanza.
	admin := activeUser(entity.RoleAdmin, "empresa-a")
	d := authz.Authorize(admin, authz.OpViewVehicles, &authz.Target{CompanyID: nil})
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrCrossTenantAccess)
}

func TestAuthorize_AdminMismaEmpresa_Permitido(t *testing.T) {
	admin := activeUser(entity.RoleAdmin, "empresa-a")
	misma := "empresa-a"
	d := authz.Authorize(admin, authz.OpResolveOnboarding, &authz.Target{CompanyID: &misma})
	assert.True(t, d.Allowed)
	assert.NoError(t, d.Reason)
}

// ──────────────────────────────────────────────────────────────────────────────
// Permisos selfOnly: vínculo directo actor-recurso
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthorize_DriverVehiculoAsignado_Permitido(t *testing.T) {
	driver := activeUser(entity.RoleDriver, "empresa-a")
	misma := "empresa-a"
	target := &authz.Target{CompanyID: &misma, LinkedUserIDs: []string{driver.ID}}

	d := authz.Authorize(driver, authz.OpUpdateVehicleStatus, target)
	assert.True(t, d.Allowed)
}

func TestAuthorize_DriverVehiculoAjeno_NotAssigned(t *testing.T) {
	driver := activeUser(entity.RoleDriver, "empresa-a")
	misma := "empresa-a"
	target := &authz.Target{CompanyID: &misma, LinkedUserIDs: []string{"otro-conductor"}}

	d := authz.Authorize(driver, authz.OpUpdateVehicleStatus, target)
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrNotAssignedToActor)
}

func TestAuthorize_MsmeSoloSusEnvios(t *testing.T) {
	msme := activeUser(entity.RoleMSME, "empresa-a")
	misma := "empresa-a"

	propio := &authz.Target{CompanyID: &misma, LinkedUserIDs: []string{msme.ID}}
	assert.True(t, authz.Authorize(msme, authz.OpViewShipments, propio).Allowed)

	ajeno := &authz.Target{CompanyID: &misma, LinkedUserIDs: []string{"otro-usuario"}}
	d := authz.Authorize(msme, authz.OpViewShipments, ajeno)
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrNotAssignedToActor)
}

func TestAuthorize_AdminNoEsSelfOnly(t *testing.T) {
	// El admin ve recursos de su empresa aunque no esté vinculado a ellos.
	admin := activeUser(entity.RoleAdmin, "empresa-a")
	misma := "empresa-a"
	target := &authz.Target{CompanyID: &misma, LinkedUserIDs: []string{"otro-usuario"}}

	assert.True(t, authz.Authorize(admin, authz.OpViewShipments, target).Allowed)
}

func TestAuthorize_SelfOnlyNoSaltaElTenant(t *testing.T) {
	// Estar vinculado al recurso no exime el chequeo de empresa: un conductor
	// re-asignado a otra empresa pierde acceso a su vehículo viejo.
	driver := activeUser(entity.RoleDriver, "empresa-b")
	vieja := "empresa-a"
	target := &authz.Target{CompanyID: &vieja, LinkedUserIDs: []string{driver.ID}}

	d := authz.Authorize(driver, authz.OpUpdateVehicleStatus, target)
	assert.False(t, d.Allowed)
	assert.ErrorIs(t, d.Reason, domain.ErrCrossTenantAccess)
}
