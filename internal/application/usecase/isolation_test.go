package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/onboarding"
	"github.com/jhoicas/Logistics-api/internal/application/usecase"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/infrastructure/memory"
)

const testPassword = "password1234"

// tenant agrupa los ids de una empresa de prueba con sus tres roles.
type tenant struct {
	companyID string
	adminID   string
	msmeID    string
	driverID  string
}

type fixture struct {
	store      *memory.Store
	companyUC  *usecase.CompanyUseCase
	userUC     *usecase.UserUseCase
	vehicleUC  *usecase.VehicleUseCase
	zoneUC     *usecase.ZoneUseCase
	shipmentUC *usecase.ShipmentUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	repos := store.Repos()
	return &fixture{
		store:      store,
		companyUC:  usecase.NewCompanyUseCase(repos.Companies, repos.Users, store),
		userUC:     usecase.NewUserUseCase(repos.Users),
		vehicleUC:  usecase.NewVehicleUseCase(repos.Vehicles, repos.Users, store),
		zoneUC:     usecase.NewZoneUseCase(repos.Zones, repos.Users),
		shipmentUC: usecase.NewShipmentUseCase(repos.Shipments, repos.Users, store),
	}
}

// newTenant registra una empresa completa (admin, MSME y conductor activos)
// a través del flujo de onboarding real.
func newTenant(t *testing.T, f *fixture, name, domainPart string) tenant {
	t.Helper()
	ctx := context.Background()
	onb := onboarding.NewUseCase(f.store, f.store.Repos().Users)

	reg, err := onb.RegisterCompany(ctx, dto.RegisterCompanyRequest{
		CompanyName:   name,
		AdminName:     "Admin " + name,
		AdminEmail:    "admin@" + domainPart,
		AdminPassword: testPassword,
	})
	require.NoError(t, err)

	msme, err := onb.CreateUser(ctx, reg.Admin.ID, dto.CreateUserRequest{
		Email: "msme@" + domainPart, Password: testPassword, Name: "MSME " + name, Role: entity.RoleMSME,
	})
	require.NoError(t, err)
	driver, err := onb.CreateUser(ctx, reg.Admin.ID, dto.CreateUserRequest{
		Email: "driver@" + domainPart, Password: testPassword, Name: "Driver " + name, Role: entity.RoleDriver,
	})
	require.NoError(t, err)

	return tenant{
		companyID: reg.Company.ID,
		adminID:   reg.Admin.ID,
		msmeID:    msme.ID,
		driverID:  driver.ID,
	}
}

func createVehicle(t *testing.T, f *fixture, actorID, name, plate string) *dto.VehicleResponse {
	t.Helper()
	v, err := f.vehicleUC.Create(context.Background(), actorID, dto.CreateVehicleRequest{
		Name: name, PlateNumber: plate, VehicleType: entity.VehicleTruck, WeightCapacity: 1000,
	})
	require.NoError(t, err)
	return v
}

func createShipment(t *testing.T, f *fixture, actorID string) *dto.ShipmentResponse {
	t.Helper()
	s, err := f.shipmentUC.Create(context.Background(), actorID, dto.CreateShipmentRequest{
		PickupAddress: "Origen 123", DropAddress: "Destino 456", TotalWeight: 10,
	})
	require.NoError(t, err)
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento entre empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestVehiculos_ListadosDisjuntosPorEmpresa(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	b := newTenant(t, f, "Sur", "sur.com")
	ctx := context.Background()

	va := createVehicle(t, f, a.adminID, "Camión A", "AAA-001")
	vb := createVehicle(t, f, b.adminID, "Camión B", "BBB-001")

	listA, err := f.vehicleUC.List(ctx, a.adminID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, listA.Items, 1)
	assert.Equal(t, va.ID, listA.Items[0].ID)

	listB, err := f.vehicleUC.List(ctx, b.adminID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, listB.Items, 1)
	assert.Equal(t, vb.ID, listB.Items[0].ID)
}

func TestVehiculo_AccesoDirectoCrossTenant_Denegado(t *testing.T) {
	// El acceso por id directo tampoco cruza empresas: el admin de B recibe
	// la misma denegación que si el vehículo no existiera.
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	b := newTenant(t, f, "Sur", "sur.com")

	va := createVehicle(t, f, a.adminID, "Camión A", "AAA-001")

	_, err := f.vehicleUC.GetByID(context.Background(), b.adminID, va.ID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

func TestZonas_AisladasPorEmpresa(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	b := newTenant(t, f, "Sur", "sur.com")
	ctx := context.Background()

	za, err := f.zoneUC.Create(ctx, a.adminID, dto.CreateZoneRequest{
		Name:        "Zona Norte",
		Coordinates: [][]float64{{-74.1, 4.6}, {-74.0, 4.6}, {-74.0, 4.7}},
	})
	require.NoError(t, err)

	listB, err := f.zoneUC.List(ctx, b.adminID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, listB.Items)

	_, err = f.zoneUC.GetByID(ctx, b.adminID, za.ID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

func TestVehiculos_CrearConZonaDeOtraEmpresa_Denegado(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	b := newTenant(t, f, "Sur", "sur.com")
	ctx := context.Background()

	za, err := f.zoneUC.Create(ctx, a.adminID, dto.CreateZoneRequest{
		Name:        "Zona Norte",
		Coordinates: [][]float64{{-74.1, 4.6}, {-74.0, 4.6}, {-74.0, 4.7}},
	})
	require.NoError(t, err)

	// El admin de Sur no puede anclar un vehículo a una zona de Norte.
	_, err = f.vehicleUC.Create(ctx, b.adminID, dto.CreateVehicleRequest{
		Name: "Camión Sur", PlateNumber: "BBB-002", VehicleType: entity.VehicleVan, ZoneID: &za.ID,
	})
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	// Una zona inexistente tampoco pasa.
	zonaFalsa := "00000000-0000-0000-0000-000000000000"
	_, err = f.vehicleUC.Create(ctx, b.adminID, dto.CreateVehicleRequest{
		Name: "Camión Sur", PlateNumber: "BBB-003", VehicleType: entity.VehicleVan, ZoneID: &zonaFalsa,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// El rechazo no deja escrituras parciales.
	listB, err := f.vehicleUC.List(ctx, b.adminID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, listB.Items)

	// Con una zona propia el alta funciona y queda vinculada.
	v, err := f.vehicleUC.Create(ctx, a.adminID, dto.CreateVehicleRequest{
		Name: "Camión Norte", PlateNumber: "AAA-009", VehicleType: entity.VehicleTruck, ZoneID: &za.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, v.ZoneID)
	assert.Equal(t, za.ID, *v.ZoneID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Scope por vínculo: conductor y MSME
// ──────────────────────────────────────────────────────────────────────────────

func TestConductor_SoloVeSusVehiculosAsignados(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	ctx := context.Background()

	asignado := createVehicle(t, f, a.adminID, "Camión 1", "AAA-001")
	createVehicle(t, f, a.adminID, "Camión 2", "AAA-002")

	_, err := f.vehicleUC.AssignDriver(ctx, a.adminID, asignado.ID, a.driverID)
	require.NoError(t, err)

	list, err := f.vehicleUC.List(ctx, a.driverID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, asignado.ID, list.Items[0].ID)
}

func TestConductor_NoActualizaVehiculoAjeno(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	ctx := context.Background()

	libre := createVehicle(t, f, a.adminID, "Camión 1", "AAA-001")

	_, err := f.vehicleUC.UpdateStatus(ctx, a.driverID, libre.ID, dto.UpdateVehicleStatusRequest{
		Status: entity.VehicleMaintenance,
	})
	assert.ErrorIs(t, err, domain.ErrNotAssignedToActor)

	// Asignado, sí puede.
	_, err = f.vehicleUC.AssignDriver(ctx, a.adminID, libre.ID, a.driverID)
	require.NoError(t, err)
	out, err := f.vehicleUC.UpdateStatus(ctx, a.driverID, libre.ID, dto.UpdateVehicleStatusRequest{
		Status: entity.VehicleMaintenance,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleMaintenance, out.Status)
}

func TestMsme_SoloVeSusEnvios(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	ctx := context.Background()

	onb := onboarding.NewUseCase(f.store, f.store.Repos().Users)
	otro, err := onb.CreateUser(ctx, a.adminID, dto.CreateUserRequest{
		Email: "msme2@norte.com", Password: testPassword, Name: "MSME 2", Role: entity.RoleMSME,
	})
	require.NoError(t, err)

	propio := createShipment(t, f, a.msmeID)
	ajeno := createShipment(t, f, otro.ID)

	list, err := f.shipmentUC.List(ctx, a.msmeID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, propio.ID, list.Items[0].ID)

	_, err = f.shipmentUC.GetByID(ctx, a.msmeID, ajeno.ID)
	assert.ErrorIs(t, err, domain.ErrNotAssignedToActor)

	// El admin de la empresa ve ambos.
	all, err := f.shipmentUC.List(ctx, a.adminID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}

func TestEnvio_SoloMsmeCrea(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	ctx := context.Background()

	_, err := f.shipmentUC.Create(ctx, a.driverID, dto.CreateShipmentRequest{
		PickupAddress: "Origen", DropAddress: "Destino",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)

	_, err = f.shipmentUC.Create(ctx, a.adminID, dto.CreateShipmentRequest{
		PickupAddress: "Origen", DropAddress: "Destino",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestEnvio_AsignacionYFlujoDeEstados(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	ctx := context.Background()

	s := createShipment(t, f, a.msmeID)
	assert.Equal(t, entity.ShipmentPending, s.Status)
	assert.NotEmpty(t, s.TrackingNumber)

	asignado, err := f.shipmentUC.AssignDriver(ctx, a.adminID, s.ID, dto.AssignShipmentRequest{DriverID: a.driverID})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentAssigned, asignado.Status)

	// El conductor asignado avanza el estado.
	enRuta, err := f.shipmentUC.UpdateStatus(ctx, a.driverID, s.ID, dto.UpdateShipmentStatusRequest{
		Status: entity.ShipmentInTransit,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentInTransit, enRuta.Status)

	// Un conductor de otra empresa no.
	b := newTenant(t, f, "Sur", "sur.com")
	_, err = f.shipmentUC.UpdateStatus(ctx, b.driverID, s.ID, dto.UpdateShipmentStatusRequest{
		Status: entity.ShipmentDelivered,
	})
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

func TestAsignacion_ConductorDeOtraEmpresa_Rechazada(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	b := newTenant(t, f, "Sur", "sur.com")
	ctx := context.Background()

	v := createVehicle(t, f, a.adminID, "Camión 1", "AAA-001")
	_, err := f.vehicleUC.AssignDriver(ctx, a.adminID, v.ID, b.driverID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación de empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteCompany_UsuariosFueraYRecursosInvisibles(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	b := newTenant(t, f, "Sur", "sur.com")
	ctx := context.Background()

	createVehicle(t, f, a.adminID, "Camión A", "AAA-001")
	createShipment(t, f, a.msmeID)
	vb := createVehicle(t, f, b.adminID, "Camión B", "BBB-001")

	// Solo el admin de la propia empresa puede eliminarla.
	err := f.companyUC.Delete(ctx, b.adminID, a.companyID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	require.NoError(t, f.companyUC.Delete(ctx, a.adminID, a.companyID))

	// La empresa ya no existe.
	_, err = f.companyUC.GetByID(ctx, a.companyID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Sus usuarios fueron eliminados.
	gone, err := f.store.Repos().Users.GetByID(ctx, a.msmeID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// La otra empresa no se ve afectada.
	listB, err := f.vehicleUC.List(ctx, b.adminID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, listB.Items, 1)
	assert.Equal(t, vb.ID, listB.Items[0].ID)
}

func TestDeleteCompany_MsmeNoPuede(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")

	err := f.companyUC.Delete(context.Background(), a.msmeID, a.companyID)
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestListActive_SoloAdminYSoloSuEmpresa(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")
	newTenant(t, f, "Sur", "sur.com")
	ctx := context.Background()

	list, err := f.userUC.ListActive(ctx, a.adminID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3, "admin, MSME y conductor de la propia empresa")
	for _, u := range list.Items {
		assert.Equal(t, a.companyID, u.CompanyID)
	}

	_, err = f.userUC.ListActive(ctx, a.msmeID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestMe_DevuelveElPerfilPropio(t *testing.T) {
	f := newFixture()
	a := newTenant(t, f, "Norte", "norte.com")

	me, err := f.userUC.Me(context.Background(), a.driverID)
	require.NoError(t, err)
	assert.Equal(t, a.driverID, me.ID)
	assert.Equal(t, entity.RoleDriver, me.Role)
}
