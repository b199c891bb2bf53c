package onboarding_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistics-api/internal/application/auth"
	"github.com/jhoicas/Logistics-api/internal/application/dto"
	"github.com/jhoicas/Logistics-api/internal/application/onboarding"
	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/infrastructure/memory"
)

const testPassword = "password1234"

func newOnboarding(store *memory.Store) *onboarding.UseCase {
	return onboarding.NewUseCase(store, store.Repos().Users)
}

func newAuth(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Repos().Users, nil, auth.JWTConfig{
		Secret: "test-secret-key-for-unit-tests", ExpMinutes: 60, Issuer: "logistics-test",
	})
}

// registerDemo registra una empresa y devuelve el id del admin fundador.
func registerDemo(t *testing.T, uc *onboarding.UseCase, company, adminEmail string) *dto.RegisterCompanyResponse {
	t.Helper()
	out, err := uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName:   company,
		AdminName:     "Admin " + company,
		AdminEmail:    adminEmail,
		AdminPassword: testPassword,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterCompany_FundadorActivoYPuedeLoguearse(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)

	out := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")
	assert.Equal(t, entity.RoleAdmin, out.Admin.Role)
	assert.Equal(t, entity.StatusActive, out.Admin.Status, "el fundador entra ACTIVE sin aprobación")
	assert.Equal(t, out.Company.ID, out.Admin.CompanyID)

	// Login inmediato con las credenciales del fundador.
	login, err := newAuth(store).Login(context.Background(), dto.LoginRequest{
		Email: "founder@norte.com", Password: testPassword,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterCompany_EmailDuplicado_NoDejaEmpresaHuerfana(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	registerDemo(t, uc, "Transportes Norte", "founder@norte.com")

	_, err := uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName:   "Transportes Sur",
		AdminName:     "Otro Admin",
		AdminEmail:    "founder@norte.com", // duplicado
		AdminPassword: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// El fallo es atómico: la segunda empresa no debe existir.
	company, err := store.Repos().Companies.GetByName(context.Background(), "Transportes Sur")
	require.NoError(t, err)
	assert.Nil(t, company, "el registro fallido no debe persistir la empresa")
}

func TestRegisterCompany_NombreDeEmpresaDuplicado_Rechazado(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	registerDemo(t, uc, "Transportes Norte", "founder@norte.com")

	_, err := uc.RegisterCompany(context.Background(), dto.RegisterCompanyRequest{
		CompanyName:   "Transportes Norte",
		AdminName:     "Otro Admin",
		AdminEmail:    "otro@norte.com",
		AdminPassword: testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Solicitud de ingreso y resolución
// ──────────────────────────────────────────────────────────────────────────────

func TestJoinRequest_PendingNoSeLoguea_AprobadoSi(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	authUC := newAuth(store)
	reg := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")

	joined, err := uc.SubmitJoinRequest(context.Background(), dto.JoinRequestRequest{
		CompanyID: reg.Company.ID,
		Name:      "Comercio Uno",
		Email:     "msme@norte.com",
		Password:  testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, joined.Status)
	assert.Equal(t, entity.RoleMSME, joined.Role)

	// PENDING: login bloqueado aunque el password sea correcto.
	_, err = authUC.Login(context.Background(), dto.LoginRequest{Email: "msme@norte.com", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrAccountNotActive)

	// El admin aprueba y el login pasa.
	approved, err := uc.Approve(context.Background(), reg.Admin.ID, joined.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, approved.Status)

	_, err = authUC.Login(context.Background(), dto.LoginRequest{Email: "msme@norte.com", Password: testPassword})
	assert.NoError(t, err)
}

func TestJoinRequest_EmpresaInexistente_CompanyNotFound(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)

	_, err := uc.SubmitJoinRequest(context.Background(), dto.JoinRequestRequest{
		CompanyID: "no-existe",
		Name:      "Comercio Uno",
		Email:     "msme@norte.com",
		Password:  testPassword,
	})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestApprove_AdminDeOtraEmpresa_CrossTenantYEstadoIntacto(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	regA := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")
	regB := registerDemo(t, uc, "Transportes Sur", "founder@sur.com")

	joined, err := uc.SubmitJoinRequest(context.Background(), dto.JoinRequestRequest{
		CompanyID: regA.Company.ID,
		Name:      "Comercio Uno",
		Email:     "msme@norte.com",
		Password:  testPassword,
	})
	require.NoError(t, err)

	// El admin de B no puede resolver solicitudes de A.
	_, err = uc.Approve(context.Background(), regB.Admin.ID, joined.ID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)

	// El objetivo sigue PENDING y el admin de A aún puede aprobarlo.
	target, err := store.Repos().Users.GetByID(context.Background(), joined.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, target.Status)

	_, err = uc.Approve(context.Background(), regA.Admin.ID, joined.ID)
	assert.NoError(t, err)
}

func TestReject_EsTerminal(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	reg := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")

	joined, err := uc.SubmitJoinRequest(context.Background(), dto.JoinRequestRequest{
		CompanyID: reg.Company.ID,
		Name:      "Comercio Uno",
		Email:     "msme@norte.com",
		Password:  testPassword,
	})
	require.NoError(t, err)

	rejected, err := uc.Reject(context.Background(), reg.Admin.ID, joined.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, rejected.Status)

	// Resolver de nuevo (en cualquier dirección) falla: ya no está PENDING.
	_, err = uc.Approve(context.Background(), reg.Admin.ID, joined.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	// Tampoco aparece más en la lista de pendientes.
	pending, err := uc.ListPending(context.Background(), reg.Admin.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Y no puede autenticarse.
	_, err = newAuth(store).Login(context.Background(), dto.LoginRequest{Email: "msme@norte.com", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrAccountNotActive)
}

func TestApprove_Concurrente_ExactamenteUnGanador(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	reg := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")

	joined, err := uc.SubmitJoinRequest(context.Background(), dto.JoinRequestRequest{
		CompanyID: reg.Company.ID,
		Name:      "Comercio Uno",
		Email:     "msme@norte.com",
		Password:  testPassword,
	})
	require.NoError(t, err)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Approve(context.Background(), reg.Admin.ID, joined.ID)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
		}
	}
	assert.Equal(t, 1, winners, "de n aprobaciones concurrentes exactamente una gana")

	target, err := store.Repos().Users.GetByID(context.Background(), joined.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, target.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta directa y listado de pendientes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUser_PorAdmin_NaceActivo(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	reg := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")

	driver, err := uc.CreateUser(context.Background(), reg.Admin.ID, dto.CreateUserRequest{
		Email:    "driver@norte.com",
		Password: testPassword,
		Name:     "Conductor Uno",
		Role:     entity.RoleDriver,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, driver.Status)
	assert.Equal(t, reg.Company.ID, driver.CompanyID)

	_, err = newAuth(store).Login(context.Background(), dto.LoginRequest{Email: "driver@norte.com", Password: testPassword})
	assert.NoError(t, err)
}

func TestCreateUser_PorMsme_InsufficientRole(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	reg := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")

	msme, err := uc.CreateUser(context.Background(), reg.Admin.ID, dto.CreateUserRequest{
		Email:    "msme@norte.com",
		Password: testPassword,
		Name:     "Comercio Uno",
		Role:     entity.RoleMSME,
	})
	require.NoError(t, err)

	_, err = uc.CreateUser(context.Background(), msme.ID, dto.CreateUserRequest{
		Email:    "otro@norte.com",
		Password: testPassword,
		Name:     "Otro",
		Role:     entity.RoleDriver,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestCreateUser_RolInvalido_Rechazado(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	reg := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")

	_, err := uc.CreateUser(context.Background(), reg.Admin.ID, dto.CreateUserRequest{
		Email:    "x@norte.com",
		Password: testPassword,
		Name:     "X",
		Role:     "SUPERADMIN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListPending_SoloDeLaEmpresaDelActor(t *testing.T) {
	store := memory.NewStore()
	uc := newOnboarding(store)
	regA := registerDemo(t, uc, "Transportes Norte", "founder@norte.com")
	regB := registerDemo(t, uc, "Transportes Sur", "founder@sur.com")

	_, err := uc.SubmitJoinRequest(context.Background(), dto.JoinRequestRequest{
		CompanyID: regA.Company.ID, Name: "MSME A", Email: "a@norte.com", Password: testPassword,
	})
	require.NoError(t, err)
	_, err = uc.SubmitJoinRequest(context.Background(), dto.JoinRequestRequest{
		CompanyID: regB.Company.ID, Name: "MSME B", Email: "b@sur.com", Password: testPassword,
	})
	require.NoError(t, err)

	pendingA, err := uc.ListPending(context.Background(), regA.Admin.ID)
	require.NoError(t, err)
	require.Len(t, pendingA, 1)
	assert.Equal(t, "a@norte.com", pendingA[0].Email)

	pendingB, err := uc.ListPending(context.Background(), regB.Admin.ID)
	require.NoError(t, err)
	require.Len(t, pendingB, 1)
	assert.Equal(t, "b@sur.com", pendingB[0].Email)
}
