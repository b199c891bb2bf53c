package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son condiciones
// recuperables por el caller; la capa HTTP decide cuánto detalle exponer.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountNotActive   = errors.New("la cuenta no está activa")
	ErrCompanyNotFound    = errors.New("empresa no encontrada")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientRole   = errors.New("rol insuficiente para la operación")
	ErrCrossTenantAccess  = errors.New("acceso a recursos de otra empresa")
	ErrNotAssignedToActor = errors.New("recurso no asignado al usuario")
	ErrAlreadyResolved    = errors.New("la solicitud ya fue resuelta")
	ErrNoCompanyAssigned  = errors.New("usuario sin empresa asignada")
)
