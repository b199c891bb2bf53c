// Package metrics expone los contadores Prometheus del núcleo de acceso.
// Los registra en el registry por defecto; /metrics los sirve vía promhttp.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/Logistics-api/internal/domain"
)

var (
	// AuthzDenials cuenta las denegaciones del guard por motivo.
	AuthzDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "authz",
		Name:      "denials_total",
		Help:      "Decisiones de autorización denegadas, por motivo.",
	}, []string{"reason"})

	// LoginAttempts cuenta los intentos de login por resultado.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Intentos de login, por resultado.",
	}, []string{"result"})

	// OnboardingTransitions cuenta las transiciones del workflow de ingreso.
	OnboardingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "logistics",
		Subsystem: "onboarding",
		Name:      "transitions_total",
		Help:      "Transiciones de estado del onboarding (registered, requested, approved, rejected, created_direct).",
	}, []string{"transition"})
)

// DenialReason traduce un error de dominio a la etiqueta del contador.
func DenialReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotActive):
		return "account_not_active"
	case errors.Is(err, domain.ErrInsufficientRole):
		return "insufficient_role"
	case errors.Is(err, domain.ErrCrossTenantAccess):
		return "cross_tenant"
	case errors.Is(err, domain.ErrNotAssignedToActor):
		return "not_assigned"
	case errors.Is(err, domain.ErrNoCompanyAssigned):
		return "no_company"
	default:
		return "other"
	}
}
