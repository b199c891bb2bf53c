package usecase

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Logistics-api/internal/domain"
	"github.com/jhoicas/Logistics-api/internal/domain/authz"
	"github.com/jhoicas/Logistics-api/internal/domain/entity"
	"github.com/jhoicas/Logistics-api/internal/domain/repository"
	"github.com/jhoicas/Logistics-api/internal/infrastructure/metrics"
)

// loadActor trae el actor desde la DB en cada operación: el rol del token no
// alcanza, el estado de la cuenta puede haber cambiado desde su emisión.
func loadActor(ctx context.Context, users repository.UserRepository, actorID string) (*entity.User, error) {
	actor, err := users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrAccountNotActive
	}
	return actor, nil
}

// denied audita la denegación y devuelve el motivo como error de dominio.
func denied(actor *entity.User, op authz.Operation, d authz.Decision) error {
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	metrics.AuthzDenials.WithLabelValues(metrics.DenialReason(d.Reason)).Inc()
	log.Warn().Str("actor_id", actorID).Str("op", string(op)).Err(d.Reason).Msg("acceso denegado")
	return d.Reason
}
