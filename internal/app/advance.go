package app

import (
	"context"
	"fmt"

	"github.com/example/tradeflow/internal/core/document"
	"github.com/example/tradeflow/internal/core/negotiation"
	"github.com/example/tradeflow/internal/models"
	"github.com/example/tradeflow/internal/ports/secondary"
)

// advancePhaseIfReady advances the shipment's phase while its exit
// condition holds, to a fixed point. Never regresses, never errors on
// unmet conditions; callers re-run it after every mutating operation.
// The caller must hold the shipment lock.
func advancePhaseIfReady(
	ctx context.Context,
	shipmentRepo secondary.ShipmentRepository,
	documentRepo secondary.DocumentRepository,
	rec *secondary.ShipmentRecord,
) error {
	docs, err := documentRepo.ListActive(ctx, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	for {
		currentPhase := models.ShipmentPhase(rec.Phase)
		complete := document.HasAllRequiredDocuments(currentPhase, activeViewsForPhase(docs, currentPhase))

		exit := negotiation.ExitConditionMet(negotiation.ExitContext{
			Phase:             currentPhase,
			Details:           models.EvaluationStatus(rec.DetailsEvaluation),
			Sample:            models.EvaluationStatus(rec.SampleEvaluation),
			Quality:           models.EvaluationStatus(rec.QualityEvaluation),
			DocumentsComplete: complete,
		})
		if !exit {
			return nil
		}

		next, ok := currentPhase.Next()
		if !ok {
			return nil
		}

		if err := shipmentRepo.UpdatePhase(ctx, rec.ID, string(next)); err != nil {
			return fmt.Errorf("failed to advance phase: %w", err)
		}
		rec.Phase = string(next)
	}
}
