package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"papertrade/internal/domain"
)

// BulkFailure records one failed item of a bulk run
type BulkFailure struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

// BulkResult aggregates the outcome of a bulk run
type BulkResult struct {
	Action    domain.Action `json:"action"`
	Processed int           `json:"processed"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []BulkFailure `json:"failures,omitempty"`
}

// BulkService applies one admin action to a set of selected user IDs.
// Items run sequentially in input order so the server-side mutation order
// matches the selection order; an individual failure is recorded and never
// halts the remaining items.
type BulkService struct {
	statusService statusApplier
}

// statusApplier is the slice of StatusService the coordinator needs
type statusApplier interface {
	Apply(ctx context.Context, actorID, userID uuid.UUID, action domain.Action) error
}

// NewBulkService creates a new BulkService
func NewBulkService(statusService statusApplier) *BulkService {
	return &BulkService{statusService: statusService}
}

// Run applies the action to every ID in order and returns the aggregate
// result. The caller is expected to re-fetch its list afterwards
// regardless of individual outcomes.
func (s *BulkService) Run(ctx context.Context, actorID uuid.UUID, ids []uuid.UUID, action domain.Action) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidAction
	}
	if !domain.ValidAction(action) {
		return nil, domain.ErrInvalidAction
	}

	result := &BulkResult{Action: action}

	for _, id := range ids {
		result.Processed++
		if err := s.statusService.Apply(ctx, actorID, id, action); err != nil {
			log.Printf("ERROR: Bulk %s failed for user %s: %v", action, id, err)
			result.Failed++
			result.Failures = append(result.Failures, BulkFailure{ID: id, Error: err.Error()})
			continue
		}
		result.Succeeded++
	}

	log.Printf("[OK] Bulk %s complete: %d processed, %d succeeded, %d failed",
		action, result.Processed, result.Succeeded, result.Failed)

	return result, nil
}
